package activity

import (
	"context"
	"sync"
)

// CaptureHook buffers every change event it is notified with, so tests can
// assert on emitted verbs, channels, and snapshot metadata. Set Err to make
// the hook fail and exercise fan-out error handling.
type CaptureHook struct {
	Events []Event
	Err    error
	mu     sync.Mutex
}

// Notify appends the normalized event to Events and returns the configured
// error, if any.
func (h *CaptureHook) Notify(_ context.Context, event Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Events = append(h.Events, NormalizeEvent(event))
	return h.Err
}
