// Package persist bridges collection mutations to an external persistence or
// reporting callback. It is a thin coordination layer: a Syncer owns exactly
// one pending debounce timer, replaced on every qualifying mutation and
// cancelled on Close. Failed pushes are not retried.
package persist

import (
	"context"
	"errors"
	"sync"
	"time"

	coll "github.com/goliatone/go-collection"
	"github.com/goliatone/go-collection/pkg/activity"
)

// DefaultDebounce is the auto-sync quiet window used when Config leaves
// Debounce unset.
const DefaultDebounce = 250 * time.Millisecond

var ErrClosed = errors.New("persist: syncer is closed")

// SyncFunc pushes a snapshot's elements to external persistence. It may be
// long-running; it runs outside the mutation path.
type SyncFunc[T any] func(ctx context.Context, items []T) error

// Config controls auto-sync behaviour.
type Config struct {
	// SyncOnChange schedules a push after every publish, debounced by
	// Debounce: each mutation within the window replaces the pending timer.
	SyncOnChange bool
	Debounce     time.Duration
	// Logger receives auto-sync failures; manual Sync errors return to the
	// caller instead.
	Logger coll.DiagnosticLogger
	// Emitter, when set, receives a collection.sync event after each
	// successful push.
	Emitter *activity.Emitter
}

// Meta records the most recent successful push.
type Meta struct {
	SnapshotID string
	SyncedAt   time.Time
}

// Syncer wraps a collection with manual and debounced external sync. It holds
// a non-owning reference: it observes publishes but never mutates the
// collection.
type Syncer[T any] struct {
	mu          sync.Mutex
	collection  *coll.Collection[T]
	fn          SyncFunc[T]
	cfg         Config
	timer       *time.Timer
	pending     *coll.Snapshot[T]
	unsubscribe func()
	meta        Meta
	closed      bool
}

// NewSyncer attaches a syncer to c. The caller must Close the syncer when the
// owning context is torn down.
func NewSyncer[T any](c *coll.Collection[T], fn SyncFunc[T], cfg Config) (*Syncer[T], error) {
	if c == nil {
		return nil, errors.New("persist: collection is required")
	}
	if fn == nil {
		return nil, errors.New("persist: sync function is required")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	s := &Syncer[T]{collection: c, fn: fn, cfg: cfg}
	if cfg.SyncOnChange {
		s.unsubscribe = c.OnChange(func(_, next *coll.Snapshot[T]) {
			s.schedule(next)
		})
	}
	return s, nil
}

// NewSyncedCollection constructs a collection and its syncer in one call.
func NewSyncedCollection[T any](items []T, fn SyncFunc[T], cfg Config, opts ...coll.Option[T]) (*coll.Collection[T], *Syncer[T], error) {
	c := coll.New(items, opts...)
	s, err := NewSyncer(c, fn, cfg)
	if err != nil {
		return nil, nil, err
	}
	return c, s, nil
}

// Sync pushes the current snapshot immediately and returns the callback's
// error. A pending debounced push is cancelled: the manual push supersedes it.
func (s *Syncer[T]) Sync(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
	s.mu.Unlock()
	return s.push(ctx, s.collection.Snapshot())
}

// LastSync returns metadata for the most recent successful push.
func (s *Syncer[T]) LastSync() Meta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta
}

// Close cancels any pending push and detaches from the collection. Close is
// idempotent; a closed syncer rejects further Sync calls.
func (s *Syncer[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// schedule replaces the pending timer with a fresh debounce window. snap is
// captured on the mutating goroutine; the fired timer pushes that reference
// and never reads the live collection, which belongs to its owner.
func (s *Syncer[T]) schedule(snap *coll.Snapshot[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = snap
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.cfg.Debounce, func() {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return
		}
		s.timer = nil
		captured := s.pending
		s.pending = nil
		s.mu.Unlock()
		if captured == nil {
			return
		}
		if err := s.push(context.Background(), captured); err != nil && s.cfg.Logger != nil {
			s.cfg.Logger.LogDiagnostic(coll.Diagnostic{
				Component: "persist",
				Op:        "auto_sync",
				Err:       err,
			})
		}
	})
}

// push sends snap to the callback and records the result.
func (s *Syncer[T]) push(ctx context.Context, snap *coll.Snapshot[T]) error {
	if err := s.fn(ctx, snap.Items()); err != nil {
		return err
	}
	s.mu.Lock()
	s.meta = Meta{SnapshotID: snap.ID(), SyncedAt: time.Now()}
	s.mu.Unlock()
	s.emit(snap)
	return nil
}

func (s *Syncer[T]) emit(snap *coll.Snapshot[T]) {
	if !s.cfg.Emitter.Enabled() {
		return
	}
	event := activity.BuildSyncEvent(activity.ChangeInput{
		CollectionID: s.collection.Name(),
		SnapshotID:   snap.ID(),
		Size:         snap.Len(),
	})
	// Sync already succeeded; hook failures are diagnostics only.
	if err := s.cfg.Emitter.Emit(context.Background(), event); err != nil && s.cfg.Logger != nil {
		s.cfg.Logger.LogDiagnostic(coll.Diagnostic{
			Component: "persist",
			Op:        "emit",
			Err:       err,
		})
	}
}
