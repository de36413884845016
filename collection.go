// Package coll implements an immutable ordered collection with a
// mutable-feeling API, value-equality change suppression, vetoable mutation
// hooks, and a memoized derived-view layer bounded by an LRU cache.
package coll

import (
	"context"

	"github.com/goliatone/go-collection/pkg/activity"
	"github.com/google/uuid"
)

// Collection owns exactly one live snapshot at a time. All operations are
// synchronous; the model is single-owner and single-threaded. Each successful
// mutation publishes a fresh immutable snapshot, so any retained *Snapshot
// reference stays valid forever.
type Collection[T any] struct {
	cfg     config[T]
	name    string
	snap    *Snapshot[T]
	subs    map[int]ChangeFunc[T]
	nextSub int
}

// New constructs a collection from a copy of items.
func New[T any](items []T, opts ...Option[T]) *Collection[T] {
	cfg := applyOptions(opts)
	name := cfg.name
	if name == "" {
		name = uuid.NewString()
	}
	return &Collection[T]{
		cfg:  cfg,
		name: name,
		snap: newSnapshot(append([]T(nil), items...)),
	}
}

// Load constructs a collection and validates every initial element that
// implements a Validate method.
func Load[T any](items []T, opts ...Option[T]) (*Collection[T], error) {
	c := New(items, opts...)
	for _, item := range items {
		if err := validateItem(item); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func validateItem[T any](item T) error {
	if v, ok := any(item).(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}

// Name returns the collection's identifier used on activity events.
func (c *Collection[T]) Name() string {
	return c.name
}

// Snapshot returns the live snapshot. The returned reference never mutates.
func (c *Collection[T]) Snapshot() *Snapshot[T] {
	return c.snap
}

// Items returns a copy of the current elements.
func (c *Collection[T]) Items() []T {
	return c.snap.Items()
}

// Len returns the current number of elements.
func (c *Collection[T]) Len() int {
	return c.snap.Len()
}

// IsEmpty reports whether the collection currently holds zero elements.
func (c *Collection[T]) IsEmpty() bool {
	return c.snap.IsEmpty()
}

// OnChange subscribes fn to publish notifications and returns a cancel
// function. Subscribers run synchronously after the configured after-change
// hook, in no guaranteed order.
func (c *Collection[T]) OnChange(fn ChangeFunc[T]) func() {
	if fn == nil {
		return func() {}
	}
	if c.subs == nil {
		c.subs = map[int]ChangeFunc[T]{}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		delete(c.subs, id)
	}
}

func (c *Collection[T]) equality() EqualityFunc[T] {
	if c.cfg.equality != nil {
		return c.cfg.equality
	}
	return defaultEquals[T]
}

func (c *Collection[T]) logger() DiagnosticLogger {
	if c.cfg.logger != nil {
		return c.cfg.logger
	}
	return noopDiagnosticLogger{}
}

// publish swaps in candidate as the new live snapshot unless the candidate is
// element-wise equal to the current one or the before-change hook vetoes it.
// Reports whether a new snapshot was published. publish takes ownership of
// candidate.
func (c *Collection[T]) publish(candidate []T, verb string) bool {
	prev := c.snap
	if prev.equalItems(candidate, c.equality()) {
		return false
	}
	next := newSnapshot(candidate)
	if c.cfg.before != nil && !c.cfg.before(prev, next) {
		return false
	}
	c.snap = next
	if c.cfg.after != nil {
		c.cfg.after(prev, next)
	}
	for _, fn := range c.subs {
		fn(prev, next)
	}
	c.emit(verb, prev, next)
	return true
}

func (c *Collection[T]) emit(verb string, prev, next *Snapshot[T]) {
	if !c.cfg.emitter.Enabled() {
		return
	}
	event := activity.BuildChangeEvent(verb, activity.ChangeInput{
		CollectionID:   c.name,
		SnapshotID:     next.ID(),
		PrevSnapshotID: prev.ID(),
		Size:           next.Len(),
		PrevSize:       prev.Len(),
		ActorID:        c.cfg.activityActor,
	})
	if err := c.cfg.emitter.Emit(context.Background(), event); err != nil {
		c.logger().LogDiagnostic(Diagnostic{
			Component: "activity",
			Op:        verb,
			Err:       err,
		})
	}
}
