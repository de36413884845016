package coll

import (
	"iter"
	"reflect"

	"github.com/google/uuid"
)

// Snapshot is an immutable point-in-time ordered sequence. Pointer identity is
// the change-detection token: consumers compare *Snapshot references to decide
// whether anything changed since their last read. The backing slice is never
// exposed; Items returns a copy.
type Snapshot[T any] struct {
	id    string
	items []T
}

// newSnapshot takes ownership of items; callers must not retain the slice.
func newSnapshot[T any](items []T) *Snapshot[T] {
	if len(items) == 0 {
		return EmptySnapshot[T]()
	}
	return &Snapshot[T]{id: uuid.NewString(), items: items}
}

// SnapshotOf builds a standalone snapshot from a copy of items. Useful for
// feeding a View from a fixed sequence without a Collection.
func SnapshotOf[T any](items []T) *Snapshot[T] {
	if len(items) == 0 {
		return EmptySnapshot[T]()
	}
	return newSnapshot(append([]T(nil), items...))
}

// Snapshot returns the snapshot itself, making a fixed snapshot usable as a
// Source.
func (s *Snapshot[T]) Snapshot() *Snapshot[T] {
	if s == nil {
		return EmptySnapshot[T]()
	}
	return s
}

// ID returns the snapshot's provenance identifier. The empty singleton always
// reports the nil UUID.
func (s *Snapshot[T]) ID() string {
	if s == nil {
		return uuid.Nil.String()
	}
	return s.id
}

// Len returns the number of elements.
func (s *Snapshot[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// IsEmpty reports whether the snapshot holds zero elements.
func (s *Snapshot[T]) IsEmpty() bool {
	return s.Len() == 0
}

// At returns the element at index, or the zero value and false when index is
// out of range.
func (s *Snapshot[T]) At(index int) (T, bool) {
	var zero T
	if s == nil || index < 0 || index >= len(s.items) {
		return zero, false
	}
	return s.items[index], true
}

// Items returns a copy of the elements. Mutating the returned slice never
// affects the snapshot.
func (s *Snapshot[T]) Items() []T {
	if s.Len() == 0 {
		return nil
	}
	return append([]T(nil), s.items...)
}

// Each calls fn for every element in order until fn returns false.
func (s *Snapshot[T]) Each(fn func(index int, item T) bool) {
	if s == nil || fn == nil {
		return
	}
	for i, item := range s.items {
		if !fn(i, item) {
			return
		}
	}
}

// All returns an iterator over index/element pairs.
func (s *Snapshot[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if s == nil {
			return
		}
		for i, item := range s.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// equalItems reports element-wise equality between the snapshot and candidate
// under eq: same length and every position equal.
func (s *Snapshot[T]) equalItems(candidate []T, eq EqualityFunc[T]) bool {
	if s.Len() != len(candidate) {
		return false
	}
	for i, item := range candidate {
		if !eq(s.items[i], item) {
			return false
		}
	}
	return true
}

// defaultEquals compares by language identity when the dynamic type supports
// it, falling back to deep equality for non-comparable types.
func defaultEquals[T any](a, b T) bool {
	av, bv := any(a), any(b)
	if av == nil || bv == nil {
		return av == nil && bv == nil
	}
	if reflect.TypeOf(av).Comparable() && reflect.TypeOf(bv).Comparable() {
		return av == bv
	}
	return reflect.DeepEqual(av, bv)
}

func typeComparable[T any]() bool {
	return reflect.TypeOf((*T)(nil)).Elem().Comparable()
}
