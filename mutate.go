package coll

import (
	"math/rand"
	"sort"
)

// Mutation operations compute a candidate sequence from the pre-mutation
// snapshot and hand it to publish. Out-of-range indices are reported as
// failures, never panics. Caller-supplied predicates and comparators that
// panic propagate to the caller with the live snapshot untouched.

// Append adds item at the end. Reports whether a new snapshot was published.
func (c *Collection[T]) Append(item T) bool {
	candidate := append(c.snap.Items(), item)
	return c.publish(candidate, verbAppend)
}

// AppendAll adds every item at the end. Empty input is a no-op failure.
func (c *Collection[T]) AppendAll(items ...T) bool {
	if len(items) == 0 {
		return false
	}
	candidate := append(c.snap.Items(), items...)
	return c.publish(candidate, verbAppend)
}

// InsertAt inserts item so it occupies index. Valid indices run from 0 to
// Len() inclusive; anything else is a no-op failure.
func (c *Collection[T]) InsertAt(index int, item T) bool {
	return c.InsertAllAt(index, item)
}

// InsertAllAt inserts items starting at index, preserving their order. Empty
// input or an out-of-range index is a no-op failure.
func (c *Collection[T]) InsertAllAt(index int, items ...T) bool {
	if len(items) == 0 || index < 0 || index > c.snap.Len() {
		return false
	}
	current := c.snap.items
	candidate := make([]T, 0, len(current)+len(items))
	candidate = append(candidate, current[:index]...)
	candidate = append(candidate, items...)
	candidate = append(candidate, current[index:]...)
	return c.publish(candidate, verbAppend)
}

// RemoveFirst removes the first element equal to item under the configured
// equality function.
func (c *Collection[T]) RemoveFirst(item T) bool {
	index := c.IndexOf(item)
	if index < 0 {
		return false
	}
	_, changed := c.RemoveAt(index)
	return changed
}

// RemoveAt removes and returns the element at index. Out-of-range indices
// return the zero value and false with the collection unchanged.
func (c *Collection[T]) RemoveAt(index int) (T, bool) {
	var zero T
	if index < 0 || index >= c.snap.Len() {
		return zero, false
	}
	removed := c.snap.items[index]
	candidate := make([]T, 0, c.snap.Len()-1)
	candidate = append(candidate, c.snap.items[:index]...)
	candidate = append(candidate, c.snap.items[index+1:]...)
	if !c.publish(candidate, verbRemove) {
		return zero, false
	}
	return removed, true
}

// RemoveAll removes every element that matches any of items. Membership
// honors the configured equality function; collections using the default
// equality over comparable elements take a hash-set fast path.
func (c *Collection[T]) RemoveAll(items ...T) bool {
	if len(items) == 0 {
		return false
	}
	member := c.membership(items)
	return c.RemoveWhere(func(item T, _ int) bool {
		return member(item)
	})
}

// RemoveWhere removes every element for which fn returns true. fn is
// evaluated against the pre-mutation snapshot, so indices are stable for the
// duration of the scan.
func (c *Collection[T]) RemoveWhere(fn func(item T, index int) bool) bool {
	if fn == nil {
		return false
	}
	current := c.snap.items
	candidate := make([]T, 0, len(current))
	for i, item := range current {
		if !fn(item, i) {
			candidate = append(candidate, item)
		}
	}
	if len(candidate) == len(current) {
		return false
	}
	return c.publish(candidate, verbRemove)
}

// ReplaceAt swaps the element at index for item and returns the previous
// element. Out-of-range indices return the zero value and false.
func (c *Collection[T]) ReplaceAt(index int, item T) (T, bool) {
	var zero T
	if index < 0 || index >= c.snap.Len() {
		return zero, false
	}
	previous := c.snap.items[index]
	candidate := c.snap.Items()
	candidate[index] = item
	if !c.publish(candidate, verbReplace) {
		return zero, false
	}
	return previous, true
}

// Clear removes every element. Reports false when already empty.
func (c *Collection[T]) Clear() bool {
	if c.snap.IsEmpty() {
		return false
	}
	return c.publish(nil, verbClear)
}

// RetainOnly keeps only elements that match one of items, removing the rest.
// Membership semantics match RemoveAll.
func (c *Collection[T]) RetainOnly(items ...T) bool {
	member := c.membership(items)
	return c.RemoveWhere(func(item T, _ int) bool {
		return !member(item)
	})
}

// Sort replaces the snapshot with a freshly ordered copy using less. The sort
// is stable. Reports false when the result is element-wise equal to the
// current snapshot.
func (c *Collection[T]) Sort(less func(a, b T) bool) bool {
	if less == nil || c.snap.Len() < 2 {
		return false
	}
	candidate := c.snap.Items()
	sort.SliceStable(candidate, func(i, j int) bool {
		return less(candidate[i], candidate[j])
	})
	return c.publish(candidate, verbReorder)
}

// Reverse replaces the snapshot with a reversed copy.
func (c *Collection[T]) Reverse() bool {
	current := c.snap.items
	candidate := make([]T, len(current))
	for i, item := range current {
		candidate[len(current)-1-i] = item
	}
	return c.publish(candidate, verbReorder)
}

// Shuffle replaces the snapshot with an unbiased permutation. Zero and
// one-element collections always report unchanged: the permuted candidate is
// element-wise equal to the current snapshot even though randomization ran.
func (c *Collection[T]) Shuffle() bool {
	candidate := c.snap.Items()
	rand.Shuffle(len(candidate), func(i, j int) {
		candidate[i], candidate[j] = candidate[j], candidate[i]
	})
	return c.publish(candidate, verbReorder)
}

// membership builds a matcher over items honoring the configured equality.
// With default equality and a comparable element type the matcher is a hash
// set; otherwise it is an O(m) scan per element.
func (c *Collection[T]) membership(items []T) func(T) bool {
	if c.cfg.equality == nil && typeComparable[T]() {
		set := make(map[any]struct{}, len(items))
		for _, item := range items {
			set[any(item)] = struct{}{}
		}
		return func(item T) bool {
			_, ok := set[any(item)]
			return ok
		}
	}
	eq := c.equality()
	return func(item T) bool {
		for _, other := range items {
			if eq(item, other) {
				return true
			}
		}
		return false
	}
}

const (
	verbAppend  = "collection.append"
	verbRemove  = "collection.remove"
	verbReplace = "collection.replace"
	verbClear   = "collection.clear"
	verbReorder = "collection.reorder"
)
