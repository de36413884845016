package coll

// Query operations are pure reads against the live snapshot. Nothing here is
// cached; contrast with View, which memoizes per snapshot.

// ElementAt returns the element at index, or the zero value and false when
// index is out of range.
func (c *Collection[T]) ElementAt(index int) (T, bool) {
	return c.snap.At(index)
}

// IndexOf returns the index of the first element equal to item under the
// configured equality function, or -1.
func (c *Collection[T]) IndexOf(item T) int {
	eq := c.equality()
	for i, other := range c.snap.items {
		if eq(other, item) {
			return i
		}
	}
	return -1
}

// LastIndexOf returns the index of the last element equal to item, or -1.
func (c *Collection[T]) LastIndexOf(item T) int {
	eq := c.equality()
	for i := c.snap.Len() - 1; i >= 0; i-- {
		if eq(c.snap.items[i], item) {
			return i
		}
	}
	return -1
}

// Contains reports whether any element equals item.
func (c *Collection[T]) Contains(item T) bool {
	return c.IndexOf(item) >= 0
}

// ContainsAll reports whether every one of items has an equal element in the
// collection. Empty input reports true.
func (c *Collection[T]) ContainsAll(items ...T) bool {
	for _, item := range items {
		if !c.Contains(item) {
			return false
		}
	}
	return true
}

// Subsequence returns a copy of the half-open range [from, to), clamped to
// the valid index range. Inverted or fully out-of-range bounds yield nil.
func (c *Collection[T]) Subsequence(from, to int) []T {
	length := c.snap.Len()
	if from < 0 {
		from = 0
	}
	if to > length {
		to = length
	}
	if from >= to {
		return nil
	}
	return append([]T(nil), c.snap.items[from:to]...)
}
