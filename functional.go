package coll

// Functional operations are pure reads returning plain slices and maps. They
// always recompute against the current snapshot; memoization lives in View.
// Operations needing a second type parameter are free functions over Source
// because Go methods cannot introduce type parameters.

// Filter returns the elements for which fn(item, index) returns true.
func (c *Collection[T]) Filter(fn func(item T, index int) bool) []T {
	var out []T
	for i, item := range c.snap.items {
		if fn(item, i) {
			out = append(out, item)
		}
	}
	return out
}

// Reject returns the elements for which fn returns false.
func (c *Collection[T]) Reject(fn func(item T, index int) bool) []T {
	return c.Filter(func(item T, index int) bool {
		return !fn(item, index)
	})
}

// ForEach calls fn for every element in order.
func (c *Collection[T]) ForEach(fn func(item T, index int)) {
	for i, item := range c.snap.items {
		fn(item, i)
	}
}

// Find returns the first element satisfying fn, or the zero value and false.
func (c *Collection[T]) Find(fn func(T) bool) (T, bool) {
	var zero T
	for _, item := range c.snap.items {
		if fn(item) {
			return item, true
		}
	}
	return zero, false
}

// FindIndex returns the index of the first element satisfying fn, or -1.
func (c *Collection[T]) FindIndex(fn func(T) bool) int {
	for i, item := range c.snap.items {
		if fn(item) {
			return i
		}
	}
	return -1
}

// Some reports whether at least one element satisfies fn.
func (c *Collection[T]) Some(fn func(T) bool) bool {
	return c.FindIndex(fn) >= 0
}

// Every reports whether all elements satisfy fn. Empty collections report
// true.
func (c *Collection[T]) Every(fn func(T) bool) bool {
	for _, item := range c.snap.items {
		if !fn(item) {
			return false
		}
	}
	return true
}

// Partition splits the elements into those satisfying fn and those that do
// not, preserving relative order in both halves.
func (c *Collection[T]) Partition(fn func(T) bool) (matched, rest []T) {
	for _, item := range c.snap.items {
		if fn(item) {
			matched = append(matched, item)
		} else {
			rest = append(rest, item)
		}
	}
	return matched, rest
}

// Chunk splits the elements into consecutive groups of size. The last chunk
// may be shorter; size <= 0 yields nil.
func (c *Collection[T]) Chunk(size int) [][]T {
	if size <= 0 || c.snap.IsEmpty() {
		return nil
	}
	items := c.snap.items
	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, append([]T(nil), items[start:end]...))
	}
	return out
}

// TakeWhile returns the leading elements up to the first one that fails fn.
func (c *Collection[T]) TakeWhile(fn func(T) bool) []T {
	var out []T
	for _, item := range c.snap.items {
		if !fn(item) {
			break
		}
		out = append(out, item)
	}
	return out
}

// DropWhile skips the leading elements satisfying fn and returns the rest.
func (c *Collection[T]) DropWhile(fn func(T) bool) []T {
	for i, item := range c.snap.items {
		if !fn(item) {
			return append([]T(nil), c.snap.items[i:]...)
		}
	}
	return nil
}

// Map applies fn(item, index) to every element of src.
func Map[T, U any](src Source[T], fn func(item T, index int) U) []U {
	snap := src.Snapshot()
	if snap.IsEmpty() {
		return nil
	}
	out := make([]U, snap.Len())
	for i, item := range snap.items {
		out[i] = fn(item, i)
	}
	return out
}

// FlatMap applies fn to every element and concatenates the results.
func FlatMap[T, U any](src Source[T], fn func(item T, index int) []U) []U {
	snap := src.Snapshot()
	var out []U
	for i, item := range snap.items {
		out = append(out, fn(item, i)...)
	}
	return out
}

// Reduce folds the elements of src into a single value of type U.
func Reduce[T, U any](src Source[T], fn func(acc U, item T, index int) U, initial U) U {
	acc := initial
	for i, item := range src.Snapshot().items {
		acc = fn(acc, item, i)
	}
	return acc
}

// GroupBy buckets elements by fn's key. Within each group the original
// relative order is preserved. An empty source yields the shared empty map.
func GroupBy[T any, K comparable](src Source[T], fn func(T) K) map[K][]T {
	snap := src.Snapshot()
	if snap.IsEmpty() {
		return EmptyMap[K, []T]()
	}
	out := make(map[K][]T)
	for _, item := range snap.items {
		key := fn(item)
		out[key] = append(out[key], item)
	}
	return out
}

// Distinct returns the elements with duplicates removed; the first occurrence
// wins and order is preserved.
func Distinct[T comparable](src Source[T]) []T {
	return DistinctBy(src, func(item T) T { return item })
}

// DistinctBy removes elements whose fn key was already seen; the first
// occurrence wins.
func DistinctBy[T any, K comparable](src Source[T], fn func(T) K) []T {
	snap := src.Snapshot()
	if snap.IsEmpty() {
		return nil
	}
	seen := make(map[K]struct{}, snap.Len())
	var out []T
	for _, item := range snap.items {
		key := fn(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Pair couples one element from each side of a Zip.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip pairs elements of a and b positionally. The result length is the
// shorter of the two.
func Zip[A, B any](a Source[A], b Source[B]) []Pair[A, B] {
	as, bs := a.Snapshot(), b.Snapshot()
	length := as.Len()
	if bs.Len() < length {
		length = bs.Len()
	}
	if length == 0 {
		return nil
	}
	out := make([]Pair[A, B], length)
	for i := 0; i < length; i++ {
		out[i] = Pair[A, B]{First: as.items[i], Second: bs.items[i]}
	}
	return out
}

// ToSlice returns a copy of src's current elements.
func ToSlice[T any](src Source[T]) []T {
	return src.Snapshot().Items()
}

// ToSet collects the elements into a set. An empty source yields the shared
// empty set.
func ToSet[T comparable](src Source[T]) map[T]struct{} {
	snap := src.Snapshot()
	if snap.IsEmpty() {
		return EmptySet[T]()
	}
	out := make(map[T]struct{}, snap.Len())
	for _, item := range snap.items {
		out[item] = struct{}{}
	}
	return out
}

// ToMap indexes the elements by fn's key. On key collision the last element
// wins. An empty source yields the shared empty map.
func ToMap[T any, K comparable](src Source[T], fn func(T) K) map[K]T {
	snap := src.Snapshot()
	if snap.IsEmpty() {
		return EmptyMap[K, T]()
	}
	out := make(map[K]T, snap.Len())
	for _, item := range snap.items {
		out[fn(item)] = item
	}
	return out
}
