package coll

import (
	"fmt"
	"sort"
	"time"
)

// View is a read-only, lazily recomputed projection over a Source. Every
// transform consults a bounded LRU cache keyed by operation name, the source
// snapshot's identity, and the transform's structural parameters. Because Go
// cannot derive a comparable key from a closure, function-valued transforms
// take an explicit key argument; the caller promises that equal keys mean
// equal behaviour. A new source snapshot simply misses all prior entries;
// stale entries age out under LRU pressure.
//
// Views are fail-soft: a transform that panics is recovered at the computed-
// value boundary, reported through the diagnostic logger, and replaced by the
// empty result for its shape. Contrast with Collection, which is fail-fast.
type View[T any] struct {
	src       Source[T]
	cache     ViewCache
	evaluator Evaluator
	programs  ProgramCache
	functions *FunctionRegistry
	log       DiagnosticLogger
}

// ViewOption configures a View at construction time.
type ViewOption func(*viewConfig)

type viewConfig struct {
	cache     ViewCache
	capacity  int
	evaluator Evaluator
	programs  ProgramCache
	functions *FunctionRegistry
	logger    DiagnosticLogger
}

// ViewWithCapacity bounds the default LRU result cache. Ignored when
// ViewWithCache supplies a cache.
func ViewWithCapacity(capacity int) ViewOption {
	return func(cfg *viewConfig) {
		cfg.capacity = capacity
	}
}

// ViewWithCache supplies the result cache implementation.
func ViewWithCache(cache ViewCache) ViewOption {
	return func(cfg *viewConfig) {
		cfg.cache = cache
	}
}

// ViewWithEvaluator configures the evaluator backing expression transforms.
func ViewWithEvaluator(e Evaluator) ViewOption {
	return func(cfg *viewConfig) {
		cfg.evaluator = e
	}
}

// ViewWithProgramCache registers a cache for compiled expression programs.
func ViewWithProgramCache(cache ProgramCache) ViewOption {
	return func(cfg *viewConfig) {
		cfg.programs = cache
	}
}

// ViewWithFunctionRegistry configures custom functions callable from
// expression transforms.
func ViewWithFunctionRegistry(registry *FunctionRegistry) ViewOption {
	return func(cfg *viewConfig) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// ViewWithLogger attaches a diagnostic logger receiving fail-soft reports.
func ViewWithLogger(logger DiagnosticLogger) ViewOption {
	return func(cfg *viewConfig) {
		cfg.logger = logger
	}
}

// NewView wraps src in a derived view with a bounded result cache.
func NewView[T any](src Source[T], opts ...ViewOption) *View[T] {
	cfg := viewConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cache := cfg.cache
	if cache == nil {
		cache = NewLRUCache(cfg.capacity)
	}
	return &View[T]{
		src:       src,
		cache:     cache,
		evaluator: cfg.evaluator,
		programs:  cfg.programs,
		functions: cfg.functions,
		log:       cfg.logger,
	}
}

// Snapshot returns the source's current snapshot, so views can stack.
func (v *View[T]) Snapshot() *Snapshot[T] {
	return v.src.Snapshot()
}

// Len returns the source's current length.
func (v *View[T]) Len() int {
	return v.src.Snapshot().Len()
}

// IsEmpty reports whether the source is currently empty.
func (v *View[T]) IsEmpty() bool {
	return v.src.Snapshot().IsEmpty()
}

func (v *View[T]) logger() DiagnosticLogger {
	if v.log != nil {
		return v.log
	}
	return noopDiagnosticLogger{}
}

// Filter returns the elements satisfying fn, memoized under key.
func (v *View[T]) Filter(key string, fn func(T) bool) []T {
	return viewResult(v, "filter", key, nil, func(items []T) ([]T, error) {
		var out []T
		for _, item := range items {
			if fn(item) {
				out = append(out, item)
			}
		}
		return out, nil
	})
}

// Sort returns the elements freshly ordered by less, memoized under key. The
// sort is stable.
func (v *View[T]) Sort(key string, less func(a, b T) bool) []T {
	return viewResult(v, "sort", key, nil, func(items []T) ([]T, error) {
		out := append([]T(nil), items...)
		sort.SliceStable(out, func(i, j int) bool {
			return less(out[i], out[j])
		})
		return out, nil
	})
}

// UniqueBy removes elements whose fn key was already seen; first occurrence
// wins. fn must return a comparable value.
func (v *View[T]) UniqueBy(key string, fn func(T) any) []T {
	return viewResult(v, "unique", key, nil, func(items []T) ([]T, error) {
		seen := make(map[any]struct{}, len(items))
		var out []T
		for _, item := range items {
			k := fn(item)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, item)
		}
		return out, nil
	})
}

// Slice returns the half-open range [from, to) clamped to valid bounds.
func (v *View[T]) Slice(from, to int) []T {
	param := fmt.Sprintf("%d:%d", from, to)
	return viewResult(v, "slice", param, nil, func(items []T) ([]T, error) {
		if from < 0 {
			from = 0
		}
		if to > len(items) {
			to = len(items)
		}
		if from >= to {
			return nil, nil
		}
		return append([]T(nil), items[from:to]...), nil
	})
}

// Take returns the first n elements.
func (v *View[T]) Take(n int) []T {
	return v.Slice(0, n)
}

// Drop returns the elements after the first n.
func (v *View[T]) Drop(n int) []T {
	if n < 0 {
		n = 0
	}
	return v.Slice(n, v.Len())
}

type findResult[T any] struct {
	item T
	ok   bool
}

// Find returns the first element satisfying fn, memoized under key.
func (v *View[T]) Find(key string, fn func(T) bool) (T, bool) {
	result := viewResult(v, "find", key, findResult[T]{}, func(items []T) (findResult[T], error) {
		for _, item := range items {
			if fn(item) {
				return findResult[T]{item: item, ok: true}, nil
			}
		}
		return findResult[T]{}, nil
	})
	return result.item, result.ok
}

// Some reports whether any element satisfies fn, memoized under key.
func (v *View[T]) Some(key string, fn func(T) bool) bool {
	return viewResult(v, "some", key, false, func(items []T) (bool, error) {
		for _, item := range items {
			if fn(item) {
				return true, nil
			}
		}
		return false, nil
	})
}

// Every reports whether all elements satisfy fn, memoized under key. Empty
// sources report true.
func (v *View[T]) Every(key string, fn func(T) bool) bool {
	return viewResult(v, "every", key, true, func(items []T) (bool, error) {
		for _, item := range items {
			if !fn(item) {
				return false, nil
			}
		}
		return true, nil
	})
}

// Pipe feeds the current elements through fn, memoizing its result under key.
// fn receives a copy it may freely inspect but must not retain as mutable
// state.
func (v *View[T]) Pipe(key string, fn func(items []T) any) any {
	return viewResult[T, any](v, "pipe", key, nil, func(items []T) (any, error) {
		return fn(append([]T(nil), items...)), nil
	})
}

// MapView applies fn to every element, memoized under key.
func MapView[T, U any](v *View[T], key string, fn func(T) U) []U {
	return viewResult(v, "map", key, nil, func(items []T) ([]U, error) {
		out := make([]U, len(items))
		for i, item := range items {
			out[i] = fn(item)
		}
		return out, nil
	})
}

// ReduceView folds the elements into a single value, memoized under key.
func ReduceView[T, U any](v *View[T], key string, fn func(acc U, item T) U, initial U) U {
	return viewResult(v, "reduce", key, initial, func(items []T) (U, error) {
		acc := initial
		for _, item := range items {
			acc = fn(acc, item)
		}
		return acc, nil
	})
}

// GroupByView buckets elements by fn's key, memoized under key. Within each
// group original relative order is preserved.
func GroupByView[T any, K comparable](v *View[T], key string, fn func(T) K) map[K][]T {
	return viewResult(v, "group_by", key, EmptyMap[K, []T](), func(items []T) (map[K][]T, error) {
		out := make(map[K][]T)
		for _, item := range items {
			k := fn(item)
			out[k] = append(out[k], item)
		}
		return out, nil
	})
}

// UniqueView removes duplicate elements; first occurrence wins.
func UniqueView[T comparable](v *View[T]) []T {
	return viewResult(v, "unique", "", nil, func(items []T) ([]T, error) {
		seen := make(map[T]struct{}, len(items))
		var out []T
		for _, item := range items {
			if _, dup := seen[item]; dup {
				continue
			}
			seen[item] = struct{}{}
			out = append(out, item)
		}
		return out, nil
	})
}

// ToSetView collects the elements into a set, memoized per snapshot.
func ToSetView[T comparable](v *View[T]) map[T]struct{} {
	return viewResult(v, "to_set", "", EmptySet[T](), func(items []T) (map[T]struct{}, error) {
		out := make(map[T]struct{}, len(items))
		for _, item := range items {
			out[item] = struct{}{}
		}
		return out, nil
	})
}

// viewResult is the computed-value boundary shared by every view transform:
// empty-source bypass, cache lookup, recovered computation, cache fill. On
// failure it reports a diagnostic and returns empty, the result's empty
// shape.
func viewResult[T, R any](v *View[T], op, param string, empty R, compute func(items []T) (R, error)) R {
	snap := v.src.Snapshot()
	if snap.IsEmpty() {
		return empty
	}
	key := op + "\x1f" + snap.ID() + "\x1f" + param
	if cached, ok := v.cache.Get(key); ok {
		if typed, ok := cached.(R); ok {
			return typed
		}
	}
	start := time.Now()
	result, err := recovered(op, snap.items, compute)
	if err != nil {
		v.logger().LogDiagnostic(Diagnostic{
			Component: "view",
			Op:        op,
			Expr:      param,
			Duration:  time.Since(start),
			Err:       err,
		})
		return empty
	}
	v.cache.Set(key, result)
	return result
}

func recovered[T, R any](op string, items []T, compute func(items []T) (R, error)) (result R, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("coll: view %s panicked: %v", op, rec)
		}
	}()
	return compute(items)
}
