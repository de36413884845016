package coll

import (
	"reflect"
	"sync"
)

// The empty-singleton registry holds one frozen zero-length instance per
// element type per container kind. Every operation in this package that yields
// zero elements returns the registered instance, so consumers can detect
// "still empty" by reference alone. This is an invariant, not an optimization.
var (
	emptySnapshots sync.Map // reflect.Type -> *Snapshot[T]
	emptySets      sync.Map // reflect.Type -> map[T]struct{}
)

// EmptySnapshot returns the canonical empty snapshot for element type T. Two
// calls always return the identical instance.
func EmptySnapshot[T any]() *Snapshot[T] {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if cached, ok := emptySnapshots.Load(key); ok {
		return cached.(*Snapshot[T])
	}
	actual, _ := emptySnapshots.LoadOrStore(key, &Snapshot[T]{id: nilSnapshotID})
	return actual.(*Snapshot[T])
}

// EmptySet returns the canonical empty set for element type T. The returned
// map is shared and must be treated as read-only.
func EmptySet[T comparable]() map[T]struct{} {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if cached, ok := emptySets.Load(key); ok {
		return cached.(map[T]struct{})
	}
	actual, _ := emptySets.LoadOrStore(key, map[T]struct{}{})
	return actual.(map[T]struct{})
}

// EmptyMap returns the canonical empty keyed map for key type K and value
// type V. The returned map is shared and must be treated as read-only.
func EmptyMap[K comparable, V any]() map[K]V {
	var zero map[K]V
	key := reflect.TypeOf(zero)
	if cached, ok := emptyMaps.Load(key); ok {
		return cached.(map[K]V)
	}
	actual, _ := emptyMaps.LoadOrStore(key, map[K]V{})
	return actual.(map[K]V)
}

var emptyMaps sync.Map // reflect.Type -> map[K]V

const nilSnapshotID = "00000000-0000-0000-0000-000000000000"
