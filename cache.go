package coll

import lru "github.com/hashicorp/golang-lru/v2"

// DefaultViewCacheCapacity bounds a view's result cache when no capacity is
// configured.
const DefaultViewCacheCapacity = 100

// ProgramCache stores compiled expression programs keyed by expression source.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// ViewCache stores derived-view results keyed by operation, source snapshot
// identity, and structural parameters. It shares ProgramCache's contract so a
// single bounded cache can back both concerns.
type ViewCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// LRUCache is a bounded least-recently-used cache satisfying both ViewCache
// and ProgramCache. Get marks the entry most recently used; Set past capacity
// evicts the least recently used entry.
type LRUCache struct {
	inner *lru.Cache[string, any]
}

// NewLRUCache constructs a cache bounded at capacity entries. Non-positive
// capacities fall back to DefaultViewCacheCapacity.
func NewLRUCache(capacity int) *LRUCache {
	if capacity <= 0 {
		capacity = DefaultViewCacheCapacity
	}
	inner, err := lru.New[string, any](capacity)
	if err != nil {
		// lru.New only fails on non-positive sizes, which we normalized away.
		panic(err)
	}
	return &LRUCache{inner: inner}
}

// Get returns the cached value for key and marks it most recently used.
func (c *LRUCache) Get(key string) (any, bool) {
	return c.inner.Get(key)
}

// Set stores value under key, evicting the least recently used entry when the
// cache is full.
func (c *LRUCache) Set(key string, value any) {
	c.inner.Add(key, value)
}

// Len returns the number of live entries.
func (c *LRUCache) Len() int {
	return c.inner.Len()
}
