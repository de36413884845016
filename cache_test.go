package coll

import "testing"

func TestLRUCacheEvictsOldest(t *testing.T) {
	cache := NewLRUCache(2)
	cache.Set("a", 1)
	cache.Set("b", 2)
	cache.Set("c", 3)

	if _, ok := cache.Get("a"); ok {
		t.Fatalf("expected oldest entry evicted")
	}
	if v, ok := cache.Get("b"); !ok || v.(int) != 2 {
		t.Fatalf("expected b retained, got %v ok=%v", v, ok)
	}
	if cache.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", cache.Len())
	}
}

func TestLRUCacheGetRefreshesRecency(t *testing.T) {
	cache := NewLRUCache(2)
	cache.Set("a", 1)
	cache.Set("b", 2)
	cache.Get("a")
	cache.Set("c", 3)

	if _, ok := cache.Get("a"); !ok {
		t.Fatalf("expected refreshed entry to survive")
	}
	if _, ok := cache.Get("b"); ok {
		t.Fatalf("expected stale entry evicted")
	}
}

func TestLRUCacheDefaultsCapacity(t *testing.T) {
	cache := NewLRUCache(0)
	for i := 0; i < DefaultViewCacheCapacity; i++ {
		cache.Set(string(rune('a'+i%26))+string(rune('0'+i/26)), i)
	}
	if cache.Len() != DefaultViewCacheCapacity {
		t.Fatalf("expected default capacity %d, got %d", DefaultViewCacheCapacity, cache.Len())
	}
}
