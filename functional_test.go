package coll

import (
	"strconv"
	"strings"
	"testing"
)

func TestFilterRejectPartition(t *testing.T) {
	c := New([]int{1, 2, 3, 4, 5})
	even := func(item int, _ int) bool { return item%2 == 0 }

	if got := c.Filter(even); len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Fatalf("expected [2 4], got %v", got)
	}
	if got := c.Reject(even); len(got) != 3 || got[0] != 1 || got[2] != 5 {
		t.Fatalf("expected [1 3 5], got %v", got)
	}

	matched, rest := c.Partition(func(item int) bool { return item > 3 })
	if len(matched) != 2 || matched[0] != 4 || len(rest) != 3 || rest[0] != 1 {
		t.Fatalf("unexpected partition: matched=%v rest=%v", matched, rest)
	}
}

func TestFilterEmptyYieldsNil(t *testing.T) {
	c := New([]int{1, 3})
	if got := c.Filter(func(item int, _ int) bool { return item > 10 }); got != nil {
		t.Fatalf("expected nil for no matches, got %v", got)
	}
}

func TestFindSomeEvery(t *testing.T) {
	c := New([]string{"apple", "banana", "cherry"})

	if item, ok := c.Find(func(s string) bool { return strings.HasPrefix(s, "b") }); !ok || item != "banana" {
		t.Fatalf("expected banana, got %q ok=%v", item, ok)
	}
	if _, ok := c.Find(func(string) bool { return false }); ok {
		t.Fatalf("expected no match")
	}
	if got := c.FindIndex(func(s string) bool { return s == "cherry" }); got != 2 {
		t.Fatalf("expected index 2, got %d", got)
	}
	if !c.Some(func(s string) bool { return len(s) == 5 }) {
		t.Fatalf("expected some match")
	}
	if !c.Every(func(s string) bool { return len(s) >= 5 }) {
		t.Fatalf("expected every match")
	}

	empty := New([]string(nil))
	if !empty.Every(func(string) bool { return false }) {
		t.Fatalf("expected vacuous Every to be true")
	}
	if empty.Some(func(string) bool { return true }) {
		t.Fatalf("expected Some on empty to be false")
	}
}

func TestForEachVisitsInOrder(t *testing.T) {
	c := New([]string{"a", "b"})
	var visited []string
	c.ForEach(func(item string, index int) {
		visited = append(visited, strconv.Itoa(index)+item)
	})
	if len(visited) != 2 || visited[0] != "0a" || visited[1] != "1b" {
		t.Fatalf("unexpected visit order %v", visited)
	}
}

func TestChunk(t *testing.T) {
	c := New([]int{1, 2, 3, 4, 5})

	got := c.Chunk(2)
	if len(got) != 3 || len(got[2]) != 1 || got[2][0] != 5 {
		t.Fatalf("expected [[1 2] [3 4] [5]], got %v", got)
	}
	if got := c.Chunk(10); len(got) != 1 || len(got[0]) != 5 {
		t.Fatalf("expected single oversized chunk, got %v", got)
	}
	if got := c.Chunk(0); got != nil {
		t.Fatalf("expected nil for size 0, got %v", got)
	}
	if got := New([]int(nil)).Chunk(3); got != nil {
		t.Fatalf("expected nil for empty source, got %v", got)
	}
}

func TestTakeWhileDropWhile(t *testing.T) {
	c := New([]int{1, 2, 9, 3})
	small := func(item int) bool { return item < 5 }

	if got := c.TakeWhile(small); len(got) != 2 || got[1] != 2 {
		t.Fatalf("expected [1 2], got %v", got)
	}
	if got := c.DropWhile(small); len(got) != 2 || got[0] != 9 || got[1] != 3 {
		t.Fatalf("expected [9 3], got %v", got)
	}
	if got := c.DropWhile(func(int) bool { return true }); got != nil {
		t.Fatalf("expected nil when everything is dropped, got %v", got)
	}
}

func TestMapAndFlatMap(t *testing.T) {
	c := New([]int{1, 2, 3})

	got := Map(c, func(item int, index int) string {
		return strconv.Itoa(item * 10)
	})
	if len(got) != 3 || got[0] != "10" || got[2] != "30" {
		t.Fatalf("expected [10 20 30], got %v", got)
	}
	if got := Map(New([]int(nil)), func(item int, _ int) int { return item }); got != nil {
		t.Fatalf("expected nil for empty source, got %v", got)
	}

	flat := FlatMap(c, func(item int, _ int) []int {
		return []int{item, item}
	})
	if len(flat) != 6 || flat[0] != 1 || flat[5] != 3 {
		t.Fatalf("expected doubled sequence, got %v", flat)
	}
}

func TestReduce(t *testing.T) {
	c := New([]int{1, 2, 3, 4})
	sum := Reduce(c, func(acc int, item int, _ int) int { return acc + item }, 0)
	if sum != 10 {
		t.Fatalf("expected 10, got %d", sum)
	}
	if got := Reduce(New([]int(nil)), func(acc int, item int, _ int) int { return acc + item }, 42); got != 42 {
		t.Fatalf("expected initial value for empty source, got %d", got)
	}
}

func TestGroupByPreservesOrder(t *testing.T) {
	c := New([]string{"ant", "bee", "ape", "bat"})
	got := GroupBy(c, func(s string) byte { return s[0] })
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %v", got)
	}
	a := got['a']
	if len(a) != 2 || a[0] != "ant" || a[1] != "ape" {
		t.Fatalf("expected order preserved in groups, got %v", a)
	}
}

func TestDistinct(t *testing.T) {
	c := New([]int{1, 2, 2, 3, 3, 3})
	if got := Distinct(c); len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("expected [1 2 3], got %v", got)
	}

	type user struct{ ID int }
	users := New([]user{{1}, {2}, {1}})
	got := DistinctBy(users, func(u user) int { return u.ID })
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("expected first occurrences, got %v", got)
	}
}

func TestZipTruncatesToShorterSide(t *testing.T) {
	a := New([]int{1, 2, 3})
	b := New([]string{"x", "y"})
	got := Zip(a, b)
	if len(got) != 2 || got[0].First != 1 || got[0].Second != "x" || got[1].Second != "y" {
		t.Fatalf("unexpected pairs %v", got)
	}
	if got := Zip(a, New([]string(nil))); got != nil {
		t.Fatalf("expected nil when one side is empty, got %v", got)
	}
}

func TestToSliceCopies(t *testing.T) {
	c := New([]int{1, 2})
	got := ToSlice[int](c)
	got[0] = 99
	if v, _ := c.ElementAt(0); v != 1 {
		t.Fatalf("expected ToSlice to return a copy, got %d", v)
	}
	if ToSlice[int](New([]int(nil))) != nil {
		t.Fatalf("expected nil for empty source")
	}
}

func TestToSetToMap(t *testing.T) {
	c := New([]int{1, 2, 2})
	set := ToSet(c)
	if len(set) != 2 {
		t.Fatalf("expected 2 members, got %v", set)
	}
	if _, ok := set[2]; !ok {
		t.Fatalf("expected member 2")
	}

	type user struct {
		ID   int
		Name string
	}
	users := New([]user{{1, "ada"}, {2, "bob"}, {1, "ada-two"}})
	byID := ToMap(users, func(u user) int { return u.ID })
	if len(byID) != 2 {
		t.Fatalf("expected 2 keys, got %v", byID)
	}
	if byID[1].Name != "ada-two" {
		t.Fatalf("expected last occurrence to win, got %q", byID[1].Name)
	}
}
