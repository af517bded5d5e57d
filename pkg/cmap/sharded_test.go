package cmap

import (
	"fmt"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	m := New[int]()
	if m == nil {
		t.Fatal("New() returned nil")
	}
	if len(m.shards) != DefaultShardCount {
		t.Errorf("shard count = %d, want %d", len(m.shards), DefaultShardCount)
	}
}

func TestNewWithShards(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{0, DefaultShardCount},  // invalid → default
		{-1, DefaultShardCount}, // invalid → default
		{3, DefaultShardCount},  // not power of 2 → default
		{1, 1},
		{4, 4},
		{16, 16},
		{64, 64},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("shards=%d", tt.input), func(t *testing.T) {
			m := NewWithShards[int](tt.input)
			if len(m.shards) != tt.expected {
				t.Errorf("NewWithShards(%d) shard count = %d, want %d",
					tt.input, len(m.shards), tt.expected)
			}
		})
	}
}

func TestSetAndGet(t *testing.T) {
	m := New[int]()

	m.Set("key1", 100)
	m.Set("key2", 200)

	val, ok := m.Get("key1")
	if !ok || val != 100 {
		t.Errorf("Get(key1) = (%d, %v), want (100, true)", val, ok)
	}

	val, ok = m.Get("key2")
	if !ok || val != 200 {
		t.Errorf("Get(key2) = (%d, %v), want (200, true)", val, ok)
	}

	val, ok = m.Get("nonexistent")
	if ok {
		t.Errorf("Get(nonexistent) = (%d, %v), want (0, false)", val, ok)
	}
}

func TestGetOrSet(t *testing.T) {
	m := New[string]()

	val, existed := m.GetOrSet("k", "first")
	if existed || val != "first" {
		t.Errorf("GetOrSet(k) = (%q, %v), want (first, false)", val, existed)
	}

	val, existed = m.GetOrSet("k", "second")
	if !existed || val != "first" {
		t.Errorf("GetOrSet(k) = (%q, %v), want (first, true)", val, existed)
	}
}

func TestSetIfAbsent(t *testing.T) {
	m := New[int]()

	if !m.SetIfAbsent("k", 1) {
		t.Error("SetIfAbsent on empty map should succeed")
	}
	if m.SetIfAbsent("k", 2) {
		t.Error("SetIfAbsent on existing key should fail")
	}

	val, _ := m.Get("k")
	if val != 1 {
		t.Errorf("Get(k) = %d, want 1", val)
	}
}

func TestDelete(t *testing.T) {
	m := New[int]()

	m.Set("key1", 100)
	m.Delete("key1")

	if _, ok := m.Get("key1"); ok {
		t.Error("key1 should not exist after deletion")
	}

	// Delete non-existent key should not panic
	m.Delete("nonexistent")
}

func TestDeleteIf(t *testing.T) {
	m := New[int]()
	m.Set("k", 7)

	if m.DeleteIf("k", func(v int) bool { return v == 8 }) {
		t.Error("DeleteIf should not remove when predicate is false")
	}
	if !m.Has("k") {
		t.Error("key should survive a false predicate")
	}

	if !m.DeleteIf("k", func(v int) bool { return v == 7 }) {
		t.Error("DeleteIf should remove when predicate is true")
	}
	if m.Has("k") {
		t.Error("key should be gone after DeleteIf")
	}

	if m.DeleteIf("missing", func(int) bool { return true }) {
		t.Error("DeleteIf on missing key should return false")
	}
}

func TestCountAndClear(t *testing.T) {
	m := New[int]()

	for i := 0; i < 100; i++ {
		m.Set(fmt.Sprintf("key%d", i), i)
	}

	if got := m.Count(); got != 100 {
		t.Errorf("Count() = %d, want 100", got)
	}

	m.Clear()
	if got := m.Count(); got != 0 {
		t.Errorf("Count() after Clear = %d, want 0", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	m := New[int]()

	const goroutines = 16
	const opsPerGoroutine = 1000

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for g := 0; g < goroutines; g++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < opsPerGoroutine; i++ {
				key := fmt.Sprintf("key-%d-%d", id, i)
				m.Set(key, i)
				if val, ok := m.Get(key); !ok || val != i {
					t.Errorf("Get(%s) = (%d, %v), want (%d, true)", key, val, ok, i)
				}
			}
		}(g)
	}

	wg.Wait()

	if got := m.Count(); got != goroutines*opsPerGoroutine {
		t.Errorf("Count() = %d, want %d", got, goroutines*opsPerGoroutine)
	}
}

func TestConcurrentGetOrSet(t *testing.T) {
	m := New[*int]()

	const goroutines = 32
	results := make([]*int, goroutines)

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for g := 0; g < goroutines; g++ {
		go func(id int) {
			defer wg.Done()
			v := new(int)
			got, _ := m.GetOrSet("shared", v)
			results[id] = got
		}(g)
	}

	wg.Wait()

	// All goroutines must observe the same stored pointer.
	for i := 1; i < goroutines; i++ {
		if results[i] != results[0] {
			t.Fatalf("goroutine %d observed a different value", i)
		}
	}
}
