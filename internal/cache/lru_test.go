package cache

import (
	"testing"
	"time"
)

func TestLRUCacheGetSet(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("empty cache should miss")
	}

	c.Set("a", 1)
	c.Set("b", 2)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v", v, ok)
	}

	// "a" was just touched, so adding "c" must evict "b".
	c.Set("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Error("least recently used entry should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("recently used entry should survive eviction")
	}
}

func TestLRUCacheTTL(t *testing.T) {
	c := NewLRUCache[string](10, 10*time.Millisecond)
	c.Set("k", "v")
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("expired entry should miss")
	}
	c.Set("k", "v")
	time.Sleep(20 * time.Millisecond)
	if n := c.CleanExpired(); n != 1 {
		t.Errorf("CleanExpired = %d, want 1", n)
	}
	if c.Size() != 0 {
		t.Errorf("Size = %d, want 0", c.Size())
	}
}

func TestLRUCacheDeleteFunc(t *testing.T) {
	type session struct{ userID int64 }
	c := NewLRUCache[session](10, time.Minute)
	c.Set("tok1", session{userID: 1})
	c.Set("tok2", session{userID: 1})
	c.Set("tok3", session{userID: 2})

	n := c.DeleteFunc(func(s session) bool { return s.userID == 1 })
	if n != 2 {
		t.Errorf("DeleteFunc removed %d, want 2", n)
	}
	if _, ok := c.Get("tok3"); !ok {
		t.Error("other user's entry should survive")
	}
}
