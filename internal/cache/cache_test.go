package cache

import (
	"errors"
	"strconv"
	"sync"
	"testing"
)

func TestGetSet(t *testing.T) {
	c := New[string, int](0)
	if _, ok := c.Get("a"); ok {
		t.Fatal("empty cache hit")
	}
	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v", v, ok)
	}
	if !c.Delete("a") || c.Delete("a") {
		t.Error("Delete should report presence once")
	}
	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestGetOrCreate(t *testing.T) {
	c := New[string, int](0)
	calls := 0
	create := func() (int, error) { calls++; return 42, nil }

	for i := 0; i < 3; i++ {
		v, err := c.GetOrCreate("k", create)
		if err != nil || v != 42 {
			t.Fatalf("GetOrCreate = %v, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if _, err := c.GetOrCreate("bad", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("failed create was stored")
	}
}

func TestGetOrCreateReentrant(t *testing.T) {
	c := New[string, int](0)
	v, err := c.GetOrCreate("outer", func() (int, error) {
		inner, err := c.GetOrCreate("inner", func() (int, error) { return 1, nil })
		return inner + 1, err
	})
	if err != nil || v != 2 {
		t.Errorf("GetOrCreate = %v, %v", v, err)
	}
}

func TestEviction(t *testing.T) {
	c := New[int, int](8)
	for i := 0; i < 8; i++ {
		c.Set(i, i)
	}
	// Touch 0 so it survives.
	c.Get(0)
	c.Set(8, 8)

	if n := c.Len(); n != 6 {
		t.Errorf("Len() = %d, want 6", n)
	}
	if _, ok := c.Get(0); !ok {
		t.Error("recently used entry was evicted")
	}
	if _, ok := c.Get(1); ok {
		t.Error("oldest entry survived")
	}
}

func TestConcurrent(t *testing.T) {
	c := New[string, int](64)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				k := strconv.Itoa(i % 100)
				c.Set(k, g)
				c.Get(k)
			}
		}(g)
	}
	wg.Wait()
	if c.Len() > 64 {
		t.Errorf("Len() = %d exceeds limit", c.Len())
	}
}
