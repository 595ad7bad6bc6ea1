package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New[string, int](time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}

	c.Set("a", 1)
	v, ok := c.Get("a")
	if !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v", v, ok)
	}
}

func TestExpiry(t *testing.T) {
	c := New[string, int](10 * time.Millisecond)
	c.Set("a", 1)

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Error("expected entry to expire")
	}
}

func TestInvalidate(t *testing.T) {
	c := New[string, int](time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Invalidate("a")
	if _, ok := c.Get("a"); ok {
		t.Error("invalidated entry still present")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("unrelated entry lost")
	}
}

func TestFlush(t *testing.T) {
	c := New[string, int](time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Flush()
	if _, ok := c.Get("a"); ok {
		t.Error("entry survived flush")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("entry survived flush")
	}
}
