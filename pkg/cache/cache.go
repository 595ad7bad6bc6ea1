package cache

import (
	"sync"
	"time"
)

type item[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a small in-process TTL cache. Entries expire lazily on read;
// Invalidate removes an entry eagerly when the underlying data changes.
type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[K]item[V]
}

// New creates a cache whose entries live for ttl after being set.
func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		ttl:   ttl,
		items: make(map[K]item[V]),
	}
}

// Get returns the cached value for key, or false if absent or expired.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(it.expiresAt) {
		var zero V
		return zero, false
	}
	return it.value, true
}

// Set stores value under key for the cache's TTL.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	c.items[key] = item[V]{value: value, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate removes the entry for key if present.
func (c *Cache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Flush removes all entries.
func (c *Cache[K, V]) Flush() {
	c.mu.Lock()
	c.items = make(map[K]item[V])
	c.mu.Unlock()
}
