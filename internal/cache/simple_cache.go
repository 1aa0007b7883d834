// Package cache holds rendered values that are expensive to rebuild, such as
// the board snapshot served to the web shell.
package cache

import (
	"sync"
	"time"
)

// entry stores a cached value and its absolute expiration timestamp.
type entry[V any] struct {
	value     V
	expiresAt time.Time // zero means no expiration
}

// SimpleCache is a map-backed cache with per-item TTL and lazy expiry.
// Reads happen on HTTP goroutines while invalidation comes from the event
// loop, so every operation takes the mutex.
type SimpleCache[K comparable, V any] struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[K]entry[V]
}

// NewSimpleCache creates a cache whose entries live for ttl (0 = forever)
func NewSimpleCache[K comparable, V any](ttl time.Duration) *SimpleCache[K, V] {
	return &SimpleCache[K, V]{
		ttl:   ttl,
		items: make(map[K]entry[V]),
	}
}

// now is a small indirection to allow test stubbing.
var now = time.Now

// Get returns the value if present and not expired
func (c *SimpleCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero V
	e, ok := c.items[key]
	if !ok || e.expired(now()) {
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with the cache's TTL
func (c *SimpleCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var exp time.Time
	if c.ttl > 0 {
		exp = now().Add(c.ttl)
	}
	c.items[key] = entry[V]{value: value, expiresAt: exp}
}

// GetOrLoad returns the cached value or stores the result of load
func (c *SimpleCache[K, V]) GetOrLoad(key K, load func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	c.Set(key, v)
	return v, nil
}

// Delete removes a key if present.
func (c *SimpleCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear removes all entries.
func (c *SimpleCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]entry[V])
}

// Len counts non-expired entries
func (c *SimpleCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	count := 0
	ts := now()
	for _, e := range c.items {
		if !e.expired(ts) {
			count++
		}
	}
	return count
}

func (e entry[V]) expired(ts time.Time) bool {
	return !e.expiresAt.IsZero() && ts.After(e.expiresAt)
}
