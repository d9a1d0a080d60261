/*
cache implements a time-bounded in-memory cache, used for upstream
responses and model metadata.
*/
package cache

import (
	"context"
	"sync"
	"time"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type entry[V any] struct {
	ts    time.Time
	value V
}

// Cache holds values for a fixed time-to-live. It is safe for concurrent use.
type Cache[K comparable, V any] struct {
	sync.Mutex
	ttl   time.Duration
	items map[K]entry[V]
	now   func() time.Time
}

// FetchFunc returns the value for a key on a cache miss
type FetchFunc[K comparable, V any] func(context.Context, K) (V, error)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a cache where entries expire after ttl. A zero or negative
// ttl disables caching.
func New[K comparable, V any](ttl time.Duration, cap int) *Cache[K, V] {
	self := new(Cache[K, V])
	if ttl > 0 {
		self.ttl = ttl
	}
	self.items = make(map[K]entry[V], cap)
	self.now = time.Now
	return self
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// TTL returns the time-to-live of entries
func (c *Cache[K, V]) TTL() time.Duration {
	return c.ttl
}

// Get returns a cached value and true if present and not expired
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.Lock()
	defer c.Unlock()
	return c.get(key)
}

// Set stores a value for key
func (c *Cache[K, V]) Set(key K, value V) {
	c.Lock()
	defer c.Unlock()
	c.set(key, value)
}

// Delete removes a key
func (c *Cache[K, V]) Delete(key K) {
	c.Lock()
	defer c.Unlock()
	delete(c.items, key)
}

// Fetch returns the cached value for key, or calls fn on a miss and caches
// the result. Errors are never cached. The second return value is true on a
// cache hit.
func (c *Cache[K, V]) Fetch(ctx context.Context, key K, fn FetchFunc[K, V]) (V, bool, error) {
	if value, ok := c.Get(key); ok {
		return value, true, nil
	}

	// Fetch outside the lock, so a slow upstream does not block other keys
	value, err := fn(ctx, key)
	if err != nil {
		var zero V
		return zero, false, err
	}

	c.Set(key, value)
	return value, false, nil
}

// Values returns all non-expired values, pruning expired entries
func (c *Cache[K, V]) Values() []V {
	c.Lock()
	defer c.Unlock()

	result := make([]V, 0, len(c.items))
	for key := range c.items {
		if value, ok := c.get(key); ok {
			result = append(result, value)
		}
	}
	return result
}

// Len returns the number of entries, including expired ones not yet pruned
func (c *Cache[K, V]) Len() int {
	c.Lock()
	defer c.Unlock()
	return len(c.items)
}

// Purge removes all entries
func (c *Cache[K, V]) Purge() {
	c.Lock()
	defer c.Unlock()
	clear(c.items)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Cache[K, V]) get(key K) (V, bool) {
	var zero V
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.ts) >= c.ttl {
		// Expired entry: prune
		delete(c.items, key)
		return zero, false
	}
	return e.value, true
}

func (c *Cache[K, V]) set(key K, value V) {
	if c.ttl <= 0 {
		return
	}
	c.items[key] = entry[V]{ts: c.now(), value: value}
}
