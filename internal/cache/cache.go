// Package cache implements the in-process read-through cache that sits
// between the service layer and persistence. Entries are keyed by entity id
// or owner id and expire after a configurable TTL; every mutating service
// operation evicts the keys it may have changed.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a mutex-guarded TTL key/value store. A nil *Cache is a valid
// no-op cache, which is how the disabled configuration is wired.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]entry
	ttl      time.Duration
	now      func() time.Time
	onLookup func(hit bool)
}

// New creates a cache whose entries live for ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// OnLookup registers a callback invoked with the outcome of every Get.
// Used to feed hit/miss metrics. Must be set before the cache is shared.
func (c *Cache) OnLookup(fn func(hit bool)) {
	if c == nil {
		return
	}
	c.onLookup = fn
}

func (c *Cache) observe(hit bool) {
	if c.onLookup != nil {
		c.onLookup(hit)
	}
}

// Get returns the cached value for key, or false if absent or expired.
// Expired entries are removed lazily on read.
func (c *Cache) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.observe(false)
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock: a Set may have raced the expiry.
		if cur, ok := c.entries[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		c.observe(false)
		return nil, false
	}

	c.observe(true)
	return e.value, true
}

// Set stores value under key, replacing any previous entry.
func (c *Cache) Set(key string, value any) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Delete evicts the given keys. Missing keys are ignored.
func (c *Cache) Delete(keys ...string) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
