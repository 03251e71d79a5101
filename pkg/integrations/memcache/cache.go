package memcache

import (
	"sync"
	"time"

	"swapdesk/pkg/types/cache"
)

var _ cache.Cache[string, any] = (*Cache[string, any])(nil)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache is an in-memory cache with a fixed per-cache TTL. A ttl of zero
// disables expiry. Stale entries are kept until overwritten so callers
// can serve degraded data via GetStale.
type Cache[K comparable, V any] struct {
	data  map[K]entry[V]
	ttl   time.Duration
	mutex sync.RWMutex
	now   func() time.Time
}

func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		data: make(map[K]entry[V]),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	e, ok := c.data[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.ttl > 0 && c.now().Sub(e.storedAt) >= c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[K, V]) GetStale(key K) (V, time.Duration, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	e, ok := c.data[key]
	if !ok {
		var zero V
		return zero, 0, false
	}
	return e.value, c.now().Sub(e.storedAt), true
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data[key] = entry[V]{value: value, storedAt: c.now()}
}

func (c *Cache[K, V]) Delete(key K) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.data, key)
}

func (c *Cache[K, V]) Keys() []K {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	keys := make([]K, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	return keys
}

func (c *Cache[K, V]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

func (c *Cache[K, V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[K]entry[V])
}
