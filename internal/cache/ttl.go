// internal/cache/ttl.go

// Package cache holds single-value caches with a fixed time-to-live.
package cache

import (
	"sync"
	"time"
)

// Clock returns the current time
type Clock func() time.Time

// Value caches one value of type T for a fixed TTL.
// Expiry is measured against the Clock passed to New rather than time.Now,
// so tests can step time across the TTL boundary without sleeping.
// The mutex only guards the swap; concurrent misses may each refresh,
// and the last Set wins.
type Value[T any] struct {
	mu       sync.RWMutex
	value    T
	storedAt time.Time
	set      bool
	ttl      time.Duration
	now      Clock
}

// New creates a Value with the given TTL. A nil clock uses time.Now.
func New[T any](ttl time.Duration, now Clock) *Value[T] {
	if now == nil {
		now = time.Now
	}
	return &Value[T]{
		ttl: ttl,
		now: now,
	}
}

// Get returns the cached value if one is stored and still fresh
func (c *Value[T]) Get() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.set || c.now().Sub(c.storedAt) >= c.ttl {
		var zero T
		return zero, false
	}
	return c.value, true
}

// Set stores v and restarts the TTL window
func (c *Value[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = v
	c.storedAt = c.now()
	c.set = true
}

// GetOrRefresh returns the fresh cached value, or calls fetch.
// The fetched value is stored only when keep reports true for it;
// it is returned to the caller either way.
func (c *Value[T]) GetOrRefresh(fetch func() (T, error), keep func(T) bool) (T, error) {
	if v, ok := c.Get(); ok {
		return v, nil
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}

	if keep == nil || keep(v) {
		c.Set(v)
	}
	return v, nil
}
