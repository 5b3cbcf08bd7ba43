// Package cache provides a small compute-once memo for derived values.
//
// The calendar engine is purely functional, so per-year facts (year
// length, month table) can be recomputed at will; this cache is an
// optional layer the API uses to avoid redoing the work on every
// request. Keys are bounded (years 1..9999), so there is no eviction.
package cache

import "sync"

// Memo memoizes a pure function of K. The zero value is ready to use
// and safe for concurrent use.
type Memo[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

// Get returns the value for k, computing it with fill on first use.
// fill must be a pure function of k; it may run more than once if two
// goroutines miss at the same time, and one result is kept.
func (c *Memo[K, V]) Get(k K, fill func(K) V) V {
	c.mu.RLock()
	v, ok := c.m[k]
	c.mu.RUnlock()
	if ok {
		return v
	}

	nv := fill(k)

	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.m[k]; ok {
		// Another goroutine got here first; keep its result.
		return v
	}
	if c.m == nil {
		c.m = make(map[K]V)
	}
	c.m[k] = nv
	return nv
}

// Len returns the number of memoized entries.
func (c *Memo[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
