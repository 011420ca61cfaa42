package calendar

import (
	"sync"
	"time"
)

const cacheTTL = 10 * time.Minute

// cache holds one value with a freshness window.
type cache[T any] struct {
	mu      sync.Mutex
	value   T
	fetched time.Time
	valid   bool

	// now is swappable in tests.
	now func() time.Time
}

func newCache[T any]() *cache[T] {
	return &cache[T]{now: time.Now}
}

func (c *cache[T]) get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid || c.now().Sub(c.fetched) >= cacheTTL {
		var zero T
		return zero, false
	}
	return c.value, true
}

func (c *cache[T]) set(value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
	c.fetched = c.now()
	c.valid = true
}

func (c *cache[T]) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}
