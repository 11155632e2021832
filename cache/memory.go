package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-memory Cache with lazy expiry.
//
// Expired entries are dropped when they are read, and in bulk at most
// once per TTL when new entries are written. There is no background
// goroutine and no bound on the number of entries.
type Memory[K comparable, V any] struct {
	mu        sync.RWMutex
	entries   map[K]entry[V]
	policy    Policy
	now       func() time.Time
	lastSweep time.Time
}

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Option configures a Memory cache.
type Option func(*memoryOptions)

type memoryOptions struct {
	now func() time.Time
}

// WithClock replaces time.Now as the cache's time source.
func WithClock(now func() time.Time) Option {
	return func(o *memoryOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewMemory creates a new in-memory cache with the given policy.
// A policy with a zero TTL yields a cache that stores nothing.
func NewMemory[K comparable, V any](policy Policy, opts ...Option) *Memory[K, V] {
	o := memoryOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Memory[K, V]{
		entries:   make(map[K]entry[V]),
		policy:    policy,
		now:       o.now,
		lastSweep: o.now(),
	}
}

// Policy returns the cache policy.
func (c *Memory[K, V]) Policy() Policy {
	return c.policy
}

// Get retrieves a value from the cache. Returns (zero, false) on miss or expiry.
func (c *Memory[K, V]) Get(_ context.Context, key K) (V, bool) {
	var zero V
	if !c.policy.Enabled() {
		return zero, false
	}

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return zero, false
	}

	if c.expired(e, c.now()) {
		c.mu.Lock()
		// Only drop the entry we saw; a concurrent Put may have replaced it.
		if cur, ok := c.entries[key]; ok && cur.storedAt.Equal(e.storedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}

	return e.value, true
}

// Put stores a value stamped with the current time. No-op when caching is disabled.
func (c *Memory[K, V]) Put(_ context.Context, key K, value V) {
	if !c.policy.Enabled() {
		return
	}

	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if now.Sub(c.lastSweep) > c.policy.TTL {
		c.sweepLocked(now)
	}
	c.entries[key] = entry[V]{value: value, storedAt: now}
}

// Delete removes a value from the cache. Idempotent - no effect on miss.
func (c *Memory[K, V]) Delete(_ context.Context, key K) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Size returns the number of entries that have not expired.
func (c *Memory[K, V]) Size() int {
	if !c.policy.Enabled() {
		return 0
	}

	now := c.now()

	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, e := range c.entries {
		if !c.expired(e, now) {
			n++
		}
	}
	return n
}

func (c *Memory[K, V]) expired(e entry[V], now time.Time) bool {
	return now.Sub(e.storedAt) > c.policy.TTL
}

func (c *Memory[K, V]) sweepLocked(now time.Time) {
	for k, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, k)
		}
	}
	c.lastSweep = now
}

// Ensure Memory implements Cache
var _ Cache[string, []byte] = (*Memory[string, []byte])(nil)
