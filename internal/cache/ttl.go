// Package cache provides the process-wide, named, TTL-bounded caches that sit
// in front of read-heavy store queries.
//
// A Service is built once at startup and handed to every component that
// reads through or invalidates a cache. Readers may see data up to one TTL
// old; writers invalidate after their transaction commits.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/jroosing/dyndns/internal/clock"
)

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
	elem      *list.Element
}

// TTLCache is a thread-safe LRU cache whose entries expire after a TTL.
type TTLCache[K comparable, V any] struct {
	mu sync.Mutex

	clock      clock.Clock
	defaultTTL time.Duration
	maxEntries int

	lru  *list.List // front = least recently used
	data map[K]*entry[K, V]
}

// NewTTLCache creates a cache holding at most maxEntries values. Entries set
// without an explicit TTL live for defaultTTL.
func NewTTLCache[K comparable, V any](maxEntries int, defaultTTL time.Duration, clk clock.Clock) *TTLCache[K, V] {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	if defaultTTL <= 0 {
		defaultTTL = 60 * time.Second
	}
	if clk == nil {
		clk = clock.System
	}
	return &TTLCache[K, V]{
		clock:      clk,
		defaultTTL: defaultTTL,
		maxEntries: maxEntries,
		lru:        list.New(),
		data:       map[K]*entry[K, V]{},
	}
}

// Get returns the value for key. Expired entries are dropped.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.data[key]
	if e == nil {
		return zero, false
	}
	if !e.expiresAt.After(now) {
		c.removeLocked(e)
		return zero, false
	}
	c.lru.MoveToBack(e.elem)
	return e.value, true
}

// Set stores val under key for ttl, or the default TTL when ttl is zero.
// A negative ttl stores nothing.
func (c *TTLCache[K, V]) Set(key K, val V, ttl time.Duration) {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	if ttl < 0 {
		return
	}
	expires := c.clock.Now().Add(ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing := c.data[key]; existing != nil {
		existing.value = val
		existing.expiresAt = expires
		c.lru.MoveToBack(existing.elem)
		return
	}

	e := &entry[K, V]{key: key, value: val, expiresAt: expires}
	e.elem = c.lru.PushBack(e)
	c.data[key] = e

	for len(c.data) > c.maxEntries {
		front := c.lru.Front()
		if front == nil {
			break
		}
		c.removeLocked(front.Value.(*entry[K, V]))
	}
}

// Delete removes key if present.
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e := c.data[key]; e != nil {
		c.removeLocked(e)
	}
}

// Purge removes every entry.
func (c *TTLCache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Init()
	c.data = map[K]*entry[K, V]{}
}

// Len returns the number of stored entries, including expired ones not yet
// observed.
func (c *TTLCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// removeLocked must be called with c.mu held.
func (c *TTLCache[K, V]) removeLocked(e *entry[K, V]) {
	c.lru.Remove(e.elem)
	delete(c.data, e.key)
}
