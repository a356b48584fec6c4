// Package memo provides a small bounded memoization cache. Engine instances
// own their caches so concurrent engines never share or leak state.
package memo

import "sync"

// node is one entry in the recency list.
type node[V any] struct {
	key        string
	value      V
	prev, next *node[V]
}

// Cache is a bounded LRU map from string keys to values. Safe for
// concurrent use. A max size of zero or less means unbounded.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]*node[V]
	head    *node[V] // most recently used
	tail    *node[V] // least recently used
	maxSize int
}

// Option applies a configuration option to the Cache.
type Option[V any] func(*Cache[V])

// WithMaxSize bounds the number of entries kept in memory.
func WithMaxSize[V any](size int) Option[V] {
	return func(c *Cache[V]) {
		c.maxSize = size
	}
}

// New creates a cache with the given options.
func New[V any](opts ...Option[V]) *Cache[V] {
	c := &Cache[V]{
		entries: make(map[string]*node[V]),
		maxSize: 128,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value for key and whether it was present,
// promoting the entry to most recently used.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(n)
	return n.value, true
}

// Put stores value under key, evicting the least recently used entry when
// the cache is full.
func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		n.value = value
		c.moveToFront(n)
		return
	}

	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictLRU()
	}

	n := &node[V]{key: key, value: value}
	c.entries[key] = n
	c.pushFront(n)
}

// GetOrCompute returns the cached value for key, computing and storing it
// on a miss. compute runs outside the lock window only when absent.
func (c *Cache[V]) GetOrCompute(key string, compute func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := compute()
	c.Put(key, v)
	return v
}

// Len returns the current number of entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// pushFront links n as the most recently used node. Lock must be held.
func (c *Cache[V]) pushFront(n *node[V]) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

// moveToFront promotes n to most recently used. Lock must be held.
func (c *Cache[V]) moveToFront(n *node[V]) {
	if c.head == n {
		return
	}
	// unlink
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if c.tail == n {
		c.tail = n.prev
	}
	c.pushFront(n)
}

// evictLRU drops the least recently used entry. Lock must be held.
func (c *Cache[V]) evictLRU() {
	if c.tail == nil {
		return
	}
	victim := c.tail
	if victim.prev != nil {
		victim.prev.next = nil
	}
	c.tail = victim.prev
	if c.head == victim {
		c.head = nil
	}
	delete(c.entries, victim.key)
}
