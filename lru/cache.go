// Package lru provides a bounded least-recently-used cache and a Fetcher
// decorator that memoizes fetched bodies in it.
package lru

import (
	"container/list"
	"sync"
)

// DefaultCapacity is the cache size used when a non-positive capacity is given.
const DefaultCapacity = 100

// Cache is a bounded map that evicts the least recently used entry on
// overflow. It is safe for concurrent use by multiple goroutines.
type Cache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List // front = most recently used

	stats Stats
}

// Stats counts cache activity.
type Stats struct {
	Hits      int
	Misses    int
	Evictions int
}

type entry struct {
	key   string
	value string
}

// NewCache returns an empty cache holding at most capacity entries.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns the value stored under key and marks it most recently used.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		return "", false
	}
	c.stats.Hits++
	c.order.MoveToFront(elem)
	return elem.Value.(*entry).value, true
}

// Put stores value under key, marking it most recently used.
// If the cache is over capacity afterwards, the least recently used entry
// is evicted.
func (c *Cache) Put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value.(*entry).value = value
		c.order.MoveToFront(elem)
		return
	}

	c.items[key] = c.order.PushFront(&entry{key: key, value: value})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*entry).key)
		c.stats.Evictions++
	}
}

// Len returns the number of entries in the cache.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Capacity returns the maximum number of entries.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
