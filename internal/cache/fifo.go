package cache

import (
	"container/list"
	"sync"
)

// DefaultCapacity is the number of entries a FIFO holds unless configured otherwise.
const DefaultCapacity = 1000

type entry[V any] struct {
	key   string
	value V
}

// FIFO is a bounded map that evicts the oldest-inserted entry when full.
// It is safe for concurrent use; concurrent writes to the same key resolve
// as last write wins.
type FIFO[V any] struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	items    map[string]*list.Element
	onEvict  func(key string)
}

// NewFIFO creates a FIFO with the given capacity. Non-positive capacities
// fall back to DefaultCapacity.
func NewFIFO[V any](capacity int) *FIFO[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &FIFO[V]{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// OnEvict registers a callback invoked with each evicted key.
func (c *FIFO[V]) OnEvict(fn func(key string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// Get returns the value stored for key. Reads do not change eviction order.
func (c *FIFO[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		return el.Value.(*entry[V]).value, true
	}
	var zero V
	return zero, false
}

// Put stores value under key. Replacing an existing key keeps its original
// insertion position. Inserting a new key into a full cache first evicts
// the oldest entry.
func (c *FIFO[V]) Put(key string, value V) {
	c.mu.Lock()
	if el, ok := c.items[key]; ok {
		el.Value.(*entry[V]).value = value
		c.mu.Unlock()
		return
	}

	var evicted string
	if c.order.Len() >= c.capacity {
		oldest := c.order.Front()
		evicted = oldest.Value.(*entry[V]).key
		c.order.Remove(oldest)
		delete(c.items, evicted)
	}
	c.items[key] = c.order.PushBack(&entry[V]{key: key, value: value})
	onEvict := c.onEvict
	c.mu.Unlock()

	if evicted != "" && onEvict != nil {
		onEvict(evicted)
	}
}

// Len returns the number of entries.
func (c *FIFO[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Capacity returns the maximum number of entries.
func (c *FIFO[V]) Capacity() int {
	return c.capacity
}

// Clear removes every entry.
func (c *FIFO[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[string]*list.Element, c.capacity)
}
