// Package cache holds the in-memory tier of the asset resolver.
package cache

import (
	"container/list"
	"sync"
)

// Stats is a point-in-time view of cache effectiveness.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Len       int
	Weight    int64
}

// LRU keeps the most recently used entries within an entry count and an
// optional total weight. It implements port.Cache[K, V].
type LRU[K comparable, V any] struct {
	mu        sync.Mutex
	maxItems  int
	maxWeight int64
	weigh     func(V) int64

	index   map[K]*list.Element
	recency *list.List // front is most recent
	weight  int64
	stats   Stats
}

type slot[K comparable, V any] struct {
	key    K
	value  V
	weight int64
}

// Option configures an LRU.
type Option[V any] func(*lruOptions[V])

type lruOptions[V any] struct {
	maxWeight int64
	weigh     func(V) int64
}

// WithMaxWeight bounds the summed weight of the entries. A single value
// heavier than max is never stored.
func WithMaxWeight[V any](max int64, weigh func(V) int64) Option[V] {
	return func(o *lruOptions[V]) {
		o.maxWeight = max
		o.weigh = weigh
	}
}

// NewLRU creates a cache holding at most maxItems entries (at least one).
func NewLRU[K comparable, V any](maxItems int, opts ...Option[V]) *LRU[K, V] {
	var o lruOptions[V]
	for _, opt := range opts {
		opt(&o)
	}
	if maxItems <= 0 {
		maxItems = 1
	}
	return &LRU[K, V]{
		maxItems:  maxItems,
		maxWeight: o.maxWeight,
		weigh:     o.weigh,
		index:     make(map[K]*list.Element, maxItems),
		recency:   list.New(),
	}
}

// Get returns the value for key and marks it most recent.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	c.stats.Hits++
	c.recency.MoveToFront(el)
	return el.Value.(*slot[K, V]).value, true
}

// Set stores value under key, evicting from the cold end until both bounds hold.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w := c.weightOf(value)
	if c.maxWeight > 0 && w > c.maxWeight {
		c.removeLocked(key)
		return
	}

	if el, ok := c.index[key]; ok {
		s := el.Value.(*slot[K, V])
		c.weight += w - s.weight
		s.value, s.weight = value, w
		c.recency.MoveToFront(el)
	} else {
		c.index[key] = c.recency.PushFront(&slot[K, V]{key: key, value: value, weight: w})
		c.weight += w
	}

	for c.recency.Len() > c.maxItems || (c.maxWeight > 0 && c.weight > c.maxWeight) {
		cold := c.recency.Back()
		if cold == nil {
			break
		}
		c.dropLocked(cold)
		c.stats.Evictions++
	}
}

// Remove deletes key if present.
func (c *LRU[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(key)
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recency.Len()
}

// Stats returns counters since creation.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Len = c.recency.Len()
	s.Weight = c.weight
	return s
}

func (c *LRU[K, V]) weightOf(v V) int64 {
	if c.weigh == nil {
		return 0
	}
	return c.weigh(v)
}

func (c *LRU[K, V]) removeLocked(key K) {
	if el, ok := c.index[key]; ok {
		c.dropLocked(el)
	}
}

func (c *LRU[K, V]) dropLocked(el *list.Element) {
	s := c.recency.Remove(el).(*slot[K, V])
	delete(c.index, s.key)
	c.weight -= s.weight
}
