// Package fieldcache memoizes canonical field maps keyed by candidate
// identity, shape kind, and policy.
//
// Two storage paths back one cache:
//   - identity-keyed entries (reflect.Type candidates) live in a sync.Map, so
//     concurrent hits never take a lock; types are interned by the runtime,
//     which bounds growth to the program's type universe
//   - fingerprint-keyed entries (value-shaped candidates) live in a bounded
//     LRU, so value-equality keys cannot grow memory without limit
//
// Racing misses on the identity path are last-writer-wins; canonicalization
// is deterministic and pure, so duplicated work is a performance matter only.
// The fingerprint path additionally collapses racing misses through
// singleflight. Statistics are always collected; Prometheus metrics are
// opt-in via options.
package fieldcache

import (
	"container/list"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Key identifies one canonicalization result. Exactly one of Ident and Token
// is set: Ident is a comparable candidate identity (typically a
// reflect.Type), Token a canonical fingerprint for value-shaped candidates.
type Key struct {
	Shape  int
	Policy string
	Ident  any
	Token  string
}

func (k Key) boundedKey() string {
	return strconv.Itoa(k.Shape) + "|" + k.Policy + "|" + k.Token
}

// Cache is a thread-safe memoization table for values of type V.
type Cache[V any] struct {
	fast sync.Map // Key → V, identity-keyed entries

	mu      sync.Mutex
	items   map[string]*list.Element
	order   *list.List
	maxSize int

	group   singleflight.Group
	stats   *Statistics
	metrics *cacheMetrics
}

type boundedEntry[V any] struct {
	key   string
	value V
}

// New creates a cache. The bounded path defaults to 1024 entries.
func New[V any](opts ...Option) *Cache[V] {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var metrics *cacheMetrics
	if cfg.registerer != nil {
		metrics = newCacheMetrics(cfg.registerer, cfg.component)
	}
	return &Cache[V]{
		items:   make(map[string]*list.Element),
		order:   list.New(),
		maxSize: cfg.maxEntries,
		stats:   NewStatistics(),
		metrics: metrics,
	}
}

// GetOrCompute returns the cached value for key, computing and inserting it
// on a miss. A compute error is returned to the caller and nothing is stored;
// the next lookup recomputes.
func (c *Cache[V]) GetOrCompute(key Key, compute func() (V, error)) (V, error) {
	if key.Ident != nil {
		if v, ok := c.fast.Load(key); ok {
			c.recordHit()
			return v.(V), nil
		}
		c.recordMiss()
		v, err := compute()
		if err != nil {
			var zero V
			return zero, err
		}
		// Last-writer-wins on racing misses.
		c.fast.Store(key, v)
		c.recordSet()
		return v, nil
	}

	bk := key.boundedKey()
	if v, ok := c.boundedGet(bk); ok {
		c.recordHit()
		return v, nil
	}
	c.recordMiss()
	res, err, _ := c.group.Do(bk, func() (any, error) {
		return compute()
	})
	if err != nil {
		var zero V
		return zero, err
	}
	v := res.(V)
	c.boundedSet(bk, v)
	c.recordSet()
	return v, nil
}

func (c *Cache[V]) boundedGet(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(element)
	return element.Value.(*boundedEntry[V]).value, true
}

func (c *Cache[V]) boundedSet(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if element, ok := c.items[key]; ok {
		element.Value.(*boundedEntry[V]).value = value
		c.order.MoveToFront(element)
		return
	}
	element := c.order.PushFront(&boundedEntry[V]{key: key, value: value})
	c.items[key] = element

	for len(c.items) > c.maxSize {
		back := c.order.Back()
		if back == nil {
			break
		}
		entry := back.Value.(*boundedEntry[V])
		delete(c.items, entry.key)
		c.order.Remove(back)
		c.recordEviction()
	}
}

// Clear removes every entry from both paths. Statistics are not reset; use
// Stats().Reset for that.
func (c *Cache[V]) Clear() {
	c.fast.Range(func(k, _ any) bool {
		c.fast.Delete(k)
		return true
	})
	c.mu.Lock()
	c.items = make(map[string]*list.Element)
	c.order.Init()
	c.mu.Unlock()
}

// Len returns the current number of cached entries across both paths.
func (c *Cache[V]) Len() int {
	n := 0
	c.fast.Range(func(_, _ any) bool {
		n++
		return true
	})
	c.mu.Lock()
	n += len(c.items)
	c.mu.Unlock()
	return n
}

// Stats returns the cache's statistics tracker.
func (c *Cache[V]) Stats() *Statistics {
	return c.stats
}

func (c *Cache[V]) recordHit() {
	c.stats.Hit()
	if c.metrics != nil {
		c.metrics.hits.Inc()
	}
}

func (c *Cache[V]) recordMiss() {
	c.stats.Miss()
	if c.metrics != nil {
		c.metrics.misses.Inc()
	}
}

func (c *Cache[V]) recordSet() {
	c.stats.Set()
	if c.metrics != nil {
		c.metrics.sets.Inc()
	}
}

func (c *Cache[V]) recordEviction() {
	c.stats.Eviction()
	if c.metrics != nil {
		c.metrics.evictions.Inc()
	}
}
