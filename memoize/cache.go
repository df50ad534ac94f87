package memoize

import (
	"fmt"
	"time"

	list "github.com/bahlo/generic-list-go"
)

// Stats counts cache activity since construction or the last Clear.
type Stats struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64
	Expirations uint64
	Failures    uint64
	Len         int
}

// Cache memoizes a Func under a bounded table.
//
// The ordering list holds insertion order for every strategy. Under Recency a
// hit also moves the entry to the back, so the front is always the least
// recently touched entry.
//
// Cache is not safe for concurrent use. See NewLocked.
type Cache[V any] struct {
	fn      Func[V]
	config  Config[V]
	entries map[Key]*entry[V]
	order   *list.List[*entry[V]]
	stats   Stats
}

// New builds a Cache around fn. Configuration problems are reported here,
// never from Invoke.
func New[V any](fn Func[V], opts ...Option[V]) (*Cache[V], error) {
	cfg := NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, ErrNilFunc)
	}
	return &Cache[V]{
		fn:      fn,
		config:  cfg,
		entries: make(map[Key]*entry[V]),
		order:   list.New[*entry[V]](),
	}, nil
}

// Config returns the configuration the cache was built with.
func (c *Cache[V]) Config() Config[V] {
	return c.config
}

// Invoke returns the memoized result for args, computing it on a miss.
//
// An entry older than the TTL is purged first and treated as a miss.
// Errors from the wrapped function are returned unchanged and leave no entry.
// A miss evicts at most one entry, even when the table is still over capacity.
func (c *Cache[V]) Invoke(args ...any) (V, error) {
	key := EncodeKey(args...)
	now := c.config.Clock.Now()

	if e, ok := c.entries[key]; ok && c.stale(e, now) {
		c.remove(e)
		c.stats.Expirations++
	}

	if e, ok := c.entries[key]; ok {
		e.touch(now)
		if c.config.Strategy == Recency {
			c.order.MoveToBack(e.elem)
		}
		c.stats.Hits++
		return e.value, nil
	}

	c.stats.Misses++
	v, err := c.fn(args...)
	if err != nil {
		c.stats.Failures++
		return v, err
	}
	c.store(key, v, now)
	c.evictIfNeeded(now)
	return v, nil
}

// Evict runs one eviction check. It is a no-op at or under capacity.
func (c *Cache[V]) Evict() bool {
	return c.evictIfNeeded(c.config.Clock.Now())
}

// Peek returns the cached value for args without refreshing its bookkeeping.
// Staleness is not checked either.
func (c *Cache[V]) Peek(args ...any) (V, bool) {
	if e, ok := c.entries[EncodeKey(args...)]; ok {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Delete removes the entry for args.
func (c *Cache[V]) Delete(args ...any) bool {
	return c.DeleteKey(EncodeKey(args...))
}

// DeleteKey removes the entry stored under key.
func (c *Cache[V]) DeleteKey(key Key) bool {
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.remove(e)
	return true
}

// CompareAndDelete removes the entry for key only if match accepts its value.
func (c *Cache[V]) CompareAndDelete(key Key, match func(V) bool) bool {
	e, ok := c.entries[key]
	if !ok || !match(e.value) {
		return false
	}
	c.remove(e)
	return true
}

// Clear drops every entry and resets the stats.
func (c *Cache[V]) Clear() {
	clear(c.entries)
	c.order.Init()
	c.stats = Stats{}
}

// Len reports the number of entries, stale ones included.
func (c *Cache[V]) Len() int {
	return len(c.entries)
}

// Keys lists the cached keys front to back.
func (c *Cache[V]) Keys() []Key {
	keys := make([]Key, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.key)
	}
	return keys
}

// Entries snapshots the cache front to back.
func (c *Cache[V]) Entries() []EntryView[V] {
	return c.snapshot(c.config.Clock.Now())
}

// Stats returns the counters with Len filled in.
func (c *Cache[V]) Stats() Stats {
	s := c.stats
	s.Len = len(c.entries)
	return s
}

func (c *Cache[V]) stale(e *entry[V], now time.Time) bool {
	return c.config.TTL > 0 && ageOf(e.touchedAt, now) > c.config.TTL
}

func (c *Cache[V]) store(key Key, v V, now time.Time) {
	if e, ok := c.entries[key]; ok {
		// The wrapped function re-entered the cache and stored this key itself.
		// That store already counted the use and placed the entry.
		e.value = v
		e.touchedAt = now
		if c.config.Strategy == Recency {
			c.order.MoveToBack(e.elem)
		}
		return
	}
	e := &entry[V]{
		key:       key,
		value:     v,
		touchedAt: now,
		useCount:  1,
	}
	e.elem = c.order.PushBack(e)
	c.entries[key] = e
}

func (c *Cache[V]) remove(e *entry[V]) {
	c.order.Remove(e.elem)
	delete(c.entries, e.key)
}

func (c *Cache[V]) evictIfNeeded(now time.Time) bool {
	if !c.config.bounded() || len(c.entries) <= c.config.MaxSize {
		return false
	}
	victim, ok := c.selectVictim(now)
	if !ok {
		return false
	}
	c.remove(victim)
	c.stats.Evictions++
	return true
}

func (c *Cache[V]) selectVictim(now time.Time) (*entry[V], bool) {
	front := c.order.Front()
	if front == nil {
		return nil, false
	}

	switch c.config.Strategy {
	case Recency:
		return front.Value, true

	case Age:
		for el := front; el != nil; el = el.Next() {
			if c.stale(el.Value, now) {
				return el.Value, true
			}
		}
		return front.Value, true

	case Frequency:
		victim := front.Value
		for el := front.Next(); el != nil; el = el.Next() {
			if el.Value.useCount < victim.useCount {
				victim = el.Value
			}
		}
		return victim, true

	case Custom:
		key, ok := c.config.Hook(c.snapshot(now))
		if !ok {
			return nil, false
		}
		victim, ok := c.entries[key]
		return victim, ok

	default:
		// Strategies are validated in New, so this is a bug.
		panic(fmt.Errorf("exhaustive match fallback, strategy: %s", c.config.Strategy))
	}
}

func (c *Cache[V]) snapshot(now time.Time) []EntryView[V] {
	views := make([]EntryView[V], 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		views = append(views, el.Value.view(now))
	}
	return views
}
