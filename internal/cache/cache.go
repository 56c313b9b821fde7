// Package cache provides a TTL-bounded in-memory cache with lazy expiry.
//
// Entries leave the cache only when a read finds them expired or when the
// cache is cleared; there is no background sweep. A capacity bound is
// available through WithMaxEntries but is off by default.
package cache

import (
	"sort"
	"sync"
	"time"
)

// Observer receives cache events. Implementations must be safe for
// concurrent use.
type Observer interface {
	CacheHit(key string)
	CacheMiss(key string)
	CacheEvict(key string, expired bool)
}

// Stats describes the current cache contents.
type Stats struct {
	Size int
	Keys []string
}

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache maps string keys to values of type V. The zero value is not usable;
// construct with New.
type Cache[V any] struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	observer   Observer
	entries    map[string]entry[V]
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	now        func() time.Time
	observer   Observer
	maxEntries int
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithObserver attaches an event observer (metrics).
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithMaxEntries bounds the cache size. When full, inserting a new key evicts
// the entry with the oldest storedAt. Zero means unbounded.
func WithMaxEntries(n int) Option {
	return func(o *options) { o.maxEntries = n }
}

// New returns a cache whose entries are valid for ttl after being stored.
func New[V any](ttl time.Duration, opts ...Option) *Cache[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[V]{
		ttl:        ttl,
		maxEntries: o.maxEntries,
		now:        o.now,
		observer:   o.observer,
		entries:    make(map[string]entry[V]),
	}
}

// TTL returns the configured time-to-live.
func (c *Cache[V]) TTL() time.Duration {
	return c.ttl
}

// Get returns the value stored under key. An entry older than the TTL is
// evicted and reported absent.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.get(key)
}

func (c *Cache[V]) get(key string) (V, bool) {
	var zero V
	e, ok := c.entries[key]
	if !ok {
		c.miss(key)
		return zero, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		if c.observer != nil {
			c.observer.CacheEvict(key, true)
		}
		c.miss(key)
		return zero, false
	}
	if c.observer != nil {
		c.observer.CacheHit(key)
	}
	return e.value, true
}

func (c *Cache[V]) miss(key string) {
	if c.observer != nil {
		c.observer.CacheMiss(key)
	}
}

// Set stores value under key, replacing any previous entry.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}
	c.entries[key] = entry[V]{value: value, storedAt: c.now()}
}

func (c *Cache[V]) evictOldest() {
	var (
		oldestKey string
		oldestAt  time.Time
		found     bool
	)
	for k, e := range c.entries {
		if !found || e.storedAt.Before(oldestAt) {
			oldestKey, oldestAt, found = k, e.storedAt, true
		}
	}
	if !found {
		return
	}
	delete(c.entries, oldestKey)
	if c.observer != nil {
		c.observer.CacheEvict(oldestKey, false)
	}
}

// Has reports whether key holds a live entry. Like Get, it evicts an expired
// entry.
func (c *Cache[V]) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		if c.observer != nil {
			c.observer.CacheEvict(key, true)
		}
		return false
	}
	return true
}

// Delete removes key.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes every entry.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// Stats returns the number of stored entries and their keys, sorted. Expired
// entries not yet read are still counted.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return Stats{Size: len(keys), Keys: keys}
}
