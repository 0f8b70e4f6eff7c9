// ABOUTME: In-memory cache with TTL-based expiration
// ABOUTME: Holds collected graph statistics between refreshes; safe for concurrent use

package cache

import (
	"log/slog"
	"sync"
	"time"
)

const cleanupInterval = time.Minute

type entry struct {
	data      interface{}
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// Cache stores values until their TTL lapses. A background sweep removes
// expired entries until Close is called.
type Cache struct {
	store     sync.Map
	ttl       time.Duration
	stop      chan struct{}
	closeOnce sync.Once
}

// New creates a cache whose Set uses ttl.
func New(ttl time.Duration) *Cache {
	c := &Cache{
		ttl:  ttl,
		stop: make(chan struct{}),
	}
	go c.sweepLoop(cleanupInterval)
	return c
}

// Get returns the value for key if present and not expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	val, ok := c.store.Load(key)
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return nil, false
	}

	e := val.(entry)
	if e.expired(time.Now()) {
		c.store.Delete(key)
		slog.Debug("Cache expired", "key", key)
		return nil, false
	}

	slog.Debug("Cache hit", "key", key)
	return e.data, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.store.Store(key, entry{data: value, expiresAt: time.Now().Add(ttl)})
	slog.Debug("Cache set", "key", key, "ttl", ttl)
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Len counts live entries.
func (c *Cache) Len() int {
	now := time.Now()
	n := 0
	c.store.Range(func(_, val interface{}) bool {
		if !val.(entry).expired(now) {
			n++
		}
		return true
	})
	return n
}

// Close stops the background sweep. The cache stays usable.
func (c *Cache) Close() {
	c.closeOnce.Do(func() { close(c.stop) })
}

func (c *Cache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.sweep(now)
		}
	}
}

func (c *Cache) sweep(now time.Time) {
	c.store.Range(func(key, val interface{}) bool {
		if val.(entry).expired(now) {
			c.store.Delete(key)
		}
		return true
	})
}
