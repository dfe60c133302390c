package cache

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const DefaultTTL = 5 * time.Minute

type entry struct {
	value     any
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// Cache is an in-process key/value store with per-entry expiry. It fronts
// the database as a read-through accelerator; writers invalidate whole key
// families by substring after every mutation, so TTL is only a fallback
// upper bound on staleness.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

func New(defaultTTL time.Duration) *Cache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}

	return &Cache{
		entries:    map[string]entry{},
		defaultTTL: defaultTTL,
	}
}

func (c *Cache) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || e.expired(time.Now()) {
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return e.value, true
}

// Set stores value under key, replacing any existing entry and restarting
// its expiry countdown. Non-positive ttl falls back to the default.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if c == nil {
		return
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

func (c *Cache) Delete(key string) bool {
	if c == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	delete(c.entries, key)

	return !e.expired(time.Now())
}

// InvalidatePattern deletes every key whose name contains substring and
// returns how many were removed. Over-invalidation across families that
// happen to share a substring is acceptable; under-invalidation is not.
func (c *Cache) InvalidatePattern(substring string) int {
	if c == nil || substring == "" {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if strings.Contains(key, substring) {
			delete(c.entries, key)
			removed++
		}
	}

	return removed
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

func (c *Cache) Stats() Stats {
	if c == nil {
		return Stats{}
	}

	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.Len(),
	}
}

// StartJanitor sweeps expired entries until ctx is cancelled. Expired
// entries are already invisible to Get; the sweep only reclaims memory.
func (c *Cache) StartJanitor(ctx context.Context, interval time.Duration) {
	if c == nil {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := c.sweep(); removed > 0 {
				slog.Debug("cache janitor sweep", "removed", removed)
			}
		}
	}
}

func (c *Cache) sweep() int {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}

	return removed
}

// Wrap returns the cached value under key, or invokes producer, stores its
// result with ttl and returns it. Producer failures propagate to the caller
// and are never cached. A nil cache degrades to calling producer directly,
// so cache unavailability is invisible to callers.
func Wrap[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, producer func(context.Context) (T, error)) (T, error) {
	if c != nil {
		if cached, ok := c.Get(key); ok {
			if typed, ok := cached.(T); ok {
				return typed, nil
			}
			// Type mismatch means the key was reused for a different
			// shape; drop it and fall through to the producer.
			c.Delete(key)
		}
	}

	value, err := producer(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.Set(key, value, ttl)
	return value, nil
}
