// Package cache provides duplicate-alert suppression keyed by candidate
// fingerprint. The in-memory implementation is the default; a Redis
// implementation is available for multi-process deployments.
package cache

import (
	"context"
	"sync"
	"time"
)

// SeenCache suppresses re-emission of a fingerprint inside a sliding
// TTL window.
type SeenCache interface {
	// Seen reports whether the fingerprint was marked within the window.
	Seen(ctx context.Context, fingerprint string) (bool, error)
	// Mark records the fingerprint, restarting its window.
	Mark(ctx context.Context, fingerprint string) error
	Close() error
}

type memorySeenCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]time.Time
}

// NewMemorySeenCache builds a bounded in-memory cache. Expired entries
// are swept opportunistically on every access. The clock is injectable
// for tests; pass nil for wall time.
func NewMemorySeenCache(ttl time.Duration, now func() time.Time) SeenCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if now == nil {
		now = time.Now
	}
	return &memorySeenCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]time.Time),
	}
}

func (c *memorySeenCache) Seen(_ context.Context, fingerprint string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked()
	_, ok := c.entries[fingerprint]
	return ok, nil
}

func (c *memorySeenCache) Mark(_ context.Context, fingerprint string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fingerprint] = c.now()
	return nil
}

func (c *memorySeenCache) Close() error {
	return nil
}

func (c *memorySeenCache) sweepLocked() {
	cutoff := c.now().Add(-c.ttl)
	for key, marked := range c.entries {
		if marked.Before(cutoff) {
			delete(c.entries, key)
		}
	}
}
