package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisSeenCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisSeenCache builds a Redis-backed dedup cache so several finder
// processes can share one suppression window.
func NewRedisSeenCache(addr, password string, db int, ttl time.Duration, prefix string) (SeenCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	if prefix == "" {
		prefix = "arb_seen"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisSeenCache{client: client, ttl: ttl, prefix: prefix}, nil
}

func (c *redisSeenCache) key(fingerprint string) string {
	return fmt.Sprintf("%s:%s", c.prefix, fingerprint)
}

func (c *redisSeenCache) Seen(ctx context.Context, fingerprint string) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, c.key(fingerprint)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *redisSeenCache) Mark(ctx context.Context, fingerprint string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, c.key(fingerprint), "1", c.ttl).Err()
}

func (c *redisSeenCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
