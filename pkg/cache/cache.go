// Package cache provides an optional Redis-backed JSON cache. A nil *Cache
// is valid and turns every operation into a no-op, so callers never need to
// branch on whether caching is configured.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"tillpoint/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const opTimeout = 2 * time.Second

type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// New connects to Redis and returns a cache, or nil when addr is empty or
// the server is unreachable. Caching is best-effort; the application runs
// without it.
func New(addr, password string, db int, ttl time.Duration, log *logger.Logger) *Cache {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, caching disabled", "addr", addr, "error", err)
		client.Close()
		return nil
	}

	log.Info("Redis cache connected", "addr", addr, "ttl", ttl)
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: log.WithComponent("cache"),
	}
}

// GetJSON unmarshals the cached value for key into dest, reporting whether
// a usable entry was found.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	data, err := c.client.Get(opCtx, key).Result()
	if err != nil {
		return false
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		c.logger.Warn("Failed to decode cached value", "key", key, "error", err)
		return false
	}

	return true
}

// SetJSON stores v under key with the configured TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}) {
	if c == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("Failed to encode value for cache", "key", key, "error", err)
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := c.client.Set(opCtx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to set cache key", "key", key, "error", err)
	}
}

// Invalidate removes the given keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := c.client.Del(opCtx, keys...).Err(); err != nil {
		c.logger.Warn("Failed to invalidate cache keys", "keys", keys, "error", err)
	}
}

// Close shuts down the Redis client.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
