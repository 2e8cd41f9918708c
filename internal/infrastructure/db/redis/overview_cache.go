package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "admin:"

// OverviewCache stores dashboard tallies as JSON with a TTL.
// Key format: admin:overview:<role>[:<id>]
type OverviewCache struct {
	client *redis.Client
}

// NewOverviewCache creates an OverviewCache wrapping the given Redis client.
func NewOverviewCache(client *redis.Client) *OverviewCache {
	return &OverviewCache{client: client}
}

// Get decodes the cached value for key into dst. ok is false on a miss.
func (c *OverviewCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("overview cache get: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("overview cache decode: %w", err)
	}
	return true, nil
}

// Set stores v under key and expires it after ttl.
func (c *OverviewCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("overview cache encode: %w", err)
	}
	return c.client.Set(ctx, keyPrefix+key, raw, ttl).Err()
}

// Ping reports Redis reachability for readiness probes.
func (c *OverviewCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
