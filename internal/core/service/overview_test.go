package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

// mapCache is an OverviewCache over a map, JSON-encoded like the Redis one.
type mapCache struct {
	entries map[string][]byte
	ttls    map[string]time.Duration
	failGet bool
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *mapCache) Get(_ context.Context, key string, dst any) (bool, error) {
	if c.failGet {
		return false, errors.New("cache unavailable")
	}
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *mapCache) Set(_ context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	c.ttls[key] = ttl
	return nil
}

func TestCachedOverview_HitAndMiss(t *testing.T) {
	ctx := context.Background()
	cache := newMapCache()
	calls := 0
	compute := func(context.Context) (*ports.ClientOverview, error) {
		calls++
		return &ports.ClientOverview{TotalUsers: 7}, nil
	}

	got, err := cachedOverview(ctx, cache, time.Minute, "overview:client:c1", zerolog.Nop(), compute)
	require.NoError(t, err)
	assert.EqualValues(t, 7, got.TotalUsers)
	assert.Equal(t, time.Minute, cache.ttls["overview:client:c1"])

	got, err = cachedOverview(ctx, cache, time.Minute, "overview:client:c1", zerolog.Nop(), compute)
	require.NoError(t, err)
	assert.EqualValues(t, 7, got.TotalUsers)
	assert.Equal(t, 1, calls, "second read must be served from cache")
}

func TestCachedOverview_CacheFailureFallsThrough(t *testing.T) {
	ctx := context.Background()
	cache := newMapCache()
	cache.failGet = true

	got, err := cachedOverview(ctx, cache, time.Minute, "k", zerolog.Nop(), func(context.Context) (*ports.AdminOverview, error) {
		return &ports.AdminOverview{TotalClients: 2}, nil
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.TotalClients)
}

func TestCachedOverview_ComputeErrorNotCached(t *testing.T) {
	ctx := context.Background()
	cache := newMapCache()
	boom := errors.New("store down")

	_, err := cachedOverview(ctx, cache, time.Minute, "k", zerolog.Nop(), func(context.Context) (*ports.AdminOverview, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, cache.entries)
}

func TestAdminOverview_KeyedPerCaller(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cache := newMapCache()
	f.clients = NewClientService(f.stores, f.hasher, NewScoper(f.stores.Clients), cache, time.Minute, zerolog.Nop())
	tr := newTree(t, f)

	_, err := f.clients.Overview(ctx, tr.a1)
	require.NoError(t, err)
	_, err = f.clients.Overview(ctx, tr.a2)
	require.NoError(t, err)

	assert.Contains(t, cache.entries, "overview:admin:"+tr.a1.ID)
	assert.Contains(t, cache.entries, "overview:admin:"+tr.a2.ID)
}
