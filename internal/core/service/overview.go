package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

// cachedOverview serves dashboard tallies from cache when possible. Cache
// failures are logged and fall through to the store.
func cachedOverview[T any](
	ctx context.Context,
	cache ports.OverviewCache,
	ttl time.Duration,
	key string,
	log zerolog.Logger,
	compute func(context.Context) (*T, error),
) (*T, error) {
	if cache != nil {
		var hit T
		ok, err := cache.Get(ctx, key, &hit)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("overview cache read failed")
		} else if ok {
			return &hit, nil
		}
	}

	v, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.Set(ctx, key, v, ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("overview cache write failed")
		}
	}
	return v, nil
}
