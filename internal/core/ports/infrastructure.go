package ports

import (
	"context"
	"time"
)

// PasswordHasher is a salted one-way credential hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// OverviewCache caches dashboard tallies for a short time. A miss is
// reported as ok=false with a nil error.
type OverviewCache interface {
	Get(ctx context.Context, key string, dst any) (ok bool, err error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
}
