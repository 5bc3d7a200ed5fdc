package ports

import (
	"context"
	"time"
)

// Cache is a best-effort key/value store for derived state such as the last known
// certificate status of an artwork. The source of truth is always the repository.
type Cache interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Advance writes value only when the key is absent, expired, or holds a version no higher
	// than version. It reports whether the write happened.
	Advance(ctx context.Context, key string, value string, version int64, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}
