// Package sessionRepo stores short-lived JSON session values (screen state,
// token sessions) under string keys.
package sessionRepo

import (
	"context"
	"time"
)

// Store saves JSON-encodable values with a time-to-live.
// Get returns repository.ErrNotFound for missing or expired keys.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
