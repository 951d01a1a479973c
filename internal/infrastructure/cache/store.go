package cache

import (
	"context"
	"time"
)

// Store is a key-value cache with per-key expiration. Get reports a miss with
// ok=false and a nil error; errors mean the backend itself failed.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}
