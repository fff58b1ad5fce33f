// Package cache stores JSON-encodable values with a TTL.
package cache

import (
	"context"
	"time"
)

// Cache is a JSON value store. GetJSON reports a miss with hit=false and a nil error.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
