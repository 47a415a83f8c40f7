package service

import (
	"context"
	"fmt"
	"time"
)

// Cache is the subset of the redis wrapper the services depend on. Taking
// the interface here lets tests substitute an in-memory implementation.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// recipeCacheKey names the cached detail of one recipe for one owner. Every
// writer that can change what the detail renders must delete this key.
func recipeCacheKey(userID, id uint) string {
	return fmt.Sprintf("recipe:%d:%d", userID, id)
}
