package repository

import (
	"context"
	"time"
)

// CacheRepository stores rendered offers keyed by request fingerprint. A miss
// and a backend failure look the same to callers of Get.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
