package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tsvs/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ListCache stores JSON-encoded list results for reference data.
// Keys are namespaced by the caller, e.g. "directory:region:all".
type ListCache interface {
	// Get decodes a cached value into dest and reports whether it was found
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// DeletePrefix removes every key beginning with prefix
	DeletePrefix(ctx context.Context, prefix string) error
}

// NewListCache picks the Redis cache when a client is given and the in-process LRU otherwise
func NewListCache(client *redis.Client, cfg config.CacheConfig, logger *zap.Logger) ListCache {
	if client != nil {
		logger.Info("using Redis reference-data cache")
		return NewRedisListCache(client, "tsvs:cache:")
	}
	logger.Warn("Redis disabled, using in-process LRU reference-data cache",
		zap.Int("size", cfg.LRUSize),
		zap.Duration("ttl", cfg.TTL))
	return NewLRUListCache(cfg.LRUSize, cfg.TTL)
}
