package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// LRUListCache implements ListCache in process memory.
// Entries share one TTL fixed at construction; the ttl passed to Set is ignored.
type LRUListCache struct {
	cache *lru.LRU[string, []byte]
}

// NewLRUListCache creates an LRU cache holding at most size entries
func NewLRUListCache(size int, ttl time.Duration) *LRUListCache {
	if size < 1 {
		size = 1
	}
	return &LRUListCache{
		cache: lru.NewLRU[string, []byte](size, nil, ttl),
	}
}

// Get implements ListCache
func (c *LRUListCache) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := c.cache.Get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return true, nil
}

// Set implements ListCache
func (c *LRUListCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %s: %w", key, err)
	}
	c.cache.Add(key, raw)
	return nil
}

// DeletePrefix implements ListCache
func (c *LRUListCache) DeletePrefix(_ context.Context, prefix string) error {
	for _, key := range c.cache.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Remove(key)
		}
	}
	return nil
}

// Len returns the number of cached entries
func (c *LRUListCache) Len() int {
	return c.cache.Len()
}

var _ ListCache = (*LRUListCache)(nil)
