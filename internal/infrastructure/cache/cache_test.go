package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsvs/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

type item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func exerciseListCache(t *testing.T, c ListCache) {
	ctx := context.Background()

	var got []item
	found, err := c.Get(ctx, "directory:region:all", &got)
	require.NoError(t, err)
	assert.False(t, found)

	want := []item{{ID: "1", Title: "Tashkent"}, {ID: "2", Title: "Bukhara"}}
	require.NoError(t, c.Set(ctx, "directory:region:all", want, time.Minute))
	require.NoError(t, c.Set(ctx, "directory:region:active", want[:1], time.Minute))
	require.NoError(t, c.Set(ctx, "directory:department:all", want[1:], time.Minute))

	found, err = c.Get(ctx, "directory:region:all", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	require.NoError(t, c.DeletePrefix(ctx, "directory:region:"))

	found, err = c.Get(ctx, "directory:region:all", &got)
	require.NoError(t, err)
	assert.False(t, found)
	found, err = c.Get(ctx, "directory:region:active", &got)
	require.NoError(t, err)
	assert.False(t, found)

	var dept []item
	found, err = c.Get(ctx, "directory:department:all", &dept)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want[1:], dept)
}

func TestRedisListCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisListCache(client, "test:")
	exerciseListCache(t, c)

	t.Run("honors ttl", func(t *testing.T) {
		require.NoError(t, c.Set(context.Background(), "k", []item{}, time.Second))
		mr.FastForward(2 * time.Second)

		var got []item
		found, err := c.Get(context.Background(), "k", &got)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("delete of missing prefix is a no-op", func(t *testing.T) {
		assert.NoError(t, c.DeletePrefix(context.Background(), "nothing:"))
	})
}

func TestLRUListCache(t *testing.T) {
	c := NewLRUListCache(16, time.Minute)
	exerciseListCache(t, c)

	t.Run("evicts least recently used", func(t *testing.T) {
		small := NewLRUListCache(2, time.Minute)
		ctx := context.Background()
		require.NoError(t, small.Set(ctx, "a", 1, 0))
		require.NoError(t, small.Set(ctx, "b", 2, 0))
		require.NoError(t, small.Set(ctx, "c", 3, 0))

		var v int
		found, _ := small.Get(ctx, "a", &v)
		assert.False(t, found)
		assert.Equal(t, 2, small.Len())
	})
}

func TestNewListCache(t *testing.T) {
	cfg := config.CacheConfig{TTL: time.Minute, LRUSize: 8}

	_, isLRU := NewListCache(nil, cfg, zap.NewNop()).(*LRUListCache)
	assert.True(t, isLRU)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	_, isRedis := NewListCache(client, cfg, zap.NewNop()).(*RedisListCache)
	assert.True(t, isRedis)
}
