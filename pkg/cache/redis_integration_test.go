//go:build integration

package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingo/pkg/cache"
	"github.com/dmitrymomot/lingo/pkg/redis"
)

const testRedisURL = "redis://localhost:6379/0"

func newTestRedisClient(t *testing.T) goredis.UniversalClient {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = testRedisURL
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, url)
	require.NoError(t, err, "failed to connect to Redis")

	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestRedis_RoundTrip(t *testing.T) {
	t.Parallel()

	client := newTestRedisClient(t)
	c := cache.NewRedis[[]byte](client, cache.Raw(), cache.WithPrefix("lingo-test-roundtrip"))
	ctx := context.Background()
	t.Cleanup(func() { _ = c.Clear(ctx) })

	_, err := c.Get(ctx, "lang/en_us.lang")
	require.ErrorIs(t, err, cache.ErrNotFound)

	require.NoError(t, c.Set(ctx, "lang/en_us.lang", []byte("a=b"), time.Minute))
	got, err := c.Get(ctx, "lang/en_us.lang")
	require.NoError(t, err)
	require.Equal(t, []byte("a=b"), got)

	require.NoError(t, c.Delete(ctx, "lang/en_us.lang"))
	_, err = c.Get(ctx, "lang/en_us.lang")
	require.ErrorIs(t, err, cache.ErrNotFound)
}

func TestRedis_ClearByPrefix(t *testing.T) {
	t.Parallel()

	client := newTestRedisClient(t)
	ctx := context.Background()

	mine := cache.NewRedis[string](client, nil, cache.WithPrefix("lingo-test-clear-a"))
	other := cache.NewRedis[string](client, nil, cache.WithPrefix("lingo-test-clear-b"))
	t.Cleanup(func() { _ = other.Clear(ctx) })

	require.NoError(t, mine.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, other.Set(ctx, "k", "v", time.Minute))

	require.NoError(t, mine.Clear(ctx))

	_, err := mine.Get(ctx, "k")
	require.ErrorIs(t, err, cache.ErrNotFound)

	v, err := other.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v", v)
}
