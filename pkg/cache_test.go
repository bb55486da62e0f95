package pkg

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseCache(t *testing.T, cache Cache) {
	t.Helper()
	ctx := context.Background()

	_, err := cache.Get(ctx, "sessao:x")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "sessao:x", []byte(`[{"name":"session"}]`), time.Hour))
	got, err := cache.Get(ctx, "sessao:x")
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"session"}]`, string(got))

	require.NoError(t, cache.Delete(ctx, "sessao:x"))
	_, err = cache.Get(ctx, "sessao:x")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache(t *testing.T) {
	srv := miniredis.RunT(t)

	cache, err := InitRedis(context.Background(), srv.Addr())
	require.NoError(t, err)
	exerciseCache(t, cache)

	require.NoError(t, cache.Set(context.Background(), "curta", []byte("1"), time.Minute))
	srv.FastForward(2 * time.Minute)
	_, err = cache.Get(context.Background(), "curta")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheURL(t *testing.T) {
	srv := miniredis.RunT(t)

	cache, err := InitRedis(context.Background(), "redis://"+srv.Addr()+"/0")
	require.NoError(t, err)
	exerciseCache(t, cache)
}

func TestInitRedisErrors(t *testing.T) {
	_, err := InitRedis(context.Background(), "")
	assert.Error(t, err)

	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()
	_, err = InitRedis(context.Background(), addr)
	assert.Error(t, err)
}

func TestMemoryCache(t *testing.T) {
	exerciseCache(t, NewMemoryCache(16, time.Hour))
}

func TestMemoryCacheExpires(t *testing.T) {
	cache := NewMemoryCache(16, 20*time.Millisecond)
	require.NoError(t, cache.Set(context.Background(), "k", []byte("v"), 0))

	require.Eventually(t, func() bool {
		_, err := cache.Get(context.Background(), "k")
		return err == ErrCacheMiss
	}, time.Second, 5*time.Millisecond)
}
