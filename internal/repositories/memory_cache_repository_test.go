package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRepository_IncrAndExpire(t *testing.T) {
	cache := NewMemoryCacheRepository()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	n, err := cache.Incr(ctx, "login_attempts:a@b.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	ok, err := cache.Expire(ctx, "login_attempts:a@b.com", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	n, err = cache.Incr(ctx, "login_attempts:a@b.com")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	now = now.Add(2 * time.Minute)
	_, err = cache.Get(ctx, "login_attempts:a@b.com")
	assert.ErrorIs(t, err, ErrCacheMiss)

	ok, err = cache.Expire(ctx, "missing", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheRepository_SetGetDel(t *testing.T) {
	cache := NewMemoryCacheRepository()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", 42, 0))
	v, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "42", v)

	require.NoError(t, cache.Del(ctx, "k", "other"))
	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
