package storage

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Интеграционный тест: запускается только при заданном TEST_DATABASE_URL
// и уже применённой миграции kv_store.
func TestPostgresStore_Integration(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL не задан")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	store := NewPostgresStore(pool)
	key := "os_manager_test_key"
	defer store.RemoveItem(ctx, key)

	_, ok, err := store.GetItem(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetItem(ctx, key, `[{"id":"1"}]`))
	require.NoError(t, store.SetItem(ctx, key, `[{"id":"2"}]`))

	val, ok, err := store.GetItem(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"2"}]`, val)

	require.NoError(t, store.RemoveItem(ctx, key))
	_, ok, err = store.GetItem(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}
