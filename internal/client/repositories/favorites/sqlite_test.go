package favorites

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvolkov/tastebook/internal/client/db"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "vault.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewSQLiteRepository(database)
}

func TestFavoritesListEmpty(t *testing.T) {
	repo := newTestRepo(t)

	ids, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFavoritesAddIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, 7))
	require.NoError(t, repo.Add(ctx, 7))
	require.NoError(t, repo.Add(ctx, 3))

	ids, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 7}, ids)
}

func TestFavoritesRemove(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, 7))
	require.NoError(t, repo.Remove(ctx, 7))
	require.NoError(t, repo.Remove(ctx, 7))

	ids, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFavoritesClear(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, 1))
	require.NoError(t, repo.Add(ctx, 2))
	require.NoError(t, repo.Clear(ctx))

	ids, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
