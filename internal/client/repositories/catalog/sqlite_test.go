package catalog

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/AHx92/my-workout-tracker/internal/client/models"
	"github.com/AHx92/my-workout-tracker/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE catalog (
  name      TEXT PRIMARY KEY,
  data      TEXT NOT NULL,
  timestamp TEXT NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestInsertAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	at := time.Date(2026, 10, 1, 8, 30, 0, 0, time.UTC)

	require.NoError(t, r.Insert(ctx, &models.CatalogEntry{Name: "exercises", Items: []string{"Squat", "Bench"}, CachedAt: at}))

	got, err := r.Get(ctx, "exercises")
	require.NoError(t, err)
	assert.Equal(t, []string{"Squat", "Bench"}, got.Items)
	assert.True(t, at.Equal(got.CachedAt))
}

func TestInsert_NilItemsStoredAsEmptyList(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, &models.CatalogEntry{Name: "exercises", CachedAt: time.Now()}))

	got, err := r.Get(ctx, "exercises")
	require.NoError(t, err)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
}

func TestInsert_DuplicateNameFails(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, &models.CatalogEntry{Name: "exercises", Items: []string{"a"}, CachedAt: time.Now()}))
	require.Error(t, r.Insert(ctx, &models.CatalogEntry{Name: "exercises", Items: []string{"b"}, CachedAt: time.Now()}))
}

func TestGet_Absent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.Get(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, &models.CatalogEntry{Name: "exercises", Items: []string{"a"}, CachedAt: time.Now()}))
	require.NoError(t, r.Delete(ctx, "exercises"))
	require.NoError(t, r.Delete(ctx, "exercises"))

	_, err := r.Get(ctx, "exercises")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGet_DBErrorWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	_, err := r.Get(context.Background(), "exercises")
	require.ErrorContains(t, err, "failed to get catalog[exercises]")
}
