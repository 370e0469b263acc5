package metadata

import (
	"context"
	"database/sql"
	"testing"
	"time"

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
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyAccessEmail, []byte("a@b.c")))

	v, err := r.Get(ctx, KeyAccessEmail)
	require.NoError(t, err)
	require.Equal(t, []byte("a@b.c"), v)
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestList_And_Delete(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte{0xAA}))
	require.NoError(t, r.Set(ctx, "b", []byte{0xBB}))
	require.NoError(t, r.Delete(ctx, "a"))
	require.NoError(t, r.Delete(ctx, "a"))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"b": {0xBB}}, m)
}

func TestBoolHelpers(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	_, ok, err := GetBool(ctx, r, KeyAccessApproved)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, SetBool(ctx, r, KeyAccessApproved, true))
	v, ok, err := GetBool(ctx, r, KeyAccessApproved)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, v)

	require.NoError(t, r.Set(ctx, KeyAccessApproved, []byte("maybe")))
	_, _, err = GetBool(ctx, r, KeyAccessApproved)
	require.Error(t, err)
}

func TestTimeHelpers(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	zero, err := GetTime(ctx, r, KeyLastSyncAt)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	at := time.Date(2026, 10, 15, 7, 0, 0, 123, time.UTC)
	require.NoError(t, SetTime(ctx, r, KeyLastSyncAt, at))

	got, err := GetTime(ctx, r, KeyLastSyncAt)
	require.NoError(t, err)
	assert.True(t, at.Equal(got))
}

func TestRepository_DBErrorsWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")
	require.ErrorContains(t, r.Set(ctx, "k", []byte("v")), "failed to set metadata[k]")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete metadata[k]")
	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list metadata")
}
