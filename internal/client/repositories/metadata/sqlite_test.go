package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/memorylane/internal/dbx"
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
  key        TEXT PRIMARY KEY,
  value      BLOB NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`)
	require.NoError(t, err)
	return db
}

func TestSetThenGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "session.access_token", []byte("tok")))

	v, err := r.Get(ctx, "session.access_token")
	require.NoError(t, err)
	assert.Equal(t, []byte("tok"), v)
}

func TestGet_Absent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSet_Upserts(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
}

func TestSet_NilValueStoredAsEmpty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", nil))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.NotNil(t, v)
	assert.Empty(t, v)

	missing, err := r.Get(ctx, "absent")
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := r.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"k": {}}, all)
}

func TestList_FiltersByPrefix(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "session.a", []byte{0xAA}))
	require.NoError(t, r.Set(ctx, "session.b", []byte{0xBB}))
	require.NoError(t, r.Set(ctx, "ui.theme", []byte("dark")))

	m, err := r.List(ctx, "session.")
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"session.a": {0xAA}, "session.b": {0xBB}}, m)

	all, err := r.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDelete_ManyKeysAndIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte{1}))
	require.NoError(t, r.Set(ctx, "b", []byte{2}))
	require.NoError(t, r.Set(ctx, "c", []byte{3}))

	require.NoError(t, r.Delete(ctx, "a", "b", "missing"))
	require.NoError(t, r.Delete(ctx, "a"))
	require.NoError(t, r.Delete(ctx))

	m, err := r.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"c": {3}}, m)
}

func TestRepository_InsideTransaction(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := NewSQLiteRepository(tx)
		if err := r.Set(ctx, "x", []byte("1")); err != nil {
			return err
		}
		return r.Set(ctx, "y", []byte("2"))
	})
	require.NoError(t, err)

	m, err := NewSQLiteRepository(db).List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, m, 2)
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "get metadata[k]")

	require.ErrorContains(t, r.Set(ctx, "k", []byte("v")), "set metadata[k]")
	require.ErrorContains(t, r.Delete(ctx, "k"), "delete metadata")

	_, err = r.List(ctx, "")
	require.ErrorContains(t, err, "list metadata")
}
