package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_GetSetDelete(t *testing.T) {
	db, err := New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	_, err = db.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, db.Set(ctx, "users", []byte(`[{"id":1}]`)))
	value, err := db.Get(ctx, "users")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(value))

	// set overwrites
	require.NoError(t, db.Set(ctx, "users", []byte(`[]`)))
	value, err = db.Get(ctx, "users")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(value))

	require.NoError(t, db.Delete(ctx, "users"))
	_, err = db.Get(ctx, "users")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// deleting an absent key is not an error
	require.NoError(t, db.Delete(ctx, "users"))
}

func TestDB_PersistsAcrossConnections(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "reviews", []byte(`[]`)))

	second, err := New(dir)
	require.NoError(t, err)
	value, err := second.Get(ctx, "reviews")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), value)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
