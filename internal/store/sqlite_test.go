package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	// Use in-memory database for testing
	st, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NotNil(t, st)
	return st
}

func TestNewSQLiteStore(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	assert.NotNil(t, st.db)
	assert.Equal(t, ":memory:", st.Path())
}

func TestNewSQLiteStore_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStore("")
	assert.Error(t, err)
}

func TestSetAndGet(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	ctx := context.Background()
	vec := []float32{0.1, 0.2, 0.3}

	err := st.Set(ctx, "hello world", vec)
	require.NoError(t, err)

	got, err := st.Get(ctx, "hello world")
	require.NoError(t, err)
	assert.Equal(t, vec, got)
}

func TestGet_NotFound(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	ctx := context.Background()
	_, err := st.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContains(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	ctx := context.Background()

	ok, err := st.Contains(ctx, "item")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.Set(ctx, "item", []float32{1}))

	ok, err = st.Contains(ctx, "item")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSet_Overwrite(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	ctx := context.Background()
	require.NoError(t, st.Set(ctx, "item", []float32{1, 2}))
	require.NoError(t, st.Set(ctx, "item", []float32{3, 4}))

	// Last writer wins
	got, err := st.Get(ctx, "item")
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 4}, got)

	n, err := st.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSet_InvalidInput(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	ctx := context.Background()
	assert.ErrorIs(t, st.Set(ctx, "", []float32{1}), ErrEmptyKey)
	assert.Error(t, st.Set(ctx, "item", nil))
}

func TestKeysAndLen(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	ctx := context.Background()

	n, err := st.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, st.Set(ctx, "a", []float32{1}))
	require.NoError(t, st.Set(ctx, "b", []float32{2}))
	require.NoError(t, st.Set(ctx, "c", []float32{3}))

	keys, err := st.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	n, err = st.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestGetEntry(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	ctx := context.Background()
	require.NoError(t, st.Set(ctx, "item", []float32{1, 2, 3}))

	entry, err := st.GetEntry(ctx, "item")
	require.NoError(t, err)
	assert.Equal(t, "item", entry.Key)
	assert.Equal(t, []float32{1, 2, 3}, entry.Vector)
	assert.Equal(t, 3, entry.Dimension)
	assert.False(t, entry.CreatedAt.IsZero())

	_, err = st.GetEntry(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSharedNamespace(t *testing.T) {
	// Two handles on the same path must observe the same entries
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	first, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "shared", []float32{7, 8, 9}))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, []float32{7, 8, 9}, got)
}
