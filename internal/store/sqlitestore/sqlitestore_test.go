package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/store"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := openTemp(t)
	_, err := s.Get(context.Background(), "toDoLists")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetUpserts(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	require.NoError(t, s.Set(ctx, "toDoLists", []byte(`[]`)))
	require.NoError(t, s.Set(ctx, "toDoLists", []byte(`[{"id":1}]`)))

	got, err := s.Get(ctx, "toDoLists")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", FileName)
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
	assert.Equal(t, path, s.Location("anything"))
}
