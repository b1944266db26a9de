package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/store"
)

func TestGetMissingKey(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	_, err = s.Get(context.Background(), "toDoLists")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetCreatesDirAndFile(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "toDoLists", []byte(`[]`)))
	assert.Equal(t, filepath.Join(dir, "toDoLists.json"), s.Location("toDoLists"))

	b, err := os.ReadFile(s.Location("toDoLists"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	require.NoError(t, s.Set(ctx, "toDoLists", []byte(`[1]`)))
	got, err := s.Get(ctx, "toDoLists")
	require.NoError(t, err)
	assert.Equal(t, "[1]", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestKeysAreSeparateFiles(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "a", []byte("1")))
	require.NoError(t, s.Set(ctx, "b", []byte("2")))
	a, _ := s.Get(ctx, "a")
	b, _ := s.Get(ctx, "b")
	assert.Equal(t, "1", string(a))
	assert.Equal(t, "2", string(b))
}

func TestEmptyDirUsesWorkingDir(t *testing.T) {
	s, err := New("")
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "k.json"), s.Location("k"))
}
