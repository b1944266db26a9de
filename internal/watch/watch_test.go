package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func waitEvent(t *testing.T, w *Watcher, within time.Duration) bool {
	t.Helper()
	select {
	case <-w.Events():
		return true
	case <-time.After(within):
		return false
	}
}

func TestFiresOnWriteOfWatchedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toDoLists.json")

	w, err := New(path, 20*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	require.True(t, waitEvent(t, w, 2*time.Second), "expected a change event")
}

func TestFiresOnRenameOver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toDoLists.json")

	w, err := New(path, 20*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Close()

	tmp := filepath.Join(dir, ".toDoLists-1.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("[]"), 0o644))
	require.NoError(t, os.Rename(tmp, path))
	require.True(t, waitEvent(t, w, 2*time.Second), "expected a change event")
}

func TestIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := New(filepath.Join(dir, "toDoLists.json"), 20*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))
	require.False(t, waitEvent(t, w, 300*time.Millisecond), "unexpected event for unrelated file")
}

func TestBurstCoalesces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tada.db")
	w, err := New(path, 100*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path+"-wal", []byte{byte(i)}, 0o644))
	}
	require.True(t, waitEvent(t, w, 2*time.Second))
	require.False(t, waitEvent(t, w, 300*time.Millisecond), "burst should produce one event")
}

func TestStartCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "later")
	w, err := New(filepath.Join(dir, "toDoLists.json"), 0, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Close())

	_, err = os.Stat(dir)
	require.NoError(t, err)
}

func TestCancelStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w, err := New(filepath.Join(t.TempDir(), "k.json"), 0, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))
	cancel()
	require.NoError(t, w.Close())
}

func TestCloseWithoutStart(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "k.json"), 0, nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestEmptyPath(t *testing.T) {
	_, err := New("", 0, nil)
	require.Error(t, err)
}
