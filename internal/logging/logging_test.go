package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToWarn(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "key", "toDoLists")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "key=toDoLists")
	assert.Contains(t, out, Prefix)
}

func TestNewHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "debug"})
	require.NoError(t, err)
	logger.Debug("details")
	assert.Contains(t, buf.String(), "details")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Options{Level: "loud"})
	assert.Error(t, err)
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tada.log")

	logger, closer, err := OpenFile(path, Options{Level: "info"})
	require.NoError(t, err)
	logger.Info("first")
	require.NoError(t, closer.Close())

	logger, closer, err = OpenFile(path, Options{Level: "info"})
	require.NoError(t, err)
	logger.Info("second")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "first")
	assert.Contains(t, string(b), "second")
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing")
}
