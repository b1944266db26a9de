package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup at empty temp dirs and clears TADA_* vars.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("HOME", home)
	for _, k := range []string{"TADA_BACKEND", "TADA_DATA_DIR", "TADA_KEY", "TADA_THEME", "TADA_LOG_LEVEL", "TADA_LOG_FILE", "TADA_WATCH"} {
		t.Setenv(k, "")
	}
	t.Chdir(work)
	return home, work
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load(newFlags(t))
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Backend)
	assert.Equal(t, "toDoLists", cfg.Key)
	assert.Equal(t, "classic", cfg.Theme)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.Watch)
	assert.Equal(t, wd, cfg.DataDir)
	assert.Equal(t, filepath.Join(wd, LogFileName), cfg.LogFile)
}

func TestPrecedence(t *testing.T) {
	home, work := isolate(t)
	writeFile(t, filepath.Join(home, ".config", "tada", "config.toml"), `
backend = "sqlite"
theme = "neon"
key = "userKey"
`)
	writeFile(t, filepath.Join(work, ProjectFileName), `
theme = "mono"
key = "projectKey"
`)
	extra := filepath.Join(t.TempDir(), "extra.toml")
	writeFile(t, extra, `key = "extraKey"
log_level = "info"`)
	t.Setenv("TADA_LOG_LEVEL", "debug")
	t.Setenv("TADA_WATCH", "false")

	cfg, err := Load(newFlags(t, "--config", extra, "--theme", "classic"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Backend, "user file")
	assert.Equal(t, "extraKey", cfg.Key, "--config file beats project file")
	assert.Equal(t, "debug", cfg.LogLevel, "env beats files")
	assert.Equal(t, "classic", cfg.Theme, "flag beats everything")
	assert.False(t, cfg.Watch)
}

func TestUnsetFlagsDoNotOverride(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, ProjectFileName), `backend = "memory"`)
	cfg, err := Load(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Backend)
}

func TestDataDirExpansion(t *testing.T) {
	home, _ := isolate(t)
	cfg, err := Load(newFlags(t, "--data-dir", "~/todos"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "todos"), cfg.DataDir)
	assert.Equal(t, filepath.Join(home, "todos", LogFileName), cfg.LogFile)
}

func TestValidation(t *testing.T) {
	cases := [][]string{
		{"--backend", "redis"},
		{"--theme", "rainbow"},
		{"--log-level", "loud"},
		{"--key", "a/b"},
		{"--key", " "},
	}
	for _, args := range cases {
		isolate(t)
		_, err := Load(newFlags(t, args...))
		assert.Error(t, err, "args %v", args)
	}
}

func TestMissingExplicitConfigFails(t *testing.T) {
	isolate(t)
	_, err := Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "nope.toml")))
	assert.Error(t, err)
}

func TestUnknownKeysFail(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, ProjectFileName), `colour = "blue"`)
	_, err := Load(newFlags(t))
	assert.ErrorContains(t, err, "unknown keys")
}

func TestBadEnvBool(t *testing.T) {
	isolate(t)
	t.Setenv("TADA_WATCH", "sometimes")
	_, err := Load(nil)
	assert.Error(t, err)
}

func TestWriteRoundTrips(t *testing.T) {
	isolate(t)
	cfg, err := Load(newFlags(t, "--backend", "sqlite"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, cfg.Write(&buf))
	assert.Contains(t, buf.String(), `backend = "sqlite"`)

	var back Config
	_, err = toml.Decode(buf.String(), &back)
	require.NoError(t, err)
	assert.Equal(t, *cfg, back)
}
