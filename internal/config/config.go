// Package config resolves tada's settings from defaults, TOML files, the
// environment and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/backend"
)

const (
	DefaultBackend  = backend.File
	DefaultTheme    = "classic"
	DefaultLogLevel = "warn"
	LogFileName     = "tada.log"

	// ProjectFileName is looked up in the working directory.
	ProjectFileName = ".tada.toml"
	userFileName    = "config.toml"
	appDir          = "tada"
)

// Themes accepted by the theme setting.
var Themes = []string{"classic", "neon", "mono"}

// Config holds every setting.
type Config struct {
	Backend  string `toml:"backend"`
	DataDir  string `toml:"data_dir"`
	Key      string `toml:"key"`
	Theme    string `toml:"theme"`
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
	Watch    bool   `toml:"watch"`
}

// Default returns the built-in settings. DataDir empty means the working
// directory.
func Default() Config {
	return Config{
		Backend:  DefaultBackend,
		Key:      store.DefaultKey,
		Theme:    DefaultTheme,
		LogLevel: DefaultLogLevel,
		Watch:    true,
	}
}

// Flag names shared by RegisterFlags and Load.
const (
	FlagConfig   = "config"
	FlagBackend  = "backend"
	FlagDataDir  = "data-dir"
	FlagKey      = "key"
	FlagTheme    = "theme"
	FlagLogLevel = "log-level"
	FlagLogFile  = "log-file"
	FlagWatch    = "watch"
)

// RegisterFlags adds the config flags to fs. Only flags the user actually set
// override lower layers.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(FlagConfig, "", "extra config file (TOML)")
	fs.String(FlagBackend, d.Backend, "storage backend: "+strings.Join(backend.Names, "|"))
	fs.String(FlagDataDir, "", "directory holding the data (default: working directory)")
	fs.String(FlagKey, d.Key, "storage key the document is kept under")
	fs.String(FlagTheme, d.Theme, "color theme: "+strings.Join(Themes, "|"))
	fs.String(FlagLogLevel, d.LogLevel, "log level: "+strings.Join(logging.Levels, "|"))
	fs.String(FlagLogFile, "", "log file used by the interactive UI")
	fs.Bool(FlagWatch, d.Watch, "reload the UI when the data changes on disk")
}

// Load resolves the configuration:
// 1. Defaults
// 2. User config file ($XDG_CONFIG_HOME/tada/config.toml)
// 3. Project config file (.tada.toml in the working directory)
// 4. File named by --config
// 5. TADA_* environment variables
// 6. Flags set on fs
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := Default()

	for _, p := range []string{userFile(), ProjectFileName} {
		if p == "" {
			continue
		}
		if err := decodeFile(&cfg, p, false); err != nil {
			return nil, err
		}
	}
	if fs != nil {
		if p, _ := fs.GetString(FlagConfig); p != "" {
			if err := decodeFile(&cfg, expandPath(p), true); err != nil {
				return nil, err
			}
		}
	}

	if err := loadFromEnv(&cfg); err != nil {
		return nil, err
	}
	if fs != nil {
		if err := loadFromFlags(&cfg, fs); err != nil {
			return nil, err
		}
	}
	if err := finalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Write prints cfg as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func userFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDir, userFileName)
}

func decodeFile(cfg *Config, path string, required bool) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config file %s: unknown keys %v", path, undecoded)
	}
	return nil
}

func loadFromEnv(cfg *Config) error {
	set := func(name string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
		}
	}
	set("TADA_BACKEND", &cfg.Backend)
	set("TADA_DATA_DIR", &cfg.DataDir)
	set("TADA_KEY", &cfg.Key)
	set("TADA_THEME", &cfg.Theme)
	set("TADA_LOG_LEVEL", &cfg.LogLevel)
	set("TADA_LOG_FILE", &cfg.LogFile)
	if v := strings.TrimSpace(os.Getenv("TADA_WATCH")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TADA_WATCH: %w", err)
		}
		cfg.Watch = b
	}
	return nil
}

func loadFromFlags(cfg *Config, fs *pflag.FlagSet) error {
	strs := map[string]*string{
		FlagBackend:  &cfg.Backend,
		FlagDataDir:  &cfg.DataDir,
		FlagKey:      &cfg.Key,
		FlagTheme:    &cfg.Theme,
		FlagLogLevel: &cfg.LogLevel,
		FlagLogFile:  &cfg.LogFile,
	}
	for name, dst := range strs {
		if fs.Lookup(name) == nil || !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}
	if fs.Lookup(FlagWatch) != nil && fs.Changed(FlagWatch) {
		v, err := fs.GetBool(FlagWatch)
		if err != nil {
			return err
		}
		cfg.Watch = v
	}
	return nil
}

// finalize validates enumerations and resolves paths.
func finalize(cfg *Config) error {
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.Key = strings.TrimSpace(cfg.Key)

	if !slices.Contains(backend.Names, cfg.Backend) {
		return fmt.Errorf("backend %q: want one of %v", cfg.Backend, backend.Names)
	}
	if !slices.Contains(Themes, cfg.Theme) {
		return fmt.Errorf("theme %q: want one of %v", cfg.Theme, Themes)
	}
	if !slices.Contains(logging.Levels, cfg.LogLevel) {
		return fmt.Errorf("log level %q: want one of %v", cfg.LogLevel, logging.Levels)
	}
	if cfg.Key == "" || strings.ContainsAny(cfg.Key, `/\`) {
		return fmt.Errorf("key %q: must be non-empty and contain no path separators", cfg.Key)
	}

	if cfg.DataDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.DataDir = wd
	}
	cfg.DataDir = expandPath(cfg.DataDir)
	if abs, err := filepath.Abs(cfg.DataDir); err == nil {
		cfg.DataDir = abs
	}

	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, LogFileName)
	}
	cfg.LogFile = expandPath(cfg.LogFile)
	return nil
}

// expandPath expands ~ and environment variables.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	return expanded
}
