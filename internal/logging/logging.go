// Package logging builds the charmbracelet/log loggers used across tada.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Prefix tags every line.
const Prefix = "tada"

// Levels accepted in configuration.
var Levels = []string{"debug", "info", "warn", "error"}

// Options holds configuration for a logger.
type Options struct {
	Level           string
	ReportTimestamp bool
	Formatter       log.Formatter
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	lvl := log.WarnLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		lvl = parsed
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          Prefix,
		ReportTimestamp: opts.ReportTimestamp,
		Formatter:       opts.Formatter,
	}), nil
}

// OpenFile returns a timestamped logger appending to path, plus the file to
// close when done. The TUI logs here so it does not draw over the screen.
func OpenFile(path string, opts Options) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	opts.ReportTimestamp = true
	logger, err := New(f, opts)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
