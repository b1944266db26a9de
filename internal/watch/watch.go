// Package watch reports when the file backing the store changes on disk, so
// open views can reload what another process wrote.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts such as write-temp-then-rename.
const DefaultDebounce = 150 * time.Millisecond

// Watcher watches one storage path. It watches the parent directory because
// atomic writes replace the file rather than modify it.
type Watcher struct {
	mu       sync.Mutex
	fs       *fsnotify.Watcher
	dir      string
	names    map[string]bool
	debounce time.Duration
	logger   *log.Logger

	events  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// New prepares a watcher for path. SQLite sidecar files (-wal, -journal)
// count as changes to path.
func New(path string, debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("watch: empty path")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	base := filepath.Base(path)
	return &Watcher{
		fs:       fw,
		dir:      filepath.Dir(path),
		names:    map[string]bool{base: true, base + "-wal": true, base + "-journal": true},
		debounce: debounce,
		logger:   logger,
		events:   make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Events fires once per settled burst of changes. Undelivered signals coalesce.
func (w *Watcher) Events() <-chan struct{} { return w.events }

// Start begins watching in a goroutine. The directory is created if missing.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("watch mkdir: %w", err)
	}
	if err := w.fs.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.running = true
	w.logger.Debug("watching", "dir", w.dir)
	go w.run(ctx)
	return nil
}

// Close stops the goroutine and releases the inotify handle. Safe to call
// without Start and more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	return w.fs.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("store changed", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "err", err)
		case <-timer.C:
			select {
			case w.events <- struct{}{}:
			default:
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !w.names[filepath.Base(ev.Name)] {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
