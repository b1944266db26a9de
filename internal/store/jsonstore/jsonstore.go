package jsonstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Makepad-fr/tada/internal/store"
)

// JSON-backed storage. One human-readable file per key inside a directory.
// No locking; concurrent writers race and the last one wins.

const fileExt = ".json"

type Store struct {
	dir string
}

// New returns a store rooted at dir. The directory is created on first write.
func New(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		dir = wd
	}
	return &Store{dir: dir}, nil
}

// Location is the file holding key.
func (s *Store) Location(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	b, err := os.ReadFile(s.Location(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return b, nil
}

// Set writes to a temp file and renames it over the old one so readers never
// see a half-written document.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	p := s.Location(key)
	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
