// Package store persists the to-do document as one serialized value under a
// single key. Backends only need to get and set whole values.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
)

// DefaultKey is the key the document lives under.
const DefaultKey = "toDoLists"

// ErrNotFound is returned by KV.Get for a key that was never set.
var ErrNotFound = errors.New("key not found")

// KV is a flat key-value store holding whole serialized values.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Locator is implemented by backends that keep a key in a file on disk.
type Locator interface {
	Location(key string) string
}

// Repository reads and writes the whole document. There is no partial update:
// every Save rewrites everything, and concurrent writers clobber each other.
type Repository struct {
	kv     KV
	key    string
	logger *log.Logger
}

func NewRepository(kv KV, key string, logger *log.Logger) *Repository {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Repository{kv: kv, key: key, logger: logger}
}

// Key returns the storage key in use.
func (r *Repository) Key() string { return r.key }

// Location returns the on-disk path holding the document, or "" for backends
// that do not live in a file.
func (r *Repository) Location() string {
	if l, ok := r.kv.(Locator); ok {
		return l.Location(r.key)
	}
	return ""
}

// Load returns the stored lists. A missing or unreadable document is an empty
// collection; only backend failures are errors.
func (r *Repository) Load(ctx context.Context) (model.Lists, error) {
	b, err := r.kv.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.Lists{}, nil
		}
		return nil, fmt.Errorf("get %s: %w", r.key, err)
	}
	var lists model.Lists
	if err := json.Unmarshal(b, &lists); err != nil {
		r.logger.Warn("ignoring malformed document", "key", r.key, "err", err)
		return model.Lists{}, nil
	}
	if lists == nil {
		return model.Lists{}, nil
	}
	lists, err = lists.Normalize()
	if err != nil {
		r.logger.Warn("ignoring inconsistent document", "key", r.key, "err", err)
		return model.Lists{}, nil
	}
	return lists, nil
}

// Save serializes and writes the whole document.
func (r *Repository) Save(ctx context.Context, lists model.Lists) error {
	if lists == nil {
		lists = model.Lists{}
	}
	b, err := json.MarshalIndent(lists, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := r.kv.Set(ctx, r.key, b); err != nil {
		return fmt.Errorf("set %s: %w", r.key, err)
	}
	r.logger.Debug("saved document", "key", r.key, "lists", len(lists))
	return nil
}

// Update loads, applies fn and saves. When fn fails nothing is written.
func (r *Repository) Update(ctx context.Context, fn func(model.Lists) (model.Lists, error)) (model.Lists, error) {
	lists, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	out, err := fn(lists)
	if err != nil {
		return lists, err
	}
	if err := r.Save(ctx, out); err != nil {
		return lists, err
	}
	return out, nil
}

// Close releases the backend.
func (r *Repository) Close() error { return r.kv.Close() }
