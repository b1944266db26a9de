// Package backend picks a store.KV implementation by name.
package backend

import (
	"fmt"
	"path/filepath"

	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/memstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
)

const (
	File   = "file"
	SQLite = "sqlite"
	Memory = "memory"
)

// Names lists the accepted backend names.
var Names = []string{File, SQLite, Memory}

// Open returns the named backend rooted at dataDir.
func Open(name, dataDir string) (store.KV, error) {
	switch name {
	case File, "":
		return jsonstore.New(dataDir)
	case SQLite:
		return sqlitestore.Open(filepath.Join(dataDir, sqlitestore.FileName))
	case Memory:
		return memstore.New(), nil
	}
	return nil, fmt.Errorf("unknown backend %q (want one of %v)", name, Names)
}
