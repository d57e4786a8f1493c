// Package storage provides the key-value surface player data is persisted
// through. Every backend is best effort: Get reports failures as absent
// values, and callers are free to ignore Set errors.
package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// KV is a synchronous last-writer-wins key-value store.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Backend is a KV with on-disk state that can be pruned and closed.
type Backend interface {
	KV
	Cleanup(maxAge time.Duration) (int, error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ErrEmptyKey is returned by Set for a blank key.
var ErrEmptyKey = errors.New("storage: empty key")

// Open builds the named backend rooted at path. For the file backend path is
// a directory; for sqlite it is the database file.
func Open(backend, path string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendMemory, "":
		return NewMemory(), nil
	case BackendFile:
		f, err := NewFile(path)
		if err != nil {
			return nil, err
		}
		return f, nil
	case BackendSQLite:
		db, err := NewSQLite(path)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}
