package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// fileDocument is what each key is written as on disk.
type fileDocument struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FileKV stores one JSON document per key in a directory.
type FileKV struct {
	dir string
}

// NewFile returns a FileKV rooted at dir, creating the directory if needed.
func NewFile(dir string) (*FileKV, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage: file backend needs a directory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

// Dir returns the directory documents are written to.
func (f *FileKV) Dir() string { return f.dir }

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, fileName(key)+".json")
}

func (f *FileKV) Get(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	file := f.path(key)
	data, err := os.ReadFile(file)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("file", file).Msg("read storage document")
		}
		return "", false
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Warn().Err(err).Str("file", file).Msg("storage document corrupted, removing")
		_ = os.Remove(file)
		return "", false
	}
	if doc.Key != key {
		// Two keys sanitized to the same file name; treat as absent.
		return "", false
	}
	return doc.Value, true
}

func (f *FileKV) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	data, err := json.MarshalIndent(fileDocument{Key: key, Value: value, UpdatedAt: time.Now()}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage document: %w", err)
	}

	file := f.path(key)
	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", file, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", file, err)
	}
	if err := os.Rename(tmpName, file); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", file, err)
	}
	return nil
}

// Cleanup removes documents whose files have not been modified for maxAge.
func (f *FileKV) Cleanup(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read storage directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed, failed := 0, 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			failed++
			continue
		}
		if info.ModTime().Before(cutoff) {
			file := filepath.Join(f.dir, entry.Name())
			if err := os.Remove(file); err != nil {
				log.Warn().Err(err).Str("file", file).Msg("remove stale storage document")
				failed++
				continue
			}
			removed++
		}
	}
	log.Debug().Int("removed", removed).Int("errors", failed).Dur("max_age", maxAge).Msg("file storage cleanup")
	return removed, nil
}

func (f *FileKV) Close() error { return nil }

// fileName maps a key to a safe file name.
func fileName(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
}
