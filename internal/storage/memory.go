package storage

import (
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	updatedAt time.Time
}

// MemoryKV keeps values in process memory. Used for tests and for running
// without a data directory.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryKV {
	return &MemoryKV{data: make(map[string]memoryEntry)}
}

func (m *MemoryKV) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.data[key]
	return e.value, ok
}

func (m *MemoryKV) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	m.data[key] = memoryEntry{value: value, updatedAt: time.Now()}
	m.mu.Unlock()
	return nil
}

// Cleanup drops entries not written for longer than maxAge.
func (m *MemoryKV) Cleanup(maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for k, e := range m.data {
		if e.updatedAt.Before(cutoff) {
			delete(m.data, k)
			removed++
		}
	}
	return removed, nil
}

func (m *MemoryKV) Close() error { return nil }

// Len reports the number of stored keys.
func (m *MemoryKV) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
