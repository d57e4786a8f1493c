// Package stats keeps a player's cumulative guess counts and persists every
// change through a storage.KV. Persistence is best effort: read failures fall
// back to zero counts and write failures are logged and dropped.
package stats

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"pokeguess/internal/storage"
)

// Stats holds the running totals.
type Stats struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// Total returns the number of validated guesses.
func (s Stats) Total() int {
	return s.Correct + s.Incorrect
}

// Kind selects which counter to bump.
type Kind int

const (
	KindCorrect Kind = iota
	KindIncorrect
)

func (k Kind) String() string {
	if k == KindCorrect {
		return "correct"
	}
	return "incorrect"
}

// Store is a persisted pair of counters for one player.
type Store struct {
	kv  storage.KV
	key string

	mu      sync.Mutex
	current Stats
}

// New returns a store bound to key and loads its last persisted value.
func New(kv storage.KV, key string) *Store {
	s := &Store{kv: kv, key: key}
	s.Load()
	return s
}

// Load re-reads the persisted counts. Missing, malformed or negative values
// yield zero counts.
func (s *Store) Load() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = decode(s.kv, s.key)
	return s.current
}

// Increment adds one to the selected counter and persists the new totals.
func (s *Store) Increment(kind Kind) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch kind {
	case KindCorrect:
		s.current.Correct++
	case KindIncorrect:
		s.current.Incorrect++
	}
	s.persistLocked()
	return s.current
}

// Reset zeroes both counters and persists them.
func (s *Store) Reset() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Stats{}
	s.persistLocked()
	return s.current
}

// Current returns the in-memory totals without touching storage.
func (s *Store) Current() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Key returns the storage key the store writes to.
func (s *Store) Key() string {
	return s.key
}

func (s *Store) persistLocked() {
	data, err := json.Marshal(s.current)
	if err != nil {
		log.Warn().Err(err).Str("key", s.key).Msg("encode stats")
		return
	}
	if err := s.kv.Set(s.key, string(data)); err != nil {
		log.Warn().Err(err).Str("key", s.key).Msg("persist stats")
	}
}

func decode(kv storage.KV, key string) Stats {
	raw, ok := kv.Get(key)
	if !ok {
		return Stats{}
	}
	var st Stats
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("stored stats unreadable, starting from zero")
		return Stats{}
	}
	if st.Correct < 0 || st.Incorrect < 0 {
		log.Warn().Str("key", key).Msg("stored stats negative, starting from zero")
		return Stats{}
	}
	return st
}
