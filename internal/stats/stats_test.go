package stats

import (
	"errors"
	"testing"

	"pokeguess/internal/storage"
)

const testKey = "stats:player-one"

// failingKV rejects every write.
type failingKV struct {
	storage.KV
}

func (f failingKV) Set(string, string) error { return errors.New("disk full") }

func TestLoadDefaults(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		seed   bool
		want   Stats
	}{
		{"missing", "", false, Stats{}},
		{"valid", `{"correct":3,"incorrect":7}`, true, Stats{Correct: 3, Incorrect: 7}},
		{"malformed", `{"correct":`, true, Stats{}},
		{"not json", "hello", true, Stats{}},
		{"negative", `{"correct":-1,"incorrect":2}`, true, Stats{}},
		{"wrong types", `{"correct":"many"}`, true, Stats{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemory()
			if tt.seed {
				if err := kv.Set(testKey, tt.stored); err != nil {
					t.Fatal(err)
				}
			}
			s := New(kv, testKey)
			if got := s.Current(); got != tt.want {
				t.Errorf("Current() = %+v, want %+v", got, tt.want)
			}
			if got := s.Load(); got != tt.want {
				t.Errorf("Load() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIncrementPersists(t *testing.T) {
	kv := storage.NewMemory()
	s := New(kv, testKey)

	s.Increment(KindCorrect)
	s.Increment(KindIncorrect)
	got := s.Increment(KindIncorrect)
	want := Stats{Correct: 1, Incorrect: 2}
	if got != want {
		t.Fatalf("Increment returned %+v, want %+v", got, want)
	}

	reloaded := New(kv, testKey)
	if reloaded.Current() != want {
		t.Errorf("reloaded stats = %+v, want %+v", reloaded.Current(), want)
	}
	raw, _ := kv.Get(testKey)
	if raw != `{"correct":1,"incorrect":2}` {
		t.Errorf("persisted value = %s", raw)
	}
}

func TestResetPersistsZero(t *testing.T) {
	kv := storage.NewMemory()
	s := New(kv, testKey)
	s.Increment(KindCorrect)
	s.Increment(KindIncorrect)

	if got := s.Reset(); got != (Stats{}) {
		t.Errorf("Reset() = %+v, want zero", got)
	}
	if got := s.Load(); got != (Stats{}) {
		t.Errorf("Load() after reset = %+v, want zero", got)
	}
	if got := New(kv, testKey).Current(); got != (Stats{}) {
		t.Errorf("new store after reset = %+v, want zero", got)
	}
}

func TestWriteFailureIsIgnored(t *testing.T) {
	s := New(failingKV{KV: storage.NewMemory()}, testKey)
	got := s.Increment(KindCorrect)
	if got != (Stats{Correct: 1}) {
		t.Errorf("Increment with failing storage = %+v, want in-memory count kept", got)
	}
	if got := s.Reset(); got != (Stats{}) {
		t.Errorf("Reset with failing storage = %+v", got)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	kv := storage.NewMemory()
	a := New(kv, "stats:a")
	b := New(kv, "stats:b")
	a.Increment(KindCorrect)
	if b.Load() != (Stats{}) {
		t.Errorf("store b saw store a's counts: %+v", b.Current())
	}
	if a.Key() != "stats:a" {
		t.Errorf("Key() = %q", a.Key())
	}
}

func TestTotalAndKindString(t *testing.T) {
	if (Stats{Correct: 2, Incorrect: 3}).Total() != 5 {
		t.Error("Total() should add both counters")
	}
	if KindCorrect.String() != "correct" || KindIncorrect.String() != "incorrect" {
		t.Error("unexpected Kind strings")
	}
}
