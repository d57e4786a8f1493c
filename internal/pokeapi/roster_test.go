package pokeapi

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pokeguess/internal/game"
)

func TestNewRosterFiltersEntries(t *testing.T) {
	r, err := NewRoster([]game.Puzzle{
		{ID: 25, Name: "Pikachu", Image: "p.png"},
		{ID: 25, Name: "Pikachu again", Image: "p2.png"},
		{ID: 0, Name: "Missingno", Image: "m.png"},
		{ID: 1, Name: "", Image: "b.png"},
		{ID: 4, Name: "Charmander", Image: ""},
		{ID: 250, Name: "Ho-Oh", Image: "h.png"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestNewRosterEmpty(t *testing.T) {
	if _, err := NewRoster([]game.Puzzle{{ID: 0}}); err == nil {
		t.Error("expected error for roster without usable entries")
	}
}

func TestRosterFetchRandomEntity(t *testing.T) {
	entries := []game.Puzzle{
		{ID: 25, Name: "Pikachu", Image: "p.png"},
		{ID: 250, Name: "Ho-Oh", Image: "h.png"},
	}
	r, err := NewRoster(entries)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		p, err := r.FetchRandomEntity(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if p != entries[0] && p != entries[1] {
			t.Fatalf("unexpected entry %+v", p)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.FetchRandomEntity(ctx)
	var perr *game.ProviderError
	if !errors.As(err, &perr) || !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled fetch error = %v", err)
	}
}

func TestLoadRoster(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pokemon.json")
	data := `{"pokemon":[{"id":122,"name":"Mr. Mime","image":"https://img/122.png"}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	r, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("LoadRoster failed: %v", err)
	}
	p, _ := r.FetchRandomEntity(context.Background())
	if p.Name != "Mr. Mime" {
		t.Errorf("name = %q", p.Name)
	}

	if _, err := LoadRoster(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.json")
	_ = os.WriteFile(bad, []byte("{"), 0644)
	if _, err := LoadRoster(bad); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestBundledRoster(t *testing.T) {
	r, err := LoadRoster(filepath.Join("..", "..", "data", "pokemon.json"))
	if err != nil {
		t.Fatalf("bundled roster failed to load: %v", err)
	}
	if r.Len() < 10 {
		t.Errorf("bundled roster has only %d entries", r.Len())
	}
}
