package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"pokeguess/internal/game"
)

// rosterFile is the JSON layout of the bundled roster.
type rosterFile struct {
	Pokemon []game.Puzzle `json:"pokemon"`
}

// Roster serves puzzles from a fixed list.
type Roster struct {
	entries []game.Puzzle
}

// NewRoster keeps the valid entries of list. Entries need a positive id, a
// name and an image; ids must be unique.
func NewRoster(list []game.Puzzle) (*Roster, error) {
	valid := lo.Filter(list, func(p game.Puzzle, _ int) bool {
		if p.ID <= 0 || p.Name == "" || p.Image == "" {
			log.Warn().Int("id", p.ID).Str("name", p.Name).Msg("skipping incomplete roster entry")
			return false
		}
		return true
	})
	valid = lo.UniqBy(valid, func(p game.Puzzle) int { return p.ID })
	if len(valid) == 0 {
		return nil, fmt.Errorf("roster has no usable entries")
	}
	return &Roster{entries: valid}, nil
}

// LoadRoster reads a roster file such as data/pokemon.json.
func LoadRoster(path string) (*Roster, error) {
	log.Info().Str("path", path).Msg("loading roster")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	var rf rosterFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	return NewRoster(rf.Pokemon)
}

// Len returns the number of usable entries.
func (r *Roster) Len() int { return len(r.entries) }

// FetchRandomEntity returns a random roster entry.
func (r *Roster) FetchRandomEntity(ctx context.Context) (game.Puzzle, error) {
	if err := ctx.Err(); err != nil {
		return game.Puzzle{}, &game.ProviderError{Op: "roster", Err: err}
	}
	i, err := randomIndex(len(r.entries))
	if err != nil {
		return game.Puzzle{}, &game.ProviderError{Op: "roster", Err: err}
	}
	return r.entries[i], nil
}
