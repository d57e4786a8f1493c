package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"pokeguess/internal/stats"
)

// Provider supplies random creatures to guess.
type Provider interface {
	FetchRandomEntity(ctx context.Context) (Puzzle, error)
}

// StatsRecorder receives one increment per validated guess.
type StatsRecorder interface {
	Increment(kind stats.Kind) stats.Stats
	Current() stats.Stats
}

// Controller owns one player's active puzzle and guess flags.
type Controller struct {
	provider Provider
	stats    StatsRecorder

	mu         sync.Mutex
	puzzle     *Puzzle
	guess      GuessState
	fetching   bool
	lastAccess time.Time
}

// NewController returns a controller with no puzzle loaded. Call
// StartNewPuzzle to load the first one.
func NewController(provider Provider, recorder StatsRecorder) *Controller {
	return &Controller{
		provider:   provider,
		stats:      recorder,
		lastAccess: time.Now(),
	}
}

// StartNewPuzzle fetches a puzzle and, on success, replaces the current one
// and clears the guess state. The lock is not held during the fetch, so the
// previous puzzle stays playable until the new one arrives.
func (c *Controller) StartNewPuzzle(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if c.fetching {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, ErrFetchInProgress
	}
	c.fetching = true
	c.lastAccess = time.Now()
	c.mu.Unlock()

	puzzle, err := c.provider.FetchRandomEntity(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetching = false
	if err != nil {
		var perr *ProviderError
		if !errors.As(err, &perr) {
			err = &ProviderError{Op: "fetch", Err: err}
		}
		log.Warn().Err(err).Msg("new puzzle fetch failed")
		return c.snapshotLocked(), err
	}

	c.puzzle = &puzzle
	c.guess = GuessState{}
	log.Debug().Int("id", puzzle.ID).Str("name", puzzle.Name).Msg("puzzle started")
	return c.snapshotLocked(), nil
}

// UpdateGuessText stores the player's current input without validating it.
func (c *Controller) UpdateGuessText(text string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.guess.InputText = text
	c.lastAccess = time.Now()
	return c.snapshotLocked()
}

// SubmitGuess validates the stored input against the active puzzle. A
// correct guess locks the puzzle; a wrong one does not, so the player may
// keep trying.
func (c *Controller) SubmitGuess() (Snapshot, Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastAccess = time.Now()

	if c.guess.IsLocked || c.puzzle == nil {
		return c.snapshotLocked(), OutcomeIgnored
	}

	c.guess.IsWrong = false
	if NamesMatch(c.guess.InputText, c.puzzle.Name) {
		c.guess.IsRevealed = true
		c.guess.IsLocked = true
		c.stats.Increment(stats.KindCorrect)
		return c.snapshotLocked(), OutcomeCorrect
	}

	c.guess.IsWrong = true
	c.stats.Increment(stats.KindIncorrect)
	return c.snapshotLocked(), OutcomeIncorrect
}

// Guess stores text and submits it in one step.
func (c *Controller) Guess(text string) (Snapshot, Outcome) {
	c.UpdateGuessText(text)
	return c.SubmitGuess()
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// LastAccess reports when the controller was last used.
func (c *Controller) LastAccess() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastAccess
}

// Touch marks the controller as used now.
func (c *Controller) Touch() {
	c.mu.Lock()
	c.lastAccess = time.Now()
	c.mu.Unlock()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Guess:   c.guess,
		Stats:   c.stats.Current(),
		Loading: c.puzzle == nil,
	}
	if c.puzzle != nil {
		p := *c.puzzle
		snap.Puzzle = &p
	}
	return snap
}
