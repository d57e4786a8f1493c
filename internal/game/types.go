package game

import (
	"errors"
	"fmt"

	"pokeguess/internal/stats"
)

// Puzzle is the creature the player currently has to name.
type Puzzle struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// GuessState holds the transient flags for the active puzzle.
type GuessState struct {
	InputText  string `json:"inputText"`
	IsRevealed bool   `json:"isRevealed"`
	IsWrong    bool   `json:"isWrong"`
	IsLocked   bool   `json:"isLocked"`
}

// Snapshot is an immutable copy of a controller's state.
type Snapshot struct {
	Puzzle  *Puzzle     `json:"puzzle,omitempty"`
	Guess   GuessState  `json:"guess"`
	Stats   stats.Stats `json:"stats"`
	Loading bool        `json:"loading"`
}

// Outcome reports what a submission did.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeCorrect
	OutcomeIncorrect
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	default:
		return "ignored"
	}
}

// ErrFetchInProgress is returned when a puzzle fetch is already running.
var ErrFetchInProgress = errors.New("puzzle fetch already in progress")

// ProviderError wraps any failure to obtain a new puzzle.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("provider: %v", e.Err)
	}
	return fmt.Sprintf("provider %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
