// internal/game/types.go
//
// Core type definitions for the wordguess engine.
// Defines:
//   - LetterState: per-letter result of a guess (correct/present/absent/unused).
//   - Status: session state (playing/won/lost).
//   - Guess: an accepted word plus its per-position marks.
//
// Both enums are closed tagged variants rather than raw strings so that
// illegal values are unrepresentable; their JSON form is the lowercase name.

package game

import "fmt"

// LetterState is the evaluation result for a single letter of a guess.
// The numeric order doubles as the "best known state" order used when
// merging keyboard feedback: correct > present > absent > unused.
type LetterState int8

const (
	LetterUnused LetterState = iota
	LetterAbsent
	LetterPresent
	LetterCorrect
)

var letterStateNames = [...]string{"unused", "absent", "present", "correct"}

func (s LetterState) String() string {
	if s < LetterUnused || s > LetterCorrect {
		return "unknown"
	}
	return letterStateNames[s]
}

// MarshalJSON encodes the state as its lowercase name.
func (s LetterState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON decodes a lowercase state name.
func (s *LetterState) UnmarshalJSON(b []byte) error {
	v, err := ParseLetterState(string(trimQuotes(b)))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseLetterState maps a name back to its LetterState.
func ParseLetterState(name string) (LetterState, error) {
	for i, n := range letterStateNames {
		if n == name {
			return LetterState(i), nil
		}
	}
	return LetterUnused, fmt.Errorf("game: unknown letter state %q", name)
}

// Status is the lifecycle state of a session. Transitions are
// one-directional: playing → won or playing → lost, exactly once.
type Status int8

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
)

var statusNames = [...]string{"playing", "won", "lost"}

func (s Status) String() string {
	if s < StatusPlaying || s > StatusLost {
		return "unknown"
	}
	return statusNames[s]
}

// Finished reports whether the session reached a terminal state.
func (s Status) Finished() bool { return s == StatusWon || s == StatusLost }

func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *Status) UnmarshalJSON(b []byte) error {
	v, err := ParseStatus(string(trimQuotes(b)))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStatus maps a name back to its Status.
func ParseStatus(name string) (Status, error) {
	for i, n := range statusNames {
		if n == name {
			return Status(i), nil
		}
	}
	return StatusPlaying, fmt.Errorf("game: unknown status %q", name)
}

// Guess is an accepted word plus its per-position evaluation.
// Immutable once created by SubmitGuess.
type Guess struct {
	Word  string        `json:"word"`
	Marks []LetterState `json:"marks"`
}

func trimQuotes(b []byte) []byte {
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		return b[1 : len(b)-1]
	}
	return b
}
