// internal/game/session.go
//
// A single round's state machine.
// Responsibilities:
//   - Accumulate typed letters into the current input (bounded by WordLength).
//   - Validate and apply submitted guesses via Evaluate.
//   - Track state transitions: playing → won/lost, terminal exactly once.
//   - Maintain best-known keyboard state per letter (never downgraded).
//
// Dictionary membership is enforced by the caller before SubmitGuess; the
// session itself only checks length and alphabet.

package game

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// WordLength is the fixed secret/guess length.
	WordLength = 5
	// MaxGuesses bounds the number of attempts per session.
	MaxGuesses = 6
)

var (
	// ErrFinished signals caller misuse: mutating a terminal session.
	ErrFinished = errors.New("game: session finished")
	// ErrIncomplete signals a submit with fewer than WordLength letters typed.
	ErrIncomplete = errors.New("game: incomplete word")
)

// Session holds the state of a single round. Owned exclusively by the
// caller that created it; discarded when a new round starts.
type Session struct {
	ID        string                 `json:"id"`
	Secret    string                 `json:"secret"`
	Guesses   []Guess                `json:"guesses"`
	Input     string                 `json:"input"`
	Status    Status                 `json:"status"`
	Used      map[string]LetterState `json:"-"` // best observed state per letter; encoded separately
	StartedAt time.Time              `json:"startedAt"`
	EndedAt   time.Time              `json:"endedAt"`
}

// NewSession constructs a playing session around an uppercase secret word.
func NewSession(secret string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Secret:    strings.ToUpper(secret),
		Guesses:   []Guess{},
		Used:      make(map[string]LetterState),
		StartedAt: time.Now().UTC(),
	}
}

// AddLetter appends one letter to the current input.
// No-op returning false when the input is full, the session is terminal,
// or ch is not a letter.
func (s *Session) AddLetter(ch rune) bool {
	if s.Status != StatusPlaying || len(s.Input) >= WordLength {
		return false
	}
	if ch >= 'a' && ch <= 'z' {
		ch -= 'a' - 'A'
	}
	if ch < 'A' || ch > 'Z' {
		return false
	}
	s.Input += string(ch)
	return true
}

// RemoveLetter pops the last typed letter.
// No-op returning false when the input is empty or the session is terminal.
func (s *Session) RemoveLetter() bool {
	if s.Status != StatusPlaying || len(s.Input) == 0 {
		return false
	}
	s.Input = s.Input[:len(s.Input)-1]
	return true
}

// SubmitGuess evaluates the current input against the secret.
//
// Returns ErrFinished when the session is terminal (caller misuse) and
// ErrIncomplete when fewer than WordLength letters are typed; neither
// mutates state. On success the guess is appended, the keyboard state is
// merged, the input is cleared, and the status check runs:
//   - input == secret           → won, EndedAt set
//   - guess count == MaxGuesses → lost, EndedAt set
//   - otherwise                 → still playing
func (s *Session) SubmitGuess() (Guess, error) {
	if s.Status != StatusPlaying {
		return Guess{}, ErrFinished
	}
	if len(s.Input) != WordLength {
		return Guess{}, ErrIncomplete
	}

	word := s.Input
	marks := Evaluate(s.Secret, word)
	g := Guess{Word: word, Marks: marks}
	s.Guesses = append(s.Guesses, g)

	// Merge keyboard feedback, keeping the maximum observed state so a
	// later absent observation never overwrites an earlier correct one.
	for i := 0; i < WordLength; i++ {
		k := word[i : i+1]
		if marks[i] > s.Used[k] {
			s.Used[k] = marks[i]
		}
	}

	s.Input = ""

	if allCorrect(marks) {
		s.Status = StatusWon
		s.EndedAt = time.Now().UTC()
	} else if len(s.Guesses) >= MaxGuesses {
		s.Status = StatusLost
		s.EndedAt = time.Now().UTC()
	}
	return g, nil
}

// GuessCount reports how many guesses have been submitted.
func (s *Session) GuessCount() int { return len(s.Guesses) }

// Duration is the elapsed play time; for terminal sessions it is frozen at
// the terminal transition.
func (s *Session) Duration() time.Duration {
	if s.EndedAt.IsZero() {
		return time.Since(s.StartedAt)
	}
	return s.EndedAt.Sub(s.StartedAt)
}
