// internal/stats/engine.go
//
// Cross-session statistics aggregation.
// Responsibilities:
//   - Running totals: games played/won, current and max streak.
//   - Guess-count histogram over won games (stored counters).
//   - Compact, prunable history log of finished sessions.
//   - Achievement unlocking driven by session completion (achievements.go).
//
// The stored/derived split is deliberate: guessDistribution and the streak
// counters are stored, while winPercentage and averageGuesses are derived
// on read (the latter from history).

package stats

import (
	"errors"
	"math"
	"time"

	"github.com/lettergrid/wordguess/internal/game"
)

var (
	// ErrAlreadyFinalized rejects double-finalization of a session id.
	ErrAlreadyFinalized = errors.New("stats: session already recorded")
	// ErrNotFinished rejects finalization of a session still in play.
	ErrNotFinished = errors.New("stats: session not finished")
)

// Record is one compact history entry for a finished session.
type Record struct {
	SessionID   string      `json:"sessionId"`
	Word        string      `json:"word"`
	Status      game.Status `json:"status"`
	GuessCount  int         `json:"guessCount"`
	DurationMs  int64       `json:"durationMs"`
	CompletedAt time.Time   `json:"completedAt"`
}

// Snapshot is a read-only view of the aggregates, including derived fields.
type Snapshot struct {
	GamesPlayed       int                  `json:"gamesPlayed"`
	GamesWon          int                  `json:"gamesWon"`
	CurrentStreak     int                  `json:"currentStreak"`
	MaxStreak         int                  `json:"maxStreak"`
	GuessDistribution [game.MaxGuesses]int `json:"guessDistribution"`
	WinPercentage     int                  `json:"winPercentage"`
	AverageGuesses    float64              `json:"averageGuesses"`
}

// Engine accumulates statistics across sessions. Not safe for concurrent
// use; callers serialize access (one engine per player slot).
type Engine struct {
	played    int
	won       int
	streak    int
	maxStreak int
	dist      [game.MaxGuesses]int
	history   []Record
	seen      map[string]struct{} // session ids present in history
	unlocked  map[string]time.Time
}

// NewEngine returns an empty statistics engine.
func NewEngine() *Engine {
	return &Engine{
		seen:     make(map[string]struct{}),
		unlocked: make(map[string]time.Time),
	}
}

// Finalize records a terminal session exactly once and returns any newly
// unlocked achievements. A session id already present in history is
// rejected with ErrAlreadyFinalized; a non-terminal session with
// ErrNotFinished. Neither mutates state.
func (e *Engine) Finalize(s *game.Session) ([]Achievement, error) {
	if !s.Status.Finished() {
		return nil, ErrNotFinished
	}
	if _, dup := e.seen[s.ID]; dup {
		return nil, ErrAlreadyFinalized
	}

	e.played++
	if s.Status == game.StatusWon {
		e.won++
		e.streak++
		if e.streak > e.maxStreak {
			e.maxStreak = e.streak
		}
		e.dist[s.GuessCount()-1]++
	} else {
		e.streak = 0
	}

	e.history = append(e.history, Record{
		SessionID:   s.ID,
		Word:        s.Secret,
		Status:      s.Status,
		GuessCount:  s.GuessCount(),
		DurationMs:  s.Duration().Milliseconds(),
		CompletedAt: time.Now().UTC(),
	})
	e.seen[s.ID] = struct{}{}

	return e.unlock(s), nil
}

// Snapshot builds the read-only aggregate view.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		GamesPlayed:       e.played,
		GamesWon:          e.won,
		CurrentStreak:     e.streak,
		MaxStreak:         e.maxStreak,
		GuessDistribution: e.dist,
	}
	if e.played > 0 {
		snap.WinPercentage = int(math.Round(float64(e.won) / float64(e.played) * 100))
	}
	// Average guesses over won games, derived from history.
	var sum, n int
	for _, r := range e.history {
		if r.Status == game.StatusWon {
			sum += r.GuessCount
			n++
		}
	}
	if n > 0 {
		snap.AverageGuesses = float64(sum) / float64(n)
	}
	return snap
}

// History returns a copy of the history log, oldest first.
func (e *Engine) History() []Record {
	return append([]Record{}, e.history...)
}

// PruneHistory keeps the most recent n records and reports how many were
// dropped. Pruned sessions can no longer be detected as duplicates.
func (e *Engine) PruneHistory(keep int) int {
	if keep < 0 {
		keep = 0
	}
	dropped := len(e.history) - keep
	if dropped <= 0 {
		return 0
	}
	for _, r := range e.history[:dropped] {
		delete(e.seen, r.SessionID)
	}
	e.history = append([]Record{}, e.history[dropped:]...)
	return dropped
}

// Dump is the serializable form of the engine's stored fields.
// Unlocked achievements are carried separately in the persisted root.
type Dump struct {
	GamesPlayed       int                  `json:"gamesPlayed"`
	GamesWon          int                  `json:"gamesWon"`
	CurrentStreak     int                  `json:"currentStreak"`
	MaxStreak         int                  `json:"maxStreak"`
	GuessDistribution [game.MaxGuesses]int `json:"guessDistribution"`
	History           []Record             `json:"history"`
}

// Dump exports the stored fields.
func (e *Engine) Dump() Dump {
	return Dump{
		GamesPlayed:       e.played,
		GamesWon:          e.won,
		CurrentStreak:     e.streak,
		MaxStreak:         e.maxStreak,
		GuessDistribution: e.dist,
		History:           e.History(),
	}
}

// FromDump rebuilds an engine from its stored fields plus the unlocked
// achievement set.
func FromDump(d Dump, unlocked map[string]time.Time) *Engine {
	e := NewEngine()
	e.played = d.GamesPlayed
	e.won = d.GamesWon
	e.streak = d.CurrentStreak
	e.maxStreak = d.MaxStreak
	e.dist = d.GuessDistribution
	e.history = append([]Record{}, d.History...)
	for _, r := range e.history {
		e.seen[r.SessionID] = struct{}{}
	}
	for id, at := range unlocked {
		e.unlocked[id] = at
	}
	return e
}

// Unlocked returns a copy of the unlocked achievement id → timestamp map.
func (e *Engine) Unlocked() map[string]time.Time {
	out := make(map[string]time.Time, len(e.unlocked))
	for id, at := range e.unlocked {
		out[id] = at
	}
	return out
}
