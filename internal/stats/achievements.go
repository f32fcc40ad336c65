// internal/stats/achievements.go
//
// Achievement catalog and unlock evaluation.
// Predicates are evaluated against the already-updated aggregates and the
// just-finished session. They are monotone: once true for some finalize,
// the unlock is permanent and never revoked. Unlocking is idempotent per
// achievement id.

package stats

import (
	"time"

	"github.com/lettergrid/wordguess/internal/game"
)

const (
	streakThreshold  = 5
	veteranThreshold = 10
)

// Achievement describes one catalog entry; UnlockedAt is nil while locked.
type Achievement struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

type achievementDef struct {
	id, name, description string
	pred                  func(e *Engine, s *game.Session) bool
}

var catalog = []achievementDef{
	{
		id: "first_win", name: "First Win",
		description: "Win your first game.",
		pred:        func(e *Engine, _ *game.Session) bool { return e.won >= 1 },
	},
	{
		id: "ace", name: "Ace",
		description: "Win a game in a single guess.",
		pred: func(_ *Engine, s *game.Session) bool {
			return s.Status == game.StatusWon && s.GuessCount() == 1
		},
	},
	{
		id: "sharpshooter", name: "Sharpshooter",
		description: "Win a game in three guesses or fewer.",
		pred: func(_ *Engine, s *game.Session) bool {
			return s.Status == game.StatusWon && s.GuessCount() <= 3
		},
	},
	{
		id: "on_fire", name: "On Fire",
		description: "Reach a winning streak of five.",
		pred:        func(e *Engine, _ *game.Session) bool { return e.streak >= streakThreshold },
	},
	{
		id: "veteran", name: "Veteran",
		description: "Play ten games.",
		pred:        func(e *Engine, _ *game.Session) bool { return e.played >= veteranThreshold },
	},
}

// unlock evaluates every still-locked predicate and stamps the ones that
// hold. Returns the newly unlocked achievements.
func (e *Engine) unlock(s *game.Session) []Achievement {
	var fresh []Achievement
	now := time.Now().UTC()
	for _, def := range catalog {
		if _, done := e.unlocked[def.id]; done {
			continue
		}
		if !def.pred(e, s) {
			continue
		}
		e.unlocked[def.id] = now
		at := now
		fresh = append(fresh, Achievement{
			ID: def.id, Name: def.name, Description: def.description, UnlockedAt: &at,
		})
	}
	return fresh
}

// Achievements lists the full catalog with unlock timestamps where earned.
func (e *Engine) Achievements() []Achievement {
	out := make([]Achievement, 0, len(catalog))
	for _, def := range catalog {
		a := Achievement{ID: def.id, Name: def.name, Description: def.description}
		if at, ok := e.unlocked[def.id]; ok {
			t := at
			a.UnlockedAt = &t
		}
		out = append(out, a)
	}
	return out
}
