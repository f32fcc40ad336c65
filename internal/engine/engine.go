// internal/engine/engine.go
//
// Caller-facing API over the core: one engine per player slot, owning the
// single active session, the statistics engine, and the player settings.
// Every mutating operation persists through the gateway afterwards; the
// in-memory state stays authoritative when persistence fails.
//
// Error split follows the rest of the module: expected user input problems
// (wrong length, unknown word) come back as structured SubmitResult
// rejections, while caller misuse (no session, mutating a finished round)
// is an error return.

package engine

import (
	"errors"

	"github.com/lettergrid/wordguess/internal/game"
	"github.com/lettergrid/wordguess/internal/persist"
	"github.com/lettergrid/wordguess/internal/stats"
	"github.com/lettergrid/wordguess/internal/words"
)

var (
	// ErrNoSession signals an operation on a slot with no active round.
	ErrNoSession = errors.New("engine: no active session")
	// ErrEmptyDictionary signals that no answer could be drawn.
	ErrEmptyDictionary = errors.New("engine: dictionary has no answers")
	// ErrBadSecret signals a caller-supplied secret failing format checks.
	ErrBadSecret = errors.New("engine: invalid secret word")
)

// Engine orchestrates dictionary, session, statistics, and persistence for
// one player slot. Not safe for concurrent use; callers serialize access.
type Engine struct {
	dict *words.Dictionary
	gw   *persist.Gateway
	st   *persist.State
}

// New loads the slot's persisted state (fresh default when absent).
func New(dict *words.Dictionary, gw *persist.Gateway) *Engine {
	return &Engine{dict: dict, gw: gw, st: gw.Load()}
}

// GameView is the UI-facing projection of the active session. The answer
// is revealed only once the round is over.
type GameView struct {
	ID          string                      `json:"id"`
	Guesses     []game.Guess                `json:"guesses"`
	Input       string                      `json:"input"`
	Status      game.Status                 `json:"status"`
	UsedLetters map[string]game.LetterState `json:"usedLetters"`
	GuessesLeft int                         `json:"guessesLeft"`
	Answer      string                      `json:"answer,omitempty"`
}

func viewOf(s *game.Session) *GameView {
	v := &GameView{
		ID:          s.ID,
		Guesses:     append([]game.Guess{}, s.Guesses...),
		Input:       s.Input,
		Status:      s.Status,
		UsedLetters: make(map[string]game.LetterState, len(s.Used)),
		GuessesLeft: game.MaxGuesses - s.GuessCount(),
	}
	for k, st := range s.Used {
		v.UsedLetters[k] = st
	}
	if s.Status.Finished() {
		v.Answer = s.Secret
	}
	return v
}

// NewGame starts a fresh round, discarding any prior unterminated session.
// An empty secret draws a random answer from the dictionary; a supplied
// secret must pass format validation.
func (e *Engine) NewGame(secret string) (*GameView, error) {
	if secret == "" {
		secret = e.dict.PickRandom()
		if secret == "" {
			return nil, ErrEmptyDictionary
		}
	} else {
		v := words.ValidateFormat(secret)
		if !v.Valid {
			return nil, ErrBadSecret
		}
		secret = v.Normalized
	}
	e.st.Session = game.NewSession(secret)
	e.gw.Save(e.st)
	return viewOf(e.st.Session), nil
}

// AddLetter appends a letter to the current input. Reports whether the
// letter was taken; full input or a finished round is a quiet no-op.
func (e *Engine) AddLetter(ch rune) (bool, error) {
	s := e.st.Session
	if s == nil {
		return false, ErrNoSession
	}
	ok := s.AddLetter(ch)
	if ok {
		e.gw.Save(e.st)
	}
	return ok, nil
}

// RemoveLetter pops the last typed letter.
func (e *Engine) RemoveLetter() (bool, error) {
	s := e.st.Session
	if s == nil {
		return false, ErrNoSession
	}
	ok := s.RemoveLetter()
	if ok {
		e.gw.Save(e.st)
	}
	return ok, nil
}

// SubmitResult is the structured outcome of a submit attempt.
type SubmitResult struct {
	Accepted bool                `json:"accepted"`
	Reason   words.Reason        `json:"reason,omitempty"`
	Guess    *game.Guess         `json:"guess,omitempty"`
	Unlocked []stats.Achievement `json:"unlocked,omitempty"`
	View     *GameView           `json:"game"`
}

// SubmitGuess validates the typed word (format + dictionary membership)
// and applies it to the session. Rejections clear the partial input so the
// player can retype, except for an incomplete word, which leaves the input
// untouched. A finished round returns game.ErrFinished.
func (e *Engine) SubmitGuess() (*SubmitResult, error) {
	s := e.st.Session
	if s == nil {
		return nil, ErrNoSession
	}
	if s.Status.Finished() {
		return nil, game.ErrFinished
	}
	if len(s.Input) != game.WordLength {
		return &SubmitResult{Reason: words.ReasonWrongLength, View: viewOf(s)}, nil
	}

	if v := e.dict.ValidateWord(s.Input); !v.Valid {
		s.Input = ""
		e.gw.Save(e.st)
		return &SubmitResult{Reason: v.Reason, View: viewOf(s)}, nil
	}

	g, err := s.SubmitGuess()
	if err != nil {
		return nil, err
	}

	res := &SubmitResult{Accepted: true, Guess: &g}
	if s.Status.Finished() {
		unlocked, err := e.st.Stats.Finalize(s)
		if err != nil && !errors.Is(err, stats.ErrAlreadyFinalized) {
			return nil, err
		}
		res.Unlocked = unlocked
	}
	e.gw.Save(e.st)
	res.View = viewOf(s)
	return res, nil
}

// GameState returns the active session's view, or ErrNoSession.
func (e *Engine) GameState() (*GameView, error) {
	if e.st.Session == nil {
		return nil, ErrNoSession
	}
	return viewOf(e.st.Session), nil
}

// Statistics returns the aggregate snapshot plus the achievement catalog.
func (e *Engine) Statistics() (stats.Snapshot, []stats.Achievement) {
	return e.st.Stats.Snapshot(), e.st.Stats.Achievements()
}

// History returns the finished-game log, oldest first.
func (e *Engine) History() []stats.Record {
	return e.st.Stats.History()
}

// PruneHistory keeps the most recent n history records.
func (e *Engine) PruneHistory(keep int) int {
	dropped := e.st.Stats.PruneHistory(keep)
	if dropped > 0 {
		e.gw.Save(e.st)
	}
	return dropped
}

// Settings returns the player preferences.
func (e *Engine) Settings() persist.Settings {
	return e.st.Settings
}

// UpdateSettings replaces the player preferences.
func (e *Engine) UpdateSettings(s persist.Settings) {
	e.st.Settings = s
	e.gw.Save(e.st)
}

// ResetAll wipes session, statistics, achievements, and settings for the
// slot, both in memory and in storage.
func (e *Engine) ResetAll() {
	e.gw.Clear()
	e.st = persist.DefaultState()
	e.gw.Save(e.st)
}
