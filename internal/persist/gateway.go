// internal/persist/gateway.go
//
// Serialization of the full persisted state through a KV capability.
// The persisted value is one JSON document per player slot holding
// {currentSession | null, statistics, achievements, settings}.
//
// Two shapes need explicit handling because they are not JSON-native maps:
// the per-letter keyboard state and the unlocked-achievement set both
// encode as tagged [key, value] arrays and decode back on load.
//
// Save and Load are best-effort: storage or codec failures are logged and
// swallowed, never surfaced — the in-memory state stays authoritative.

package persist

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lettergrid/wordguess/internal/game"
	"github.com/lettergrid/wordguess/internal/stats"
)

const stateVersion = 1

// Settings are player preferences carried opaquely in the persisted root.
type Settings struct {
	HardMode   bool   `json:"hardMode"`
	ColorBlind bool   `json:"colorBlind"`
	Theme      string `json:"theme"`
}

// DefaultSettings returns the out-of-the-box preferences.
func DefaultSettings() Settings {
	return Settings{Theme: "dark"}
}

// State is the in-memory root object round-tripped through storage.
type State struct {
	Session  *game.Session
	Stats    *stats.Engine
	Settings Settings
}

// DefaultState returns a fresh state: no active session, empty statistics.
func DefaultState() *State {
	return &State{Stats: stats.NewEngine(), Settings: DefaultSettings()}
}

// ---------------------------- wire format ----------------------------------

type statePayload struct {
	Version        int             `json:"version"`
	CurrentSession *sessionPayload `json:"currentSession"`
	Statistics     stats.Dump      `json:"statistics"`
	Achievements   [][2]string     `json:"achievements"` // [id, unlockedAt RFC3339]
	Settings       Settings        `json:"settings"`
}

type sessionPayload struct {
	ID          string       `json:"id"`
	Secret      string       `json:"secret"`
	Guesses     []game.Guess `json:"guesses"`
	Input       string       `json:"input"`
	Status      game.Status  `json:"status"`
	UsedLetters [][2]string  `json:"usedLetters"` // [letter, state name]
	StartedAt   time.Time    `json:"startedAt"`
	EndedAt     *time.Time   `json:"endedAt,omitempty"`
}

func encodeSession(s *game.Session) *sessionPayload {
	if s == nil {
		return nil
	}
	p := &sessionPayload{
		ID:        s.ID,
		Secret:    s.Secret,
		Guesses:   s.Guesses,
		Input:     s.Input,
		Status:    s.Status,
		StartedAt: s.StartedAt,
	}
	if !s.EndedAt.IsZero() {
		t := s.EndedAt
		p.EndedAt = &t
	}
	for letter, st := range s.Used {
		p.UsedLetters = append(p.UsedLetters, [2]string{letter, st.String()})
	}
	sort.Slice(p.UsedLetters, func(i, j int) bool {
		return p.UsedLetters[i][0] < p.UsedLetters[j][0]
	})
	return p
}

func decodeSession(p *sessionPayload) (*game.Session, error) {
	if p == nil {
		return nil, nil
	}
	if p.ID == "" || len(p.Secret) != game.WordLength {
		return nil, fmt.Errorf("persist: malformed session record")
	}
	s := &game.Session{
		ID:        p.ID,
		Secret:    p.Secret,
		Guesses:   p.Guesses,
		Input:     p.Input,
		Status:    p.Status,
		Used:      make(map[string]game.LetterState, len(p.UsedLetters)),
		StartedAt: p.StartedAt,
	}
	if s.Guesses == nil {
		s.Guesses = []game.Guess{}
	}
	if p.EndedAt != nil {
		s.EndedAt = *p.EndedAt
	}
	for _, pair := range p.UsedLetters {
		st, err := game.ParseLetterState(pair[1])
		if err != nil {
			return nil, err
		}
		s.Used[pair[0]] = st
	}
	return s, nil
}

func encodeAchievements(unlocked map[string]time.Time) [][2]string {
	out := make([][2]string, 0, len(unlocked))
	for id, at := range unlocked {
		out = append(out, [2]string{id, at.UTC().Format(time.RFC3339)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

func decodeAchievements(pairs [][2]string) (map[string]time.Time, error) {
	out := make(map[string]time.Time, len(pairs))
	for _, pair := range pairs {
		if pair[0] == "" {
			return nil, fmt.Errorf("persist: empty achievement id")
		}
		at, err := time.Parse(time.RFC3339, pair[1])
		if err != nil {
			return nil, fmt.Errorf("persist: achievement %s: %w", pair[0], err)
		}
		out[pair[0]] = at
	}
	return out, nil
}

// ------------------------------ gateway ------------------------------------

// Gateway round-trips one State through a KV slot.
type Gateway struct {
	kv  KV
	key string
}

// NewGateway binds a storage capability to a slot key.
func NewGateway(kv KV, key string) *Gateway {
	return &Gateway{kv: kv, key: key}
}

// Save serializes and stores the state. Failures are logged and swallowed.
func (g *Gateway) Save(st *State) {
	payload := statePayload{
		Version:        stateVersion,
		CurrentSession: encodeSession(st.Session),
		Statistics:     st.Stats.Dump(),
		Achievements:   encodeAchievements(st.Stats.Unlocked()),
		Settings:       st.Settings,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("key", g.key).Msg("encode state")
		return
	}
	if err := g.kv.Set(g.key, string(raw)); err != nil {
		log.Warn().Err(err).Str("key", g.key).Msg("save state")
	}
}

// Load reads and decodes the state. A missing, unreadable, or malformed
// record yields a fresh default state rather than an error.
func (g *Gateway) Load() *State {
	raw, ok, err := g.kv.Get(g.key)
	if err != nil {
		log.Warn().Err(err).Str("key", g.key).Msg("load state")
		return DefaultState()
	}
	if !ok {
		return DefaultState()
	}

	var payload statePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		log.Warn().Err(err).Str("key", g.key).Msg("decode state, starting fresh")
		return DefaultState()
	}
	if payload.Version != stateVersion {
		log.Warn().Int("version", payload.Version).Str("key", g.key).Msg("unknown state version, starting fresh")
		return DefaultState()
	}

	sess, err := decodeSession(payload.CurrentSession)
	if err != nil {
		log.Warn().Err(err).Str("key", g.key).Msg("decode session, starting fresh")
		return DefaultState()
	}
	unlocked, err := decodeAchievements(payload.Achievements)
	if err != nil {
		log.Warn().Err(err).Str("key", g.key).Msg("decode achievements, starting fresh")
		return DefaultState()
	}

	return &State{
		Session:  sess,
		Stats:    stats.FromDump(payload.Statistics, unlocked),
		Settings: payload.Settings,
	}
}

// Clear removes the persisted slot entirely. Best-effort.
func (g *Gateway) Clear() {
	if err := g.kv.Remove(g.key); err != nil {
		log.Warn().Err(err).Str("key", g.key).Msg("clear state")
	}
}
