// internal/httpserver/server.go
//
// HTTP wiring for the wordguess backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): new game, letter input, guess, state.
//   - Stats, settings, reset (optional auth — guests keep state via cookie).
//   - Dictionary management endpoints (require auth).
//   - Auth endpoints and cookie/JWT handling live in auth.go.
//
// Each request binds an engine to the caller's persisted slot: the
// authenticated user id, or a stable anonymous cookie id for guests.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/lettergrid/wordguess/internal/config"
	"github.com/lettergrid/wordguess/internal/engine"
	"github.com/lettergrid/wordguess/internal/game"
	"github.com/lettergrid/wordguess/internal/persist"
	"github.com/lettergrid/wordguess/internal/words"
)

// Server bundles router, dictionary, KV storage, and DB handle.
type Server struct {
	r    *chi.Mux
	dict *words.Dictionary
	kv   persist.KV
	db   *sql.DB
	cfg  *config.Config
}

// New constructs a Server, installs middleware, and registers routes.
func New(dict *words.Dictionary, kv persist.KV, db *sql.DB, cfg *config.Config) *Server {
	s := &Server{r: chi.NewRouter(), dict: dict, kv: kv, db: db, cfg: cfg}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordguess","endpoints":["/health","POST /game/new","POST /game/guess","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.dict.Counts()
		_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "allowed": g})
	})

	// Game + player state — OPTIONAL AUTH (guests play on an anon cookie)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/letter", s.handleAddLetter)
		r.Delete("/game/letter", s.handleRemoveLetter)
		r.Post("/game/guess", s.handleGuess)
		r.Get("/game/state", s.handleGameState)
		r.Get("/stats/me", s.handleStats)
		r.Get("/games/mine", s.handleHistory)
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handlePutSettings)
		r.Post("/reset", s.handleReset)
	})

	// Dictionary management — REQUIRE AUTH
	s.r.Group(func(r chi.Router) {
		r.Use(s.requireAuth())
		r.Post("/words", s.handleWordsAdd)
		r.Delete("/words/{word}", s.handleWordsRemove)
		r.Post("/words/reset", s.handleWordsReset)
		r.Get("/words/export", s.handleWordsExport)
		r.Put("/words", s.handleWordsImport)
	})

	// Auth routes (auth.go)
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ engine slot --------------------------------

const stateKeyPrefix = "wordguessState:"

// engineFor binds an engine to the caller's persisted slot.
func (s *Server) engineFor(w http.ResponseWriter, r *http.Request) *engine.Engine {
	owner := s.ownerID(w, r)
	gw := persist.NewGateway(s.kv, stateKeyPrefix+owner)
	return engine.New(s.dict, gw)
}

// ------------------------------- GAME --------------------------------------

type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (testing)
}

// handleNewGame starts a round, discarding any unterminated prior session.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	eng := s.engineFor(w, r)
	view, err := eng.NewGame(req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrBadSecret):
			http.Error(w, `{"error":"invalid_answer"}`, http.StatusBadRequest)
		default:
			http.Error(w, `{"error":"new_game_failed"}`, http.StatusInternalServerError)
		}
		return
	}
	_ = json.NewEncoder(w).Encode(view)
}

type letterReq struct {
	Letter string `json:"letter"`
}
type letterRes struct {
	Accepted bool             `json:"accepted"`
	Game     *engine.GameView `json:"game,omitempty"`
}

// handleAddLetter appends one typed letter to the current input.
func (s *Server) handleAddLetter(w http.ResponseWriter, r *http.Request) {
	var req letterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Letter == "" {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	eng := s.engineFor(w, r)
	ok, err := eng.AddLetter([]rune(req.Letter)[0])
	if err != nil {
		http.Error(w, `{"error":"no_session"}`, http.StatusNotFound)
		return
	}
	view, _ := eng.GameState()
	_ = json.NewEncoder(w).Encode(letterRes{Accepted: ok, Game: view})
}

// handleRemoveLetter pops the last typed letter.
func (s *Server) handleRemoveLetter(w http.ResponseWriter, r *http.Request) {
	eng := s.engineFor(w, r)
	ok, err := eng.RemoveLetter()
	if err != nil {
		http.Error(w, `{"error":"no_session"}`, http.StatusNotFound)
		return
	}
	view, _ := eng.GameState()
	_ = json.NewEncoder(w).Encode(letterRes{Accepted: ok, Game: view})
}

// handleGuess submits the current input as a guess.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	eng := s.engineFor(w, r)
	res, err := eng.SubmitGuess()
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrNoSession):
			http.Error(w, `{"error":"no_session"}`, http.StatusNotFound)
		case errors.Is(err, game.ErrFinished):
			http.Error(w, `{"error":"game_finished"}`, http.StatusConflict)
		default:
			http.Error(w, `{"error":"guess_failed"}`, http.StatusInternalServerError)
		}
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// handleGameState returns the active session view.
func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	eng := s.engineFor(w, r)
	view, err := eng.GameState()
	if err != nil {
		http.Error(w, `{"error":"no_session"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(view)
}

// --------------------------- STATS & SETTINGS ------------------------------

// handleStats returns the aggregate snapshot plus the achievement catalog.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	eng := s.engineFor(w, r)
	snap, achievements := eng.Statistics()
	_ = json.NewEncoder(w).Encode(map[string]any{
		"statistics":   snap,
		"achievements": achievements,
	})
}

// handleHistory returns the finished-game log, newest first, capped at 50.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	eng := s.engineFor(w, r)
	recs := eng.History()
	for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
		recs[i], recs[j] = recs[j], recs[i]
	}
	if len(recs) > 50 {
		recs = recs[:50]
	}
	_ = json.NewEncoder(w).Encode(recs)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	eng := s.engineFor(w, r)
	_ = json.NewEncoder(w).Encode(eng.Settings())
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var st persist.Settings
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	eng := s.engineFor(w, r)
	eng.UpdateSettings(st)
	_ = json.NewEncoder(w).Encode(st)
}

// handleReset wipes the caller's slot: session, stats, achievements, settings.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	eng := s.engineFor(w, r)
	eng.ResetAll()
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// ----------------------------- DICTIONARY ----------------------------------

type wordsReq struct {
	Words []string `json:"words"`
}

// handleWordsAdd adds words to the allowed set; partial success reported.
func (s *Server) handleWordsAdd(w http.ResponseWriter, r *http.Request) {
	var req wordsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(s.dict.AddMany(req.Words))
}

// handleWordsRemove deletes one word from the dictionary.
func (s *Server) handleWordsRemove(w http.ResponseWriter, r *http.Request) {
	removed := s.dict.Remove(chi.URLParam(r, "word"))
	_ = json.NewEncoder(w).Encode(map[string]bool{"removed": removed})
}

// handleWordsReset restores the built-in lists.
func (s *Server) handleWordsReset(w http.ResponseWriter, r *http.Request) {
	s.dict.Reset()
	a, g := s.dict.Counts()
	_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "allowed": g})
}

// handleWordsExport dumps the full allowed set.
func (s *Server) handleWordsExport(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(wordsReq{Words: s.dict.Export()})
}

// handleWordsImport replaces the dictionary wholesale.
func (s *Server) handleWordsImport(w http.ResponseWriter, r *http.Request) {
	var req wordsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(s.dict.Import(req.Words))
}
