package engine

import (
	"errors"
	"testing"

	"github.com/lettergrid/wordguess/internal/game"
	"github.com/lettergrid/wordguess/internal/persist"
	"github.com/lettergrid/wordguess/internal/words"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	dict, err := words.NewFromLists(
		[]string{"CRANE", "HELLO"},
		[]string{"WORLD", "SOUTH", "BOOST"},
	)
	if err != nil {
		t.Fatalf("dictionary: %v", err)
	}
	return New(dict, persist.NewGateway(persist.NewMemoryKV(), "slot"))
}

func typeWord(t *testing.T, e *Engine, word string) {
	t.Helper()
	for _, ch := range word {
		if ok, err := e.AddLetter(ch); err != nil || !ok {
			t.Fatalf("AddLetter(%c) = %v/%v", ch, ok, err)
		}
	}
}

func TestOperationsWithoutSession(t *testing.T) {
	e := testEngine(t)
	if _, err := e.AddLetter('A'); !errors.Is(err, ErrNoSession) {
		t.Fatalf("AddLetter err = %v", err)
	}
	if _, err := e.RemoveLetter(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("RemoveLetter err = %v", err)
	}
	if _, err := e.SubmitGuess(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("SubmitGuess err = %v", err)
	}
	if _, err := e.GameState(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("GameState err = %v", err)
	}
}

func TestNewGame(t *testing.T) {
	e := testEngine(t)

	view, err := e.NewGame("crane")
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if view.Status != game.StatusPlaying || view.GuessesLeft != game.MaxGuesses {
		t.Fatalf("view = %+v", view)
	}
	if view.Answer != "" {
		t.Fatal("answer leaked while playing")
	}

	if _, err := e.NewGame("xy"); !errors.Is(err, ErrBadSecret) {
		t.Fatalf("err = %v, want ErrBadSecret", err)
	}

	// Random draw comes from the dictionary's answers.
	view, err = e.NewGame("")
	if err != nil {
		t.Fatalf("NewGame(random): %v", err)
	}
	res := playRound(t, e, "CRANE", "HELLO")
	if res == nil {
		t.Fatal("neither answer won; random secret outside the answer list")
	}
}

// playRound guesses each candidate until one wins; returns the winning
// result or nil.
func playRound(t *testing.T, e *Engine, candidates ...string) *SubmitResult {
	t.Helper()
	for _, w := range candidates {
		typeWord(t, e, w)
		res, err := e.SubmitGuess()
		if err != nil {
			t.Fatalf("SubmitGuess(%s): %v", w, err)
		}
		if !res.Accepted {
			t.Fatalf("guess %s rejected: %s", w, res.Reason)
		}
		if res.View.Status == game.StatusWon {
			return res
		}
	}
	return nil
}

func TestSubmitRejections(t *testing.T) {
	e := testEngine(t)
	if _, err := e.NewGame("CRANE"); err != nil {
		t.Fatal(err)
	}

	// Incomplete input: rejected, input untouched.
	typeWord(t, e, "CRA")
	res, err := e.SubmitGuess()
	if err != nil {
		t.Fatal(err)
	}
	if res.Accepted || res.Reason != words.ReasonWrongLength {
		t.Fatalf("res = %+v", res)
	}
	if res.View.Input != "CRA" {
		t.Fatalf("incomplete submit cleared input: %q", res.View.Input)
	}

	// Finishing the word makes it submittable.
	typeWord(t, e, "NE")
	res, err = e.SubmitGuess()
	if err != nil || !res.Accepted {
		t.Fatalf("CRANE should be accepted: %+v err=%v", res, err)
	}
	if res.View.Status != game.StatusWon {
		t.Fatalf("status = %v, want won", res.View.Status)
	}
}

func TestUnknownWordClearsInput(t *testing.T) {
	e := testEngine(t)
	if _, err := e.NewGame("CRANE"); err != nil {
		t.Fatal(err)
	}
	typeWord(t, e, "ZZZZZ")
	res, err := e.SubmitGuess()
	if err != nil {
		t.Fatal(err)
	}
	if res.Accepted || res.Reason != words.ReasonNotInDictionary {
		t.Fatalf("res = %+v", res)
	}
	if res.View.Input != "" {
		t.Fatalf("input not cleared: %q", res.View.Input)
	}
	if len(res.View.Guesses) != 0 {
		t.Fatal("rejected word consumed a guess")
	}
}

func TestWinFlowAndStats(t *testing.T) {
	e := testEngine(t)
	if _, err := e.NewGame("HELLO"); err != nil {
		t.Fatal(err)
	}

	typeWord(t, e, "WORLD")
	if res, _ := e.SubmitGuess(); res.View.Status != game.StatusPlaying {
		t.Fatalf("status = %v", res.View.Status)
	}
	typeWord(t, e, "HELLO")
	res, err := e.SubmitGuess()
	if err != nil {
		t.Fatal(err)
	}
	if res.View.Status != game.StatusWon || res.View.Answer != "HELLO" {
		t.Fatalf("view = %+v", res.View)
	}
	if len(res.Unlocked) == 0 {
		t.Fatal("first win unlocked nothing")
	}

	// Submitting after terminal is caller misuse.
	if _, err := e.SubmitGuess(); !errors.Is(err, game.ErrFinished) {
		t.Fatalf("err = %v, want ErrFinished", err)
	}

	snap, achievements := e.Statistics()
	if snap.GamesPlayed != 1 || snap.GamesWon != 1 || snap.GuessDistribution[1] != 1 {
		t.Fatalf("snapshot = %+v", snap)
	}
	var firstWin bool
	for _, a := range achievements {
		if a.ID == "first_win" && a.UnlockedAt != nil {
			firstWin = true
		}
	}
	if !firstWin {
		t.Fatal("first_win not in catalog view")
	}
	if len(e.History()) != 1 {
		t.Fatalf("history = %v", e.History())
	}
}

func TestNewGameDiscardsUnterminatedSession(t *testing.T) {
	e := testEngine(t)
	v1, _ := e.NewGame("CRANE")
	typeWord(t, e, "WORLD")
	if _, err := e.SubmitGuess(); err != nil {
		t.Fatal(err)
	}
	v2, err := e.NewGame("HELLO")
	if err != nil {
		t.Fatal(err)
	}
	if v1.ID == v2.ID {
		t.Fatal("session not replaced")
	}
	if len(v2.Guesses) != 0 {
		t.Fatal("old guesses leaked into new session")
	}
	// Abandoned session never reaches statistics.
	if snap, _ := e.Statistics(); snap.GamesPlayed != 0 {
		t.Fatalf("abandoned session counted: %+v", snap)
	}
}

func TestStatePersistsAcrossEngines(t *testing.T) {
	dict, err := words.NewFromLists([]string{"CRANE"}, []string{"SOUTH"})
	if err != nil {
		t.Fatal(err)
	}
	kv := persist.NewMemoryKV()

	e1 := New(dict, persist.NewGateway(kv, "slot"))
	if _, err := e1.NewGame("CRANE"); err != nil {
		t.Fatal(err)
	}
	typeWord(t, e1, "SOUTH")
	if _, err := e1.SubmitGuess(); err != nil {
		t.Fatal(err)
	}

	// A second engine on the same slot resumes mid-round.
	e2 := New(dict, persist.NewGateway(kv, "slot"))
	view, err := e2.GameState()
	if err != nil {
		t.Fatalf("GameState: %v", err)
	}
	if len(view.Guesses) != 1 || view.Guesses[0].Word != "SOUTH" {
		t.Fatalf("resumed view = %+v", view)
	}

	typeWord(t, e2, "CRANE")
	res, err := e2.SubmitGuess()
	if err != nil || res.View.Status != game.StatusWon {
		t.Fatalf("res = %+v err = %v", res, err)
	}

	e3 := New(dict, persist.NewGateway(kv, "slot"))
	if snap, _ := e3.Statistics(); snap.GamesWon != 1 {
		t.Fatalf("stats not persisted: %+v", snap)
	}
}

func TestSettingsAndReset(t *testing.T) {
	e := testEngine(t)
	if got := e.Settings(); got != persist.DefaultSettings() {
		t.Fatalf("settings = %+v", got)
	}
	e.UpdateSettings(persist.Settings{HardMode: true, Theme: "light"})
	if !e.Settings().HardMode {
		t.Fatal("settings not updated")
	}

	if _, err := e.NewGame("CRANE"); err != nil {
		t.Fatal(err)
	}
	e.ResetAll()
	if _, err := e.GameState(); !errors.Is(err, ErrNoSession) {
		t.Fatal("reset kept the session")
	}
	if snap, _ := e.Statistics(); snap.GamesPlayed != 0 {
		t.Fatal("reset kept statistics")
	}
	if e.Settings() != persist.DefaultSettings() {
		t.Fatal("reset kept settings")
	}
}
