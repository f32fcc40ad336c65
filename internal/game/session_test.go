package game

import "testing"

func typeWord(t *testing.T, s *Session, word string) {
	t.Helper()
	for _, ch := range word {
		if !s.AddLetter(ch) {
			t.Fatalf("AddLetter(%c) refused, input %q", ch, s.Input)
		}
	}
}

func submitWord(t *testing.T, s *Session, word string) Guess {
	t.Helper()
	typeWord(t, s, word)
	g, err := s.SubmitGuess()
	if err != nil {
		t.Fatalf("SubmitGuess(%s): %v", word, err)
	}
	return g
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession("crane")
	if s.ID == "" {
		t.Fatal("expected a session id")
	}
	if s.Secret != "CRANE" {
		t.Fatalf("secret not uppercased: %q", s.Secret)
	}
	if s.Status != StatusPlaying {
		t.Fatalf("status = %v, want playing", s.Status)
	}
	if !s.EndedAt.IsZero() {
		t.Fatal("EndedAt set before terminal transition")
	}
}

func TestAddRemoveLetter(t *testing.T) {
	s := NewSession("CRANE")

	if s.AddLetter('1') {
		t.Fatal("accepted a non-letter")
	}
	if s.RemoveLetter() {
		t.Fatal("removed from empty input")
	}

	typeWord(t, s, "crane")
	if s.Input != "CRANE" {
		t.Fatalf("input = %q, want CRANE", s.Input)
	}
	if s.AddLetter('X') {
		t.Fatal("accepted a sixth letter")
	}
	if !s.RemoveLetter() {
		t.Fatal("RemoveLetter refused on non-empty input")
	}
	if s.Input != "CRAN" {
		t.Fatalf("input = %q after remove, want CRAN", s.Input)
	}
}

func TestSubmitIncompleteWord(t *testing.T) {
	s := NewSession("CRANE")
	typeWord(t, s, "CRA")
	if _, err := s.SubmitGuess(); err != ErrIncomplete {
		t.Fatalf("err = %v, want ErrIncomplete", err)
	}
	if s.Input != "CRA" || len(s.Guesses) != 0 {
		t.Fatal("incomplete submit mutated state")
	}
}

func TestWinTransition(t *testing.T) {
	s := NewSession("CRANE")
	submitWord(t, s, "SOUTH")
	g := submitWord(t, s, "CRANE")

	if !allCorrect(g.Marks) {
		t.Fatalf("winning guess marks = %v", g.Marks)
	}
	if s.Status != StatusWon {
		t.Fatalf("status = %v, want won", s.Status)
	}
	if s.EndedAt.IsZero() {
		t.Fatal("EndedAt not set at terminal transition")
	}
	if s.Input != "" {
		t.Fatal("input not cleared after submit")
	}

	// No further mutation after terminal.
	if s.AddLetter('A') {
		t.Fatal("AddLetter accepted after win")
	}
	if _, err := s.SubmitGuess(); err != ErrFinished {
		t.Fatalf("err = %v, want ErrFinished", err)
	}
}

func TestLossAfterMaxGuesses(t *testing.T) {
	s := NewSession("CRANE")
	for i := 0; i < MaxGuesses; i++ {
		if s.Status != StatusPlaying {
			t.Fatalf("terminal after %d guesses", i)
		}
		submitWord(t, s, "SOUTH")
	}
	if s.Status != StatusLost {
		t.Fatalf("status = %v, want lost", s.Status)
	}
	if s.GuessCount() != MaxGuesses {
		t.Fatalf("guess count = %d", s.GuessCount())
	}
	if s.AddLetter('A') {
		t.Fatal("AddLetter accepted after loss")
	}
}

func TestUsedLettersNeverDowngrade(t *testing.T) {
	s := NewSession("HELLO")

	// L correct at position 3, E present.
	submitWord(t, s, "WORLD")
	if s.Used["L"] != LetterCorrect {
		t.Fatalf("L = %v, want correct", s.Used["L"])
	}
	if s.Used["O"] != LetterPresent {
		t.Fatalf("O = %v, want present", s.Used["O"])
	}

	// A guess where L lands on a non-L position must not downgrade it.
	submitWord(t, s, "LUCKY")
	if s.Used["L"] != LetterCorrect {
		t.Fatalf("L downgraded to %v", s.Used["L"])
	}
	if s.Used["U"] != LetterAbsent {
		t.Fatalf("U = %v, want absent", s.Used["U"])
	}

	// Upgrades still apply: O observed correct later.
	submitWord(t, s, "HOUSE")
	if s.Used["H"] != LetterCorrect {
		t.Fatalf("H = %v, want correct", s.Used["H"])
	}
}
