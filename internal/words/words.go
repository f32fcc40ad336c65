// internal/words/words.go
//
// Dictionary management for the game engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from environment-provided files
//     or fall back to embedded defaults.
//   - Answer format validation with structured reasons (never errors:
//     bad input is an expected, user-driven condition).
//   - Membership, random answer selection, and runtime mutation
//     (add/remove/reset/export/import).
//
// Word lists:
//   - "answers": curated solutions (PickRandom draws from these).
//   - "allowed": valid guesses (always includes answers).
//
// Environment variables:
//   WORDS_ANSWERS_FILE=/path/to/answers.txt
//   WORDS_ALLOWED_FILE=/path/to/allowed.txt
//
// Constraints:
//   • Words are exactly 5 alphabetic letters.
//   • Canonical form is uppercase A–Z.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/lettergrid/wordguess/assets"
	"github.com/lettergrid/wordguess/internal/game"
)

// Reason classifies why a word was rejected.
type Reason string

const (
	ReasonEmptyInput        Reason = "empty_input"
	ReasonWrongLength       Reason = "wrong_length"
	ReasonInvalidCharacters Reason = "invalid_characters"
	ReasonNotInDictionary   Reason = "not_in_dictionary"
)

// Validation is the structured result of validating a word.
// Normalized carries the uppercase form when Valid; Reason otherwise.
type Validation struct {
	Valid      bool   `json:"valid"`
	Normalized string `json:"normalized,omitempty"`
	Reason     Reason `json:"reason,omitempty"`
	IsAnswer   bool   `json:"isAnswer,omitempty"` // member of the curated answer list
}

// ValidateFormat checks shape only: non-empty, exactly game.WordLength
// letters, all A–Z after uppercasing. Dictionary membership is separate.
func ValidateFormat(w string) Validation {
	w = strings.TrimSpace(w)
	if w == "" {
		return Validation{Reason: ReasonEmptyInput}
	}
	up := strings.ToUpper(w)
	if len(up) != game.WordLength {
		return Validation{Reason: ReasonWrongLength}
	}
	for i := 0; i < len(up); i++ {
		if up[i] < 'A' || up[i] > 'Z' {
			return Validation{Reason: ReasonInvalidCharacters}
		}
	}
	return Validation{Valid: true, Normalized: up}
}

// Dictionary holds the answer and allowed word sets. Safe for concurrent
// use; mutation re-runs format validation per word.
type Dictionary struct {
	mu         sync.RWMutex
	answers    []string
	answerSet  map[string]struct{}
	allowedSet map[string]struct{} // answers ∪ extra guesses

	// immutable built-in snapshot restored by Reset
	builtinAnswers []string
	builtinAllowed []string
}

// New loads a Dictionary from WORDS_ANSWERS_FILE / WORDS_ALLOWED_FILE when
// set, falling back to the embedded defaults. Mirrors the file handling of
// the answer lists: one word per line, invalid lines dropped.
func New() (*Dictionary, error) {
	var ansList, allowList []string

	answersPath := os.Getenv("WORDS_ANSWERS_FILE")
	allowedPath := os.Getenv("WORDS_ALLOWED_FILE")

	switch {
	case answersPath != "":
		var err error
		ansList, err = readWordFile(answersPath)
		if err != nil {
			return nil, err
		}
		if allowedPath != "" {
			allowList, err = readWordFile(allowedPath)
			if err != nil {
				return nil, err
			}
		}

	case allowedPath != "":
		var err error
		allowList, err = readWordFile(allowedPath)
		if err != nil {
			return nil, err
		}
		ansList = allowList

	default:
		var err error
		ansList, err = assets.AnswersList()
		if err != nil {
			return nil, err
		}
		allowList, err = assets.AllowedList()
		if err != nil {
			return nil, err
		}
	}

	return NewFromLists(ansList, allowList)
}

// NewFromLists builds a Dictionary from explicit lists. Answers are always
// allowed; words failing format validation are dropped.
func NewFromLists(answers, allowed []string) (*Dictionary, error) {
	d := &Dictionary{}
	d.builtinAnswers = normalize(answers)
	d.builtinAllowed = normalize(allowed)
	d.install(d.builtinAnswers, d.builtinAllowed)
	if len(d.answers) == 0 {
		return nil, errors.New("words: answers list is empty")
	}
	return d, nil
}

// install replaces the live sets. Caller holds no lock yet.
func (d *Dictionary) install(answers, allowed []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.answers = append([]string{}, answers...)
	d.answerSet = toSet(answers)
	d.allowedSet = toSet(answers)
	for _, w := range allowed {
		d.allowedSet[w] = struct{}{}
	}
}

// IsMember reports whether w is format-valid and present in the dictionary.
func (d *Dictionary) IsMember(w string) bool {
	v := ValidateFormat(w)
	if !v.Valid {
		return false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.allowedSet[v.Normalized]
	return ok
}

// ValidateWord composes format validation and membership, distinguishing
// "not a word" from shape errors so callers can word feedback differently.
func (d *Dictionary) ValidateWord(w string) Validation {
	v := ValidateFormat(w)
	if !v.Valid {
		return v
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if _, ok := d.allowedSet[v.Normalized]; !ok {
		return Validation{Reason: ReasonNotInDictionary}
	}
	_, isAns := d.answerSet[v.Normalized]
	return Validation{Valid: true, Normalized: v.Normalized, IsAnswer: isAns}
}

// PickRandom returns a uniformly random answer word, or "" when the
// dictionary is empty. Draws from the curated answer list.
func (d *Dictionary) PickRandom() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if len(d.answers) == 0 {
		return ""
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(d.answers))))
	return d.answers[nBig.Int64()]
}

// Add inserts one word into the allowed set. Returns the validation
// result; invalid words are rejected, duplicates succeed silently.
func (d *Dictionary) Add(w string) Validation {
	v := ValidateFormat(w)
	if !v.Valid {
		return v
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.allowedSet[v.Normalized] = struct{}{}
	return v
}

// BatchResult reports partial success of a bulk mutation.
type BatchResult struct {
	Added    int `json:"added"`
	Rejected int `json:"rejected"`
}

// AddMany inserts each valid word, skipping the rest. Not all-or-nothing.
func (d *Dictionary) AddMany(ws []string) BatchResult {
	var res BatchResult
	for _, w := range ws {
		if d.Add(w).Valid {
			res.Added++
		} else {
			res.Rejected++
		}
	}
	return res
}

// Remove deletes a word from both the allowed set and the answer list.
// Returns false if the word was not a member.
func (d *Dictionary) Remove(w string) bool {
	v := ValidateFormat(w)
	if !v.Valid {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.allowedSet[v.Normalized]; !ok {
		return false
	}
	delete(d.allowedSet, v.Normalized)
	if _, ok := d.answerSet[v.Normalized]; ok {
		delete(d.answerSet, v.Normalized)
		for i, a := range d.answers {
			if a == v.Normalized {
				d.answers = append(d.answers[:i], d.answers[i+1:]...)
				break
			}
		}
	}
	return true
}

// Reset restores the immutable built-in lists.
func (d *Dictionary) Reset() {
	d.install(d.builtinAnswers, d.builtinAllowed)
}

// Export returns the full allowed set, sorted.
func (d *Dictionary) Export() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(d.allowedSet))
	for w := range d.allowedSet {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Import replaces the dictionary wholesale with the valid words of ws.
// The imported list becomes both the answer and allowed sets. Partial
// success: invalid words are counted, not fatal.
func (d *Dictionary) Import(ws []string) BatchResult {
	var res BatchResult
	var clean []string
	for _, w := range ws {
		v := ValidateFormat(w)
		if !v.Valid {
			res.Rejected++
			continue
		}
		clean = append(clean, v.Normalized)
		res.Added++
	}
	// normalize dedups repeated imports; a duplicate still counts as added.
	d.install(normalize(clean), nil)
	return res
}

// Counts returns the number of loaded words: (answers, allowed).
func (d *Dictionary) Counts() (answersCount, allowedCount int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.answers), len(d.allowedSet)
}

// readWordFile loads one word per line from a file, uppercases, trims,
// and keeps only valid fixed-length alphabetic words.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if v := ValidateFormat(sc.Text()); v.Valid {
			out = append(out, v.Normalized)
		}
	}
	return out, sc.Err()
}

// normalize keeps the valid uppercase words of list, dropping duplicates.
func normalize(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	var out []string
	for _, w := range list {
		v := ValidateFormat(w)
		if !v.Valid {
			continue
		}
		if _, dup := seen[v.Normalized]; dup {
			continue
		}
		seen[v.Normalized] = struct{}{}
		out = append(out, v.Normalized)
	}
	return out
}

// toSet converts a list of words into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}
