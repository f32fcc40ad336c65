// internal/game/evaluate.go
//
// Pure guess evaluation. Kept free of session state so the algorithm can be
// tested in isolation; duplicate-letter handling is the one spot where an
// ordering bug slips in easily.

package game

// Evaluate scores guess against secret using the standard two-pass
// algorithm and returns one LetterState per position.
//
// Pass 1:
//   - Mark exact matches as correct.
//   - Count the remaining (non-matched) secret letters by letter index.
//
// Pass 2:
//   - For each unconsumed guess letter: if remaining count for that letter
//     is positive, mark present and decrement; otherwise mark absent.
//
// Exact matches are always consumed before displaced matches, so a repeated
// guess letter is marked present at most as many times as it has unmatched
// occurrences left in the secret.
//
// Both inputs must be equal-length uppercase A–Z words; callers validate
// format first. Mismatched lengths are a contract violation and yield nil.
func Evaluate(secret, guess string) []LetterState {
	n := len(secret)
	if len(guess) != n {
		return nil
	}
	res := make([]LetterState, n)

	// Letter frequency for the non-matched positions (A–Z).
	var counts [26]int

	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			res[i] = LetterCorrect
		} else {
			counts[idx(secret[i])]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == LetterCorrect {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = LetterPresent
			counts[j]--
		} else {
			res[i] = LetterAbsent
		}
	}
	return res
}

// idx maps an uppercase ASCII letter byte to 0..25.
// Assumes inputs are validated to A–Z elsewhere.
func idx(b byte) int { return int(b - 'A') }

// allCorrect returns true if every mark is LetterCorrect.
func allCorrect(m []LetterState) bool {
	for _, x := range m {
		if x != LetterCorrect {
			return false
		}
	}
	return true
}
