// assets/embed.go
//
// Embedded default word lists for the wordguess server.
// The literal list content is a fallback so the server runs with no
// configuration; deployments override it via WORDS_ANSWERS_FILE and
// WORDS_ALLOWED_FILE (see internal/words).

package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToUpper(s))
	}
	return out, sc.Err()
}

// AnswersList returns the embedded default answer words (uppercase).
func AnswersList() ([]string, error) {
	return readLines("answers.txt")
}

// AllowedList returns the embedded extra allowed guesses (uppercase).
func AllowedList() ([]string, error) {
	return readLines("allowed.txt")
}
