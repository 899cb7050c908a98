// internal/lexicon/lexicon.go
//
// Word list loading for the solver.
//
// Responsibilities:
//   - Read a newline-delimited word source (file, reader, or the embedded default).
//   - Keep only words of exactly the target length, trimmed and lowercased.
//   - Preserve source order (first occurrence wins on duplicates); that order is
//     the canonical iteration order for candidates everywhere else.
//
// Constraints:
//   • No character-set validation beyond length; case folding is the only normalization.
//   • Lines starting with '#' are comments.
//   • An unreadable source or a source with no usable word is a *LoadError.

package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/wordle/apps/wizard-server/assets"
)

// DefaultLength is the word length of the classic game.
const DefaultLength = 5

// ErrEmpty is wrapped by LoadError when a source holds no word of the requested length.
var ErrEmpty = errors.New("lexicon: no words of requested length")

// LoadError reports a lexicon source that could not be turned into a word list.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("lexicon: load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads the word list at path and returns every distinct word of length n.
func Load(path string, n int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()
	return read(path, f, n)
}

// Default returns the embedded word list filtered to length n.
func Default(n int) ([]string, error) {
	f, err := assets.OpenWordList()
	if err != nil {
		return nil, &LoadError{Source: "embedded:" + assets.DefaultWordList, Err: err}
	}
	defer f.Close()
	return read("embedded:"+assets.DefaultWordList, f, n)
}

// FromReader is Load for an arbitrary source; name only labels errors.
func FromReader(name string, r io.Reader, n int) ([]string, error) {
	return read(name, r, n)
}

func read(name string, r io.Reader, n int) ([]string, error) {
	if n <= 0 {
		return nil, &LoadError{Source: name, Err: fmt.Errorf("invalid word length %d", n)}
	}
	seen := make(map[string]struct{})
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if utf8.RuneCountInString(w) != n {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	if err := sc.Err(); err != nil {
		return nil, &LoadError{Source: name, Err: err}
	}
	if len(out) == 0 {
		return nil, &LoadError{Source: name, Err: ErrEmpty}
	}
	return out, nil
}
