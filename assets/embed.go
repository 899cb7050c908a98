// assets/embed.go
//
// Embedded default word list, used when WORDS_FILE is not configured.

package assets

import (
	"embed"
	"io"
)

//go:embed wordlist.txt
var FS embed.FS

// DefaultWordList is the name of the embedded lexicon inside FS.
const DefaultWordList = "wordlist.txt"

// OpenWordList opens the embedded lexicon. Callers must close it.
func OpenWordList() (io.ReadCloser, error) {
	return FS.Open(DefaultWordList)
}
