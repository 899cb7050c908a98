// internal/solver/types.go
//
// Core type definitions for the solver engine.
// Defines:
//   - Mark: per-letter result of a guess (miss/present/hit).
//   - Pattern: the full feedback for one guess, one Mark per position.
//   - Feedback: a (guess, pattern) pair as reported by the player.

package solver

import "errors"

// Mark is the evaluation of a single letter position. The byte values are the
// wire symbols used by clients: '0' miss, '1' present, '2' hit.
type Mark byte

const (
	MarkMiss    Mark = '0' // letter absent after duplicate accounting
	MarkPresent Mark = '1' // letter present, wrong position
	MarkHit     Mark = '2' // letter in the exact position
)

// Pattern is a feedback string such as "01202".
type Pattern string

// Marks splits the pattern into its per-position marks.
func (p Pattern) Marks() []Mark {
	out := make([]Mark, len(p))
	for i := 0; i < len(p); i++ {
		out[i] = Mark(p[i])
	}
	return out
}

// Solved reports whether every position is a hit.
func (p Pattern) Solved() bool {
	if len(p) == 0 {
		return false
	}
	for i := 0; i < len(p); i++ {
		if Mark(p[i]) != MarkHit {
			return false
		}
	}
	return true
}

// Feedback is one observed constraint: the word that was played and the
// pattern the game returned for it.
type Feedback struct {
	Guess   string
	Pattern string
}

var (
	// ErrInvalidFeedback is returned for a pattern of the wrong length or with
	// symbols other than '0', '1' and '2'. Engine state is left untouched.
	ErrInvalidFeedback = errors.New("invalid feedback")

	// ErrInvalidGuess is returned for a guess whose length differs from the lexicon's.
	ErrInvalidGuess = errors.New("invalid guess")

	// ErrNoCandidates signals that no lexicon word satisfies the feedback so far.
	ErrNoCandidates = errors.New("no words match the feedback")

	// ErrEmptyLexicon is returned by New when given no words.
	ErrEmptyLexicon = errors.New("empty lexicon")
)
