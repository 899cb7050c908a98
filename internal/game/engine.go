// internal/game/engine.go
//
// Practice game engine: a hidden answer scored with the solver's pattern rule,
// so players (and the bench) can exercise the assistant end to end.
// Responsibilities:
//   - Create games with a fixed or random answer.
//   - Validate and apply guesses (length, allowed list).
//   - Track state transitions: playing → won/lost.

package game

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/wordle/apps/wizard-server/internal/ids"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/solver"
)

// DefaultRows is the classic number of guesses.
const DefaultRows = 6

var (
	ErrFinished     = errors.New("game finished")
	ErrInvalidGuess = errors.New("invalid guess")
	ErrNotAllowed   = errors.New("not in word list")
)

// Dictionary is the set of words accepted as guesses.
type Dictionary map[string]struct{}

// NewDictionary builds a Dictionary from a word list.
func NewDictionary(words []string) Dictionary {
	d := make(Dictionary, len(words))
	for _, w := range words {
		d[strings.ToLower(w)] = struct{}{}
	}
	return d
}

// Contains reports whether w is an accepted guess.
func (d Dictionary) Contains(w string) bool {
	_, ok := d[strings.ToLower(w)]
	return ok
}

// New starts a game against answer with DefaultRows guesses.
func New(answer string) *Game {
	return &Game{
		ID:     ids.New(),
		Answer: strings.ToLower(strings.TrimSpace(answer)),
		Rows:   DefaultRows,
	}
}

// RandomAnswer picks a word uniformly with crypto/rand.
func RandomAnswer(words []string) string {
	if len(words) == 0 {
		return ""
	}
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
	return words[n.Int64()]
}

// ApplyGuess scores guess against the answer and records it.
//
// A nil dict accepts any word of the right length.
//
// State transitions:
//   - All hits → Finished, Won.
//   - Else, when the guesses reach g.Rows → Finished (loss).
func (g *Game) ApplyGuess(guess string, dict Dictionary) (solver.Pattern, State, error) {
	if g.Finished {
		return "", g.State(), ErrFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if utf8.RuneCountInString(guess) != utf8.RuneCountInString(g.Answer) {
		return "", g.State(), ErrInvalidGuess
	}
	if dict != nil && !dict.Contains(guess) {
		return "", g.State(), ErrNotAllowed
	}

	p := solver.Compute(guess, g.Answer)
	g.Turns = append(g.Turns, Turn{Guess: guess, Feedback: p})

	if p.Solved() {
		g.Finished, g.Won = true, true
	} else if len(g.Turns) >= g.Rows {
		g.Finished = true
	}
	return p, g.State(), nil
}

// State reports the game's current state.
func (g *Game) State() State {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// History returns the turns as solver feedback, ready for Engine.Apply.
func (g *Game) History() []solver.Feedback {
	out := make([]solver.Feedback, len(g.Turns))
	for i, t := range g.Turns {
		out[i] = solver.Feedback{Guess: t.Guess, Pattern: string(t.Feedback)}
	}
	return out
}
