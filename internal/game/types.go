// internal/game/types.go
//
// Type definitions for practice games.
// Defines:
//   - State: coarse lifecycle of a game (playing/won/lost).
//   - Game: a hidden answer plus the guesses made against it.

package game

import "github.com/robalobadob/wordle/apps/wizard-server/internal/solver"

// State reports where a game stands.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Turn is one scored guess.
type Turn struct {
	Guess    string         `json:"guess"`
	Feedback solver.Pattern `json:"feedback"`
}

// Game holds the state of a single practice game.
type Game struct {
	ID       string // ULID
	Answer   string // lowercase
	Daily    string // date key for daily games, "" otherwise
	Rows     int    // guesses allowed
	Turns    []Turn
	Finished bool
	Won      bool
}
