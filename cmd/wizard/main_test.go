package main

import (
	"strings"
	"testing"

	"github.com/robalobadob/wordle/apps/wizard-server/internal/solver"
)

func newEngine(t *testing.T) *solver.Engine {
	t.Helper()
	eng, err := solver.New([]string{"crane", "slate", "stare", "spare", "share"}, solver.Options{Rand: solver.NewRand(3)})
	if err != nil {
		t.Fatal(err)
	}
	return eng
}

func TestPlayFindsWord(t *testing.T) {
	var out strings.Builder
	// slate against share is 20202, leaving spare and share.
	play(strings.NewReader("xx\n20202\n22222\n"), &out, newEngine(t))

	got := out.String()
	for _, want := range []string{
		"Guess 1: I suggest 'SLATE'",
		"Possible solutions remaining: 5",
		"Invalid feedback. Please use only the characters 0, 1, and 2, and enter exactly 5 characters.",
		"Possible words: spare, share",
		"Guess 2: I suggest 'SPARE'",
		"Congratulations! We found the word 'SPARE'!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Guess 3") {
		t.Errorf("invalid feedback consumed a guess:\n%s", got)
	}
}

func TestPlayQuit(t *testing.T) {
	var out strings.Builder
	play(strings.NewReader("q\n"), &out, newEngine(t))
	if !strings.Contains(out.String(), "Congratulations on finding the word!") {
		t.Errorf("quit output:\n%s", out.String())
	}
}

func TestPlayContradiction(t *testing.T) {
	var out strings.Builder
	play(strings.NewReader("00000\n"), &out, newEngine(t))
	if !strings.Contains(out.String(), "I don't have any words that match your feedback") {
		t.Errorf("contradiction output:\n%s", out.String())
	}
}

func TestPlayGameOver(t *testing.T) {
	eng, err := solver.New([]string{"aaaaa", "bbbbb", "ccccc", "ddddd", "eeeee", "fffff", "ggggg", "hhhhh"},
		solver.Options{Rand: solver.NewRand(1)})
	if err != nil {
		t.Fatal(err)
	}
	var out strings.Builder
	play(strings.NewReader(strings.Repeat("00000\n", 6)), &out, eng)
	if !strings.Contains(out.String(), "Game over! We used all 6 guesses.") {
		t.Errorf("game over output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Possible solutions were: ggggg, hhhhh") {
		t.Errorf("remaining words not listed:\n%s", out.String())
	}
}
