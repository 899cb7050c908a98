package main

import (
	"strings"
	"testing"

	"github.com/robalobadob/wordle/apps/wizard-server/internal/game"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/solver"
)

func TestPlayOneWinsSmallLexicon(t *testing.T) {
	words := []string{"crane", "slate", "stare", "spare", "share"}
	dict := game.NewDictionary(words)
	var sum summary
	for _, answer := range words {
		g, err := playOne(answer, words, dict, solver.Options{Rand: solver.NewRand(5)})
		if err != nil {
			t.Fatalf("%s: %v", answer, err)
		}
		if !g.Won {
			t.Errorf("%s: lost after %v", answer, g.Turns)
		}
		sum.add(g)
	}
	if sum.played != 5 || sum.won != 5 {
		t.Errorf("summary = %+v", sum)
	}
	// slate is always opened with, so only slate itself wins in one.
	if sum.dist[1] != 1 {
		t.Errorf("one-guess wins = %d, want 1", sum.dist[1])
	}
	if !strings.Contains(sum.String(), "won 5 (100.0%)") {
		t.Errorf("report:\n%s", sum)
	}
}

func TestSummaryEmpty(t *testing.T) {
	if got := (summary{}).String(); got != "no games played" {
		t.Errorf("empty summary = %q", got)
	}
}
