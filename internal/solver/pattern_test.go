package solver

import (
	"errors"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		guess, answer string
		want          Pattern
	}{
		{"crane", "share", "01202"},
		{"crane", "crane", "22222"},
		{"crane", "slate", "00202"},
		{"speed", "erase", "10110"},
		{"abbey", "babes", "11220"},
		{"lolly", "hello", "01220"},
		{"robot", "floor", "11020"},
		{"eerie", "there", "10102"},
	}
	for _, tt := range tests {
		t.Run(tt.guess+"/"+tt.answer, func(t *testing.T) {
			if got := Compute(tt.guess, tt.answer); got != tt.want {
				t.Errorf("Compute(%q, %q) = %q, want %q", tt.guess, tt.answer, got, tt.want)
			}
		})
	}
}

func TestComputeIdentityIsAllHits(t *testing.T) {
	for _, w := range []string{"crane", "speed", "eerie", "mamma", "zzzzz"} {
		p := Compute(w, w)
		if !p.Solved() {
			t.Errorf("Compute(%q, %q) = %q, want all hits", w, w, p)
		}
	}
}

func TestComputeNeverOvercreditsRepeatedLetters(t *testing.T) {
	words := []string{"speed", "erase", "eerie", "geese", "level", "sheep", "abbey", "babes", "mamma", "llama"}
	for _, g := range words {
		for _, a := range words {
			p := Compute(g, a)
			credited := map[rune]int{}
			for i, r := range []rune(g) {
				if Mark(p[i]) != MarkMiss {
					credited[r]++
				}
			}
			available := map[rune]int{}
			for _, r := range a {
				available[r]++
			}
			for r, n := range credited {
				if n > available[r] {
					t.Errorf("Compute(%q, %q) = %q credits %q %d times, answer has %d", g, a, p, r, n, available[r])
				}
			}
		}
	}
}

func TestComputeHitsBeatPresents(t *testing.T) {
	// The lone 'e' in the answer sits at index 4; the guess's earlier 'e's
	// must not steal it from the exact match.
	if got := Compute("eeeee", "crane"); got != "00002" {
		t.Errorf("got %q, want 00002", got)
	}
}

func TestParsePattern(t *testing.T) {
	if p, err := ParsePattern("01202", 5); err != nil || p != "01202" {
		t.Fatalf("ParsePattern valid: %q, %v", p, err)
	}
	for _, bad := range []string{"", "0120", "012020", "01302", "0120a", "2222é"} {
		if _, err := ParsePattern(bad, 5); !errors.Is(err, ErrInvalidFeedback) {
			t.Errorf("ParsePattern(%q) err = %v, want ErrInvalidFeedback", bad, err)
		}
	}
}

func TestPatternMarks(t *testing.T) {
	got := Pattern("012").Marks()
	want := []Mark{MarkMiss, MarkPresent, MarkHit}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Marks() = %v, want %v", got, want)
		}
	}
	if Pattern("").Solved() {
		t.Error("empty pattern reported solved")
	}
}
