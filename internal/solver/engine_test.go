package solver

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/robalobadob/wordle/apps/wizard-server/internal/lexicon"
)

var fiveWords = []string{"crane", "slate", "stare", "spare", "share"}

func newTestEngine(t *testing.T, words []string, opts Options) *Engine {
	t.Helper()
	if opts.Rand == nil {
		opts.Rand = NewRand(42)
	}
	e, err := New(words, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestNewRejectsBadLexicons(t *testing.T) {
	if _, err := New(nil, Options{}); !errors.Is(err, ErrEmptyLexicon) {
		t.Errorf("New(nil) err = %v, want ErrEmptyLexicon", err)
	}
	if _, err := New([]string{"crane", "cranes"}, Options{}); err == nil {
		t.Error("New with mixed lengths succeeded")
	}
}

func TestEndToEndScenario(t *testing.T) {
	e := newTestEngine(t, fiveWords, Options{})

	fb := Compute("crane", "share")
	if fb != "01202" {
		t.Fatalf("Compute(crane, share) = %q, want 01202", fb)
	}
	if err := e.UpdateWithFeedback("crane", string(fb)); err != nil {
		t.Fatalf("UpdateWithFeedback: %v", err)
	}

	var want []string
	for _, w := range fiveWords {
		if Compute("crane", w) == fb {
			want = append(want, w)
		}
	}
	got := e.Candidates()
	if !slices.Equal(got, want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
	if !slices.Equal(got, []string{"stare", "spare", "share"}) {
		t.Fatalf("candidates = %v, want [stare spare share]", got)
	}
	if !slices.Contains(got, "share") {
		t.Fatal("true answer filtered out")
	}
}

func TestBestGuessPicksFirstMaximum(t *testing.T) {
	e := newTestEngine(t, fiveWords, Options{})
	// crane splits the five words 1/1/3; every other word splits them 1/2/2.
	g, err := e.BestGuess()
	if err != nil {
		t.Fatal(err)
	}
	if g != "slate" {
		t.Errorf("BestGuess() = %q, want slate", g)
	}

	if err := e.UpdateWithFeedback("crane", "01202"); err != nil {
		t.Fatal(err)
	}
	g, err = e.BestGuess()
	if err != nil {
		t.Fatal(err)
	}
	if g != "stare" {
		t.Errorf("BestGuess() after feedback = %q, want stare", g)
	}
}

func TestBestGuessScoresWholeLexiconAboveThreshold(t *testing.T) {
	e := newTestEngine(t, fiveWords, Options{FullPoolThreshold: 1})
	if err := e.UpdateWithFeedback("crane", "01202"); err != nil {
		t.Fatal(err)
	}
	// slate is no longer a candidate but splits {stare, spare, share} as well
	// as any of them and comes first in the lexicon.
	g, err := e.BestGuess()
	if err != nil {
		t.Fatal(err)
	}
	if g != "slate" {
		t.Errorf("BestGuess() = %q, want slate", g)
	}
}

func TestEntropyOverFullSample(t *testing.T) {
	e := newTestEngine(t, fiveWords, Options{})
	// crane yields 22222 once, 00202 once, 01202 three times.
	want := -(2*0.2*math.Log2(0.2) + 0.6*math.Log2(0.6))
	if got := e.Entropy("crane"); math.Abs(got-want) > 1e-9 {
		t.Errorf("Entropy(crane) = %v, want %v", got, want)
	}
	if got := e.Entropy("CRANE"); math.Abs(got-want) > 1e-9 {
		t.Errorf("Entropy(CRANE) = %v, want %v", got, want)
	}
}

func TestEntropySampleIsCapped(t *testing.T) {
	words, err := lexicon.Default(lexicon.DefaultLength)
	if err != nil {
		t.Fatal(err)
	}
	e := newTestEngine(t, words, Options{SampleSize: 8})
	// Eight answers can produce at most eight distinct patterns.
	for _, g := range words[:50] {
		if h := e.Entropy(g); h < 0 || h > 3+1e-9 {
			t.Fatalf("Entropy(%q) = %v, want within [0, 3]", g, h)
		}
	}
}

func TestSeededEnginesAgree(t *testing.T) {
	words, err := lexicon.Default(lexicon.DefaultLength)
	if err != nil {
		t.Fatal(err)
	}
	a := newTestEngine(t, words, Options{Rand: NewRand(7)})
	b := newTestEngine(t, words, Options{Rand: NewRand(7)})
	ga, err := a.BestGuess()
	if err != nil {
		t.Fatal(err)
	}
	gb, err := b.BestGuess()
	if err != nil {
		t.Fatal(err)
	}
	if ga != gb {
		t.Errorf("same seed gave %q and %q", ga, gb)
	}
}

func TestSmallPoolShortcutSkipsSampling(t *testing.T) {
	rng := NewRand(99)
	e := newTestEngine(t, fiveWords, Options{Rand: rng})
	// share against spare is 20222, which only stare and spare reproduce.
	if err := e.UpdateWithFeedback("share", string(Compute("share", "spare"))); err != nil {
		t.Fatal(err)
	}
	if n := e.CandidateCount(); n != 2 {
		t.Fatalf("CandidateCount() = %d, want 2 (%v)", n, e.Candidates())
	}
	g, err := e.BestGuess()
	if err != nil {
		t.Fatal(err)
	}
	if g != e.Candidates()[0] {
		t.Errorf("BestGuess() = %q, want first candidate %q", g, e.Candidates()[0])
	}

	// The shortcut must not have consumed randomness.
	if got, want := rng.Uint64(), NewRand(99).Uint64(); got != want {
		t.Error("BestGuess drew from the random source for a two-word pool")
	}
}

func TestRefilteringIsIdempotent(t *testing.T) {
	words, err := lexicon.Default(lexicon.DefaultLength)
	if err != nil {
		t.Fatal(err)
	}
	e := newTestEngine(t, words, Options{})
	fb := string(Compute("crane", "stone"))
	if err := e.UpdateWithFeedback("crane", fb); err != nil {
		t.Fatal(err)
	}
	first := e.Candidates()
	if err := e.UpdateWithFeedback("crane", fb); err != nil {
		t.Fatal(err)
	}
	if second := e.Candidates(); !slices.Equal(first, second) {
		t.Errorf("second application shrank %d -> %d", len(first), len(second))
	}
}

func TestFilterIsMonotoneAndSound(t *testing.T) {
	words, err := lexicon.Default(lexicon.DefaultLength)
	if err != nil {
		t.Fatal(err)
	}
	pick := NewRand(2024)
	for round := 0; round < 15; round++ {
		answer := words[pick.IntN(len(words))]
		e := newTestEngine(t, words, Options{Rand: NewRand(uint64(round))})
		prev := e.CandidateCount()
		for turn := 0; turn < 6; turn++ {
			g, err := e.BestGuess()
			if err != nil {
				t.Fatalf("answer %q turn %d: %v", answer, turn, err)
			}
			fb := Compute(g, answer)
			if err := e.UpdateWithFeedback(g, string(fb)); err != nil {
				t.Fatalf("answer %q guess %q: %v", answer, g, err)
			}
			n := e.CandidateCount()
			if n > prev {
				t.Fatalf("candidate count grew %d -> %d", prev, n)
			}
			prev = n
			if !slices.Contains(e.Candidates(), answer) {
				t.Fatalf("answer %q filtered out after %q/%s", answer, g, fb)
			}
			if fb.Solved() {
				break
			}
		}
	}
}

func TestExhaustionSignalsNoCandidates(t *testing.T) {
	e := newTestEngine(t, fiveWords, Options{})
	if err := e.UpdateWithFeedback("crane", "01202"); err != nil {
		t.Fatal(err)
	}
	// No remaining word has a 'z' in the middle.
	err := e.UpdateWithFeedback("zzzzz", "00200")
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("UpdateWithFeedback err = %v, want ErrNoCandidates", err)
	}
	if n := e.CandidateCount(); n != 0 {
		t.Fatalf("CandidateCount() = %d, want 0", n)
	}
	if _, err := e.BestGuess(); !errors.Is(err, ErrNoCandidates) {
		t.Errorf("BestGuess err = %v, want ErrNoCandidates", err)
	}
}

func TestInvalidInputKeepsState(t *testing.T) {
	e := newTestEngine(t, fiveWords, Options{})
	before := e.Candidates()
	cases := []struct {
		guess, fb string
		want      error
	}{
		{"crane", "0120", ErrInvalidFeedback},
		{"crane", "01302", ErrInvalidFeedback},
		{"crane", "abcde", ErrInvalidFeedback},
		{"cranes", "01202", ErrInvalidGuess},
	}
	for _, c := range cases {
		if err := e.UpdateWithFeedback(c.guess, c.fb); !errors.Is(err, c.want) {
			t.Errorf("UpdateWithFeedback(%q, %q) err = %v, want %v", c.guess, c.fb, err, c.want)
		}
		if got := e.Candidates(); !slices.Equal(got, before) {
			t.Fatalf("candidates changed after invalid input: %v", got)
		}
	}
}

func TestGuessCaseIsNormalized(t *testing.T) {
	e := newTestEngine(t, fiveWords, Options{})
	if err := e.UpdateWithFeedback(" CRANE ", "01202"); err != nil {
		t.Fatal(err)
	}
	if n := e.CandidateCount(); n != 3 {
		t.Errorf("CandidateCount() = %d, want 3", n)
	}
}

func TestResetAndApply(t *testing.T) {
	e := newTestEngine(t, fiveWords, Options{})
	if err := e.UpdateWithFeedback("crane", "01202"); err != nil {
		t.Fatal(err)
	}
	e.Reset()
	if n := e.CandidateCount(); n != len(fiveWords) {
		t.Fatalf("after Reset CandidateCount() = %d, want %d", n, len(fiveWords))
	}

	err := e.Apply([]Feedback{{Guess: "crane", Pattern: "01202"}, {Guess: "stare", Pattern: "20222"}})
	if err != nil {
		t.Fatal(err)
	}
	if got := e.Candidates(); !slices.Equal(got, []string{"spare", "share"}) {
		t.Errorf("after Apply candidates = %v", got)
	}

	err = e.Apply([]Feedback{{Guess: "crane", Pattern: "9"}})
	if !errors.Is(err, ErrInvalidFeedback) {
		t.Errorf("Apply bad history err = %v, want ErrInvalidFeedback", err)
	}
}

func TestPreviewAndFrequencies(t *testing.T) {
	e := newTestEngine(t, fiveWords, Options{})
	if got := e.CandidatePreview(2); !slices.Equal(got, []string{"crane", "slate"}) {
		t.Errorf("CandidatePreview(2) = %v", got)
	}
	if got := e.CandidatePreview(50); len(got) != 5 {
		t.Errorf("CandidatePreview(50) len = %d, want 5", len(got))
	}
	if got := e.CandidatePreview(-1); len(got) != 0 {
		t.Errorf("CandidatePreview(-1) = %v", got)
	}
	if f := e.Frequencies(); f['a'] != 5 || f['s'] != 4 {
		t.Errorf("Frequencies a=%d s=%d, want 5 and 4", f['a'], f['s'])
	}
	if err := e.UpdateWithFeedback("crane", "01202"); err != nil {
		t.Fatal(err)
	}
	if f := e.Frequencies(); f['s'] != 3 || f['c'] != 0 {
		t.Errorf("Frequencies after filter s=%d c=%d, want 3 and 0", f['s'], f['c'])
	}
}
