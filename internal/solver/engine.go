// internal/solver/engine.go
//
// Solver engine for a single assistant session.
// Responsibilities:
//   - Hold the shrinking candidate set and its letter-frequency table.
//   - Filter candidates by consistency with (guess, pattern) feedback.
//   - Recommend the next guess by sampled Shannon entropy of feedback patterns.
//
// Notes:
//   - An Engine is not safe for concurrent use; give each session its own value.
//   - The lexicon slice passed to New is shared read-only between engines.
//   - Sampling draws from an injectable *rand.Rand so tests can pin the sample.

package solver

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/robalobadob/wordle/apps/wizard-server/internal/lexicon"
)

const (
	defaultFullPoolThreshold = 100
	defaultSampleSize        = 100
)

// Options tunes guess selection. Zero values fall back to the defaults.
type Options struct {
	// FullPoolThreshold: above this many candidates every lexicon word is
	// scored as a guess; at or below it only candidates are.
	FullPoolThreshold int
	// SampleSize caps how many candidate answers each guess is scored against.
	SampleSize int
	// Rand is the sampling source. Nil means time-seeded.
	Rand *rand.Rand
}

// NewRand returns a deterministic source for a seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Engine narrows a lexicon down to the words consistent with observed feedback.
type Engine struct {
	length     int
	all        []string
	candidates []string
	freq       lexicon.Frequencies

	threshold  int
	sampleSize int
	rng        *rand.Rand

	// shuffled is a permutation of candidates; partial Fisher-Yates over it
	// yields uniform samples without rebuilding it on every draw.
	shuffled []string
	counts   map[Pattern]int
}

// New builds an engine over words, which must be non-empty and share one length.
func New(words []string, opts Options) (*Engine, error) {
	if len(words) == 0 {
		return nil, ErrEmptyLexicon
	}
	n := utf8.RuneCountInString(words[0])
	for _, w := range words {
		if utf8.RuneCountInString(w) != n {
			return nil, fmt.Errorf("solver: mixed word lengths (%q is not %d letters)", w, n)
		}
	}
	if opts.FullPoolThreshold <= 0 {
		opts.FullPoolThreshold = defaultFullPoolThreshold
	}
	if opts.SampleSize <= 0 {
		opts.SampleSize = defaultSampleSize
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(time.Now().Nanosecond())))
	}
	e := &Engine{
		length:     n,
		all:        words,
		threshold:  opts.FullPoolThreshold,
		sampleSize: opts.SampleSize,
		rng:        rng,
		counts:     make(map[Pattern]int),
	}
	e.Reset()
	return e, nil
}

// Reset restores the candidate set to the full lexicon.
func (e *Engine) Reset() {
	e.setCandidates(append(make([]string, 0, len(e.all)), e.all...))
}

// Apply resets the engine and replays history in order. It stops at the first
// entry that fails; ErrNoCandidates is returned once the set runs dry.
func (e *Engine) Apply(history []Feedback) error {
	e.Reset()
	for i, fb := range history {
		if err := e.UpdateWithFeedback(fb.Guess, fb.Pattern); err != nil {
			return fmt.Errorf("feedback %d (%s): %w", i+1, fb.Guess, err)
		}
	}
	return nil
}

// UpdateWithFeedback keeps exactly the candidates W with Compute(guess, W) == feedback.
//
// Malformed input returns ErrInvalidGuess or ErrInvalidFeedback and leaves the
// candidate set as it was. When the filter removes every word the (now empty)
// set is kept and ErrNoCandidates is returned.
func (e *Engine) UpdateWithFeedback(guess, feedback string) error {
	guess = strings.ToLower(strings.TrimSpace(guess))
	if utf8.RuneCountInString(guess) != e.length {
		return fmt.Errorf("%w: %q must be %d letters", ErrInvalidGuess, guess, e.length)
	}
	want, err := ParsePattern(strings.TrimSpace(feedback), e.length)
	if err != nil {
		return err
	}

	kept := e.candidates[:0]
	for _, w := range e.candidates {
		if Compute(guess, w) == want {
			kept = append(kept, w)
		}
	}
	e.setCandidates(kept)

	if len(kept) == 0 {
		return ErrNoCandidates
	}
	return nil
}

// BestGuess returns the recommended next guess.
//
// With one or two candidates left the first one is returned outright. Otherwise
// each word of the scoring pool (the whole lexicon while more than
// FullPoolThreshold candidates remain, else the candidates) is scored by
// Entropy, and the first word with the strictly highest score wins.
func (e *Engine) BestGuess() (string, error) {
	switch len(e.candidates) {
	case 0:
		return "", ErrNoCandidates
	case 1, 2:
		return e.candidates[0], nil
	}

	pool := e.candidates
	if len(e.candidates) > e.threshold {
		pool = e.all
	}

	best, bestScore := "", math.Inf(-1)
	for _, g := range pool {
		if h := e.Entropy(g); h > bestScore {
			best, bestScore = g, h
		}
	}
	return best, nil
}

// Entropy estimates the information gain of guess: the base-2 Shannon entropy
// of the feedback patterns it produces against a random sample of
// min(SampleSize, candidates) candidate answers drawn without replacement.
func (e *Engine) Entropy(guess string) float64 {
	sample := e.drawSample()
	if len(sample) == 0 {
		return 0
	}
	guess = strings.ToLower(guess)

	clear(e.counts)
	for _, answer := range sample {
		e.counts[Compute(guess, answer)]++
	}

	total := float64(len(sample))
	h := 0.0
	for _, c := range e.counts {
		p := float64(c) / total
		h -= p * math.Log2(p)
	}
	return h
}

// drawSample returns min(sampleSize, |candidates|) distinct candidates.
// The returned slice is only valid until the next call.
func (e *Engine) drawSample() []string {
	n := len(e.shuffled)
	k := min(e.sampleSize, n)
	if k == n {
		return e.shuffled
	}
	for i := 0; i < k; i++ {
		j := i + e.rng.IntN(n-i)
		e.shuffled[i], e.shuffled[j] = e.shuffled[j], e.shuffled[i]
	}
	return e.shuffled[:k]
}

func (e *Engine) setCandidates(words []string) {
	e.candidates = words
	e.shuffled = append(e.shuffled[:0], words...)
	e.freq = lexicon.CountLetters(words)
}

// CandidateCount is the number of words still consistent with all feedback.
func (e *Engine) CandidateCount() int { return len(e.candidates) }

// CandidatePreview returns up to n candidates in lexicon order.
func (e *Engine) CandidatePreview(n int) []string {
	n = max(0, min(n, len(e.candidates)))
	return append([]string(nil), e.candidates[:n]...)
}

// Candidates returns a copy of the full candidate set.
func (e *Engine) Candidates() []string { return e.CandidatePreview(len(e.candidates)) }

// Frequencies is the letter table of the current candidates. Treat as read-only.
func (e *Engine) Frequencies() lexicon.Frequencies { return e.freq }

// WordLength is the length every guess and feedback string must have.
func (e *Engine) WordLength() int { return e.length }

// LexiconSize is the number of legal guesses.
func (e *Engine) LexiconSize() int { return len(e.all) }
