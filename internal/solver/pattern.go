package solver

import (
	"fmt"
	"unicode/utf8"
)

// Compute returns the feedback the game gives for guess against answer.
//
// Pass 1 marks exact matches as hits and consumes those answer letters.
// Pass 2 walks the remaining guess letters left to right; each one consumes the
// leftmost unconsumed occurrence in the answer and becomes present, or is a miss
// when none is left. Hits therefore always win over presents for the same
// letter, and a letter is never credited more times than the answer holds it.
//
// The result has one mark per guess position; positions past the end of a
// shorter answer are misses.
func Compute(guess, answer string) Pattern {
	g := []rune(guess)
	a := []rune(answer)
	out := make([]byte, len(g))
	used := make([]bool, len(a))

	for i := range g {
		out[i] = byte(MarkMiss)
		if i < len(a) && g[i] == a[i] {
			out[i] = byte(MarkHit)
			used[i] = true
		}
	}

	for i := range g {
		if out[i] == byte(MarkHit) {
			continue
		}
		for j := range a {
			if !used[j] && a[j] == g[i] {
				out[i] = byte(MarkPresent)
				used[j] = true
				break
			}
		}
	}
	return Pattern(out)
}

// ParsePattern validates a client-supplied feedback string of n symbols.
func ParsePattern(s string, n int) (Pattern, error) {
	if utf8.RuneCountInString(s) != n {
		return "", fmt.Errorf("%w: %q must be %d symbols", ErrInvalidFeedback, s, n)
	}
	for i := 0; i < len(s); i++ {
		switch Mark(s[i]) {
		case MarkMiss, MarkPresent, MarkHit:
		default:
			return "", fmt.Errorf("%w: %q may only use 0, 1 and 2", ErrInvalidFeedback, s)
		}
	}
	return Pattern(s), nil
}
