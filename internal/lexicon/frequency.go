package lexicon

// Frequencies counts letter occurrences across a word set.
type Frequencies map[rune]int

// CountLetters builds the frequency table for words.
func CountLetters(words []string) Frequencies {
	f := make(Frequencies, 26)
	for _, w := range words {
		for _, r := range w {
			f[r]++
		}
	}
	return f
}

// Score is a letter-frequency heuristic: the summed frequency of the word's
// distinct letters, scaled down by distinct/len when letters repeat.
func (f Frequencies) Score(word string) float64 {
	distinct := make(map[rune]struct{}, len(word))
	n := 0
	for _, r := range word {
		distinct[r] = struct{}{}
		n++
	}
	score := 0.0
	for r := range distinct {
		score += float64(f[r])
	}
	if len(distinct) < n {
		score *= float64(len(distinct)) / float64(n)
	}
	return score
}
