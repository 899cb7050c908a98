// cmd/wizard/main.go
//
// Console assistant: suggests a guess, reads back the feedback the puzzle
// gave, and narrows the candidates until the word is found or six guesses
// are spent.
//
// Flags override the matching config settings (see internal/config).

package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wizard-server/internal/config"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/game"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/solver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	wordsFile := flag.String("words", cfg.WordsFile, "Word list to load (default: embedded list)")
	length := flag.Int("length", cfg.WordLength, "Word length")
	seed := flag.Uint64("seed", cfg.Solver.Seed, "Sampling seed (0 = clock)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	cfg.WordsFile, cfg.WordLength, cfg.Solver.Seed = *wordsFile, *length, *seed

	words, err := cfg.Words()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	eng, err := solver.New(words, cfg.Solver.Options())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start solver")
	}

	play(os.Stdin, os.Stdout, eng)
}

// play runs one assisted game over in/out.
func play(in io.Reader, out io.Writer, eng *solver.Engine) {
	n := eng.WordLength()
	solved := strings.Repeat(string(solver.MarkHit), n)
	sc := bufio.NewScanner(in)

	fmt.Fprintln(out, "########################################################")
	fmt.Fprintln(out, "Welcome to Wordle Wizard Assistant!")
	fmt.Fprintln(out, "########################################################")
	fmt.Fprintln(out, "For each guess, I'll suggest a word. After you try it in Wordle,")
	fmt.Fprintln(out, "tell me the feedback using: '2' for green, '1' for yellow, '0' for gray.")
	fmt.Fprintln(out, "For example, if your feedback is 'green, yellow, gray, gray, yellow',")
	fmt.Fprintln(out, "you would enter: '21001'")
	fmt.Fprintln(out, "If you found the word, enter 'Q' to exit.")
	fmt.Fprintln(out, "\nLet's start guessing!")

	for turn := 1; turn <= game.DefaultRows; turn++ {
		guess, err := eng.BestGuess()
		if err != nil {
			fmt.Fprintln(out, "Hmm, something went wrong. I don't have any words that match your feedback.")
			return
		}
		fmt.Fprintf(out, "\nGuess %d: I suggest '%s'\n", turn, strings.ToUpper(guess))
		fmt.Fprintf(out, "Possible solutions remaining: %d\n", eng.CandidateCount())
		if eng.CandidateCount() <= 5 {
			fmt.Fprintf(out, "Possible words: %s\n", strings.Join(eng.Candidates(), ", "))
		}

		for {
			fmt.Fprintf(out, "Enter the feedback (e.g. '21001') or 'Q' to quit: \n")
			if !sc.Scan() {
				return
			}
			fb := strings.TrimSpace(sc.Text())
			if strings.EqualFold(fb, "q") {
				fmt.Fprintln(out, "Congratulations on finding the word!")
				return
			}
			if fb == solved {
				fmt.Fprintf(out, "Congratulations! We found the word '%s'!\n", strings.ToUpper(guess))
				return
			}
			err := eng.UpdateWithFeedback(guess, fb)
			if errors.Is(err, solver.ErrInvalidFeedback) {
				fmt.Fprintf(out, "Invalid feedback. Please use only the characters 0, 1, and 2, and enter exactly %d characters.\n", n)
				continue
			}
			break
		}
	}

	fmt.Fprintf(out, "Game over! We used all %d guesses.\n", game.DefaultRows)
	if eng.CandidateCount() > 0 {
		fmt.Fprintf(out, "Possible solutions were: %s\n", strings.Join(eng.Candidates(), ", "))
	}
}
