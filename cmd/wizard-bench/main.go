// cmd/wizard-bench/main.go
//
// Plays the assistant against every word in the lexicon (or the first -n)
// and reports how often it wins within six guesses and how many guesses
// a win takes on average.
//
// With -db the finished games are also written to the history database,
// and the database's running totals are printed.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/wordle/apps/wizard-server/internal/config"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/game"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/history"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/solver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	wordsFile := flag.String("words", cfg.WordsFile, "Word list to load (default: embedded list)")
	limit := flag.Int("n", 0, "Only play the first n answers (0 = all)")
	seed := flag.Uint64("seed", 1, "Sampling seed (0 = clock)")
	dbPath := flag.String("db", "", "Record results in this history database")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	cfg.WordsFile, cfg.Solver.Seed = *wordsFile, *seed

	words, err := cfg.Words()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	answers := words
	if *limit > 0 && *limit < len(answers) {
		answers = answers[:*limit]
	}

	ctx := context.Background()
	var db *history.DB
	if *dbPath != "" {
		if db, err = history.Open(ctx, *dbPath); err != nil {
			log.Fatal().Err(err).Str("path", *dbPath).Msg("failed to open history")
		}
		defer db.Close()
	}

	dict := game.NewDictionary(words)
	var sum summary
	bar := progressbar.Default(int64(len(answers)))
	for _, answer := range answers {
		g, err := playOne(answer, words, dict, cfg.Solver.Options())
		if err != nil {
			log.Fatal().Err(err).Str("answer", answer).Msg("game failed")
		}
		sum.add(g)
		if db != nil {
			res := history.Result{GameID: g.ID, Answer: g.Answer, Guesses: len(g.Turns), Won: g.Won}
			if err := db.RecordResult(ctx, res); err != nil {
				log.Warn().Err(err).Msg("record result")
			}
		}
		_ = bar.Add(1)
	}

	fmt.Println(sum)
	if db != nil {
		total, err := db.Summarize(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("summarize history")
		}
		fmt.Printf("history: %d played, %d won, %.3f mean guesses\n", total.Played, total.Won, total.MeanGuesses)
	}
}

// playOne lets a fresh engine play a full game against answer.
func playOne(answer string, words []string, dict game.Dictionary, opts solver.Options) (*game.Game, error) {
	eng, err := solver.New(words, opts)
	if err != nil {
		return nil, err
	}
	g := game.New(answer)
	for !g.Finished {
		guess, err := eng.BestGuess()
		if err != nil {
			return nil, err
		}
		p, _, err := g.ApplyGuess(guess, dict)
		if err != nil {
			return nil, err
		}
		if g.Finished {
			break
		}
		if err := eng.UpdateWithFeedback(guess, string(p)); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// summary accumulates bench results.
type summary struct {
	played, won, guesses int
	dist                 [game.DefaultRows + 1]int // dist[k]: wins in k guesses
}

func (s *summary) add(g *game.Game) {
	s.played++
	if g.Won {
		s.won++
		s.guesses += len(g.Turns)
		s.dist[len(g.Turns)]++
	}
}

func (s summary) String() string {
	if s.played == 0 {
		return "no games played"
	}
	mean := 0.0
	if s.won > 0 {
		mean = float64(s.guesses) / float64(s.won)
	}
	out := fmt.Sprintf("played %d, won %d (%.1f%%), mean guesses %.3f\n",
		s.played, s.won, 100*float64(s.won)/float64(s.played), mean)
	for k := 1; k <= game.DefaultRows; k++ {
		out += fmt.Sprintf("  %d: %d\n", k, s.dist[k])
	}
	return out
}
