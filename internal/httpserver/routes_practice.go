// internal/httpserver/routes_practice.go
//
// Practice games: the server hides an answer so the assistant can be tried
// end to end.
//   - POST /api/practice/new          → start a game (random, fixed, or today's daily word)
//   - POST /api/practice/guess        → score a guess, returns the feedback string
//   - GET  /api/practice/{id}/hint    → the solver's suggestion given the game so far
//   - GET  /api/practice/leaderboard  → best daily results (default today)
//
// Finished games are written to the history database when one is configured.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wizard-server/internal/auth"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/daily"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/game"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/history"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/store"
)

// practice is a game plus its owner.
type practice struct {
	mu     sync.Mutex
	g      *game.Game
	userID string
}

func (s *Server) mountPractice(r chi.Router) {
	r.Route("/api/practice", func(r chi.Router) {
		r.Post("/new", s.handlePracticeNew)
		r.Post("/guess", s.handlePracticeGuess)
		r.Get("/{id}/hint", s.handlePracticeHint)
		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

type practiceNewReq struct {
	Daily  bool   `json:"daily"`
	Answer string `json:"answer"` // optional fixed answer (testing)
}

type practiceNewRes struct {
	GameID     string `json:"gameId"`
	Daily      string `json:"daily,omitempty"`
	Rows       int    `json:"rows"`
	WordLength int    `json:"wordLength"`
}

func (s *Server) handlePracticeNew(w http.ResponseWriter, r *http.Request) {
	var req practiceNewReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	answer, dateKey := strings.ToLower(strings.TrimSpace(req.Answer)), ""
	switch {
	case req.Daily:
		now := s.now()
		answer, dateKey = daily.Answer(now, s.salt, s.words), daily.DateKey(now)
	case answer == "":
		answer = game.RandomAnswer(s.words)
	case utf8.RuneCountInString(answer) != s.length:
		writeErr(w, http.StatusBadRequest, "Answer has the wrong length.")
		return
	}

	g := game.New(answer)
	g.Daily = dateKey
	p := &practice{g: g}
	if u := auth.FromContext(r.Context()); u != nil {
		p.userID = u.ID
	}
	if err := s.games.Save(r.Context(), g.ID, p); err != nil {
		log.Error().Err(err).Msg("save game")
		writeErr(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusCreated, practiceNewRes{GameID: g.ID, Daily: dateKey, Rows: g.Rows, WordLength: s.length})
}

type practiceGuessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type practiceGuessRes struct {
	Feedback string     `json:"feedback"`
	State    game.State `json:"state"`
	Guesses  int        `json:"guesses"`
	Answer   string     `json:"answer,omitempty"` // revealed once finished
}

func (s *Server) handlePracticeGuess(w http.ResponseWriter, r *http.Request) {
	var req practiceGuessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	p, ok := s.practice(w, r, req.GameID)
	if !ok {
		return
	}

	p.mu.Lock()
	fb, state, err := p.g.ApplyGuess(req.Guess, s.dict)
	guesses := len(p.g.Turns)
	finished := p.g.Finished
	answer := p.g.Answer
	p.mu.Unlock()

	switch {
	case errors.Is(err, game.ErrFinished):
		writeJSON(w, http.StatusConflict, practiceGuessRes{State: state, Guesses: guesses, Answer: strings.ToUpper(answer)})
		return
	case err != nil:
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	res := practiceGuessRes{Feedback: string(fb), State: state, Guesses: guesses}
	if finished {
		res.Answer = strings.ToUpper(answer)
		s.recordResult(r, p)
	}
	writeJSON(w, http.StatusOK, res)
}

// handlePracticeHint replays the game's turns on a fresh engine.
func (s *Server) handlePracticeHint(w http.ResponseWriter, r *http.Request) {
	p, ok := s.practice(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	p.mu.Lock()
	turns := p.g.History()
	p.mu.Unlock()

	eng := s.newEngine()
	if err := eng.Apply(turns); err != nil {
		// Guesses come from the dictionary and feedback from the game, so only
		// an answer outside the lexicon can get here.
		log.Debug().Err(err).Msg("practice hint")
	}
	res, status := s.suggest(eng)
	writeJSON(w, status, res)
}

type leaderboardRes struct {
	Date string           `json:"date"`
	Top  []history.Result `json:"top"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeErr(w, http.StatusServiceUnavailable, "History is disabled.")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	}
	rows, err := s.db.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard")
		writeErr(w, http.StatusInternalServerError, "Server error.")
		return
	}
	writeJSON(w, http.StatusOK, leaderboardRes{Date: date, Top: rows})
}

func (s *Server) practice(w http.ResponseWriter, r *http.Request, id string) (*practice, bool) {
	p, err := s.games.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "Unknown game.")
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Str("gameId", id).Msg("load game")
		writeErr(w, http.StatusInternalServerError, "Server error.")
		return nil, false
	}
	return p, true
}

// recordResult persists a finished game (best effort).
func (s *Server) recordResult(r *http.Request, p *practice) {
	if s.db == nil {
		return
	}
	p.mu.Lock()
	res := history.Result{
		GameID:  p.g.ID,
		UserID:  p.userID,
		Answer:  p.g.Answer,
		Daily:   p.g.Daily,
		Guesses: len(p.g.Turns),
		Won:     p.g.Won,
	}
	p.mu.Unlock()
	if err := s.db.RecordResult(r.Context(), res); err != nil {
		log.Warn().Err(err).Str("gameId", res.GameID).Msg("record result")
	}
}
