// internal/httpserver/routes_solver.go
//
// Solver endpoints.
//   - POST   /api/get_suggestion          → stateless: replay feedbackHistory on a fresh engine
//   - POST   /api/sessions                → start a server-held session
//   - POST   /api/sessions/{id}/feedback  → apply one (word, feedback) pair
//   - GET    /api/sessions/{id}/suggestion
//   - POST   /api/sessions/{id}/reset
//   - DELETE /api/sessions/{id}
//
// Words are accepted in any case and returned uppercase.

package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wizard-server/internal/auth"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/history"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/ids"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/solver"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/store"
)

// session is one assistant game held by the server.
type session struct {
	mu    sync.Mutex // one engine, one active caller
	eng   *solver.Engine
	steps []history.Step
}

func (s *Server) mountSolver(r chi.Router) {
	r.Post("/api/get_suggestion", s.handleGetSuggestion)
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleNewSession)
		r.Post("/{id}/feedback", s.handleSessionFeedback)
		r.Get("/{id}/suggestion", s.handleSessionSuggestion)
		r.Post("/{id}/reset", s.handleSessionReset)
		r.Delete("/{id}", s.handleSessionDelete)
	})
}

// feedbackEntry is one row of feedbackHistory.
type feedbackEntry struct {
	Word     string `json:"word"`
	Feedback string `json:"feedback"`
}

type suggestionReq struct {
	FeedbackHistory []feedbackEntry `json:"feedbackHistory"`
}

// suggestionRes is the suggestion payload; on contradiction Error is set and
// Suggestion is "?????".
type suggestionRes struct {
	Error          bool     `json:"error,omitempty"`
	Message        string   `json:"message,omitempty"`
	SessionID      string   `json:"sessionId,omitempty"`
	Suggestion     string   `json:"suggestion"`
	RemainingCount int      `json:"remainingCount"`
	PossibleWords  []string `json:"possibleWords"`
}

const noMatchMessage = "No words match the feedback pattern you provided. Please check your feedback."

// handleGetSuggestion applies the whole history to a fresh engine, so an
// empty history is a new game.
func (s *Server) handleGetSuggestion(w http.ResponseWriter, r *http.Request) {
	var req suggestionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	eng := s.newEngine()
	steps := make([]history.Step, 0, len(req.FeedbackHistory))
	for _, fb := range req.FeedbackHistory {
		err := eng.UpdateWithFeedback(fb.Word, fb.Feedback)
		if err != nil && !errors.Is(err, solver.ErrNoCandidates) {
			writeErr(w, http.StatusBadRequest, s.inputMessage(fb, err))
			return
		}
		steps = append(steps, history.Step{Word: strings.ToLower(fb.Word), Feedback: fb.Feedback})
	}

	res, status := s.suggest(eng)
	s.recordSuggestion(r, "", steps, res)
	writeJSON(w, status, res)
}

type newSessionRes struct {
	SessionID      string `json:"sessionId"`
	WordLength     int    `json:"wordLength"`
	RemainingCount int    `json:"remainingCount"`
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sess := &session{eng: s.newEngine()}
	id := ids.New()
	if err := s.sessions.Save(r.Context(), id, sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeErr(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusCreated, newSessionRes{
		SessionID:      id,
		WordLength:     sess.eng.WordLength(),
		RemainingCount: sess.eng.CandidateCount(),
	})
}

// handleSessionFeedback applies one entry. Malformed input is rejected without
// touching the session; a contradiction is reported but the (empty) state kept,
// so the client must reset or start over.
func (s *Server) handleSessionFeedback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, ok := s.session(w, r, id)
	if !ok {
		return
	}
	var fb feedbackEntry
	if err := json.NewDecoder(r.Body).Decode(&fb); err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	err := sess.eng.UpdateWithFeedback(fb.Word, fb.Feedback)
	switch {
	case errors.Is(err, solver.ErrNoCandidates):
		sess.steps = append(sess.steps, history.Step{Word: strings.ToLower(fb.Word), Feedback: fb.Feedback})
		writeJSON(w, http.StatusBadRequest, suggestionRes{
			Error:         true,
			Message:       noMatchMessage,
			SessionID:     id,
			Suggestion:    "?????",
			PossibleWords: []string{},
		})
		return
	case err != nil:
		writeErr(w, http.StatusBadRequest, s.inputMessage(fb, err))
		return
	}
	sess.steps = append(sess.steps, history.Step{Word: strings.ToLower(fb.Word), Feedback: fb.Feedback})
	writeJSON(w, http.StatusOK, suggestionRes{
		SessionID:      id,
		RemainingCount: sess.eng.CandidateCount(),
		PossibleWords:  upper(sess.eng.CandidatePreview(s.solver.PreviewSize)),
	})
}

func (s *Server) handleSessionSuggestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, ok := s.session(w, r, id)
	if !ok {
		return
	}
	sess.mu.Lock()
	res, status := s.suggest(sess.eng)
	steps := append([]history.Step(nil), sess.steps...)
	sess.mu.Unlock()

	res.SessionID = id
	s.recordSuggestion(r, id, steps, res)
	writeJSON(w, status, res)
}

func (s *Server) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, ok := s.session(w, r, id)
	if !ok {
		return
	}
	sess.mu.Lock()
	sess.eng.Reset()
	sess.steps = nil
	n := sess.eng.CandidateCount()
	sess.mu.Unlock()
	writeJSON(w, http.StatusOK, newSessionRes{SessionID: id, WordLength: s.length, RemainingCount: n})
}

func (s *Server) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	_ = s.sessions.Delete(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// session loads a session or writes a 404.
func (s *Server) session(w http.ResponseWriter, r *http.Request, id string) (*session, bool) {
	sess, err := s.sessions.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "Unknown session.")
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Str("session", id).Msg("load session")
		writeErr(w, http.StatusInternalServerError, "Server error.")
		return nil, false
	}
	return sess, true
}

// suggest asks eng for its next guess and shapes the response.
func (s *Server) suggest(eng *solver.Engine) (suggestionRes, int) {
	guess, err := eng.BestGuess()
	if err != nil {
		return suggestionRes{
			Error:         true,
			Message:       noMatchMessage,
			Suggestion:    "?????",
			PossibleWords: []string{},
		}, http.StatusBadRequest
	}
	return suggestionRes{
		Suggestion:     strings.ToUpper(guess),
		RemainingCount: eng.CandidateCount(),
		PossibleWords:  upper(eng.CandidatePreview(s.solver.PreviewSize)),
	}, http.StatusOK
}

// inputMessage turns a validation error into a user-facing message.
func (s *Server) inputMessage(fb feedbackEntry, err error) string {
	if errors.Is(err, solver.ErrInvalidGuess) {
		return fmt.Sprintf("Invalid guess '%s'. Must be %d letters.", fb.Word, s.length)
	}
	return fmt.Sprintf("Invalid feedback pattern '%s'. Must be %d digits using only 0, 1, and 2.", fb.Feedback, s.length)
}

// recordSuggestion logs an answered request; failures are only logged.
func (s *Server) recordSuggestion(r *http.Request, sessionID string, steps []history.Step, res suggestionRes) {
	if s.db == nil || res.Error {
		return
	}
	var userID string
	if u := auth.FromContext(r.Context()); u != nil {
		userID = u.ID
	}
	err := s.db.RecordSuggestion(r.Context(), history.Suggestion{
		UserID:     userID,
		SessionID:  sessionID,
		Feedback:   steps,
		Suggestion: strings.ToLower(res.Suggestion),
		Remaining:  res.RemainingCount,
	})
	if err != nil {
		log.Warn().Err(err).Msg("record suggestion")
	}
}

func upper(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToUpper(w)
	}
	return out
}
