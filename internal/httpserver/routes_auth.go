// internal/httpserver/routes_auth.go
//
// Account endpoints:
//   - POST /auth/signup, POST /auth/login, POST /auth/logout
//   - GET  /auth/me       (requires auth)
//   - GET  /history/mine  (requires auth) → suggestion log + practice results

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wizard-server/internal/auth"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/history"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/ids"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) mountAuth() {
	s.r.Route("/auth", func(r chi.Router) {
		r.Use(s.requireDB)
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.With(s.tokens.Require(s.userExists)).Get("/me", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(auth.FromContext(r.Context()))
		})
	})
	s.r.With(s.requireDB, s.tokens.Require(s.userExists)).Get("/history/mine", s.handleMyHistory)
}

// requireDB answers 503 when no history database is configured.
func (s *Server) requireDB(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.db == nil {
			writeErr(w, http.StatusServiceUnavailable, "Accounts are disabled.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_json")
		return
	}
	username := strings.TrimSpace(body.Username)
	if err := auth.ValidateSignup(username, body.Password); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	hash, err := auth.HashPassword(body.Password)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "hash_failed")
		return
	}
	u := history.User{ID: ids.New(), Username: username, PasswordHash: hash, CreatedAt: s.now().UTC()}
	if err := s.db.CreateUser(r.Context(), u); err != nil {
		if errors.Is(err, history.ErrDuplicate) {
			writeErr(w, http.StatusConflict, "Username taken")
			return
		}
		log.Error().Err(err).Msg("create user")
		writeErr(w, http.StatusInternalServerError, "Server error.")
		return
	}
	if !s.issueToken(w, auth.User{ID: u.ID, Username: u.Username}) {
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, err := s.db.UserByUsername(r.Context(), strings.TrimSpace(body.Username))
	if err != nil || !auth.CheckPassword(u.PasswordHash, body.Password) {
		writeErr(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if !s.issueToken(w, auth.User{ID: u.ID, Username: u.Username}) {
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.tokens.ClearCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// issueToken signs a token and sets the auth cookie; false means a response was written.
func (s *Server) issueToken(w http.ResponseWriter, u auth.User) bool {
	tok, exp, err := s.tokens.Sign(u)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeErr(w, http.StatusInternalServerError, "sign_failed")
		return false
	}
	s.tokens.SetCookie(w, tok, exp)
	w.Header().Set("X-Auth-Token", tok)
	return true
}

type myHistoryRes struct {
	Suggestions []history.Suggestion `json:"suggestions"`
	Results     []history.Result     `json:"results"`
}

func (s *Server) handleMyHistory(w http.ResponseWriter, r *http.Request) {
	me := auth.FromContext(r.Context())
	sugs, err := s.db.Suggestions(r.Context(), me.ID, 50)
	if err != nil {
		log.Error().Err(err).Msg("load suggestions")
		writeErr(w, http.StatusInternalServerError, "Server error.")
		return
	}
	results, err := s.db.Results(r.Context(), me.ID, 50)
	if err != nil {
		log.Error().Err(err).Msg("load results")
		writeErr(w, http.StatusInternalServerError, "Server error.")
		return
	}
	writeJSON(w, http.StatusOK, myHistoryRes{Suggestions: sugs, Results: results})
}
