// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle Wizard.
// Responsibilities:
//   - Router + middleware (access logs, request IDs, CORS, timeouts, panic recovery).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Solver endpoints (optional auth): POST /api/get_suggestion and /api/sessions/*.
//   - Practice endpoints (optional auth): /api/practice/*.
//   - Account endpoints: /auth/*, /history/mine.
//
// Notes:
//   - Every solver session owns its own engine behind its own mutex; engines
//     are never shared between callers.
//   - The history database is optional. Without it, account routes answer 503
//     and suggestion logging is skipped.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wizard-server/internal/auth"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/config"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/game"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/history"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/solver"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/store"
)

// sessionTTL is how long an idle solver session or practice game is kept.
const sessionTTL = 2 * time.Hour

// Deps are the collaborators a Server needs.
type Deps struct {
	Words        []string      // lexicon, shared read-only by every engine
	Solver       config.Solver // guess-selection parameters
	DB           *history.DB   // optional
	Tokens       *auth.Tokens
	DailySalt    string
	ClientOrigin string
}

// Server bundles router, session stores, and persistence.
type Server struct {
	r        *chi.Mux
	words    []string
	length   int
	dict     game.Dictionary
	solver   config.Solver
	sessions *store.Memory[*session]
	games    *store.Memory[*practice]
	db       *history.DB
	tokens   *auth.Tokens
	salt     string
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) (*Server, error) {
	// Fail fast on an unusable lexicon rather than on the first request.
	probe, err := solver.New(d.Words, d.Solver.Options())
	if err != nil {
		return nil, err
	}
	if d.Tokens == nil {
		return nil, errors.New("httpserver: token issuer required")
	}

	s := &Server{
		r:        chi.NewRouter(),
		words:    d.Words,
		length:   probe.WordLength(),
		dict:     game.NewDictionary(d.Words),
		solver:   d.Solver,
		sessions: store.NewMemory[*session](sessionTTL),
		games:    store.NewMemory[*practice](sessionTTL),
		db:       d.DB,
		tokens:   d.Tokens,
		salt:     d.DailySalt,
		now:      time.Now,
	}

	// --- middleware ---
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(d.ClientOrigin))            // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-wizard","endpoints":["/health","POST /api/get_suggestion","/api/sessions","/api/practice","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"words": len(s.words), "wordLength": s.length})
	})

	opt := s.tokens.Optional(s.userExists)
	s.mountSolver(s.r.With(opt))
	s.mountPractice(s.r.With(opt))
	s.mountAuth()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s, nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
// Idle sessions and games are swept in the background meanwhile.
func (s *Server) Start(ctx context.Context, addr string) error {
	go s.sessions.Janitor(ctx, time.Minute)
	go s.games.Janitor(ctx, time.Minute)

	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// newEngine returns a fresh engine over the server's lexicon.
func (s *Server) newEngine() *solver.Engine {
	// The lexicon was validated in New, so this cannot fail.
	e, err := solver.New(s.words, s.solver.Options())
	if err != nil {
		panic(err)
	}
	return e
}

// userExists backs the auth middleware; without a database nobody is signed in.
func (s *Server) userExists(ctx context.Context, id string) bool {
	if s.db == nil {
		return false
	}
	_, err := s.db.UserByID(ctx, id)
	return err == nil
}

// ----------------------------- middleware ----------------------------------

func accessLog(r *http.Request, status, size int, d time.Duration) {
	lvl := zerolog.InfoLevel
	if status >= http.StatusInternalServerError {
		lvl = zerolog.ErrorLevel
	}
	hlog.FromRequest(r).WithLevel(lvl).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------- small util --------------------------------

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errRes is the generic error payload.
type errRes struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errRes{Error: true, Message: msg})
}
