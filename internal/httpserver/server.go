// internal/httpserver/server.go
//
// HTTP server wiring for the solver API.
// Responsibilities:
//   - Router + middleware (request IDs, panic recovery, CORS, timeouts, JSON).
//   - Public endpoints: "/", "/health", "/debug/words", "/debug/fgprof".
//   - Session endpoints: POST /sessions, then token-guarded /sessions/{id}/*.
//   - Solver endpoints: /autosolve/{target}, /benchmarks/latest, /rankings/latest
//     (routes_solver.go).
//
// Notes:
//   - Every session is a game.Session over the shared dictionary, weight model and
//     pattern cache; the cache is read-only once built.
//   - A session token is an HS256 JWT whose "sid" claim names the session
//     (auth.go). Routes under /sessions/{id} require it.
//   - Idle sessions are dropped after the token TTL.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/felixge/fgprof"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/entropy"
	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/patterns"
	"github.com/robalobadob/wordle-solver/internal/results"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/weights"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Options are the shared dependencies of every request.
type Options struct {
	Dictionary []string
	WordLength int
	Model      weights.Model
	Cache      *patterns.Cache
	Results    *results.DB // optional
	Secret     string
	TTL        time.Duration
	Workers    int
	Strategy   game.Strategy // default for new sessions

	// ClientOrigin is the single browser origin allowed by CORS; empty disables it.
	ClientOrigin string
}

// Server bundles router, session store and solver dependencies.
type Server struct {
	r     *chi.Mux
	store store.Store
	opts  Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.WordLength <= 0 {
		opts.WordLength = words.DefaultLength
	}
	if opts.Cache == nil {
		opts.Cache = patterns.NewCache()
	}
	s := &Server{r: chi.NewRouter(), store: st, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	if opts.ClientOrigin != "" {
		s.r.Use(cors(opts.ClientOrigin)) // browser clients on another origin
	}

	// Profiles run longer than the API timeout.
	s.r.Handle("/debug/fgprof", fgprof.Handler())

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(30 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"service": "wordle-solver",
				"model":   s.opts.Model.String(),
				"endpoints": []string{
					"/health", "POST /sessions", "GET /sessions/{id}",
					"POST /sessions/{id}/guesses", "POST /sessions/{id}/prioritize",
					"GET /autosolve/{target}", "GET /benchmarks/latest", "GET /rankings/latest",
				},
			})
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.store.Len()})
		})
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]int{
				"dictionary": len(s.opts.Dictionary),
				"cached":     s.opts.Cache.Len(),
				"length":     s.opts.WordLength,
			})
		})

		// Sessions: creation is open, everything else needs the session token.
		r.Post("/sessions", s.handleNewSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Use(s.requireSession)
			r.Get("/", s.handleGetSession)
			r.Post("/guesses", s.handleGuess)
			r.Post("/prioritize", s.handlePrioritize)
		})

		s.mountSolver(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start serves HTTP on addr until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 10 * time.Second}
	go s.expireLoop(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) expireLoop(ctx context.Context) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.store.Expire(ctx, now.Add(-s.opts.TTL)); n > 0 {
				log.Info().Int("expired", n).Int("live", s.store.Len()).Msg("dropped idle sessions")
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

// cors allows a single origin to call the API with a bearer token. Preflight
// requests are answered here.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// ----------------------------- SESSIONS ------------------------------------

type newSessionReq struct {
	Strategy string `json:"strategy"` // optional; server default otherwise
}
type newSessionRes struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Strategy  string    `json:"strategy"`
	Remaining int       `json:"remaining"`
}

// handleNewSession starts a session over the full dictionary and returns its token.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	strategy := s.opts.Strategy
	if req.Strategy != "" {
		var err error
		if strategy, err = game.ParseStrategy(req.Strategy); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	gs, err := game.New(s.opts.Model, s.opts.Dictionary, s.opts.Cache)
	if err != nil {
		log.Error().Err(err).Msg("new session")
		writeError(w, http.StatusInternalServerError, "session_failed")
		return
	}
	gs.SetWorkers(s.opts.Workers)
	e, err := s.store.Create(r.Context(), gs, strategy)
	if err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signSessionToken(e.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		writeError(w, http.StatusInternalServerError, "token_failed")
		return
	}
	log.Info().Str("session", e.ID).Str("strategy", strategy.String()).Msg("session created")
	writeJSON(w, http.StatusCreated, newSessionRes{
		ID:        e.ID,
		Token:     tok,
		ExpiresAt: exp,
		Strategy:  strategy.String(),
		Remaining: gs.RemainingWords(),
	})
}

type sessionRes struct {
	ID        string     `json:"id"`
	Strategy  string     `json:"strategy"`
	State     game.State `json:"state"`
	Remaining int        `json:"remaining"`
	Top       []string   `json:"top"`
	History   []string   `json:"history"`
}

const topWords = 10

// handleGetSession reports the session state and its first candidates in the
// current order.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	e := entryFrom(r)
	var res sessionRes
	_ = e.Do(func(gs *game.Session) error {
		top := gs.PossibleWords()
		if len(top) > topWords {
			top = top[:topWords]
		}
		res = sessionRes{
			ID:        e.ID,
			Strategy:  e.Strategy.String(),
			State:     gs.State(),
			Remaining: gs.RemainingWords(),
			Top:       top,
			History:   gs.History(),
		}
		return nil
	})
	writeJSON(w, http.StatusOK, res)
}

type guessReq struct {
	Guess string `json:"guess"`
	Marks string `json:"marks"` // one of g/y/b (or aliases) per letter
}

// handleGuess records the feedback for one guess and eliminates candidates.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	req.Guess = strings.ToLower(strings.TrimSpace(req.Guess))
	if err := words.Validate(req.Guess, s.opts.WordLength); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := feedback.ParsePattern(req.Guess, req.Marks)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	e := entryFrom(r)
	var out game.Outcome
	err = e.Do(func(gs *game.Session) error {
		gs.AddPattern(p)
		var err error
		out, err = gs.EvaluateInformation(req.Guess)
		return err
	})
	var inconsistent *game.InconsistentError
	if errors.As(err, &inconsistent) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error": "inconsistent",
			"path":  inconsistent.Path,
		})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("session", e.ID).Msg("evaluate guess")
		writeError(w, http.StatusInternalServerError, "evaluate_failed")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type prioritizeReq struct {
	Strategy string `json:"strategy"` // optional; session strategy otherwise
	Limit    int    `json:"limit"`    // optional; all candidates when <= 0
}
type prioritizeRes struct {
	Strategy string          `json:"strategy"`
	Words    []string        `json:"words"`
	Scores   []entropy.Score `json:"scores,omitempty"`
}

// handlePrioritize reorders the candidates and returns the first limit of them.
func (s *Server) handlePrioritize(w http.ResponseWriter, r *http.Request) {
	var req prioritizeReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	e := entryFrom(r)
	strategy := e.Strategy
	if req.Strategy != "" {
		var err error
		if strategy, err = game.ParseStrategy(req.Strategy); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	res := prioritizeRes{Strategy: strategy.String()}
	_ = e.Do(func(gs *game.Session) error {
		if strategy == game.StrategyEntropy {
			res.Scores = gs.PrioritizeEntropy()
			res.Words = gs.PossibleWords()
			return nil
		}
		res.Words = gs.Prioritize(strategy)
		return nil
	})
	if req.Limit > 0 {
		if len(res.Words) > req.Limit {
			res.Words = res.Words[:req.Limit]
		}
		if len(res.Scores) > req.Limit {
			res.Scores = res.Scores[:req.Limit]
		}
	}
	writeJSON(w, http.StatusOK, res)
}
