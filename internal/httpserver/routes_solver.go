// internal/httpserver/routes_solver.go
//
// HTTP routes that need no session:
//   - GET /autosolve/{target}  → heuristic path to target over the dictionary
//   - GET /benchmarks/latest   → latest stored benchmark summary and worst targets
//   - GET /rankings/latest     → latest stored entropy ranking
//
// The stored results come from the bench and rank commands; without a results
// database the last two answer 404.

package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/autosolve"
	"github.com/robalobadob/wordle-solver/internal/results"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// mountSolver registers the session-less routes.
func (s *Server) mountSolver(r chi.Router) {
	r.Get("/autosolve/{target}", s.handleAutosolve)
	r.Get("/benchmarks/latest", s.handleLatestBenchmark)
	r.Get("/rankings/latest", s.handleLatestRanking)
}

// -----------------------------------------------------------------------------
// /autosolve/{target}

// handleAutosolve plays target with the letter heuristics. An unknown target is
// not an error: the result reports the partial path with solved=false.
func (s *Server) handleAutosolve(w http.ResponseWriter, r *http.Request) {
	target := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "target")))
	if err := words.Validate(target, s.opts.WordLength); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, autosolve.Solve(s.opts.Dictionary, target))
}

// -----------------------------------------------------------------------------
// /benchmarks/latest

// queryInt reads a positive integer query parameter, def otherwise.
func queryInt(r *http.Request, key string, def int) int {
	if n, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil && n > 0 {
		return n
	}
	return def
}

// handleLatestBenchmark returns the most recent stored run (?worst=N targets).
func (s *Server) handleLatestBenchmark(w http.ResponseWriter, r *http.Request) {
	if s.opts.Results == nil {
		writeError(w, http.StatusNotFound, "no_results_db")
		return
	}
	b, err := s.opts.Results.LatestBenchmark(r.Context(), queryInt(r, "worst", 10))
	if errors.Is(err, results.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no_benchmark")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("latest benchmark")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// -----------------------------------------------------------------------------
// /rankings/latest

// handleLatestRanking returns the top of the most recent ranking (?limit=N).
func (s *Server) handleLatestRanking(w http.ResponseWriter, r *http.Request) {
	if s.opts.Results == nil {
		writeError(w, http.StatusNotFound, "no_results_db")
		return
	}
	rk, err := s.opts.Results.TopRanking(r.Context(), queryInt(r, "limit", 20))
	if errors.Is(err, results.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no_ranking")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("latest ranking")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, rk)
}
