// internal/game/engine.go
//
// Solver session: a dictionary narrowed by accumulated feedback.
// Responsibilities:
//   - Hold the starting dictionary under stable integer handles.
//   - Accumulate positional constraints and eliminate inconsistent candidates.
//   - Score and order the live candidates (entropy or letter heuristics).
//   - Report the information each guess actually delivered.
//
// Notes:
//   - A Session is not safe for concurrent use; the HTTP layer serializes access
//     per session.
//   - Weights and the pattern source are fixed at construction.
//   - Ranking fans out over the candidates but only reads session state.
package game

import (
	"fmt"
	"io"
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/entropy"
	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/heuristic"
	"github.com/robalobadob/wordle-solver/internal/patterns"
	"github.com/robalobadob/wordle-solver/internal/weights"
)

// Session is one solving run over a fixed dictionary.
type Session struct {
	dict  []string        // handle -> word, never mutated
	index map[string]uint // word -> handle
	live  *bitset.BitSet  // handles still consistent with the feedback
	order []uint          // live handles in presentation order

	model   weights.Model
	weights *weights.Map
	src     patterns.Source

	constraints []feedback.Positioned
	history     []string

	workers  int
	progress io.Writer
}

// New starts a session over dict. Duplicate words are dropped. Dictionary words the
// cache lacks are generated up front; a nil cache is built from dict.
func New(model weights.Model, dict []string, cache *patterns.Cache) (*Session, error) {
	if model == nil {
		return nil, ErrNoWeights
	}
	if len(dict) == 0 {
		return nil, ErrNoDictionary
	}

	s := &Session{index: make(map[string]uint, len(dict)), model: model}
	for _, w := range dict {
		if _, ok := s.index[w]; ok {
			continue
		}
		h := uint(len(s.dict))
		s.index[w] = h
		s.dict = append(s.dict, w)
		s.order = append(s.order, h)
	}
	s.live = bitset.New(uint(len(s.dict)))
	for _, h := range s.order {
		s.live.Set(h)
	}
	s.weights = model.Generate(s.dict)

	if cache == nil {
		cache = patterns.Build(s.dict, patterns.BuildOptions{MaxLength: longest(s.dict)})
	} else if n := cache.Fill(s.dict); n > 0 {
		log.Warn().Int("missing", n).Int("words", len(s.dict)).Msg("pattern cache incomplete for dictionary, generated entries")
	}
	s.src = cache

	log.Debug().
		Int("words", len(s.dict)).
		Str("model", model.String()).
		Float64("weight", s.weights.Sum()).
		Msg("session started")
	return s, nil
}

// Open starts a session whose patterns come from the cache file at cachePath.
func Open(model weights.Model, dict []string, cachePath string) (*Session, error) {
	if model == nil {
		return nil, ErrNoWeights
	}
	if len(dict) == 0 {
		return nil, ErrNoDictionary
	}
	cache, err := patterns.Load(cachePath)
	if err != nil {
		return nil, fmt.Errorf("open pattern cache: %w", err)
	}
	return New(model, dict, cache)
}

func longest(words []string) int {
	n := 0
	for _, w := range words {
		n = max(n, len(w))
	}
	return n
}

// SetWorkers bounds the parallelism of entropy ranking. n <= 0 means GOMAXPROCS.
func (s *Session) SetWorkers(n int) { s.workers = n }

// SetProgress enables a progress bar on w for entropy ranking. nil disables it.
func (s *Session) SetProgress(w io.Writer) { s.progress = w }

// AddInformation records one positional constraint. Candidates are not filtered
// until EliminateWords.
func (s *Session) AddInformation(pos int, c feedback.Correctness) {
	s.constraints = append(s.constraints, feedback.At(pos, c))
}

// AddPattern records every constraint of p.
func (s *Session) AddPattern(p feedback.Pattern) {
	s.constraints = append(s.constraints, p...)
}

// Constraints returns a copy of the accumulated constraints.
func (s *Session) Constraints() []feedback.Positioned {
	return append([]feedback.Positioned(nil), s.constraints...)
}

// EliminateWords drops every candidate that fails the accumulated constraints and
// returns how many were dropped. It does nothing once the session is solved or
// exhausted.
func (s *Session) EliminateWords() int {
	if s.State() != Active {
		return 0
	}
	kept := s.order[:0]
	removed := 0
	for _, h := range s.order {
		if feedback.Valid(s.dict[h], s.constraints) {
			kept = append(kept, h)
			continue
		}
		s.live.Clear(h)
		removed++
	}
	s.order = kept
	return removed
}

// EvaluateInformation scores guess against the current candidates, eliminates, and
// reports the information the feedback actually delivered. When no candidate
// survives the returned error is an *InconsistentError.
func (s *Session) EvaluateInformation(guess string) (Outcome, error) {
	before := s.RemainingWords()
	estimated := entropy.ForGuess(s.src, guess, s.PossibleWords(), s.weights)
	s.EliminateWords()
	s.history = append(s.history, guess)
	after := s.RemainingWords()

	out := Outcome{
		Guess:      guess,
		Estimated:  estimated,
		Before:     before,
		After:      after,
		State:      s.State(),
		Candidates: s.PossibleWords(),
	}
	if after == 0 {
		log.Warn().Strs("path", s.history).Msg("no candidates left")
		return out, &InconsistentError{Path: s.History()}
	}
	out.Actual = math.Log2(float64(before) / float64(after))
	log.Debug().
		Str("word", guess).
		Float64("estimated", estimated).
		Float64("actual", out.Actual).
		Int("remaining", after).
		Msg("guess evaluated")
	return out, nil
}

// PrioritizeEntropy orders the candidates by expected entropy against the current
// candidate set, highest first, and returns the scores in that order.
func (s *Session) PrioritizeEntropy() []entropy.Score {
	candidates := s.PossibleWords()
	scores := entropy.Rank(s.src, candidates, candidates, s.weights, entropy.RankOptions{
		Workers:  s.workers,
		Progress: s.progress,
	})
	entropy.Sort(scores)
	for i, sc := range scores {
		s.order[i] = s.index[sc.Word]
	}
	return scores
}

// Prioritize orders the candidates by strategy and returns them in the new order.
func (s *Session) Prioritize(strategy Strategy) []string {
	switch strategy {
	case StrategyPositional:
		s.reorder(heuristic.Positional)
	case StrategyFrequency:
		s.reorder(heuristic.CharacterFrequency)
	default:
		s.PrioritizeEntropy()
	}
	return s.PossibleWords()
}

func (s *Session) reorder(sortWords func([]string)) {
	words := s.PossibleWords()
	sortWords(words)
	for i, w := range words {
		s.order[i] = s.index[w]
	}
}

// PossibleWords returns the live candidates in presentation order.
func (s *Session) PossibleWords() []string {
	out := make([]string, len(s.order))
	for i, h := range s.order {
		out[i] = s.dict[h]
	}
	return out
}

// RemainingWords returns the number of live candidates.
func (s *Session) RemainingWords() int { return int(s.live.Count()) }

// IsCandidate reports whether w is still consistent with the feedback.
func (s *Session) IsCandidate(w string) bool {
	h, ok := s.index[w]
	return ok && s.live.Test(h)
}

// State derives the session state from the candidate count.
func (s *Session) State() State {
	switch n := s.RemainingWords(); {
	case n == 0:
		return Exhausted
	case n == 1:
		return Solved
	default:
		return Active
	}
}

// History returns the guesses evaluated so far.
func (s *Session) History() []string { return append([]string(nil), s.history...) }

// Dictionary returns the starting dictionary in handle order.
func (s *Session) Dictionary() []string { return append([]string(nil), s.dict...) }

// Model names the weighting scheme.
func (s *Session) Model() string { return s.model.String() }
