// Package entropy scores guesses by the expected information, in bits, their feedback
// reveals about the answer.
package entropy

import (
	"io"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/patterns"
	"github.com/robalobadob/wordle-solver/internal/progress"
	"github.com/robalobadob/wordle-solver/internal/weights"
)

// Distribution returns, for each pattern, the weighted fraction of candidates that
// satisfy it. All zeros when the candidates carry no weight.
func Distribution(ps []feedback.Pattern, candidates []string, w *weights.Map) []float64 {
	out := make([]float64, len(ps))
	total := 0.0
	for _, c := range candidates {
		total += w.Weight(c)
	}
	if total <= 0 {
		return out
	}
	for i, p := range ps {
		matched := 0.0
		for _, c := range candidates {
			if feedback.Valid(c, p) {
				matched += w.Weight(c)
			}
		}
		out[i] = matched / total
	}
	return out
}

// Information is p·log2(1/p), the contribution of an outcome with probability p.
// It is 0 for p == 0 rather than NaN.
func Information(p float64) float64 {
	if p <= 0 {
		return 0
	}
	return p * math.Log2(1/p)
}

// Expected returns the expected entropy of a guess whose patterns are ps.
func Expected(ps []feedback.Pattern, candidates []string, w *weights.Map) float64 {
	bits := 0.0
	for _, p := range Distribution(ps, candidates, w) {
		bits += Information(p)
	}
	return bits
}

// ForGuess returns the expected entropy of guess against candidates.
func ForGuess(src patterns.Source, guess string, candidates []string, w *weights.Map) float64 {
	return Expected(src.Patterns(guess), candidates, w)
}

// Score is a guess and its expected entropy.
type Score struct {
	Word string  `json:"word"`
	Bits float64 `json:"bits"`
}

// RankOptions controls Rank.
type RankOptions struct {
	Workers  int       // 0 means GOMAXPROCS
	Progress io.Writer // optional progress bar output
}

// Rank scores every guess against candidates in parallel. The inputs are only read;
// each worker writes its own slot of the result, which is in guess order.
func Rank(src patterns.Source, guesses, candidates []string, w *weights.Map, opts RankOptions) []Score {
	out := make([]Score, len(guesses))
	bar := progress.New(len(guesses), "entropy", opts.Progress)
	var g errgroup.Group
	n := opts.Workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(n)
	for i, guess := range guesses {
		g.Go(func() error {
			out[i] = Score{Word: guess, Bits: ForGuess(src, guess, candidates, w)}
			_ = bar.Add(1)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Sort orders scores by descending entropy. Ties keep their relative order.
func Sort(scores []Score) {
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Bits > scores[j].Bits })
}
