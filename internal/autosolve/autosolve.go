// Package autosolve plays a known target with the letter heuristics and synthesized
// feedback, without entropy. It is used to find the path to one word and to benchmark
// a dictionary against itself.
package autosolve

import (
	"io"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/heuristic"
	"github.com/robalobadob/wordle-solver/internal/progress"
)

// Result is the outcome of one run. Path lists every guess made, the target last
// when Solved.
type Result struct {
	Target string   `json:"target"`
	Path   []string `json:"path"`
	Solved bool     `json:"solved"`
}

// Solve plays target against dict. dict is not modified. Words of a different length
// than target can never match it and are ignored.
func Solve(dict []string, target string) Result {
	candidates := make([]string, 0, len(dict))
	for _, w := range dict {
		if len(w) == len(target) {
			candidates = append(candidates, w)
		}
	}
	res := Result{Target: target}
	for len(candidates) > 0 {
		heuristic.Sort(candidates)
		guess := candidates[0]
		res.Path = append(res.Path, guess)
		if guess == target {
			res.Solved = true
			return res
		}
		p := feedback.Compare(guess, target)
		kept := candidates[:0]
		for _, w := range candidates {
			if p.Matches(w) {
				kept = append(kept, w)
			}
		}
		candidates = kept
	}
	return res
}

// Options controls Benchmark.
type Options struct {
	Workers  int       // 0 means GOMAXPROCS
	Progress io.Writer // optional progress bar output
}

// Benchmark solves every target independently in parallel. Results are in target order.
func Benchmark(dict, targets []string, opts Options) []Result {
	out := make([]Result, len(targets))
	bar := progress.New(len(targets), "autosolve", opts.Progress)
	var g errgroup.Group
	n := opts.Workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(n)
	for i, target := range targets {
		g.Go(func() error {
			out[i] = Solve(dict, target)
			_ = bar.Add(1)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Summary aggregates benchmark results. Mean and Worst cover solved runs only.
type Summary struct {
	Runs      int         `json:"runs"`
	Solved    int         `json:"solved"`
	Mean      float64     `json:"mean"`
	Worst     int         `json:"worst"`
	Histogram map[int]int `json:"histogram"` // path length -> solved runs
	Failed    []string    `json:"failed,omitempty"`
}

// Summarize aggregates results.
func Summarize(results []Result) Summary {
	s := Summary{Runs: len(results), Histogram: make(map[int]int)}
	total := 0
	for _, r := range results {
		if !r.Solved {
			s.Failed = append(s.Failed, r.Target)
			continue
		}
		n := len(r.Path)
		s.Solved++
		total += n
		s.Histogram[n]++
		s.Worst = max(s.Worst, n)
	}
	if s.Solved > 0 {
		s.Mean = float64(total) / float64(s.Solved)
	}
	sort.Strings(s.Failed)
	return s
}

// Lengths returns the histogram keys in ascending order.
func (s Summary) Lengths() []int {
	out := make([]int, 0, len(s.Histogram))
	for n := range s.Histogram {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
