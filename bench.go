package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/autosolve"
	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/results"
	"github.com/robalobadob/wordle-solver/internal/words"
)

func runPath(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("path", flag.ExitOnError)
	target := fs.String("target", "", "word to solve for")
	fs.Parse(args)

	t := strings.ToLower(strings.TrimSpace(*target))
	if t == "" {
		return errors.New("path: -target is required")
	}
	if err := words.Validate(t, cfg.WordLength); err != nil {
		return err
	}
	dict, err := loadDictionary(cfg)
	if err != nil {
		return err
	}
	r := autosolve.Solve(dict, t)
	for i, g := range r.Path {
		fmt.Printf("%d. %s\n", i+1, feedback.Compare(g, t).Colored())
	}
	if !r.Solved {
		fmt.Printf("ran out of candidates looking for %s; is it in the dictionary?\n", t)
		return nil
	}
	fmt.Printf("solved %s in %d guesses\n", t, len(r.Path))
	return nil
}

func runBench(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	dbPath := fs.String("db", cfg.ResultsDB, "results database; empty to skip saving")
	fs.Parse(args)

	dict, err := loadDictionary(cfg)
	if err != nil {
		return err
	}
	start := time.Now()
	rs := autosolve.Benchmark(dict, dict, autosolve.Options{
		Workers:  cfg.Workers,
		Progress: progressWriter(cfg),
	})
	log.Info().Str("runs", humanize.Comma(int64(len(rs)))).Dur("took", time.Since(start)).Msg("benchmark finished")
	printSummary(os.Stdout, autosolve.Summarize(rs))

	if *dbPath == "" {
		return nil
	}
	db, err := results.Open(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	id, err := db.SaveBenchmark(ctx, rs)
	if err != nil {
		return fmt.Errorf("save benchmark: %w", err)
	}
	log.Info().Int64("run", id).Str("db", *dbPath).Msg("benchmark saved")
	return nil
}

// printSummary writes the solved rate, mean path length and a histogram.
func printSummary(w io.Writer, s autosolve.Summary) {
	fmt.Fprintf(w, "solved %s/%s, mean %.3f guesses, worst %d\n",
		humanize.Comma(int64(s.Solved)), humanize.Comma(int64(s.Runs)), s.Mean, s.Worst)
	most := 0
	for _, c := range s.Histogram {
		most = max(most, c)
	}
	for _, n := range s.Lengths() {
		c := s.Histogram[n]
		bar := strings.Repeat("#", (c*50+most-1)/most)
		fmt.Fprintf(w, "%3d  %6s  %s\n", n, humanize.Comma(int64(c)), bar)
	}
	if len(s.Failed) > 0 {
		fmt.Fprintf(w, "unsolved: %s\n", strings.Join(s.Failed, " "))
	}
}
