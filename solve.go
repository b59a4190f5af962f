package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/words"
)

const solveHelp = `Enter "<guess> <marks>", one mark per letter:
  g  correct position     (also c, +)
  y  wrong position       (also s, ~)
  b  not in the word      (also ., -, x)
Other commands: words, strategy <entropy|positional|frequency>, help, quit`

func runSolve(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	strategyName := fs.String("strategy", cfg.Strategy, "suggestion order: entropy, positional or frequency")
	top := fs.Int("top", 10, "number of suggestions to show")
	cachePath := fs.String("cache", cfg.CacheFile, "pattern cache file")
	fs.Parse(args)

	strategy, err := game.ParseStrategy(*strategyName)
	if err != nil {
		return err
	}
	dict, err := loadDictionary(cfg)
	if err != nil {
		return err
	}
	model, err := cfg.WeightModel()
	if err != nil {
		return err
	}
	cache, err := loadCache(cfg, *cachePath, dict)
	if err != nil {
		return err
	}
	sess, err := game.New(model, dict, cache)
	if err != nil {
		return err
	}
	sess.SetWorkers(cfg.Workers)
	sess.SetProgress(progressWriter(cfg))

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "guess> ",
		HistoryFile: filepath.Join(os.TempDir(), "wordle-solver.history"),
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	out := rl.Stdout()

	fmt.Fprintln(out, solveHelp)
	suggest(out, sess, strategy, *top)
	for {
		line, err := rl.Readline()
		switch err {
		case nil:
		case readline.ErrInterrupt:
			continue
		case io.EOF:
			return nil
		default:
			return err
		}
		if ctx.Err() != nil {
			return nil
		}

		fields := strings.Fields(strings.ToLower(line))
		switch {
		case len(fields) == 0:
			continue
		case fields[0] == "quit" || fields[0] == "exit":
			return nil
		case fields[0] == "help":
			fmt.Fprintln(out, solveHelp)
			continue
		case fields[0] == "words":
			fmt.Fprintln(out, strings.Join(sess.PossibleWords(), " "))
			continue
		case fields[0] == "strategy" && len(fields) == 2:
			s, err := game.ParseStrategy(fields[1])
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			strategy = s
			suggest(out, sess, strategy, *top)
			continue
		case len(fields) != 2:
			fmt.Fprintln(out, `want "<guess> <marks>", e.g. "slate bgybb"`)
			continue
		}

		guess, marks := fields[0], fields[1]
		if err := words.Validate(guess, cfg.WordLength); err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		p, err := feedback.ParsePattern(guess, marks)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		sess.AddPattern(p)
		res, err := sess.EvaluateInformation(guess)
		var inconsistent *game.InconsistentError
		if errors.As(err, &inconsistent) {
			fmt.Fprintf(out, "No word fits that feedback (guesses: %s).\n", strings.Join(inconsistent.Path, ", "))
			log.Warn().Strs("path", inconsistent.Path).Msg("session exhausted")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  expected %.3f bits, got %.3f bits, %d → %d candidates\n",
			p.Colored(), res.Estimated, res.Actual, res.Before, res.After)
		if sess.State() == game.Solved {
			fmt.Fprintf(out, "Solved: %s after %d guesses\n", strings.ToUpper(sess.PossibleWords()[0]), len(sess.History()))
			return nil
		}
		suggest(out, sess, strategy, *top)
	}
}

// suggest prints the first n candidates in strategy order.
func suggest(w io.Writer, sess *game.Session, strategy game.Strategy, n int) {
	fmt.Fprintf(w, "%d candidates, best by %s:\n", sess.RemainingWords(), strategy)
	if strategy == game.StrategyEntropy {
		scores := sess.PrioritizeEntropy()
		for i, sc := range scores[:min(n, len(scores))] {
			fmt.Fprintf(w, "%3d. %s  %.4f bits\n", i+1, sc.Word, sc.Bits)
		}
		return
	}
	ws := sess.Prioritize(strategy)
	for i, word := range ws[:min(n, len(ws))] {
		fmt.Fprintf(w, "%3d. %s\n", i+1, word)
	}
}
