// Command wordle-solver ranks Wordle guesses by expected information and narrows
// the dictionary from feedback.
//
// Usage:
//
//	wordle-solver <command> [flags]
//
// Commands:
//
//	solve       interactive session: suggestions, then "<guess> <marks>" lines
//	path        autosolve one target and print the guesses
//	bench       autosolve every dictionary word and store the summary
//	rank        entropy of every dictionary word against the dictionary
//	precompute  build and write the pattern cache
//	normalize   turn raw corpus counts into a frequency table
//	serve       HTTP API
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/patterns"
)

type command struct {
	run  func(ctx context.Context, cfg config.Config, args []string) error
	help string
}

var commands = map[string]command{
	"solve":      {runSolve, "interactive session"},
	"path":       {runPath, "autosolve one target (-target)"},
	"bench":      {runBench, "autosolve every dictionary word"},
	"rank":       {runRank, "rank the dictionary by expected entropy"},
	"precompute": {runPrecompute, "write the pattern cache"},
	"normalize":  {runNormalize, "normalize raw counts into a frequency table"},
	"serve":      {runServe, "HTTP API"},
}

var commandOrder = []string{"solve", "path", "bench", "rank", "precompute", "normalize", "serve"}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: wordle-solver <command> [flags]")
	for _, name := range commandOrder {
		fmt.Fprintf(os.Stderr, "  %-11s %s\n", name, commands[name].help)
	}
}

func main() {
	cfg, err := config.Load()
	setupLogging(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cmd.run(ctx, cfg, os.Args[2:]); err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("command failed")
	}
}

// setupLogging applies LOG_LEVEL and LOG_FORMAT to the global logger.
func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// progressWriter is where progress bars go, nil when PROGRESS is off.
func progressWriter(cfg config.Config) io.Writer {
	if !cfg.Progress {
		return nil
	}
	return os.Stderr
}

// loadDictionary loads the configured dictionary or the embedded one.
func loadDictionary(cfg config.Config) ([]string, error) {
	dict, err := cfg.Dictionary()
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	src := cfg.WordsFile
	if src == "" {
		src = "embedded"
	}
	log.Info().Str("source", src).Str("words", humanize.Comma(int64(len(dict)))).Msg("dictionary loaded")
	return dict, nil
}

// loadCache reads the pattern cache at path. A missing file is built in memory
// instead; an unreadable or corrupt one is an error.
func loadCache(cfg config.Config, path string, dict []string) (*patterns.Cache, error) {
	if path != "" {
		c, err := patterns.Load(path)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		log.Warn().Str("path", path).Msg("no pattern cache, building in memory (see precompute)")
	}
	start := time.Now()
	c := patterns.Build(dict, patterns.BuildOptions{
		MaxLength: cfg.MaxPatternLength,
		Workers:   cfg.Workers,
		Progress:  progressWriter(cfg),
	})
	log.Info().Str("words", humanize.Comma(int64(c.Len()))).Dur("took", time.Since(start)).Msg("pattern cache built")
	return c, nil
}
