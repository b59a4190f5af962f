package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/patterns"
	"github.com/robalobadob/wordle-solver/internal/results"
	"github.com/robalobadob/wordle-solver/internal/weights"
)

func runRank(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	top := fs.Int("top", 20, "number of words to print")
	dbPath := fs.String("db", cfg.ResultsDB, "results database; empty to skip saving")
	cachePath := fs.String("cache", cfg.CacheFile, "pattern cache file")
	fs.Parse(args)

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

	start := time.Now()
	scores := sess.PrioritizeEntropy()
	log.Info().Str("words", humanize.Comma(int64(len(scores)))).Dur("took", time.Since(start)).Msg("ranked dictionary")
	for i, sc := range scores[:min(*top, len(scores))] {
		fmt.Printf("%4d. %s  %.4f bits\n", i+1, sc.Word, sc.Bits)
	}

	if *dbPath == "" {
		return nil
	}
	db, err := results.Open(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	id, err := db.SaveRanking(ctx, sess.Model(), scores)
	if err != nil {
		return fmt.Errorf("save ranking: %w", err)
	}
	log.Info().Int64("ranking", id).Str("db", *dbPath).Msg("ranking saved")
	return nil
}

func runPrecompute(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("precompute", flag.ExitOnError)
	out := fs.String("out", cfg.CacheFile, "cache file to write")
	maxLen := fs.Int("max", cfg.MaxPatternLength, "skip words longer than this")
	fs.Parse(args)

	if *out == "" {
		return errors.New("precompute: -out is required")
	}
	dict, err := loadDictionary(cfg)
	if err != nil {
		return err
	}
	start := time.Now()
	c := patterns.Build(dict, patterns.BuildOptions{
		MaxLength: *maxLen,
		Workers:   cfg.Workers,
		Progress:  progressWriter(cfg),
	})
	log.Info().Str("words", humanize.Comma(int64(c.Len()))).Dur("took", time.Since(start)).Msg("patterns generated")
	return c.Save(*out)
}

func runNormalize(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	in := fs.String("in", "", "raw \"<word> <count>\" file")
	out := fs.String("out", "-", "frequency table to write, - for stdout")
	stem := fs.Bool("stem", false, "fold inflected forms onto dictionary words and drop the rest")
	fs.Parse(args)

	if *in == "" {
		return errors.New("normalize: -in is required")
	}
	raw, err := weights.LoadTable(*in)
	if err != nil {
		return err
	}
	n := len(raw)
	if *stem {
		dict, err := loadDictionary(cfg)
		if err != nil {
			return err
		}
		raw = weights.FoldStems(raw, dict)
		log.Info().Str("raw", humanize.Comma(int64(n))).Str("kept", humanize.Comma(int64(len(raw)))).Msg("folded stems")
	}
	table := weights.Normalize(raw)

	var w io.Writer = os.Stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)
	if err := weights.WriteTable(bw, table); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	log.Info().Str("entries", humanize.Comma(int64(len(table)))).Str("out", *out).Msg("frequency table written")
	return nil
}
