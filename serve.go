package main

import (
	"context"
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/httpserver"
	"github.com/robalobadob/wordle-solver/internal/results"
	"github.com/robalobadob/wordle-solver/internal/store"
)

func runServe(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.String("port", cfg.Port, "listen port")
	dbPath := fs.String("db", cfg.ResultsDB, "results database; empty to disable /benchmarks and /rankings")
	cachePath := fs.String("cache", cfg.CacheFile, "pattern cache file")
	fs.Parse(args)

	strategy, err := game.ParseStrategy(cfg.Strategy)
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

	var db *results.DB
	if *dbPath != "" {
		if db, err = results.Open(*dbPath); err != nil {
			return err
		}
		defer db.Close()
	}

	srv := httpserver.New(store.NewMemoryStore(), httpserver.Options{
		Dictionary: dict,
		WordLength: cfg.WordLength,
		Model:      model,
		Cache:      cache,
		Results:    db,
		Secret:     cfg.SessionSecret,
		TTL:        cfg.SessionTTL,
		Workers:    cfg.Workers,
		Strategy:   strategy,

		ClientOrigin: cfg.ClientOrigin,
	})
	log.Info().Str("port", *port).Str("model", model.String()).Msg("starting wordle-solver")
	return srv.Start(ctx, ":"+*port)
}
