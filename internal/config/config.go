// internal/config/config.go
//
// Environment configuration shared by every command.
//
// Loading order:
//   1. .env in the working directory (optional, via godotenv).
//   2. Process environment.
//   3. Defaults below.
// Command-line flags override individual fields afterwards.
//
// Environment variables:
//   LOG_LEVEL=info            LOG_FORMAT=console|json
//   WORDS_FILE=               (empty: embedded list)
//   WORD_LENGTH=5
//   FREQUENCY_FILE=           (empty: uniform weights)
//   CACHE_FILE=patterns.cache MAX_PATTERN_LENGTH=5
//   RESULTS_DB=./data/results.db
//   PORT=5175                 SESSION_SECRET=dev_secret_change_me
//   SESSION_TTL_HOURS=24      CLIENT_ORIGIN=http://localhost:5173
//   WORKERS=0                 (0: GOMAXPROCS)
//   PROGRESS=true             STRATEGY=entropy

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/robalobadob/wordle-solver/internal/weights"
	"github.com/robalobadob/wordle-solver/internal/words"
)

type Config struct {
	LogLevel  string
	LogFormat string

	WordsFile        string
	WordLength       int
	FrequencyFile    string
	CacheFile        string
	MaxPatternLength int

	ResultsDB     string
	Port          string
	SessionSecret string
	SessionTTL    time.Duration
	ClientOrigin  string

	Workers  int
	Progress bool
	Strategy string
}

// Load reads .env (if present) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the process environment only.
func FromEnv() (Config, error) {
	c := Config{
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		WordsFile:     os.Getenv("WORDS_FILE"),
		FrequencyFile: os.Getenv("FREQUENCY_FILE"),
		CacheFile:     getEnv("CACHE_FILE", "patterns.cache"),
		ResultsDB:     getEnv("RESULTS_DB", "./data/results.db"),
		Port:          getEnv("PORT", "5175"),
		SessionSecret: getEnv("SESSION_SECRET", "dev_secret_change_me"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Strategy:      getEnv("STRATEGY", "entropy"),
	}
	var err error
	if c.WordLength, err = getInt("WORD_LENGTH", words.DefaultLength); err != nil {
		return c, err
	}
	if c.MaxPatternLength, err = getInt("MAX_PATTERN_LENGTH", 5); err != nil {
		return c, err
	}
	if c.Workers, err = getInt("WORKERS", 0); err != nil {
		return c, err
	}
	hours, err := getInt("SESSION_TTL_HOURS", 24)
	if err != nil {
		return c, err
	}
	c.SessionTTL = time.Duration(hours) * time.Hour
	if c.Progress, err = getBool("PROGRESS", true); err != nil {
		return c, err
	}
	if c.WordLength <= 0 {
		return c, fmt.Errorf("WORD_LENGTH must be positive, got %d", c.WordLength)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return c, fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	return c, nil
}

// Dictionary loads WORDS_FILE, or the embedded list when unset.
func (c Config) Dictionary() ([]string, error) {
	return words.Resolve(c.WordsFile, c.WordLength)
}

// WeightModel returns the frequency model for FREQUENCY_FILE, or the uniform model
// when unset.
func (c Config) WeightModel() (weights.Model, error) {
	if c.FrequencyFile == "" {
		return weights.Uniform{}, nil
	}
	t, err := weights.LoadTable(c.FrequencyFile)
	if err != nil {
		return nil, err
	}
	return weights.Frequency{Table: t}, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

func getBool(k string, def bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", k, err)
	}
	return b, nil
}
