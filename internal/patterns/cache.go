// internal/patterns/cache.go
//
// In-memory permutation cache: word -> every pattern the word can receive.
//
// Characteristics:
//   - Built once for a dictionary, then read concurrently by the ranking workers.
//   - Concurrency-safe via RWMutex (concurrent lookups, exclusive inserts).
//   - A miss is not fatal: the patterns are generated on the spot, memoized and a
//     warning is logged, because generation is the slow path for long words.

package patterns

import (
	"io"
	"runtime"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/progress"
)

// DefaultMaxLength is the longest word Build precomputes patterns for.
const DefaultMaxLength = 5

// Cache maps words to their full pattern lists.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]feedback.Pattern
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string][]feedback.Pattern)}
}

// BuildOptions controls Build.
type BuildOptions struct {
	MaxLength int       // words longer than this are skipped; 0 means DefaultMaxLength
	Workers   int       // parallel units; 0 means GOMAXPROCS
	Progress  io.Writer // optional progress bar output
}

// Build precomputes patterns for every word no longer than opts.MaxLength.
func Build(words []string, opts BuildOptions) *Cache {
	maxLen := opts.MaxLength
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}
	var todo []string
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok || len(w) > maxLen {
			continue
		}
		seen[w] = struct{}{}
		todo = append(todo, w)
	}

	results := make([][]feedback.Pattern, len(todo))
	bar := progress.New(len(todo), "patterns", opts.Progress)
	var g errgroup.Group
	g.SetLimit(workers(opts.Workers))
	for i, w := range todo {
		g.Go(func() error {
			results[i] = Generate(w)
			_ = bar.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	c := &Cache{entries: make(map[string][]feedback.Pattern, len(todo))}
	for i, w := range todo {
		c.entries[w] = results[i]
	}
	if skipped := len(words) - len(todo); skipped > 0 {
		log.Debug().Int("skipped", skipped).Int("maxLength", maxLen).Msg("pattern cache skipped words")
	}
	return c
}

// Patterns returns the cached patterns for word, generating and memoizing them on a miss.
func (c *Cache) Patterns(word string) []feedback.Pattern {
	c.mu.RLock()
	ps, ok := c.entries[word]
	c.mu.RUnlock()
	if ok {
		return ps
	}
	log.Warn().Str("word", word).Msg("pattern cache miss, generating")
	ps = Generate(word)
	c.mu.Lock()
	c.entries[word] = ps
	c.mu.Unlock()
	return ps
}

// Has reports whether word has a cache entry.
func (c *Cache) Has(word string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[word]
	return ok
}

// Fill adds the missing entries for words and returns how many were generated.
// Unlike Patterns it does not log each miss.
func (c *Cache) Fill(words []string) int {
	n := 0
	for _, w := range words {
		if c.Has(w) {
			continue
		}
		ps := Generate(w)
		c.mu.Lock()
		c.entries[w] = ps
		c.mu.Unlock()
		n++
	}
	return n
}

// Len returns the number of cached words.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Words returns the cached words in sorted order.
func (c *Cache) Words() []string {
	c.mu.RLock()
	out := make([]string, 0, len(c.entries))
	for w := range c.entries {
		out = append(out, w)
	}
	c.mu.RUnlock()
	sort.Strings(out)
	return out
}

func workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}
