// Package patterns enumerates the feedback patterns a guess can receive and keeps a
// precomputed cache of them.
package patterns

import (
	"fmt"

	"github.com/robalobadob/wordle-solver/internal/feedback"
)

// Source returns every pattern for a word. A Cache and a Generator both satisfy it, so
// callers do not care which one served the request.
type Source interface {
	Patterns(word string) []feedback.Pattern
}

// Generator computes patterns on demand.
type Generator struct{}

func (Generator) Patterns(word string) []feedback.Pattern { return Generate(word) }

// Count returns 3^n, the number of patterns for a word of length n.
func Count(n int) int {
	c := 1
	for range n {
		c *= len(feedback.Marks)
	}
	return c
}

// Generate returns all 3^L patterns for word, the cross product of the three marks at
// every position with the letters fixed by word. The first position varies fastest.
// It panics if the result breaks the cardinality or length invariants.
func Generate(word string) []feedback.Pattern {
	n := len(word)
	out := make([]feedback.Pattern, 0, Count(n))
	if n == 0 {
		out = append(out, feedback.Pattern{})
	} else {
		for _, m := range feedback.Marks {
			out = append(out, feedback.Pattern{mark(0, word[0], m)})
		}
	}
	for i := 1; i < n; i++ {
		next := make([]feedback.Pattern, 0, len(out)*len(feedback.Marks))
		for _, m := range feedback.Marks {
			for _, p := range out {
				q := make(feedback.Pattern, i+1)
				copy(q, p)
				q[i] = mark(i, word[i], m)
				next = append(next, q)
			}
		}
		out = next
	}

	if len(out) != Count(n) {
		panic(fmt.Sprintf("patterns: %q produced %d patterns, want %d", word, len(out), Count(n)))
	}
	for _, p := range out {
		if len(p) != n {
			panic(fmt.Sprintf("patterns: %q produced a pattern of length %d", word, len(p)))
		}
	}
	return out
}

func mark(pos int, c byte, m feedback.Mark) feedback.Positioned {
	return feedback.At(pos, feedback.Correctness{Mark: m, Letter: c})
}
