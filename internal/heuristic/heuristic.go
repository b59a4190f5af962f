// Package heuristic orders candidate words without entropy: by how common their
// distinct letters are across the candidates, and by how common each letter is at its
// position.
package heuristic

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// byKey sorts items descending by key, computing each key once. Equal keys keep their
// relative order.
func byKey[T any, K constraints.Ordered](items []T, key func(T) K) {
	keys := make([]K, len(items))
	idx := make([]int, len(items))
	for i, it := range items {
		keys[i] = key(it)
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return keys[idx[a]] > keys[idx[b]] })
	sorted := make([]T, len(items))
	for i, j := range idx {
		sorted[i] = items[j]
	}
	copy(items, sorted)
}

// LetterCounts returns, for each letter, the number of words containing it at least once.
func LetterCounts(words []string) [26]int {
	var counts [26]int
	for _, w := range words {
		var seen [26]bool
		for i := 0; i < len(w); i++ {
			c := w[i] - 'a'
			if c < 26 && !seen[c] {
				seen[c] = true
				counts[c]++
			}
		}
	}
	return counts
}

// PositionCounts returns, per position, how many words have each letter there.
func PositionCounts(words []string) [][26]int {
	var counts [][26]int
	for _, w := range words {
		for len(counts) < len(w) {
			counts = append(counts, [26]int{})
		}
		for i := 0; i < len(w); i++ {
			if c := w[i] - 'a'; c < 26 {
				counts[i][c]++
			}
		}
	}
	return counts
}

// FrequencyScore sums the letter counts of the distinct letters in w.
func FrequencyScore(counts [26]int, w string) int {
	var seen [26]bool
	score := 0
	for i := 0; i < len(w); i++ {
		c := w[i] - 'a'
		if c < 26 && !seen[c] {
			seen[c] = true
			score += counts[c]
		}
	}
	return score
}

// PositionalScore sums, over the positions of w, how often its letter appears there.
func PositionalScore(counts [][26]int, w string) int {
	score := 0
	for i := 0; i < len(w) && i < len(counts); i++ {
		if c := w[i] - 'a'; c < 26 {
			score += counts[i][c]
		}
	}
	return score
}

// CharacterFrequency sorts words in place, words made of the most widespread distinct
// letters first.
func CharacterFrequency(words []string) {
	counts := LetterCounts(words)
	byKey(words, func(w string) int { return FrequencyScore(counts, w) })
}

// Positional sorts words in place, words whose letters sit in their most common
// positions first.
func Positional(words []string) {
	counts := PositionCounts(words)
	byKey(words, func(w string) int { return PositionalScore(counts, w) })
}

// Sort applies CharacterFrequency then Positional. Positional decides, and character
// frequency breaks its ties.
func Sort(words []string) {
	CharacterFrequency(words)
	Positional(words)
}
