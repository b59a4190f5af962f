// internal/words/words.go
//
// Dictionary loading for the solver.
//
// Responsibilities:
//   - Parse word lists (one word per line) from files or the embedded default.
//   - Validate words: fixed length, lowercase ASCII a–z.
//   - Keep the first occurrence of duplicates, in file order.
//
// Sources:
//   1. WORDS_FILE (config) → Load(path, length).
//   2. Otherwise the embedded assets/answers.txt → Default(length).
//
// Constraints:
//   • Blank lines and lines starting with '#' are skipped.
//   • Words are trimmed and lowercased before validation.
//   • Any invalid word fails the whole load with its line number.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/wordle-solver/assets"
)

// DefaultLength is the classic Wordle word length.
const DefaultLength = 5

var (
	ErrWordLen  = errors.New("words: wrong word length")
	ErrWordChar = errors.New("words: word must be letters a-z")
)

// Validate checks that w has the given length and only lowercase a–z letters.
func Validate(w string, length int) error {
	if len(w) != length {
		return fmt.Errorf("%w: %q has %d letters, want %d", ErrWordLen, w, len(w), length)
	}
	if !isAlpha(w) {
		return fmt.Errorf("%w: %q", ErrWordChar, w)
	}
	return nil
}

// Parse reads one word per line from r.
func Parse(r io.Reader, length int) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if err := Validate(w, length); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out, sc.Err()
}

// Load reads the word list at path.
func Load(path string, length int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ws, err := Parse(f, length)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ws, nil
}

// Default returns the embedded word list.
func Default(length int) ([]string, error) {
	f, err := assets.Dictionary()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ws, err := Parse(f, length)
	if err != nil {
		return nil, fmt.Errorf("embedded %s: %w", assets.DictionaryName, err)
	}
	return ws, nil
}

// Resolve loads path, or the embedded list when path is empty.
func Resolve(path string, length int) ([]string, error) {
	if path == "" {
		return Default(length)
	}
	return Load(path, length)
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
