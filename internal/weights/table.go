package weights

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/kljensen/snowball/english"
)

// ReadTable parses "<word> <number>" lines. Blank lines and lines starting with '#'
// are skipped; any other malformed line, including a negative, NaN or infinite
// number, fails the whole read.
func ReadTable(r io.Reader) (Table, error) {
	t := make(Table)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		fields := strings.Fields(s)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: want 2 fields, got %d", line, len(fields))
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("line %d: weight %s is not a finite non-negative number", line, fields[1])
		}
		t[strings.ToLower(fields[0])] = v
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadTable reads a frequency table file.
func LoadTable(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// WriteTable writes t one entry per line, heaviest first, ties by word.
func WriteTable(w io.Writer, t Table) error {
	words := make([]string, 0, len(t))
	for word := range t {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if t[words[i]] == t[words[j]] {
			return words[i] < words[j]
		}
		return t[words[i]] > t[words[j]]
	})
	bw := bufio.NewWriter(w)
	for _, word := range words {
		if _, err := fmt.Fprintf(bw, "%s %s\n", word, strconv.FormatFloat(t[word], 'g', -1, 64)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FoldStems restricts raw corpus counts to dict. A corpus word in dict keeps its own
// count; any other corpus word whose stem matches a dictionary word's stem adds its
// count to that dictionary word, so "crane" collects "cranes" and "craned".
func FoldStems(raw Table, dict []string) Table {
	inDict := make(map[string]bool, len(dict))
	byStem := make(map[string]string, len(dict))
	for _, w := range dict {
		inDict[w] = true
		stem := english.Stem(w, true)
		if prev, ok := byStem[stem]; !ok || w < prev {
			byStem[stem] = w
		}
	}
	out := make(Table)
	for w, v := range raw {
		if inDict[w] {
			out[w] += v
			continue
		}
		if target, ok := byStem[english.Stem(w, true)]; ok {
			out[target] += v
		}
	}
	return out
}
