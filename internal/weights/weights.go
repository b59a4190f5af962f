// internal/weights/weights.go
//
// Prior likelihood of each dictionary word being the answer.
//
// Two weighting schemes are supported, selected once when a session is built:
//   - Uniform:   every word weighs 1.0.
//   - Frequency: every word weighs its frequency-table entry, or 0.0 when the table
//                has no entry. Such words stay in the dictionary but never add
//                probability mass.

package weights

import "math"

// Table maps words to raw or normalized frequencies.
type Table map[string]float64

// Map holds one non-negative weight per dictionary word and their sum.
type Map struct {
	weights map[string]float64
	sum     float64
}

// Generate builds the weight map for dict. A nil table gives the uniform prior.
func Generate(table Table, dict []string) *Map {
	m := &Map{weights: make(map[string]float64, len(dict))}
	for _, w := range dict {
		if _, ok := m.weights[w]; ok {
			continue
		}
		v := 1.0
		if table != nil {
			v = table[w]
			if !usable(v) {
				v = 0
			}
		}
		m.weights[w] = v
		m.sum += v
	}
	return m
}

// Weight returns the weight of w, 0 for words outside the map.
func (m *Map) Weight(w string) float64 { return m.weights[w] }

// Sum returns the total weight of the map.
func (m *Map) Sum() float64 { return m.sum }

// Len returns the number of words in the map.
func (m *Map) Len() int { return len(m.weights) }

// Model selects a weighting scheme.
type Model interface {
	Generate(dict []string) *Map
	String() string
}

// Uniform weighs every word equally.
type Uniform struct{}

func (Uniform) Generate(dict []string) *Map { return Generate(nil, dict) }
func (Uniform) String() string              { return "uniform" }

// Frequency weighs words by a frequency table.
type Frequency struct {
	Table Table
}

func (f Frequency) Generate(dict []string) *Map {
	t := f.Table
	if t == nil {
		t = Table{}
	}
	return Generate(t, dict)
}

func (Frequency) String() string { return "frequency" }

// Normalize divides every count by the total so the table sums to 1. Negative or
// non-finite counts are treated as 0. An all-zero table is returned as zeros.
func Normalize(raw Table) Table {
	var total float64
	for _, v := range raw {
		if usable(v) {
			total += v
		}
	}
	out := make(Table, len(raw))
	for w, v := range raw {
		if !usable(v) || total == 0 || math.IsInf(total, 0) {
			out[w] = 0
			continue
		}
		out[w] = v / total
	}
	return out
}

// usable reports whether v can count as a weight.
func usable(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
