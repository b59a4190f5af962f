package entropy

import (
	"math"
	"strings"
	"testing"

	"github.com/robalobadob/wordle-solver/internal/patterns"
	"github.com/robalobadob/wordle-solver/internal/weights"
)

const tolerance = 1e-9

// reference is a fixed dictionary; the expected values below were captured from it.
var reference = strings.Fields(`
	slate crane trace plate sling stale least tales steal abide
	eerie speed crown dream weary waist woman watch pious adieu
	audio raise arise irate later alter alert mount shore snore`)

func TestExpectedBaseline(t *testing.T) {
	uniform := weights.Uniform{}.Generate(reference)
	ranked := make(weights.Table, len(reference))
	for i, w := range reference {
		ranked[w] = float64(i + 1)
	}
	weighted := weights.Frequency{Table: ranked}.Generate(reference)

	for _, tt := range []struct {
		guess string
		w     *weights.Map
		want  float64
	}{
		{"slate", uniform, 4.573557262275185},
		{"crane", uniform, 4.231401845392171},
		{"slate", weighted, 4.16054587955692},
	} {
		got := ForGuess(patterns.Generator{}, tt.guess, reference, tt.w)
		if math.Abs(got-tt.want) > tolerance {
			t.Errorf("ForGuess(%s): got %.15f; want %.15f", tt.guess, got, tt.want)
		}
	}
}

func TestExpectedReproducible(t *testing.T) {
	w := weights.Uniform{}.Generate(reference)
	cache := patterns.Build(reference, patterns.BuildOptions{})
	first := ForGuess(cache, "slate", reference, w)
	for range 3 {
		if got := ForGuess(cache, "slate", reference, w); got != first {
			t.Fatalf("got %v; want %v", got, first)
		}
	}
	if got := ForGuess(patterns.Generator{}, "slate", reference, w); math.Abs(got-first) > tolerance {
		t.Fatalf("generator and cache disagree: %v vs %v", got, first)
	}
}

func TestDistributionSumsToOne(t *testing.T) {
	ranked := make(weights.Table, len(reference))
	for i, w := range reference {
		ranked[w] = 1 / float64(i+1)
	}
	for _, w := range []*weights.Map{
		weights.Uniform{}.Generate(reference),
		weights.Frequency{Table: ranked}.Generate(reference),
	} {
		for _, guess := range []string{"slate", "eerie", "speed", "zzzzz"} {
			d := Distribution(patterns.Generate(guess), reference, w)
			sum := 0.0
			for _, p := range d {
				if p < 0 || p > 1 {
					t.Fatalf("%s: probability %v out of range", guess, p)
				}
				sum += p
			}
			if math.Abs(sum-1) > tolerance {
				t.Errorf("%s: probabilities sum to %v; want 1", guess, sum)
			}
		}
	}
}

func TestExpectedZero(t *testing.T) {
	w := weights.Uniform{}.Generate(reference)
	if got := ForGuess(patterns.Generator{}, "zzzzz", reference, w); got != 0 {
		t.Errorf("disjoint guess: got %v; want 0", got)
	}
	if got := ForGuess(patterns.Generator{}, "slate", nil, w); got != 0 {
		t.Errorf("no candidates: got %v; want 0", got)
	}
	zero := weights.Frequency{Table: weights.Table{}}.Generate(reference)
	if got := ForGuess(patterns.Generator{}, "slate", reference, zero); got != 0 {
		t.Errorf("weightless candidates: got %v; want 0", got)
	}
	if got := ForGuess(patterns.Generator{}, "slate", []string{"slate"}, w); got != 0 {
		t.Errorf("single candidate: got %v; want 0", got)
	}
}

func TestInformation(t *testing.T) {
	for _, tt := range []struct {
		p, want float64
	}{
		{0, 0},
		{1, 0},
		{0.5, 0.5},
		{0.25, 0.5},
	} {
		got := Information(tt.p)
		if math.IsNaN(got) || math.Abs(got-tt.want) > tolerance {
			t.Errorf("Information(%v): got %v; want %v", tt.p, got, tt.want)
		}
	}
}

func TestRank(t *testing.T) {
	w := weights.Uniform{}.Generate(reference)
	cache := patterns.Build(reference, patterns.BuildOptions{})
	scores := Rank(cache, reference, reference, w, RankOptions{Workers: 4})
	if len(scores) != len(reference) {
		t.Fatalf("got %d scores; want %d", len(scores), len(reference))
	}
	for i, s := range scores {
		if s.Word != reference[i] {
			t.Fatalf("score %d is for %s; want %s", i, s.Word, reference[i])
		}
		if want := ForGuess(cache, s.Word, reference, w); math.Abs(s.Bits-want) > tolerance {
			t.Errorf("%s: got %v; want %v", s.Word, s.Bits, want)
		}
	}
	Sort(scores)
	for i := 1; i < len(scores); i++ {
		if scores[i-1].Bits < scores[i].Bits {
			t.Fatalf("not sorted at %d: %v < %v", i, scores[i-1].Bits, scores[i].Bits)
		}
	}
	serial := Rank(cache, reference, reference, w, RankOptions{Workers: 1})
	Sort(serial)
	for i := range serial {
		if serial[i].Word != scores[i].Word {
			t.Fatalf("order differs at %d with 1 worker: %s vs %s", i, serial[i].Word, scores[i].Word)
		}
	}
	max := math.Log2(float64(len(reference)))
	if scores[0].Bits > max+tolerance {
		t.Errorf("top score %v exceeds log2(n) = %v", scores[0].Bits, max)
	}
}
