package game

import (
	"errors"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/kr/pretty"

	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/patterns"
	"github.com/robalobadob/wordle-solver/internal/weights"
)

var reference = strings.Fields(`
	slate crane trace plate sling stale least tales steal abide
	eerie speed crown dream weary waist woman watch pious adieu
	audio raise arise irate later alter alert mount shore snore`)

func newSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(weights.Uniform{}, reference, nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewPreconditions(t *testing.T) {
	if _, err := New(nil, reference, nil); !errors.Is(err, ErrNoWeights) {
		t.Errorf("nil model: got %v; want %v", err, ErrNoWeights)
	}
	if _, err := New(weights.Uniform{}, nil, nil); !errors.Is(err, ErrNoDictionary) {
		t.Errorf("nil dictionary: got %v; want %v", err, ErrNoDictionary)
	}
	s, err := New(weights.Uniform{}, []string{"slate", "crane", "slate"}, patterns.NewCache())
	if err != nil {
		t.Fatal(err)
	}
	if got := s.RemainingWords(); got != 2 {
		t.Errorf("RemainingWords: got %d; want 2", got)
	}
	if got := s.State(); got != Active {
		t.Errorf("State: got %v; want %v", got, Active)
	}
	if len(s.History()) != 0 || len(s.Constraints()) != 0 {
		t.Error("new session should carry no history or constraints")
	}
}

func TestFullMatchLeavesGuess(t *testing.T) {
	s := newSession(t)
	for i := 0; i < 5; i++ {
		s.AddInformation(i, feedback.CorrectPosition("slate"[i]))
	}
	if got := s.RemainingWords(); got != len(reference) {
		t.Fatalf("AddInformation filtered early: got %d; want %d", got, len(reference))
	}
	out, err := s.EvaluateInformation("slate")
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(s.PossibleWords(), []string{"slate"}); len(diff) > 0 {
		t.Error(diff)
	}
	if s.State() != Solved {
		t.Errorf("State: got %v; want %v", s.State(), Solved)
	}
	if math.Abs(out.Estimated-4.573557262275185) > 1e-9 {
		t.Errorf("Estimated: got %v; want 4.573557262275185", out.Estimated)
	}
	if want := math.Log2(30); math.Abs(out.Actual-want) > 1e-12 {
		t.Errorf("Actual: got %v; want %v", out.Actual, want)
	}
	if out.Before != 30 || out.After != 1 {
		t.Errorf("Before/After: got %d/%d; want 30/1", out.Before, out.After)
	}
}

func TestEliminateIdempotent(t *testing.T) {
	s := newSession(t)
	s.AddPattern(feedback.Compare("pious", "slate"))
	first := s.EliminateWords()
	if first == 0 {
		t.Fatal("first elimination removed nothing")
	}
	if got := s.EliminateWords(); got != 0 {
		t.Errorf("second elimination: got %d; want 0", got)
	}
	if got, want := s.RemainingWords(), len(reference)-first; got != want {
		t.Errorf("RemainingWords: got %d; want %d", got, want)
	}
	for _, w := range s.PossibleWords() {
		if !feedback.Valid(w, s.Constraints()) {
			t.Errorf("%s survived but fails the constraints", w)
		}
		if !s.IsCandidate(w) {
			t.Errorf("IsCandidate(%s) = false for a live word", w)
		}
	}
	if s.IsCandidate("pious") {
		t.Error("pious should be eliminated")
	}
}

func TestEliminateNoopWhenSolved(t *testing.T) {
	s := newSession(t)
	s.AddPattern(feedback.Compare("slate", "slate"))
	s.EliminateWords()
	s.AddInformation(0, feedback.CorrectPosition('z'))
	if got := s.EliminateWords(); got != 0 {
		t.Errorf("got %d; want 0", got)
	}
	if s.State() != Solved {
		t.Errorf("State: got %v; want %v", s.State(), Solved)
	}
}

func TestCandidatesNeverGrow(t *testing.T) {
	for _, target := range []string{"crane", "woman", "eerie", "snore"} {
		s := newSession(t)
		prev := s.RemainingWords()
		for step := 0; s.State() == Active; step++ {
			if step > len(reference) {
				t.Fatalf("%s: no progress after %d guesses", target, step)
			}
			scores := s.PrioritizeEntropy()
			guess := scores[0].Word
			s.AddPattern(feedback.Compare(guess, target))
			out, err := s.EvaluateInformation(guess)
			if err != nil {
				t.Fatalf("%s: %v", target, err)
			}
			if out.After > prev {
				t.Fatalf("%s: candidates grew from %d to %d", target, prev, out.After)
			}
			prev = out.After
		}
		if diff := pretty.Diff(s.PossibleWords(), []string{target}); len(diff) > 0 {
			t.Errorf("%s: %v", target, diff)
		}
	}
}

func TestInconsistentFeedback(t *testing.T) {
	s := newSession(t)
	s.AddPattern(feedback.Compare("pious", "slate"))
	if _, err := s.EvaluateInformation("pious"); err != nil {
		t.Fatal(err)
	}
	if s.State() != Active {
		t.Fatalf("State: got %v; want %v", s.State(), Active)
	}
	s.AddInformation(0, feedback.CorrectPosition('z'))
	out, err := s.EvaluateInformation("zebra")
	if !errors.Is(err, ErrInconsistent) {
		t.Fatalf("got %v; want %v", err, ErrInconsistent)
	}
	var ie *InconsistentError
	if !errors.As(err, &ie) {
		t.Fatalf("got %T; want *InconsistentError", err)
	}
	if diff := pretty.Diff(ie.Path, []string{"pious", "zebra"}); len(diff) > 0 {
		t.Error(diff)
	}
	if math.IsInf(out.Actual, 0) || math.IsNaN(out.Actual) {
		t.Errorf("Actual: got %v", out.Actual)
	}
	if s.State() != Exhausted {
		t.Errorf("State: got %v; want %v", s.State(), Exhausted)
	}
}

func TestPrioritizeEntropy(t *testing.T) {
	s := newSession(t)
	s.SetWorkers(2)
	scores := s.PrioritizeEntropy()
	if len(scores) != len(reference) {
		t.Fatalf("got %d scores; want %d", len(scores), len(reference))
	}
	words := s.PossibleWords()
	for i, sc := range scores {
		if words[i] != sc.Word {
			t.Fatalf("order %d: got %s; want %s", i, words[i], sc.Word)
		}
		if i > 0 && scores[i-1].Bits < sc.Bits {
			t.Fatalf("scores not descending at %d", i)
		}
	}
}

func TestPrioritizeStrategies(t *testing.T) {
	for _, strategy := range []Strategy{StrategyEntropy, StrategyPositional, StrategyFrequency} {
		s := newSession(t)
		got := s.Prioritize(strategy)
		if diff := pretty.Diff(got, s.PossibleWords()); len(diff) > 0 {
			t.Errorf("%v: returned order differs from session order: %v", strategy, diff)
		}
		sorted := append([]string(nil), got...)
		sort.Strings(sorted)
		want := append([]string(nil), reference...)
		sort.Strings(want)
		if diff := pretty.Diff(sorted, want); len(diff) > 0 {
			t.Errorf("%v: not a permutation: %v", strategy, diff)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	for _, tt := range []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"", StrategyEntropy, false},
		{"entropy", StrategyEntropy, false},
		{" Positional ", StrategyPositional, false},
		{"frequency", StrategyFrequency, false},
		{"random", 0, true},
	} {
		got, err := ParseStrategy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStrategy(%q): got err %v; want err %t", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStrategy(%q): got %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestFrequencyModel(t *testing.T) {
	table := weights.Table{"slate": 3, "crane": 1}
	s, err := New(weights.Frequency{Table: table}, reference, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Model() != "frequency" {
		t.Errorf("Model: got %q; want frequency", s.Model())
	}
	// Zero-weight words stay candidates.
	if got := s.RemainingWords(); got != len(reference) {
		t.Errorf("RemainingWords: got %d; want %d", got, len(reference))
	}
	scores := s.PrioritizeEntropy()
	// Only slate and crane carry weight, so no guess can exceed one bit.
	for _, sc := range scores {
		if sc.Bits > 1+1e-12 {
			t.Errorf("%s: %v bits exceeds 1", sc.Word, sc.Bits)
		}
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.cache")
	if err := patterns.Build(reference, patterns.BuildOptions{}).Save(path); err != nil {
		t.Fatal(err)
	}
	s, err := Open(weights.Uniform{}, reference, path)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.RemainingWords(); got != len(reference) {
		t.Errorf("RemainingWords: got %d; want %d", got, len(reference))
	}
	if _, err := Open(weights.Uniform{}, reference, filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("missing cache file: got nil error")
	}
}
