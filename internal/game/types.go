// internal/game/types.go
//
// Core type definitions for a solver session.
// Defines:
//   - State: coarse session state (active/solved/exhausted).
//   - Strategy: how the live candidates are ordered for the next guess.
//   - Outcome: the result of evaluating one guess.
//   - Errors: construction preconditions and the inconsistent-feedback error.

package game

import (
	"errors"
	"fmt"
	"strings"
)

// State is derived from the number of live candidates.
//   - Active:    more than one candidate remains.
//   - Solved:    exactly one candidate remains.
//   - Exhausted: no candidate is consistent with the feedback.
type State int

const (
	Active State = iota
	Solved
	Exhausted
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Solved:
		return "solved"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText renders the state by name in JSON responses.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(b []byte) error {
	for _, st := range []State{Active, Solved, Exhausted} {
		if st.String() == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", b)
}

// Strategy selects the ordering used to suggest the next guess.
type Strategy int

const (
	StrategyEntropy    Strategy = iota // expected information against the live candidates
	StrategyPositional                 // letters in their most common positions first
	StrategyFrequency                  // most widespread distinct letters first
)

var strategyNames = [...]string{"entropy", "positional", "frequency"}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy resolves a strategy by name. The empty string means entropy.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return StrategyEntropy, nil
	}
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q (want one of %s)", name, strings.Join(strategyNames[:], ", "))
}

// Outcome describes one evaluated guess.
type Outcome struct {
	Guess      string   `json:"guess"`
	Estimated  float64  `json:"estimatedBits"` // expected entropy before elimination
	Actual     float64  `json:"actualBits"`    // log2(before/after)
	Before     int      `json:"before"`
	After      int      `json:"after"`
	State      State    `json:"state"`
	Candidates []string `json:"candidates"`
}

var (
	ErrNoWeights    = errors.New("game: no weight model")
	ErrNoDictionary = errors.New("game: no dictionary")
	ErrInconsistent = errors.New("game: feedback is inconsistent with every candidate")
)

// InconsistentError reports that the accumulated feedback eliminated every candidate.
// Path holds the guesses evaluated so far, the last one included.
type InconsistentError struct {
	Path []string
}

func (e *InconsistentError) Error() string {
	return fmt.Sprintf("%v after %s", ErrInconsistent, strings.Join(e.Path, " -> "))
}

func (e *InconsistentError) Unwrap() error { return ErrInconsistent }
