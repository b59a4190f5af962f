// internal/feedback/types.go
//
// Core feedback types for the solver.
// Defines:
//   - Mark: per-letter outcome of a guess (miss/present/hit).
//   - Correctness: a Mark paired with the letter it describes.
//   - Positioned: a Correctness bound to a zero-based position in the guess.
//   - Pattern: the full feedback one guess can receive, one Positioned per letter.

package feedback

import (
	"fmt"
	"strings"
)

// Mark is the tri-state evaluation of one letter of a guess.
//   - MarkMiss:    the letter is not in the word (NotInWord).
//   - MarkPresent: the letter is in the word at another position (IncorrectPosition).
//   - MarkHit:     the letter is in this position (CorrectPosition).
type Mark uint8

const (
	MarkMiss Mark = iota
	MarkPresent
	MarkHit
)

// Marks lists every Mark in pattern enumeration order.
var Marks = [...]Mark{MarkPresent, MarkHit, MarkMiss}

func (m Mark) String() string {
	switch m {
	case MarkMiss:
		return "NotInWord"
	case MarkPresent:
		return "IncorrectPosition"
	case MarkHit:
		return "CorrectPosition"
	}
	return fmt.Sprintf("Mark(%d)", uint8(m))
}

// Correctness is a Mark for a specific letter.
type Correctness struct {
	Mark   Mark
	Letter byte
}

// NotInWord reports that c does not occur in the answer.
func NotInWord(c byte) Correctness { return Correctness{Mark: MarkMiss, Letter: c} }

// IncorrectPosition reports that c occurs in the answer, but not here.
func IncorrectPosition(c byte) Correctness { return Correctness{Mark: MarkPresent, Letter: c} }

// CorrectPosition reports that c is at this position of the answer.
func CorrectPosition(c byte) Correctness { return Correctness{Mark: MarkHit, Letter: c} }

func (c Correctness) String() string {
	return fmt.Sprintf("%s(%c)", c.Mark, c.Letter)
}

// Positioned is the atomic unit of feedback.
type Positioned struct {
	Pos int
	Correctness
}

// At binds c to position pos.
func At(pos int, c Correctness) Positioned {
	return Positioned{Pos: pos, Correctness: c}
}

func (p Positioned) String() string {
	return fmt.Sprintf("%s@%d", p.Correctness, p.Pos)
}

// Pattern is the full feedback for one guess, ordered by position.
type Pattern []Positioned

// Word returns the guess letters the pattern was built from.
func (p Pattern) Word() string {
	b := make([]byte, len(p))
	for i, x := range p {
		b[i] = x.Letter
	}
	return string(b)
}

// Marks renders the pattern in the compact g/y/b form accepted by ParsePattern.
func (p Pattern) Marks() string {
	var b strings.Builder
	b.Grow(len(p))
	for _, x := range p {
		switch x.Mark {
		case MarkHit:
			b.WriteByte('g')
		case MarkPresent:
			b.WriteByte('y')
		default:
			b.WriteByte('b')
		}
	}
	return b.String()
}

// Solved reports whether every letter is a hit.
func (p Pattern) Solved() bool {
	if len(p) == 0 {
		return false
	}
	for _, x := range p {
		if x.Mark != MarkHit {
			return false
		}
	}
	return true
}

func (p Pattern) String() string {
	var b strings.Builder
	for i, x := range p {
		if i != 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(x.Letter)
		b.WriteByte(':')
		switch x.Mark {
		case MarkHit:
			b.WriteByte('G')
		case MarkPresent:
			b.WriteByte('Y')
		default:
			b.WriteByte('B')
		}
	}
	return b.String()
}
