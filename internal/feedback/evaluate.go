package feedback

import (
	"errors"
	"strings"

	"github.com/TwiN/go-color"
)

var (
	ErrPatternLen  = errors.New("feedback: marks length does not match guess")
	ErrPatternMark = errors.New("feedback: unknown mark")
)

// Valid reports whether word is consistent with every constraint, checked in order.
//
// A NotInWord letter is excluded from the whole word, not just its position. This
// matches the feedback produced by Compare but is stricter than Wordle's duplicate
// letter rule, where a grey repeat only rules out additional occurrences.
func Valid(word string, constraints []Positioned) bool {
	for _, c := range constraints {
		switch c.Mark {
		case MarkMiss:
			if strings.IndexByte(word, c.Letter) >= 0 {
				return false
			}
		case MarkPresent:
			found := false
			for i := 0; i < len(word); i++ {
				if word[i] != c.Letter {
					continue
				}
				if i == c.Pos {
					return false
				}
				found = true
			}
			if !found {
				return false
			}
		case MarkHit:
			if c.Pos < 0 || c.Pos >= len(word) || word[c.Pos] != c.Letter {
				return false
			}
		}
	}
	return true
}

// Matches reports whether word could have produced p.
func (p Pattern) Matches(word string) bool { return Valid(word, p) }

// Compare returns the feedback for guess when the answer is answer. A letter is a hit
// when it matches in place, present when the answer contains it anywhere else, and a
// miss otherwise. The answer always satisfies the returned pattern.
//
// guess and answer must have the same length.
func Compare(guess, answer string) Pattern {
	if len(guess) != len(answer) {
		panic("feedback: Compare on words of different length")
	}
	p := make(Pattern, len(guess))
	for i := 0; i < len(guess); i++ {
		c := guess[i]
		switch {
		case answer[i] == c:
			p[i] = At(i, CorrectPosition(c))
		case strings.IndexByte(answer, c) >= 0:
			p[i] = At(i, IncorrectPosition(c))
		default:
			p[i] = At(i, NotInWord(c))
		}
	}
	return p
}

// ParsePattern builds the pattern for guess from a marks string with one character
// per letter:
//
//	g c +      correct position
//	y s ~      incorrect position
//	b . - x    not in word
func ParsePattern(guess, marks string) (Pattern, error) {
	if len(marks) != len(guess) {
		return nil, ErrPatternLen
	}
	p := make(Pattern, len(guess))
	for i := 0; i < len(marks); i++ {
		c := guess[i]
		switch marks[i] {
		case 'g', 'G', 'c', 'C', '+':
			p[i] = At(i, CorrectPosition(c))
		case 'y', 'Y', 's', 'S', '~':
			p[i] = At(i, IncorrectPosition(c))
		case 'b', 'B', '.', '-', 'x', 'X':
			p[i] = At(i, NotInWord(c))
		default:
			return nil, ErrPatternMark
		}
	}
	return p, nil
}

// Colored renders the guess letters coloured by mark for a terminal.
func (p Pattern) Colored() string {
	var b strings.Builder
	for _, x := range p {
		col := color.Gray
		switch x.Mark {
		case MarkHit:
			col = color.Green
		case MarkPresent:
			col = color.Yellow
		}
		b.WriteString(color.Ize(col, strings.ToUpper(string(x.Letter))))
	}
	return b.String()
}
