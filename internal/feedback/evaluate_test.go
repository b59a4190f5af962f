package feedback

import (
	"errors"
	"testing"

	"github.com/kr/pretty"
)

func wearyFeedback() Pattern {
	return Pattern{
		At(0, CorrectPosition('w')),
		At(1, NotInWord('e')),
		At(2, IncorrectPosition('a')),
		At(3, NotInWord('r')),
		At(4, NotInWord('y')),
	}
}

func TestValidWeary(t *testing.T) {
	p := wearyFeedback()
	for _, w := range []string{"wacko", "waift", "wails", "waist", "woman", "watch"} {
		if !Valid(w, p) {
			t.Errorf("Valid(%q): got false; want true", w)
		}
	}
	for _, w := range []string{"weary", "xncro", "ircpm", "dream", "crown"} {
		if Valid(w, p) {
			t.Errorf("Valid(%q): got true; want false", w)
		}
	}
}

func TestValidAllMisplaced(t *testing.T) {
	p := Pattern{
		At(0, IncorrectPosition('s')),
		At(1, IncorrectPosition('l')),
		At(2, IncorrectPosition('a')),
		At(3, IncorrectPosition('t')),
		At(4, IncorrectPosition('e')),
	}
	if Valid("slate", p) {
		t.Errorf("Valid(slate): got true; want false")
	}
	if !Valid("tales", p) {
		t.Errorf("Valid(tales): got false; want true")
	}
}

func TestValidRules(t *testing.T) {
	for _, tt := range []struct {
		word string
		c    Positioned
		want bool
	}{
		{"crane", At(0, NotInWord('e')), false},
		{"crank", At(4, NotInWord('e')), true},
		{"crane", At(2, IncorrectPosition('a')), false},
		{"cigar", At(2, IncorrectPosition('a')), true},
		{"crisp", At(2, IncorrectPosition('a')), false},
		{"crane", At(1, CorrectPosition('r')), true},
		{"crane", At(1, CorrectPosition('a')), false},
		{"cra", At(4, CorrectPosition('a')), false},
		{"", At(0, NotInWord('a')), true},
	} {
		if got := Valid(tt.word, []Positioned{tt.c}); got != tt.want {
			t.Errorf("Valid(%q, %s): got %t; want %t", tt.word, tt.c, got, tt.want)
		}
	}
}

func TestValidNoConstraints(t *testing.T) {
	if !Valid("slate", nil) {
		t.Fatal("got false; want true")
	}
}

func TestCompare(t *testing.T) {
	for _, tt := range []struct {
		guess, answer string
		want          string
	}{
		{"slate", "slate", "ggggg"},
		{"weary", "waist", "gbybb"},
		{"crane", "nacre", "yyyyg"},
		{"speed", "abide", "bbyyy"},
		{"eerie", "ember", "gyyby"},
	} {
		p := Compare(tt.guess, tt.answer)
		if got := p.Marks(); got != tt.want {
			t.Errorf("Compare(%q, %q): got %s; want %s", tt.guess, tt.answer, got, tt.want)
		}
		if p.Word() != tt.guess {
			t.Errorf("Compare(%q, %q).Word(): got %q", tt.guess, tt.answer, p.Word())
		}
	}
}

func TestCompareAnswerAlwaysValid(t *testing.T) {
	words := []string{"slate", "eerie", "speed", "abide", "mamma", "llama", "crane", "nacre", "sissy"}
	for _, guess := range words {
		for _, answer := range words {
			p := Compare(guess, answer)
			if !p.Matches(answer) {
				t.Errorf("Compare(%q, %q) = %s rejects the answer", guess, answer, p)
			}
			if guess != answer && p.Matches(guess) {
				t.Errorf("Compare(%q, %q) = %s accepts the guess", guess, answer, p)
			}
		}
	}
}

func TestComparePanicsOnLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("no panic")
		}
	}()
	Compare("slate", "slat")
}

func TestParsePattern(t *testing.T) {
	got, err := ParsePattern("weary", "g.y-b")
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(got, wearyFeedback()); len(diff) > 0 {
		t.Errorf("ParsePattern: %v", diff)
	}
	if got.Marks() != "gbybb" {
		t.Errorf("Marks: got %s; want gbybb", got.Marks())
	}
	if _, err := ParsePattern("weary", "gby"); !errors.Is(err, ErrPatternLen) {
		t.Errorf("short marks: got %v; want %v", err, ErrPatternLen)
	}
	if _, err := ParsePattern("weary", "gbyb?"); !errors.Is(err, ErrPatternMark) {
		t.Errorf("bad mark: got %v; want %v", err, ErrPatternMark)
	}
}

func TestPatternSolved(t *testing.T) {
	if !Compare("slate", "slate").Solved() {
		t.Error("all hits: got false; want true")
	}
	if Compare("slate", "plate").Solved() {
		t.Error("one miss: got true; want false")
	}
	if (Pattern{}).Solved() {
		t.Error("empty pattern: got true; want false")
	}
}
