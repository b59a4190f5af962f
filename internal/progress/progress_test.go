package progress

import (
	"bytes"
	"testing"
)

func TestSilent(t *testing.T) {
	bar := New(10, "entropy", nil)
	for i := 0; i < 10; i++ {
		if err := bar.Add(1); err != nil {
			t.Fatal(err)
		}
	}
	if !bar.IsFinished() {
		t.Error("bar not finished after total units")
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	bar := New(3, "patterns", &buf)
	for i := 0; i < 3; i++ {
		if err := bar.Add(1); err != nil {
			t.Fatal(err)
		}
	}
	if !bar.IsFinished() {
		t.Errorf("bar not finished; output %q", buf.String())
	}
}
