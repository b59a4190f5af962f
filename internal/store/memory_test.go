package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/weights"
)

func newSession(t *testing.T) *game.Session {
	t.Helper()
	s, err := game.New(weights.Uniform{}, []string{"slate", "crane", "trace", "pious"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestCreateGet(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	e, err := st.Create(ctx, newSession(t), game.StrategyPositional)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(e.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", e.ID, err)
	}
	got, err := st.Get(ctx, e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got != e || got.Strategy != game.StrategyPositional {
		t.Errorf("got %+v; want %+v", got, e)
	}
	if _, err := st.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(nope): got %v; want %v", err, ErrNotFound)
	}
	if err := st.Delete(ctx, e.ID); err != nil {
		t.Fatal(err)
	}
	if st.Len() != 0 {
		t.Errorf("Len after Delete: got %d; want 0", st.Len())
	}
}

func TestExpire(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	for i := 0; i < 3; i++ {
		if _, err := st.Create(ctx, newSession(t), game.StrategyEntropy); err != nil {
			t.Fatal(err)
		}
	}
	if n := st.Expire(ctx, time.Now().Add(-time.Hour)); n != 0 {
		t.Errorf("Expire(past): got %d; want 0", n)
	}
	if n := st.Expire(ctx, time.Now().Add(time.Hour)); n != 3 {
		t.Errorf("Expire(future): got %d; want 3", n)
	}
	if st.Len() != 0 {
		t.Errorf("Len: got %d; want 0", st.Len())
	}
}

func TestExpireDoesNotWaitForBusySession(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	e, err := st.Create(ctx, newSession(t), game.StrategyEntropy)
	if err != nil {
		t.Fatal(err)
	}
	started := make(chan struct{})
	release := make(chan struct{})
	go e.Do(func(s *game.Session) error {
		close(started)
		<-release
		return nil
	})
	<-started
	defer close(release)

	other := newSession(t)
	done := make(chan int)
	go func() {
		n := st.Expire(ctx, time.Now().Add(-time.Hour))
		if _, err := st.Get(ctx, e.ID); err != nil {
			t.Errorf("Get during Do: %v", err)
		}
		if _, err := st.Create(ctx, other, game.StrategyEntropy); err != nil {
			t.Errorf("Create during Do: %v", err)
		}
		done <- n
	}()
	select {
	case n := <-done:
		if n != 0 {
			t.Errorf("Expire: got %d; want 0", n)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Expire blocked on a session held by Do")
	}
}

func TestDoSerializes(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	e, err := st.Create(ctx, newSession(t), game.StrategyEntropy)
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = e.Do(func(s *game.Session) error {
				s.AddPattern(feedback.Compare("pious", "slate"))
				s.EliminateWords()
				return nil
			})
		}()
	}
	wg.Wait()
	var remaining int
	_ = e.Do(func(s *game.Session) error {
		remaining = s.RemainingWords()
		return nil
	})
	// pious gives p,i,o,u absent and s present: slate survives, crane and trace do not
	// contain s.
	if remaining != 1 {
		t.Errorf("remaining: got %d; want 1", remaining)
	}
}
