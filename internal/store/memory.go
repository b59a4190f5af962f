// internal/store/memory.go
//
// In-memory store of solver sessions for the HTTP API.
//
// Characteristics:
//   - Stores *game.Session objects keyed by a random UUID.
//   - Map access is concurrency-safe via RWMutex; each entry carries its own mutex
//     because a game.Session is not safe for concurrent use.
//   - Entries idle longer than the TTL are dropped by Expire.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle-solver/internal/game"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("store: session not found")

// Entry is a stored session. Use Do to touch the session.
type Entry struct {
	ID        string
	Strategy  game.Strategy
	CreatedAt time.Time

	mu      sync.Mutex
	session *game.Session
	touched atomic.Int64 // unix nanos of the last Do call
}

// Do runs fn with exclusive access to the session.
func (e *Entry) Do(fn func(s *game.Session) error) error {
	e.touched.Store(time.Now().UnixNano())
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

// lastUsed never waits on a running Do.
func (e *Entry) lastUsed() time.Time {
	return time.Unix(0, e.touched.Load())
}

// Store defines the persistence interface for solver sessions.
type Store interface {
	// Create stores s under a new ID.
	Create(ctx context.Context, s *game.Session, strategy game.Strategy) (*Entry, error)

	// Get retrieves a session by ID.
	// Returns ErrNotFound if the session is not found.
	Get(ctx context.Context, id string) (*Entry, error)

	// Delete drops a session. Unknown IDs are not an error.
	Delete(ctx context.Context, id string) error

	// Expire drops sessions idle since before cutoff and returns how many.
	Expire(ctx context.Context, cutoff time.Time) int

	// Len returns the number of stored sessions.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex      // guards sessions map
	sessions map[string]*Entry // keyed by Entry.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Entry)}
}

func (m *memory) Create(ctx context.Context, s *game.Session, strategy game.Strategy) (*Entry, error) {
	now := time.Now()
	e := &Entry{
		ID:        uuid.NewString(),
		Strategy:  strategy,
		CreatedAt: now.UTC(),
		session:   s,
	}
	e.touched.Store(now.UnixNano())
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[e.ID] = e
	return e, nil
}

func (m *memory) Get(ctx context.Context, id string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.sessions[id]; ok {
		return e, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Expire(ctx context.Context, cutoff time.Time) int {
	m.mu.RLock()
	var idle []*Entry
	for _, e := range m.sessions {
		if e.lastUsed().Before(cutoff) {
			idle = append(idle, e)
		}
	}
	m.mu.RUnlock()
	if len(idle) == 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range idle {
		if m.sessions[e.ID] == e && e.lastUsed().Before(cutoff) {
			delete(m.sessions, e.ID)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
