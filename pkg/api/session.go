package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/yourusername/sliderbench/pkg/puzzle"
)

// Session is a server-side puzzle instance. All access to the puzzle
// goes through the session lock; the engine itself is not safe for
// concurrent use.
type Session struct {
	ID      string
	Created time.Time

	mu     sync.Mutex
	puzzle *puzzle.Puzzle
}

// WithPuzzle runs fn with the session's puzzle under the lock.
func (s *Session) WithPuzzle(fn func(p *puzzle.Puzzle)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.puzzle)
}

// SessionStore holds live sessions keyed by ID.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	max      int // Maximum live sessions (0 = unlimited)
}

// NewSessionStore creates a store capped at max sessions.
func NewSessionStore(max int) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		max:      max,
	}
}

// Create registers a new session for the given puzzle.
func (st *SessionStore) Create(p *puzzle.Puzzle) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.max > 0 && len(st.sessions) >= st.max {
		return nil, fmt.Errorf("session limit reached (%d)", st.max)
	}

	s := &Session{
		ID:      newSessionID(),
		Created: time.Now(),
		puzzle:  p,
	}
	st.sessions[s.ID] = s
	return s, nil
}

// Get looks up a session by ID.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete removes a session. Deleting an unknown ID is a no-op.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// newSessionID returns a random 128-bit hex identifier.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform is broken; fall back
		// to a time-based ID rather than crash the server.
		return fmt.Sprintf("s%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
