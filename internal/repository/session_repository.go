package repository

import (
	"errors"
	"sync"

	"github.com/ChathuraSudaraka/WEB2-sub001/internal/checkout"
)

var (
	ErrSessionNotFound = errors.New("checkout session not found")
)

// InMemorySessionRepository holds live checkout sessions for the
// lifetime of the process. Sessions are never persisted; an order is the
// only durable artifact and it lives upstream.
type InMemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*checkout.Session
}

// NewInMemorySessionRepository creates an empty session repository.
func NewInMemorySessionRepository() *InMemorySessionRepository {
	return &InMemorySessionRepository{
		sessions: make(map[string]*checkout.Session),
	}
}

// Save stores a session under its ID.
func (r *InMemorySessionRepository) Save(s *checkout.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return nil
}

// Get returns the session with the given ID.
func (r *InMemorySessionRepository) Get(id string) (*checkout.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, exists := r.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete removes the session with the given ID, if present.
func (r *InMemorySessionRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}
