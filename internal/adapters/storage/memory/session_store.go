package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/PabloGalante/farum-demo/internal/app/conversation"
	"github.com/PabloGalante/farum-demo/internal/domain"
)

// SessionStore keeps live conversation controllers for the lifetime of
// the process.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*conversation.Controller
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[domain.SessionID]*conversation.Controller),
	}
}

func (s *SessionStore) CreateSession(c *conversation.Controller) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[c.ID()]; exists {
		return fmt.Errorf("session %s: %w", c.ID(), domain.ErrAlreadyExists)
	}

	s.sessions[c.ID()] = c
	return nil
}

func (s *SessionStore) GetSession(id domain.SessionID) (*conversation.Controller, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}

	return c, nil
}

func (s *SessionStore) DeleteSession(id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}

	delete(s.sessions, id)
	return nil
}

// ListSessions returns the ids of all live sessions, sorted.
func (s *SessionStore) ListSessions() []domain.SessionID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]domain.SessionID, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
