package memory

import (
	"context"
	"sync"

	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps issued tokens in memory. One live token per user:
// a fresh login replaces the previous session.
type SessionStore struct {
	mu      sync.RWMutex
	byUser  map[string]string
	byToken map[string]string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		byUser:  map[string]string{},
		byToken: map[string]string{},
	}
}

func (s *SessionStore) Save(_ context.Context, username, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.byUser[username]; ok {
		delete(s.byToken, old)
	}
	s.byUser[username] = token
	s.byToken[token] = username
	return nil
}

func (s *SessionStore) Lookup(_ context.Context, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	username, ok := s.byToken[token]
	if !ok {
		return "", ports.ErrSessionNotFound
	}
	return username, nil
}

func (s *SessionStore) Delete(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token, ok := s.byUser[username]; ok {
		delete(s.byToken, token)
		delete(s.byUser, username)
	}
	return nil
}
