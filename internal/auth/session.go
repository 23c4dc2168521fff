package auth

import (
	"errors"
	"sync"

	"merchantdesk/internal/domain"
)

var ErrNoSession = errors.New("no active session")

// Session holds the identity of the signed-in user for the lifetime of
// the process. One session per dashboard instance.
type Session struct {
	mu       sync.RWMutex
	identity *domain.Identity
}

func NewSession() *Session { return &Session{} }

func (s *Session) Set(identity domain.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &identity
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
}

func (s *Session) Current() (domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return domain.Identity{}, ErrNoSession
	}
	return *s.identity, nil
}
