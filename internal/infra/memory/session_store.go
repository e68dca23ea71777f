package memory

import (
	"context"
	"sync"
	"time"

	"trivia-service/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// Sessions older than the TTL are pruned lazily; a zero TTL keeps them until deleted.
type SessionStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		clock:    time.Now,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) Put(_ context.Context, session *app.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	s.sessions[session.ID()] = session
	return nil
}

func (s *SessionStore) Get(_ context.Context, sessionID string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok || s.expired(session) {
		return nil, false
	}
	return session, true
}

func (s *SessionStore) Delete(_ context.Context, sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// Len counts stored sessions, including expired ones not yet pruned.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) pruneLocked() {
	for id, session := range s.sessions {
		if s.expired(session) {
			delete(s.sessions, id)
		}
	}
}

func (s *SessionStore) expired(session *app.Session) bool {
	return s.ttl > 0 && !s.clock().Before(session.CreatedAt().Add(s.ttl))
}
