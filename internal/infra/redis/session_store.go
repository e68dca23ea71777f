package redis

import (
	"context"
	"sync"
	"time"

	"trivia-service/internal/app"

	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Sessions themselves live in a local map; Redis holds a liveness key per
// session (play:session:{id}) whose TTL is refreshed on every access. Once the
// key expires the session is treated as abandoned and dropped.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) Put(ctx context.Context, session *app.Session) error {
	if err := s.client.Set(ctx, s.key(session.ID()), session.QuizID(), s.ttl).Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.sessions[session.ID()] = session
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*app.Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if s.ttl > 0 {
		alive, err := s.client.Expire(ctx, s.key(sessionID), s.ttl).Result()
		// Redis being unreachable is not a reason to lose a live session.
		if err == nil && !alive {
			s.Delete(ctx, sessionID)
			return nil, false
		}
	}
	return session, true
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	_ = s.client.Del(ctx, s.key(sessionID)).Err()
}

func (s *SessionStore) key(sessionID string) string {
	return "play:session:" + sessionID
}
