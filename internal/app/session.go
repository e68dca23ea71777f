package app

import (
	"sync"
	"time"

	"trivia-service/internal/domain"
	"trivia-service/internal/play"
)

// View is what clients see of a live session.
type View struct {
	SessionID string `json:"sessionId"`
	play.Snapshot
}

// Session is a live play session. The mutex serializes submissions, timer
// ticks and termination, so the engine underneath never sees two callers.
type Session struct {
	id        string
	createdAt time.Time
	mu        sync.Mutex
	play      *play.Session
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id string, quiz domain.Quiz, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{id: id, createdAt: now(), play: play.NewSession(quiz, now)}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) QuizID() string {
	return s.play.Quiz().ID
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) viewLocked() View {
	return View{SessionID: s.id, Snapshot: s.play.Snapshot()}
}

func (s *Session) resultLocked() *domain.PlayResult {
	res, ok := s.play.Result()
	if !ok {
		return nil
	}
	return &res
}
