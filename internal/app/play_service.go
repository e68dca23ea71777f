package app

import (
	"context"
	"log/slog"
	"time"

	"trivia-service/internal/domain"
	"trivia-service/internal/logger"
	"trivia-service/internal/play"

	"github.com/google/uuid"
)

// SessionRepository abstracts where live sessions are kept (in-memory, Redis, etc).
type SessionRepository interface {
	Put(ctx context.Context, session *Session) error
	Get(ctx context.Context, sessionID string) (*Session, bool)
	Delete(ctx context.Context, sessionID string)
}

// QuizRepository loads quiz content for play (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	Invalidate(ctx context.Context, quizID string) error
}

// SubmitReply is the answer to one submission.
type SubmitReply struct {
	Accepted bool               `json:"accepted"`
	Outcome  *play.Outcome      `json:"outcome,omitempty"`
	Session  View               `json:"session"`
	Result   *domain.PlayResult `json:"result,omitempty"`
}

// PlayService contains the live play use cases.
type PlayService struct {
	sessions SessionRepository
	quizzes  QuizRepository
	sink     ResultSink
	now      func() time.Time
	newID    func() string
	log      *slog.Logger
}

type Option func(*PlayService)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *PlayService) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *PlayService) { s.newID = newID }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *PlayService) { s.log = log }
}

func NewPlayService(sessions SessionRepository, quizzes QuizRepository, sink ResultSink, opts ...Option) *PlayService {
	s := &PlayService{
		sessions: sessions,
		quizzes:  quizzes,
		sink:     sink,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.WithComponent(s.log, "play")
	return s
}

// Start loads the quiz and opens a running session for it.
func (s *PlayService) Start(ctx context.Context, quizID, playerName string) (View, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return View{}, err
	}

	session := NewSession(s.newID(), quiz, s.now)
	session.play.SetIDGenerator(s.newID)

	session.mu.Lock()
	defer session.mu.Unlock()
	if err := session.play.Start(playerName); err != nil {
		return View{}, err
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return View{}, err
	}

	s.log.Info("play session started", "session_id", session.id, "quiz_id", quiz.ID, "items", len(quiz.Items))
	return session.viewLocked(), nil
}

// Submit runs one answer attempt. The timer is sampled first so an answer
// arriving after time ran out is not counted. A hit that completes the quiz
// ends the session.
func (s *PlayService) Submit(ctx context.Context, sessionID, raw string) (SubmitReply, error) {
	session, ok := s.sessions.Get(ctx, sessionID)
	if !ok {
		return SubmitReply{}, domain.ErrSessionNotFound
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if result, ended := session.play.Tick(); ended {
		s.emit(ctx, session, result)
	}

	outcome, accepted := session.play.Submit(raw)
	if accepted && outcome.Kind == play.OutcomeHit && session.play.Complete() {
		if result, ended := session.play.End(domain.EndComplete); ended {
			s.emit(ctx, session, result)
		}
	}

	reply := SubmitReply{
		Accepted: accepted,
		Session:  session.viewLocked(),
		Result:   session.resultLocked(),
	}
	if accepted {
		reply.Outcome = &outcome
	}
	return reply, nil
}

// SetInput records the in-progress text without submitting it.
func (s *PlayService) SetInput(ctx context.Context, sessionID, text string) error {
	session, ok := s.sessions.Get(ctx, sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.mu.Lock()
	session.play.SetInput(text)
	session.mu.Unlock()
	return nil
}

// Tick samples the timer and finishes the session once it expired. The result
// is non-nil whenever the session has ended, by this tick or earlier.
func (s *PlayService) Tick(ctx context.Context, sessionID string) (View, *domain.PlayResult, error) {
	session, ok := s.sessions.Get(ctx, sessionID)
	if !ok {
		return View{}, nil, domain.ErrSessionNotFound
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if result, ended := session.play.Tick(); ended {
		s.emit(ctx, session, result)
	}
	return session.viewLocked(), session.resultLocked(), nil
}

// End finishes a session on the player's request. Only manual and give-up
// endings may be requested; ending a finished session is ErrSessionEnded.
func (s *PlayService) End(ctx context.Context, sessionID string, reason domain.EndReason) (domain.PlayResult, error) {
	if reason != domain.EndManual && reason != domain.EndGiveUp {
		return domain.PlayResult{}, domain.ErrInvalidEndReason
	}

	session, ok := s.sessions.Get(ctx, sessionID)
	if !ok {
		return domain.PlayResult{}, domain.ErrSessionNotFound
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	// Time may already be up; that ending wins over the request.
	if result, ended := session.play.Tick(); ended {
		s.emit(ctx, session, result)
		return result, nil
	}

	result, ended := session.play.End(reason)
	if !ended {
		return domain.PlayResult{}, domain.ErrSessionEnded
	}
	s.emit(ctx, session, result)
	return result, nil
}

func (s *PlayService) View(ctx context.Context, sessionID string) (View, error) {
	session, ok := s.sessions.Get(ctx, sessionID)
	if !ok {
		return View{}, domain.ErrSessionNotFound
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.viewLocked(), nil
}

// Discard forgets a session. A running session is dropped without a result.
func (s *PlayService) Discard(ctx context.Context, sessionID string) {
	s.sessions.Delete(ctx, sessionID)
}

// emit hands a finished result to the sink. Callers hold the session lock and
// only call it with a result the engine just produced, so each session emits once.
func (s *PlayService) emit(ctx context.Context, session *Session, result domain.PlayResult) {
	s.log.Info("play session finished",
		"session_id", session.id,
		"quiz_id", result.QuizID,
		"reason", result.EndedReason,
		"found", result.FoundCount,
		"total", result.TotalCount,
		"score_pct", result.ScorePct,
	)
	if s.sink == nil {
		return
	}
	if err := s.sink.AddPlay(ctx, result); err != nil {
		s.log.Error("store play result failed", "session_id", session.id, "play_id", result.ID, "error", err)
	}
}
