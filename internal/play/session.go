package play

import (
	"errors"
	"time"

	"trivia-service/internal/domain"
)

// ErrSessionStarted is returned when Start is called on a session that already left NotStarted.
var ErrSessionStarted = errors.New("play session already started")

// Status is the lifecycle of a session: NotStarted -> Running -> Ended.
type Status int

const (
	StatusNotStarted Status = iota
	StatusRunning
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusRunning:
		return "running"
	case StatusEnded:
		return "ended"
	}
	return "unknown"
}

// Session runs one play of one quiz. It is not safe for concurrent use; the
// owner serializes submissions, ticks and termination.
type Session struct {
	quiz       domain.Quiz
	now        func() time.Time
	newID      func() string
	status     Status
	index      Index
	state      *State
	playerName string
	result     domain.PlayResult
}

func NewSession(quiz domain.Quiz, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{quiz: quiz, now: now}
}

// SetIDGenerator overrides how result ids are created.
func (s *Session) SetIDGenerator(newID func() string) {
	s.newID = newID
}

// Start records the start instant and builds the answer index.
func (s *Session) Start(playerName string) error {
	if s.status != StatusNotStarted {
		return ErrSessionStarted
	}
	s.index = BuildIndex(s.quiz)
	s.state = NewState(s.now())
	s.playerName = playerName
	s.status = StatusRunning
	return nil
}

func (s *Session) Status() Status {
	return s.status
}

func (s *Session) Quiz() domain.Quiz {
	return s.quiz
}

// Submit runs one answer attempt. It reports false and changes nothing unless
// the session is running.
func (s *Session) Submit(raw string) (Outcome, bool) {
	if s.status != StatusRunning {
		return Outcome{}, false
	}
	return s.state.Submit(s.index, raw, s.now()), true
}

// SetInput stores the in-progress text the player is typing.
func (s *Session) SetInput(text string) {
	if s.status == StatusRunning {
		s.state.Input = text
	}
}

// Remaining is the whole seconds left on the clock.
func (s *Session) Remaining() int {
	switch s.status {
	case StatusNotStarted:
		return s.quiz.TimeLimitSec
	case StatusEnded:
		return Remaining(s.quiz.TimeLimitSec, s.state.StartedAt, s.result.EndedAt)
	}
	return Remaining(s.quiz.TimeLimitSec, s.state.StartedAt, s.now())
}

// Expired reports whether a running session has run out of time.
func (s *Session) Expired() bool {
	return s.status == StatusRunning && s.Remaining() == 0
}

// Complete reports whether every item was found. An empty quiz never completes.
func (s *Session) Complete() bool {
	total := len(s.quiz.Items)
	return s.state != nil && total > 0 && s.state.Found.Len() >= total
}

// Tick samples the clock and ends the session with EndTime once it expired.
// The result is stamped at the deadline, however late the tick came.
// Ticks on a session that is not running do nothing.
func (s *Session) Tick() (domain.PlayResult, bool) {
	if !s.Expired() {
		return domain.PlayResult{}, false
	}
	deadline := s.state.StartedAt.Add(time.Duration(s.quiz.TimeLimitSec) * time.Second)
	return s.finish(domain.EndTime, deadline)
}

// End is the single termination point of a session. It finalizes the result
// exactly once; calling it on a session that is not running returns false.
// Giving up marks the result to reveal every answer.
func (s *Session) End(reason domain.EndReason) (domain.PlayResult, bool) {
	return s.finish(reason, s.now())
}

func (s *Session) finish(reason domain.EndReason, endedAt time.Time) (domain.PlayResult, bool) {
	if s.status != StatusRunning {
		return domain.PlayResult{}, false
	}
	s.status = StatusEnded

	opts := Options{
		PlayerName: s.playerName,
		Reason:     reason,
		RevealAll:  reason == domain.EndGiveUp,
	}
	if s.newID != nil {
		opts.ID = s.newID()
	}
	s.result = Finalize(s.quiz, s.state, endedAt, opts)
	return s.result, true
}

// Result returns the finalized result once the session ended.
func (s *Session) Result() (domain.PlayResult, bool) {
	return s.result, s.status == StatusEnded
}

// Snapshot is a read-only view of a session for display.
type Snapshot struct {
	QuizID       string    `json:"quizId"`
	QuizTitle    string    `json:"quizTitle"`
	Status       string    `json:"status"`
	StartedAt    time.Time `json:"startedAt"`
	TimeLimitSec int       `json:"timeLimitSec"`
	RemainingSec int       `json:"remainingSec"`
	FoundIDs     []string  `json:"foundIds"`
	FoundCount   int       `json:"foundCount"`
	TotalCount   int       `json:"totalCount"`
	ScorePct     int       `json:"scorePct"`
	Input        string    `json:"input,omitempty"`
	LastHit      *Hit      `json:"lastHit,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		QuizID:       s.quiz.ID,
		QuizTitle:    s.quiz.Title,
		Status:       s.status.String(),
		TimeLimitSec: s.quiz.TimeLimitSec,
		RemainingSec: s.Remaining(),
		TotalCount:   len(s.quiz.Items),
		FoundIDs:     []string{},
	}
	if s.state == nil {
		return snap
	}
	for _, item := range s.quiz.Items {
		if s.state.Found.Has(item.ID) {
			snap.FoundIDs = append(snap.FoundIDs, item.ID)
		}
	}
	snap.StartedAt = s.state.StartedAt
	snap.FoundCount = s.state.Found.Len()
	snap.ScorePct = ScorePct(snap.FoundCount, snap.TotalCount)
	snap.Input = s.state.Input
	if s.state.LastHit != nil {
		hit := *s.state.LastHit
		snap.LastHit = &hit
	}
	return snap
}
