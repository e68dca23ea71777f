package app_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"trivia-service/internal/app"
	"trivia-service/internal/domain"
	"trivia-service/internal/infra/memory"
	"trivia-service/internal/play"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

type recordingSink struct {
	mu      sync.Mutex
	results []domain.PlayResult
	err     error
}

func (r *recordingSink) AddPlay(_ context.Context, result domain.PlayResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
	return r.err
}

func (r *recordingSink) Results() []domain.PlayResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.PlayResult(nil), r.results...)
}

func teamsQuiz() domain.Quiz {
	return domain.Quiz{
		ID:           "quiz-1",
		Title:        "Teams",
		Difficulty:   domain.DifficultyNormal,
		TimeLimitSec: 60,
		Items: []domain.QuizItem{
			{ID: "i1", Prompt: "Los Angeles", Answer: "Lakers"},
			{ID: "i2", Prompt: "Boston", Answer: "Celtics", Aliases: []string{"Celts"}},
		},
	}
}

type fixture struct {
	service  *app.PlayService
	clock    *fakeClock
	sink     *recordingSink
	sessions *memory.SessionStore
}

func newFixture(quizzes ...domain.Quiz) fixture {
	if len(quizzes) == 0 {
		quizzes = []domain.Quiz{teamsQuiz()}
	}
	clock := newClock()
	sink := &recordingSink{}
	sessions := memory.NewSessionStore(0)
	repo := memory.NewQuizRepository(memory.NewQuizStore(quizzes...), time.Minute)
	service := app.NewPlayService(sessions, repo, sink,
		app.WithClock(clock.Now),
		app.WithIDGenerator(sequentialIDs()),
	)
	return fixture{service: service, clock: clock, sink: sink, sessions: sessions}
}

func TestPlayCompletesWhenEveryItemFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	view, err := f.service.Start(ctx, "quiz-1", "  Sam ")
	require.NoError(t, err)
	assert.Equal(t, "id-1", view.SessionID)
	assert.Equal(t, "running", view.Status)
	assert.Equal(t, 60, view.RemainingSec)

	f.clock.Advance(5 * time.Second)
	reply, err := f.service.Submit(ctx, view.SessionID, "lakers")
	require.NoError(t, err)
	assert.True(t, reply.Accepted)
	assert.Equal(t, play.OutcomeHit, reply.Outcome.Kind)
	assert.Equal(t, "Lakers", reply.Outcome.Answer)
	assert.Nil(t, reply.Result)

	reply, err = f.service.Submit(ctx, view.SessionID, "LAKERS!")
	require.NoError(t, err)
	assert.Equal(t, play.OutcomeAlreadyFound, reply.Outcome.Kind)

	reply, err = f.service.Submit(ctx, view.SessionID, "knicks")
	require.NoError(t, err)
	assert.Equal(t, play.OutcomeMiss, reply.Outcome.Kind)

	f.clock.Advance(7 * time.Second)
	reply, err = f.service.Submit(ctx, view.SessionID, "celts")
	require.NoError(t, err)
	assert.Equal(t, play.OutcomeHit, reply.Outcome.Kind)
	require.NotNil(t, reply.Result)
	assert.Equal(t, "ended", reply.Session.Status)

	result := *reply.Result
	assert.Equal(t, domain.EndComplete, result.EndedReason)
	assert.Equal(t, 12, result.DurationSec)
	assert.Equal(t, 100, result.ScorePct)
	assert.Equal(t, []string{"i1", "i2"}, result.FoundIDs)
	assert.Empty(t, result.MissedAnswers)
	assert.Equal(t, "Sam", result.PlayerName)

	require.Len(t, f.sink.Results(), 1)
	assert.Equal(t, result, f.sink.Results()[0])

	reply, err = f.service.Submit(ctx, view.SessionID, "lakers")
	require.NoError(t, err)
	assert.False(t, reply.Accepted)
	assert.Len(t, f.sink.Results(), 1)
}

func TestPlayTimesOut(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	view, err := f.service.Start(ctx, "quiz-1", "")
	require.NoError(t, err)
	_, err = f.service.Submit(ctx, view.SessionID, "Lakers")
	require.NoError(t, err)

	f.clock.Advance(59 * time.Second)
	v, res, err := f.service.Tick(ctx, view.SessionID)
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, 1, v.RemainingSec)

	f.clock.Advance(time.Second)
	v, res, err = f.service.Tick(ctx, view.SessionID)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "ended", v.Status)
	assert.Equal(t, domain.EndTime, res.EndedReason)
	assert.Equal(t, 60, res.DurationSec)
	assert.Equal(t, 50, res.ScorePct)
	assert.Equal(t, []string{"Celtics"}, res.MissedAnswers)

	// Later ticks report the same result and emit nothing new.
	f.clock.Advance(time.Second)
	_, again, err := f.service.Tick(ctx, view.SessionID)
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, res.ID, again.ID)
	assert.Len(t, f.sink.Results(), 1)
}

func TestLateSubmissionEndsByTime(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	view, err := f.service.Start(ctx, "quiz-1", "")
	require.NoError(t, err)

	f.clock.Advance(61 * time.Second)
	reply, err := f.service.Submit(ctx, view.SessionID, "Lakers")
	require.NoError(t, err)
	assert.False(t, reply.Accepted)
	assert.Nil(t, reply.Outcome)
	require.NotNil(t, reply.Result)
	assert.Equal(t, domain.EndTime, reply.Result.EndedReason)
	assert.Equal(t, 0, reply.Result.FoundCount)
	assert.Len(t, f.sink.Results(), 1)
}

func TestGiveUpRevealsAnswers(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	view, err := f.service.Start(ctx, "quiz-1", "")
	require.NoError(t, err)
	f.clock.Advance(3 * time.Second)

	result, err := f.service.End(ctx, view.SessionID, domain.EndGiveUp)
	require.NoError(t, err)
	assert.Equal(t, domain.EndGiveUp, result.EndedReason)
	assert.True(t, result.RevealAll)
	assert.Equal(t, 0, result.ScorePct)
	assert.Equal(t, []string{"Lakers", "Celtics"}, result.MissedAnswers)

	_, err = f.service.End(ctx, view.SessionID, domain.EndManual)
	assert.ErrorIs(t, err, domain.ErrSessionEnded)
	assert.Len(t, f.sink.Results(), 1)
}

func TestEndRejectsSystemReasons(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	view, err := f.service.Start(ctx, "quiz-1", "")
	require.NoError(t, err)

	for _, reason := range []domain.EndReason{domain.EndTime, domain.EndComplete, "later"} {
		_, err := f.service.End(ctx, view.SessionID, reason)
		assert.ErrorIs(t, err, domain.ErrInvalidEndReason, reason)
	}
	assert.Empty(t, f.sink.Results())
}

func TestEndAfterExpiryReportsTimeout(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	view, err := f.service.Start(ctx, "quiz-1", "")
	require.NoError(t, err)

	f.clock.Advance(2 * time.Minute)
	result, err := f.service.End(ctx, view.SessionID, domain.EndManual)
	require.NoError(t, err)
	assert.Equal(t, domain.EndTime, result.EndedReason)
	assert.Equal(t, 60, result.DurationSec)
	assert.Len(t, f.sink.Results(), 1)
}

func TestUnknownQuizAndSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.service.Start(ctx, "nope", "")
	assert.ErrorIs(t, err, domain.ErrQuizNotFound)

	_, err = f.service.Submit(ctx, "nope", "x")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, _, err = f.service.Tick(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = f.service.End(ctx, "nope", domain.EndManual)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = f.service.View(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, f.service.SetInput(ctx, "nope", "x"), domain.ErrSessionNotFound)
}

func TestSinkFailureDoesNotBreakPlay(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.sink.err = errors.New("disk full")

	view, err := f.service.Start(ctx, "quiz-1", "")
	require.NoError(t, err)
	result, err := f.service.End(ctx, view.SessionID, domain.EndManual)
	require.NoError(t, err)
	assert.Equal(t, domain.EndManual, result.EndedReason)

	v, err := f.service.View(ctx, view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "ended", v.Status)
}

func TestSetInputAndDiscard(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	view, err := f.service.Start(ctx, "quiz-1", "")
	require.NoError(t, err)

	require.NoError(t, f.service.SetInput(ctx, view.SessionID, "lak"))
	v, err := f.service.View(ctx, view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "lak", v.Input)

	f.service.Discard(ctx, view.SessionID)
	_, err = f.service.View(ctx, view.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Empty(t, f.sink.Results())
}

func TestConcurrentTerminationEmitsOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	view, err := f.service.Start(ctx, "quiz-1", "")
	require.NoError(t, err)
	f.clock.Advance(60 * time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_, _, _ = f.service.Tick(ctx, view.SessionID)
		}()
		go func() {
			defer wg.Done()
			_, _ = f.service.End(ctx, view.SessionID, domain.EndManual)
		}()
		go func() {
			defer wg.Done()
			_, _ = f.service.Submit(ctx, view.SessionID, "Lakers")
		}()
	}
	wg.Wait()

	require.Len(t, f.sink.Results(), 1)
	assert.Equal(t, domain.EndTime, f.sink.Results()[0].EndedReason)
}
