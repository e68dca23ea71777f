package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"trivia-service/internal/authoring"
	"trivia-service/internal/domain"
	"trivia-service/internal/logger"
)

// QuizStore persists authored quizzes. It is also the loader behind the quiz caches.
type QuizStore interface {
	ListQuizzes(ctx context.Context) ([]domain.Quiz, error)
	LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	SaveQuiz(ctx context.Context, quiz domain.Quiz) error
	DeleteQuiz(ctx context.Context, quizID string) error
}

// ResultStore keeps finished plays. ListPlays returns the most recent first and
// filters by quiz when quizID is not empty.
type ResultStore interface {
	AddPlay(ctx context.Context, result domain.PlayResult) error
	GetPlay(ctx context.Context, playID string) (domain.PlayResult, error)
	ListPlays(ctx context.Context, quizID string) ([]domain.PlayResult, error)
}

// CatalogService covers quiz authoring and play history.
type CatalogService struct {
	quizzes QuizStore
	cache   QuizRepository
	results ResultStore
	now     func() time.Time
	log     *slog.Logger
}

func NewCatalogService(quizzes QuizStore, cache QuizRepository, results ResultStore, log *slog.Logger) *CatalogService {
	return &CatalogService{
		quizzes: quizzes,
		cache:   cache,
		results: results,
		now:     time.Now,
		log:     logger.WithComponent(log, "catalog"),
	}
}

func (c *CatalogService) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	return c.quizzes.ListQuizzes(ctx)
}

func (c *CatalogService) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	return c.quizzes.LoadQuiz(ctx, quizID)
}

// SaveQuiz cleans up and validates a quiz, stores it and drops any cached copy.
// Saving over an existing id keeps its creation time.
func (c *CatalogService) SaveQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	if quiz.ID != "" {
		existing, err := c.quizzes.LoadQuiz(ctx, quiz.ID)
		switch {
		case err == nil:
			quiz.CreatedAt = existing.CreatedAt
		case !errors.Is(err, domain.ErrQuizNotFound):
			return domain.Quiz{}, err
		}
	}

	quiz = authoring.Prepare(quiz, c.now())
	if err := authoring.Validate(quiz); err != nil {
		return domain.Quiz{}, err
	}
	if err := c.quizzes.SaveQuiz(ctx, quiz); err != nil {
		return domain.Quiz{}, err
	}
	c.invalidate(ctx, quiz.ID)

	c.log.Info("quiz saved", "quiz_id", quiz.ID, "items", len(quiz.Items))
	return quiz, nil
}

func (c *CatalogService) DeleteQuiz(ctx context.Context, quizID string) error {
	if err := c.quizzes.DeleteQuiz(ctx, quizID); err != nil {
		return err
	}
	c.invalidate(ctx, quizID)
	c.log.Info("quiz deleted", "quiz_id", quizID)
	return nil
}

// ImportBulk appends pasted items to an existing quiz and saves it again.
func (c *CatalogService) ImportBulk(ctx context.Context, quizID, raw string) (domain.Quiz, error) {
	quiz, err := c.quizzes.LoadQuiz(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, err
	}
	parsed := authoring.ParseBulk(raw)
	if len(parsed) == 0 {
		return domain.Quiz{}, domain.NewValidationError("text", "no items found in pasted text")
	}
	quiz.Items = append(quiz.Items, parsed...)
	return c.SaveQuiz(ctx, quiz)
}

func (c *CatalogService) ListPlays(ctx context.Context, quizID string) ([]domain.PlayResult, error) {
	return c.results.ListPlays(ctx, quizID)
}

func (c *CatalogService) GetPlay(ctx context.Context, playID string) (domain.PlayResult, error) {
	return c.results.GetPlay(ctx, playID)
}

// Seed stores the sample quizzes when the store holds none. It returns how
// many quizzes were written.
func (c *CatalogService) Seed(ctx context.Context) (int, error) {
	existing, err := c.quizzes.ListQuizzes(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	samples := authoring.SampleQuizzes(c.now())
	for _, quiz := range samples {
		if err := c.quizzes.SaveQuiz(ctx, quiz); err != nil {
			return 0, err
		}
	}
	c.log.Info("sample quizzes seeded", "count", len(samples))
	return len(samples), nil
}

func (c *CatalogService) invalidate(ctx context.Context, quizID string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Invalidate(ctx, quizID); err != nil {
		c.log.Warn("invalidate cached quiz failed", "quiz_id", quizID, "error", err)
	}
}
