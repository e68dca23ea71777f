package memory

import (
	"context"
	"sort"
	"sync"

	"trivia-service/internal/domain"
)

// QuizStore keeps quizzes in a map. It serves the memory storage driver,
// tests and demos.
type QuizStore struct {
	mu      sync.RWMutex
	quizzes map[string]domain.Quiz
}

func NewQuizStore(quizzes ...domain.Quiz) *QuizStore {
	s := &QuizStore{quizzes: make(map[string]domain.Quiz, len(quizzes))}
	for _, quiz := range quizzes {
		s.quizzes[quiz.ID] = cloneQuiz(quiz)
	}
	return s
}

// ListQuizzes returns every quiz, most recently updated first.
func (s *QuizStore) ListQuizzes(_ context.Context) ([]domain.Quiz, error) {
	s.mu.RLock()
	out := make([]domain.Quiz, 0, len(s.quizzes))
	for _, quiz := range s.quizzes {
		out = append(out, cloneQuiz(quiz))
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *QuizStore) LoadQuiz(_ context.Context, quizID string) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.quizzes[quizID]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return cloneQuiz(quiz), nil
}

func (s *QuizStore) SaveQuiz(_ context.Context, quiz domain.Quiz) error {
	s.mu.Lock()
	s.quizzes[quiz.ID] = cloneQuiz(quiz)
	s.mu.Unlock()
	return nil
}

func (s *QuizStore) DeleteQuiz(_ context.Context, quizID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[quizID]; !ok {
		return domain.ErrQuizNotFound
	}
	delete(s.quizzes, quizID)
	return nil
}

// cloneQuiz copies the item slices so callers never share backing arrays with the store.
func cloneQuiz(quiz domain.Quiz) domain.Quiz {
	items := make([]domain.QuizItem, len(quiz.Items))
	for i, it := range quiz.Items {
		if it.Aliases != nil {
			it.Aliases = append([]string(nil), it.Aliases...)
		}
		items[i] = it
	}
	quiz.Items = items
	return quiz
}
