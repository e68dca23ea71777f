package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"trivia-service/internal/domain"
)

// ResultStore keeps finished plays in memory.
type ResultStore struct {
	mu    sync.RWMutex
	plays map[string]domain.PlayResult
}

func NewResultStore() *ResultStore {
	return &ResultStore{plays: make(map[string]domain.PlayResult)}
}

// AddPlay keeps the first result stored under an id; results never change.
func (s *ResultStore) AddPlay(_ context.Context, result domain.PlayResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.plays[result.ID]; exists {
		return nil
	}
	s.plays[result.ID] = cloneResult(result)
	return nil
}

func (s *ResultStore) GetPlay(_ context.Context, playID string) (domain.PlayResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.plays[playID]
	if !ok {
		return domain.PlayResult{}, domain.ErrPlayNotFound
	}
	return cloneResult(result), nil
}

// ListPlays returns plays newest first, limited to one quiz when quizID is set.
func (s *ResultStore) ListPlays(_ context.Context, quizID string) ([]domain.PlayResult, error) {
	s.mu.RLock()
	out := make([]domain.PlayResult, 0, len(s.plays))
	for _, result := range s.plays {
		if quizID == "" || result.QuizID == quizID {
			out = append(out, cloneResult(result))
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].EndedAt.Equal(out[j].EndedAt) {
			return out[i].EndedAt.After(out[j].EndedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func cloneResult(r domain.PlayResult) domain.PlayResult {
	r.FoundIDs = slices.Clone(r.FoundIDs)
	r.MissedAnswers = slices.Clone(r.MissedAnswers)
	return r
}
