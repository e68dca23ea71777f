package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"trivia-service/internal/domain"
)

func TestQuizStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewQuizStore()

	older := sampleQuiz()
	older.UpdatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := sampleQuiz()
	newer.ID = "quiz-2"
	newer.UpdatedAt = older.UpdatedAt.Add(time.Hour)

	for _, q := range []domain.Quiz{older, newer} {
		if err := store.SaveQuiz(ctx, q); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	list, err := store.ListQuizzes(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "quiz-2" {
		t.Fatalf("expected newest first, got %+v", list)
	}

	if err := store.DeleteQuiz(ctx, "quiz-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.LoadQuiz(ctx, "quiz-1"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := store.DeleteQuiz(ctx, "quiz-1"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestQuizStoreCopiesItems(t *testing.T) {
	ctx := context.Background()
	quiz := sampleQuiz()
	store := NewQuizStore(quiz)

	quiz.Items[1].Aliases[0] = "changed"
	loaded, err := store.LoadQuiz(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Items[1].Aliases[0] != "Celts" {
		t.Fatalf("store shares memory with caller: %+v", loaded.Items[1])
	}

	loaded.Items[0].Answer = "Clippers"
	again, _ := store.LoadQuiz(ctx, "quiz-1")
	if again.Items[0].Answer != "Lakers" {
		t.Fatalf("store shares memory with reader: %+v", again.Items[0])
	}
}
