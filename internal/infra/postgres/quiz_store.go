package postgres

import (
	"context"
	"errors"
	"fmt"

	"trivia-service/internal/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuizStore keeps quizzes in the quizzes and quiz_items tables. Item order is
// preserved through sort_order.
type QuizStore struct {
	pool *pgxpool.Pool
}

func NewQuizStore(pool *pgxpool.Pool) *QuizStore {
	return &QuizStore{pool: pool}
}

const quizColumns = `id, title, description, category, difficulty, time_limit_sec, author_name, owner_id, created_at, updated_at`

func (s *QuizStore) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+quizColumns+` FROM quizzes ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var (
		quizzes []domain.Quiz
		ids     []string
	)
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, quiz)
		ids = append(ids, quiz.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	if len(quizzes) == 0 {
		return []domain.Quiz{}, nil
	}

	items, err := s.loadItems(ctx, `WHERE quiz_id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	for i := range quizzes {
		quizzes[i].Items = items[quizzes[i].ID]
	}
	return quizzes, nil
}

func (s *QuizStore) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE id = $1`, quizID)
	quiz, err := scanQuiz(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}

	items, err := s.loadItems(ctx, `WHERE quiz_id = $1`, quizID)
	if err != nil {
		return domain.Quiz{}, err
	}
	quiz.Items = items[quizID]
	return quiz, nil
}

// SaveQuiz upserts the quiz row and replaces its items in one transaction.
func (s *QuizStore) SaveQuiz(ctx context.Context, quiz domain.Quiz) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save quiz: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = tx.Exec(ctx, `
		INSERT INTO quizzes (`+quizColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			difficulty = EXCLUDED.difficulty,
			time_limit_sec = EXCLUDED.time_limit_sec,
			author_name = EXCLUDED.author_name,
			owner_id = EXCLUDED.owner_id,
			updated_at = EXCLUDED.updated_at`,
		quiz.ID, quiz.Title, quiz.Description, quiz.Category, string(quiz.Difficulty),
		quiz.TimeLimitSec, quiz.AuthorName, quiz.OwnerID, quiz.CreatedAt, quiz.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert quiz: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM quiz_items WHERE quiz_id = $1`, quiz.ID); err != nil {
		return fmt.Errorf("clear quiz items: %w", err)
	}

	batch := &pgx.Batch{}
	for i, item := range quiz.Items {
		aliases := item.Aliases
		if aliases == nil {
			aliases = []string{}
		}
		batch.Queue(`INSERT INTO quiz_items (quiz_id, id, sort_order, prompt, answer, aliases) VALUES ($1, $2, $3, $4, $5, $6)`,
			quiz.ID, item.ID, i, item.Prompt, item.Answer, aliases)
	}
	if batch.Len() > 0 {
		results := tx.SendBatch(ctx, batch)
		for range quiz.Items {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("insert quiz item: %w", err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("insert quiz items: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save quiz: %w", err)
	}
	return nil
}

func (s *QuizStore) DeleteQuiz(ctx context.Context, quizID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, quizID)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuizNotFound
	}
	return nil
}

func (s *QuizStore) loadItems(ctx context.Context, where string, arg any) (map[string][]domain.QuizItem, error) {
	rows, err := s.pool.Query(ctx, `SELECT quiz_id, id, prompt, answer, aliases FROM quiz_items `+where+` ORDER BY quiz_id, sort_order`, arg)
	if err != nil {
		return nil, fmt.Errorf("load quiz items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]domain.QuizItem)
	for rows.Next() {
		var (
			quizID string
			item   domain.QuizItem
		)
		if err := rows.Scan(&quizID, &item.ID, &item.Prompt, &item.Answer, &item.Aliases); err != nil {
			return nil, fmt.Errorf("scan quiz item: %w", err)
		}
		if len(item.Aliases) == 0 {
			item.Aliases = nil
		}
		items[quizID] = append(items[quizID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load quiz items: %w", err)
	}
	return items, nil
}

func scanQuiz(row pgx.Row) (domain.Quiz, error) {
	var (
		quiz       domain.Quiz
		difficulty string
	)
	err := row.Scan(&quiz.ID, &quiz.Title, &quiz.Description, &quiz.Category, &difficulty,
		&quiz.TimeLimitSec, &quiz.AuthorName, &quiz.OwnerID, &quiz.CreatedAt, &quiz.UpdatedAt)
	quiz.Difficulty = domain.Difficulty(difficulty)
	return quiz, err
}
