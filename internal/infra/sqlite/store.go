// Package sqlite is the single-file local store used in guest mode. Quizzes and
// plays are kept as JSON documents next to the columns used for lookup and ordering.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"trivia-service/internal/domain"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database file at path and ensures the tables exist.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// sqlite allows one writer; a single connection avoids "database is locked".
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := createTables(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(ctx context.Context, db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS quizzes (
            id TEXT PRIMARY KEY,
            data TEXT NOT NULL,
            updated_at INTEGER NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS plays (
            id TEXT PRIMARY KEY,
            quiz_id TEXT NOT NULL,
            ended_at INTEGER NOT NULL,
            data TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_plays_quiz ON plays(quiz_id, ended_at)`,
	}
	for _, q := range queries {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create sqlite tables: %w", err)
		}
	}
	return nil
}

func (s *Store) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM quizzes ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := []domain.Quiz{}
	for rows.Next() {
		var quiz domain.Quiz
		if err := scanJSON(rows, &quiz); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, rows.Err()
}

func (s *Store) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	var quiz domain.Quiz
	err := scanJSON(s.db.QueryRowContext(ctx, `SELECT data FROM quizzes WHERE id = ?`, quizID), &quiz)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	return quiz, nil
}

func (s *Store) SaveQuiz(ctx context.Context, quiz domain.Quiz) error {
	data, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("marshal quiz: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO quizzes (id, data, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		quiz.ID, string(data), quiz.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("save quiz: %w", err)
	}
	return nil
}

func (s *Store) DeleteQuiz(ctx context.Context, quizID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, quizID)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrQuizNotFound
	}
	return nil
}

// AddPlay stores a finished play. Results are immutable, so a repeated id is ignored.
func (s *Store) AddPlay(ctx context.Context, result domain.PlayResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal play: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO plays (id, quiz_id, ended_at, data) VALUES (?, ?, ?, ?)`,
		result.ID, result.QuizID, result.EndedAt.UnixNano(), string(data))
	if err != nil {
		return fmt.Errorf("insert play: %w", err)
	}
	return nil
}

func (s *Store) GetPlay(ctx context.Context, playID string) (domain.PlayResult, error) {
	var result domain.PlayResult
	err := scanJSON(s.db.QueryRowContext(ctx, `SELECT data FROM plays WHERE id = ?`, playID), &result)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PlayResult{}, domain.ErrPlayNotFound
	}
	if err != nil {
		return domain.PlayResult{}, fmt.Errorf("get play: %w", err)
	}
	return result, nil
}

func (s *Store) ListPlays(ctx context.Context, quizID string) ([]domain.PlayResult, error) {
	query := `SELECT data FROM plays ORDER BY ended_at DESC, id`
	args := []any{}
	if quizID != "" {
		query = `SELECT data FROM plays WHERE quiz_id = ? ORDER BY ended_at DESC, id`
		args = append(args, quizID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list plays: %w", err)
	}
	defer rows.Close()

	plays := []domain.PlayResult{}
	for rows.Next() {
		var result domain.PlayResult
		if err := scanJSON(rows, &result); err != nil {
			return nil, fmt.Errorf("scan play: %w", err)
		}
		plays = append(plays, result)
	}
	return plays, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJSON(row scanner, v any) error {
	var data string
	if err := row.Scan(&data); err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), v)
}
