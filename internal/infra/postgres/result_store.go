package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trivia-service/internal/domain"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// OpenBun opens a bun handle on a Postgres DSN.
func OpenBun(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

type playRow struct {
	bun.BaseModel `bun:"table:plays,alias:p"`

	ID            string    `bun:"id,pk"`
	QuizID        string    `bun:"quiz_id"`
	QuizTitle     string    `bun:"quiz_title"`
	PlayerName    string    `bun:"player_name"`
	StartedAt     time.Time `bun:"started_at"`
	EndedAt       time.Time `bun:"ended_at"`
	DurationSec   int       `bun:"duration_sec"`
	TimeLimitSec  int       `bun:"time_limit_sec"`
	FoundCount    int       `bun:"found_count"`
	TotalCount    int       `bun:"total_count"`
	ScorePct      int       `bun:"score_pct"`
	FoundIDs      []string  `bun:"found_ids,array"`
	MissedAnswers []string  `bun:"missed_answers,array"`
	EndedReason   string    `bun:"ended_reason"`
	RevealAll     bool      `bun:"reveal_all"`
}

// ResultStore keeps finished plays in the plays table.
type ResultStore struct {
	db *bun.DB
}

func NewResultStore(db *bun.DB) *ResultStore {
	return &ResultStore{db: db}
}

func (s *ResultStore) AddPlay(ctx context.Context, result domain.PlayResult) error {
	row := toPlayRow(result)
	if _, err := s.db.NewInsert().Model(&row).On("CONFLICT (id) DO NOTHING").Exec(ctx); err != nil {
		return fmt.Errorf("insert play: %w", err)
	}
	return nil
}

func (s *ResultStore) GetPlay(ctx context.Context, playID string) (domain.PlayResult, error) {
	var row playRow
	err := s.db.NewSelect().Model(&row).Where("p.id = ?", playID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PlayResult{}, domain.ErrPlayNotFound
	}
	if err != nil {
		return domain.PlayResult{}, fmt.Errorf("get play: %w", err)
	}
	return row.toDomain(), nil
}

func (s *ResultStore) ListPlays(ctx context.Context, quizID string) ([]domain.PlayResult, error) {
	var rows []playRow
	q := s.db.NewSelect().Model(&rows).Order("p.ended_at DESC", "p.id")
	if quizID != "" {
		q = q.Where("p.quiz_id = ?", quizID)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list plays: %w", err)
	}

	out := make([]domain.PlayResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func toPlayRow(r domain.PlayResult) playRow {
	return playRow{
		ID:            r.ID,
		QuizID:        r.QuizID,
		QuizTitle:     r.QuizTitle,
		PlayerName:    r.PlayerName,
		StartedAt:     r.StartedAt,
		EndedAt:       r.EndedAt,
		DurationSec:   r.DurationSec,
		TimeLimitSec:  r.TimeLimitSec,
		FoundCount:    r.FoundCount,
		TotalCount:    r.TotalCount,
		ScorePct:      r.ScorePct,
		FoundIDs:      r.FoundIDs,
		MissedAnswers: r.MissedAnswers,
		EndedReason:   string(r.EndedReason),
		RevealAll:     r.RevealAll,
	}
}

func (row playRow) toDomain() domain.PlayResult {
	found, missed := row.FoundIDs, row.MissedAnswers
	if found == nil {
		found = []string{}
	}
	if missed == nil {
		missed = []string{}
	}
	return domain.PlayResult{
		ID:            row.ID,
		QuizID:        row.QuizID,
		QuizTitle:     row.QuizTitle,
		StartedAt:     row.StartedAt,
		EndedAt:       row.EndedAt,
		DurationSec:   row.DurationSec,
		TimeLimitSec:  row.TimeLimitSec,
		FoundCount:    row.FoundCount,
		TotalCount:    row.TotalCount,
		ScorePct:      row.ScorePct,
		FoundIDs:      found,
		MissedAnswers: missed,
		PlayerName:    row.PlayerName,
		EndedReason:   domain.EndReason(row.EndedReason),
		RevealAll:     row.RevealAll,
	}
}
