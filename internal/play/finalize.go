package play

import (
	"math"
	"strings"
	"time"

	"trivia-service/internal/domain"

	"github.com/google/uuid"
)

// Options carries the caller-provided parts of a result.
type Options struct {
	ID         string // generated when empty
	PlayerName string
	Reason     domain.EndReason
	RevealAll  bool
}

// Finalize turns the terminal state of a session into its scored result.
func Finalize(quiz domain.Quiz, state *State, endedAt time.Time, opts Options) domain.PlayResult {
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}

	found := make([]string, 0, state.Found.Len())
	missed := make([]string, 0, len(quiz.Items))
	for _, item := range quiz.Items {
		if state.Found.Has(item.ID) {
			found = append(found, item.ID)
		} else {
			missed = append(missed, item.Answer)
		}
	}

	foundCount := state.Found.Len()
	totalCount := len(quiz.Items)

	return domain.PlayResult{
		ID:            id,
		QuizID:        quiz.ID,
		QuizTitle:     quiz.Title,
		StartedAt:     state.StartedAt,
		EndedAt:       endedAt,
		DurationSec:   DurationSec(state.StartedAt, endedAt),
		TimeLimitSec:  quiz.TimeLimitSec,
		FoundCount:    foundCount,
		TotalCount:    totalCount,
		ScorePct:      ScorePct(foundCount, totalCount),
		FoundIDs:      found,
		MissedAnswers: missed,
		PlayerName:    strings.TrimSpace(opts.PlayerName),
		EndedReason:   opts.Reason,
		RevealAll:     opts.RevealAll,
	}
}

// DurationSec rounds the session length to whole seconds, never below zero.
func DurationSec(startedAt, endedAt time.Time) int {
	secs := math.Round(endedAt.Sub(startedAt).Seconds())
	if secs < 0 {
		return 0
	}
	return int(secs)
}

// ScorePct is found/total as a percentage rounded half up; 0 for an empty quiz.
func ScorePct(found, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*found + total) / (2 * total)
}
