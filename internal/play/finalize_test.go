package play

import (
	"testing"
	"time"

	"trivia-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestScorePct(t *testing.T) {
	cases := []struct {
		found, total, want int
	}{
		{0, 0, 0},
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
		{5, 8, 63}, // 62.5 rounds up
		{29, 200, 15},
		{3, 3, 100},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ScorePct(tc.found, tc.total), "found=%d total=%d", tc.found, tc.total)
	}
}

func TestScorePctMonotonic(t *testing.T) {
	for total := 1; total <= 50; total++ {
		prev := -1
		for found := 0; found <= total; found++ {
			pct := ScorePct(found, total)
			assert.GreaterOrEqual(t, pct, prev)
			assert.LessOrEqual(t, pct, 100)
			prev = pct
		}
	}
}

func TestDurationSecNeverNegative(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DurationSec(start, start.Add(-time.Hour)))
	assert.Equal(t, 0, DurationSec(start, start.Add(400*time.Millisecond)))
	assert.Equal(t, 1, DurationSec(start, start.Add(500*time.Millisecond)))
	assert.Equal(t, 61, DurationSec(start, start.Add(61*time.Second+200*time.Millisecond)))
}

func TestFinalize(t *testing.T) {
	quiz := domain.Quiz{
		ID:           "q",
		Title:        "Colors",
		TimeLimitSec: 90,
		Items: []domain.QuizItem{
			{ID: "r", Answer: "Red"},
			{ID: "g", Answer: "Green"},
			{ID: "b", Answer: "Blue"},
		},
	}
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	state := NewState(start)
	state.Found.Add("b")
	state.Found.Add("r")

	res := Finalize(quiz, state, start.Add(30*time.Second), Options{
		ID:         "res-1",
		PlayerName: "  Ada ",
		Reason:     domain.EndManual,
	})

	assert.Equal(t, domain.PlayResult{
		ID:            "res-1",
		QuizID:        "q",
		QuizTitle:     "Colors",
		StartedAt:     start,
		EndedAt:       start.Add(30 * time.Second),
		DurationSec:   30,
		TimeLimitSec:  90,
		FoundCount:    2,
		TotalCount:    3,
		ScorePct:      67,
		FoundIDs:      []string{"r", "b"},
		MissedAnswers: []string{"Green"},
		PlayerName:    "Ada",
		EndedReason:   domain.EndManual,
	}, res)
}

func TestFinalizeGeneratesID(t *testing.T) {
	res := Finalize(domain.Quiz{}, NewState(time.Now()), time.Now(), Options{})
	assert.NotEmpty(t, res.ID)
	assert.Zero(t, res.ScorePct)
	assert.Empty(t, res.MissedAnswers)
}
