// Package authoring holds the quiz editing rules applied before a quiz is
// stored: item clean-up, defaults, validation and the bulk-paste format.
package authoring

import (
	"strings"
	"time"

	"trivia-service/internal/domain"
	"trivia-service/internal/play"

	"github.com/google/uuid"
)

const (
	// MinTimeLimitSec is the shortest countdown a quiz may have.
	MinTimeLimitSec = 30
	// DefaultTimeLimitSec is used when the author leaves the limit unset.
	DefaultTimeLimitSec = 240
	MinTitleLength      = 3
	MinItems            = 3
	DefaultCategory     = "General"
)

// NormalizeItems trims every field, drops aliases that are blank and items whose
// answer normalizes to nothing, and removes items whose normalized answer was
// already seen (first occurrence wins). Items without an id, or whose id was
// already taken by an earlier item, get a fresh one.
func NormalizeItems(items []domain.QuizItem) []domain.QuizItem {
	seen := make(map[string]struct{}, len(items))
	ids := make(map[string]struct{}, len(items))
	out := make([]domain.QuizItem, 0, len(items))
	for _, it := range items {
		answer := strings.TrimSpace(it.Answer)
		key := play.Normalize(answer)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		id := strings.TrimSpace(it.ID)
		if _, taken := ids[id]; taken || id == "" {
			id = uuid.NewString()
		}
		ids[id] = struct{}{}
		out = append(out, domain.QuizItem{
			ID:      id,
			Prompt:  strings.TrimSpace(it.Prompt),
			Answer:  answer,
			Aliases: compact(it.Aliases),
		})
	}
	return out
}

// Prepare applies defaults and clean-up to a quiz about to be saved.
func Prepare(quiz domain.Quiz, now time.Time) domain.Quiz {
	quiz.ID = strings.TrimSpace(quiz.ID)
	if quiz.ID == "" {
		quiz.ID = uuid.NewString()
	}
	quiz.Title = strings.TrimSpace(quiz.Title)
	quiz.Description = strings.TrimSpace(quiz.Description)
	quiz.Category = strings.TrimSpace(quiz.Category)
	if quiz.Category == "" {
		quiz.Category = DefaultCategory
	}
	quiz.AuthorName = strings.TrimSpace(quiz.AuthorName)
	if quiz.Difficulty == "" {
		quiz.Difficulty = domain.DifficultyNormal
	}
	switch {
	case quiz.TimeLimitSec == 0:
		quiz.TimeLimitSec = DefaultTimeLimitSec
	case quiz.TimeLimitSec < MinTimeLimitSec:
		quiz.TimeLimitSec = MinTimeLimitSec
	}
	quiz.Items = NormalizeItems(quiz.Items)
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = now
	}
	quiz.UpdatedAt = now
	return quiz
}

// Validate checks a prepared quiz.
func Validate(quiz domain.Quiz) error {
	if len([]rune(strings.TrimSpace(quiz.Title))) < MinTitleLength {
		return domain.NewValidationError("title", "title must be at least 3 characters")
	}
	if !quiz.Difficulty.Valid() {
		return domain.NewValidationError("difficulty", "difficulty must be one of Easy, Normal, Hard, Insane")
	}
	if quiz.TimeLimitSec < MinTimeLimitSec {
		return domain.NewValidationError("timeLimitSec", "time limit must be at least 30 seconds")
	}
	if len(quiz.Items) < MinItems {
		return domain.NewValidationError("items", "a quiz needs at least 3 distinct answers")
	}
	return nil
}

// ParseBulk reads pasted lines, one item per line, in the form
//
//	prompt | answer | alias1; alias2
//
// or just "answer". Blank lines are skipped.
func ParseBulk(raw string) []domain.QuizItem {
	var items []domain.QuizItem
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := compact(strings.Split(line, "|"))
		switch len(parts) {
		case 0:
			continue
		case 1:
			items = append(items, domain.QuizItem{ID: uuid.NewString(), Answer: parts[0]})
			continue
		}
		item := domain.QuizItem{ID: uuid.NewString(), Prompt: parts[0], Answer: parts[1]}
		if len(parts) > 2 {
			item.Aliases = compact(strings.Split(parts[2], ";"))
		}
		items = append(items, item)
	}
	return items
}

// Headline is the one-line verdict shown above a result.
func Headline(scorePct int) string {
	switch {
	case scorePct >= 100:
		return "Perfect."
	case scorePct >= 85:
		return "Elite."
	case scorePct >= 60:
		return "Nice run."
	}
	return "Keep grinding."
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
