package domain

import "time"

// Difficulty is the author-assigned difficulty tier of a quiz.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyNormal Difficulty = "Normal"
	DifficultyHard   Difficulty = "Hard"
	DifficultyInsane Difficulty = "Insane"
)

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyInsane:
		return true
	}
	return false
}

// QuizItem is one answerable unit of a quiz.
type QuizItem struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt,omitempty"` // optional clue, e.g. "2016 MVP"
	Answer  string   `json:"answer"`
	Aliases []string `json:"aliases,omitempty"`
}

// Quiz is a named, timed collection of items. It is read-only while being played.
type Quiz struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Category     string     `json:"category"`
	Difficulty   Difficulty `json:"difficulty"`
	TimeLimitSec int        `json:"timeLimitSec"`
	Items        []QuizItem `json:"items"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	AuthorName   string     `json:"authorName,omitempty"`
	OwnerID      string     `json:"ownerId,omitempty"`
}

// EndReason classifies why a play session terminated.
type EndReason string

const (
	EndTime     EndReason = "time"
	EndComplete EndReason = "complete"
	EndManual   EndReason = "manual"
	EndGiveUp   EndReason = "giveup"
)

// PlayResult is the immutable scored record of one finished play session.
// Quiz title and missed answers are denormalized so the record stays readable
// after the quiz is edited or deleted.
type PlayResult struct {
	ID            string    `json:"id"`
	QuizID        string    `json:"quizId"`
	QuizTitle     string    `json:"quizTitle"`
	StartedAt     time.Time `json:"startedAt"`
	EndedAt       time.Time `json:"endedAt"`
	DurationSec   int       `json:"durationSec"`
	TimeLimitSec  int       `json:"timeLimitSec"`
	FoundCount    int       `json:"foundCount"`
	TotalCount    int       `json:"totalCount"`
	ScorePct      int       `json:"scorePct"`
	FoundIDs      []string  `json:"foundIds"`
	MissedAnswers []string  `json:"missedAnswers"`
	PlayerName    string    `json:"playerName,omitempty"`
	EndedReason   EndReason `json:"endedReason,omitempty"`
	RevealAll     bool      `json:"revealAll,omitempty"`
}
