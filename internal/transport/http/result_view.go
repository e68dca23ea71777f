package http

import (
	"trivia-service/internal/authoring"
	"trivia-service/internal/domain"
)

// resultView is a finished play as shown to players.
type resultView struct {
	domain.PlayResult
	Headline string `json:"headline"`
}

func newResultView(result domain.PlayResult) resultView {
	return resultView{PlayResult: result, Headline: authoring.Headline(result.ScorePct)}
}

func optionalResultView(result *domain.PlayResult) *resultView {
	if result == nil {
		return nil
	}
	view := newResultView(*result)
	return &view
}
