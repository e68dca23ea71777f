package app

import (
	"context"
	"log/slog"

	"trivia-service/internal/domain"
	"trivia-service/internal/logger"
)

// ResultSink receives every finished play exactly once.
type ResultSink interface {
	AddPlay(ctx context.Context, result domain.PlayResult) error
}

type fanoutSink struct {
	store   ResultSink
	mirrors []ResultSink
	log     *slog.Logger
}

// NewResultSink writes results to store and copies them to each mirror.
// Only the store error is returned; mirror failures are logged and dropped.
func NewResultSink(log *slog.Logger, store ResultSink, mirrors ...ResultSink) ResultSink {
	return &fanoutSink{store: store, mirrors: mirrors, log: logger.WithComponent(log, "result_sink")}
}

func (f *fanoutSink) AddPlay(ctx context.Context, result domain.PlayResult) error {
	if err := f.store.AddPlay(ctx, result); err != nil {
		return err
	}
	for _, mirror := range f.mirrors {
		if err := mirror.AddPlay(ctx, result); err != nil {
			f.log.Warn("mirror play result failed", "play_id", result.ID, "error", err)
		}
	}
	return nil
}
