package cli

import (
	"context"

	"trivia-service/internal/config"
	"trivia-service/internal/logger"

	"github.com/spf13/cobra"
)

// NewSeedCmd stores the sample quizzes into an empty store.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Store the sample quizzes if no quiz exists yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log := logger.New(cfg.Log)

			svc, err := buildServices(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer svc.Close()

			n, err := svc.catalog.Seed(ctx)
			if err != nil {
				return err
			}
			log.Info("seed finished", "quizzes_written", n)
			return nil
		},
	}
}
