package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"trivia-service/internal/app"
	"trivia-service/internal/config"
	"trivia-service/internal/infra/memory"
	"trivia-service/internal/infra/postgres"
	"trivia-service/internal/infra/rabbit"
	infraredis "trivia-service/internal/infra/redis"
	"trivia-service/internal/infra/sqlite"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

// services is everything the commands need, built from config.
type services struct {
	play    *app.PlayService
	catalog *app.CatalogService
	closers []func()
}

func (s *services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

type stores struct {
	quizzes app.QuizStore
	results app.ResultStore
}

func buildServices(ctx context.Context, cfg config.Config, log *slog.Logger) (*services, error) {
	svc := &services{}
	ok := false
	defer func() {
		if !ok {
			svc.Close()
		}
	}()

	st, err := openStores(ctx, cfg, log, svc)
	if err != nil {
		return nil, err
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		svc.closers = append(svc.closers, func() { _ = redisClient.Close() })
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	sessionTTL := config.TTLDuration(cfg.Play.SessionTTL, 2*time.Hour)

	var (
		quizRepo app.QuizRepository
		sessions app.SessionRepository
	)
	if redisClient != nil {
		quizRepo = infraredis.NewQuizRepository(redisClient, st.quizzes, config.TTLDuration(cfg.Redis.TTL, quizTTL))
		sessions = infraredis.NewSessionStore(redisClient, sessionTTL)
	} else {
		quizRepo = memory.NewQuizRepository(st.quizzes, quizTTL)
		sessions = memory.NewSessionStore(sessionTTL)
	}

	var mirrors []app.ResultSink
	if cfg.Rabbit.URL != "" {
		pub, err := rabbit.Dial(cfg.Rabbit.URL, cfg.Rabbit.Exchange)
		if err != nil {
			return nil, err
		}
		svc.closers = append(svc.closers, func() { _ = pub.Close() })
		mirrors = append(mirrors, pub)
		log.Info("mirroring play results", "exchange", cfg.Rabbit.Exchange)
	}

	sink := app.NewResultSink(log, st.results, mirrors...)
	svc.play = app.NewPlayService(sessions, quizRepo, sink, app.WithLogger(log))
	svc.catalog = app.NewCatalogService(st.quizzes, quizRepo, st.results, log)

	ok = true
	return svc, nil
}

func openStores(ctx context.Context, cfg config.Config, log *slog.Logger, svc *services) (stores, error) {
	switch cfg.Storage.Driver {
	case "memory":
		log.Info("using in-memory storage")
		return stores{quizzes: memory.NewQuizStore(), results: memory.NewResultStore()}, nil

	case "sqlite":
		store, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return stores{}, err
		}
		svc.closers = append(svc.closers, func() { _ = store.Close() })
		log.Info("using sqlite storage", "path", cfg.Storage.SQLitePath)
		return stores{quizzes: store, results: store}, nil

	case "postgres":
		if err := runMigrations(ctx, cfg, log); err != nil {
			return stores{}, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return stores{}, fmt.Errorf("connect postgres: %w", err)
		}
		svc.closers = append(svc.closers, pool.Close)

		db := postgres.OpenBun(cfg.Postgres.URL)
		svc.closers = append(svc.closers, func() { _ = db.Close() })
		log.Info("using postgres storage")
		return stores{quizzes: postgres.NewQuizStore(pool), results: postgres.NewResultStore(db)}, nil
	}
	return stores{}, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
