package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. TRIVIA_REDIS_ADDR.
const EnvPrefix = "TRIVIA"

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Rabbit   RabbitConfig   `yaml:"rabbit"`
	Quiz     QuizConfig     `yaml:"quiz"`
	Play     PlayConfig     `yaml:"play"`
}

type ServerConfig struct {
	Port string `yaml:"port" envconfig:"PORT"`
}

// LogConfig selects the slog handler. Format is json, text or pretty.
type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT"`
}

// StorageConfig picks where quizzes and play results live: memory, sqlite or postgres.
type StorageConfig struct {
	Driver     string `yaml:"driver" envconfig:"STORAGE_DRIVER"`
	SQLitePath string `yaml:"sqlitePath" envconfig:"SQLITE_PATH"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" envconfig:"REDIS_ADDR"`
	Password string `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" envconfig:"REDIS_DB"`
	TTL      string `yaml:"ttl" envconfig:"REDIS_TTL"`
}

type PostgresConfig struct {
	URL string `yaml:"url" envconfig:"POSTGRES_URL"`
}

// RabbitConfig enables mirroring finished plays to a broker when URL is set.
type RabbitConfig struct {
	URL      string `yaml:"url" envconfig:"RABBIT_URL"`
	Exchange string `yaml:"exchange" envconfig:"RABBIT_EXCHANGE"`
}

type QuizConfig struct {
	TTL string `yaml:"ttl" envconfig:"QUIZ_TTL"`
}

type PlayConfig struct {
	Tick       string `yaml:"tick" envconfig:"PLAY_TICK"`
	SessionTTL string `yaml:"sessionTtl" envconfig:"PLAY_SESSION_TTL"`
	Seed       bool   `yaml:"seed" envconfig:"PLAY_SEED"`
}

// Load reads an optional .env file, the YAML config at path (a missing file is
// not an error), then applies TRIVIA_* environment overrides and defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	// Each section is processed on its own so the variables stay flat
	// (TRIVIA_REDIS_ADDR rather than TRIVIA_REDIS_REDIS_ADDR).
	sections := []any{&cfg.Server, &cfg.Log, &cfg.Storage, &cfg.Redis, &cfg.Postgres, &cfg.Rabbit, &cfg.Quiz, &cfg.Play}
	for _, section := range sections {
		if err := envconfig.Process(EnvPrefix, section); err != nil {
			return cfg, fmt.Errorf("load env overrides: %w", err)
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = "trivia.db"
	}
	if c.Rabbit.Exchange == "" {
		c.Rabbit.Exchange = "trivia.plays"
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
