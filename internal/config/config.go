package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-solver/internal/search"
)

var ErrInvalidWorkers = errors.New("book workers must be positive")

type Config struct {
	LogLevel  string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Algorithm string `yaml:"algorithm" env:"SOLVER_ALGORITHM" env-default:"alphabeta"`
	Redis     Redis  `yaml:"redis"`
	Book      Book   `yaml:"book"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	DB   int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// Book controls the cache of solved positions.
type Book struct {
	Skip    bool          `yaml:"skip" env:"BOOK_SKIP"`
	Workers int           `yaml:"workers" env:"BOOK_WORKERS" env-default:"4"`
	TTL     time.Duration `yaml:"ttl" env:"BOOK_TTL" env-default:"0s"`
}

// MustLoad - load all configurations in config.yml file, overridden by the environment.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if err := config.Validate(); err != nil {
		panic(fmt.Errorf("invalid config: %w", err))
	}

	return config
}

func (that *Config) Validate() error {
	if _, err := search.ParseAlgorithm(that.Algorithm); err != nil {
		return err
	}

	if that.Book.Workers <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, that.Book.Workers)
	}

	return nil
}

// SearchAlgorithm - returns the validated algorithm name.
func (that *Config) SearchAlgorithm() search.Algorithm {
	return search.Algorithm(that.Algorithm)
}

// SlogLevel - maps log-level onto a slog level; unknown names fall back to info.
func (that *Config) SlogLevel() slog.Level {
	switch strings.ToLower(that.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
