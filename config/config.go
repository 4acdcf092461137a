// Package config loads process-wide settings from the environment and wires
// the card pipeline from them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/pol3d/cardmail/pkg/card"
	"github.com/pol3d/cardmail/pkg/logger"
	"github.com/pol3d/cardmail/pkg/mailer/resend"
)

// Config is everything the service reads from the environment.
type Config struct {
	Logger logger.Config
	Sentry logger.SentryConfig
	Resend resend.Config
	Card   card.Settings
	Limits card.Limits
	Server Server
}

// Server holds HTTP runtime settings.
type Server struct {
	Address         string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"25s"`
}

// Load reads the given .env files (".env" when none are given), then parses
// the environment. Missing .env files are ignored; variables already set in
// the environment win over file values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// NewService builds the card pipeline with the Resend sender.
// Missing credentials are not an error here; they surface per request as
// configuration errors and through Service.Ready.
func NewService(cfg Config, log *slog.Logger) (*card.Service, error) {
	sender, err := resend.New(cfg.Resend)
	if err != nil {
		return nil, err
	}

	composer, err := card.NewComposer(cfg.Card, nil)
	if err != nil {
		return nil, err
	}

	return card.NewService(
		card.NewValidator(cfg.Limits),
		composer,
		card.NewDispatcher(sender, log),
		log,
	), nil
}
