package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pol3d/cardmail/config"
	"github.com/pol3d/cardmail/middlewares"
	"github.com/pol3d/cardmail/pkg/card"
	"github.com/pol3d/cardmail/pkg/logger"
)

var envFiles []string

var rootCmd = &cobra.Command{
	Use:   "cardmail",
	Short: "Email greeting card images through Resend",
	Long: `cardmail relays a card image to a recipient as an email attachment.

Example:
  cardmail serve                               # Listen on HTTP_ADDR
  cardmail send --to anna@example.com --file card.png`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load (default .env)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sendCmd)
}

// bootstrap loads configuration and builds the logger and card service.
func bootstrap() (config.Config, *slog.Logger, *card.Service, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	log := logger.NewWithSentry(cfg.Logger, cfg.Sentry, middlewares.RequestIDExtractor())

	svc, err := config.NewService(cfg, log)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, log, svc, nil
}
