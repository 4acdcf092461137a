package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/pol3d/cardmail"
	"github.com/pol3d/cardmail/handlers"
	"github.com/pol3d/cardmail/pkg/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the send-card endpoint over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, svc, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.FlushSentry(2 * time.Second)

		if err := svc.Ready(); err != nil {
			log.Warn("card service not ready, requests will fail until configured", "error", err)
		}

		addr := cfg.Server.Address
		if serveAddr != "" {
			addr = serveAddr
		}

		app := handlers.NewApp(svc, log, cfg.Server.RequestTimeout)
		return app.Run(addr,
			cardmail.Logger(log),
			cardmail.ShutdownTimeout(cfg.Server.ShutdownTimeout),
			cardmail.WithContext(cmd.Context()),
			cardmail.ShutdownHook(func(context.Context) error {
				logger.FlushSentry(2 * time.Second)
				return nil
			}),
		)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides HTTP_ADDR)")
}
