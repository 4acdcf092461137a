// Package logger builds the service's slog loggers.
//
// Records are JSON (or text, for the CLI) on stdout. Context extractors add
// request-scoped attributes such as the request ID on every call:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "card sent", slog.String("message_id", id))
//
// NewWithSentry additionally forwards warnings and errors to Sentry when
// SENTRY_DSN is set and falls back to stdout-only logging otherwise.
package logger
