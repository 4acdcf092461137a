package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/pol3d/cardmail"
	"github.com/pol3d/cardmail/middlewares"
	"github.com/pol3d/cardmail/pkg/card"
)

// NewApp assembles the card endpoint with its middleware stack, the JSON
// error envelope and health checks. Both the server and the Lambda
// entrypoint use it so they answer identically.
func NewApp(svc *card.Service, log *slog.Logger, requestTimeout time.Duration, opts ...cardmail.Option) *cardmail.App {
	base := []cardmail.Option{
		cardmail.WithCustomLogger(log),
		cardmail.WithMiddleware(
			middlewares.CORS(
				middlewares.WithStaticHeaders(),
				middlewares.WithExposeHeaders(middlewares.RequestIDHeader),
			),
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.Timeout(requestTimeout),
		),
		cardmail.WithHandlers(NewCard(svc)),
		cardmail.WithErrorHandler(ErrorHandler),
		cardmail.WithNotFoundHandler(NotFound),
		cardmail.WithMethodNotAllowedHandler(MethodNotAllowed),
		cardmail.WithHealthChecks(
			cardmail.WithReadinessCheck("card", func(context.Context) error {
				return svc.Ready()
			}),
		),
	}
	return cardmail.New(append(base, opts...)...)
}
