package card

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/pol3d/cardmail/pkg/logger"
	"github.com/pol3d/cardmail/pkg/mailer"
)

// Result is the outcome of a successful send.
type Result struct {
	// ID is the provider message ID; empty when the provider returned none.
	ID string
}

// providerError is implemented by sender errors that carry the provider's answer.
type providerError interface {
	error
	ProviderStatus() int
	Details() any
}

// Dispatcher hands a composed email to the provider, exactly once.
type Dispatcher struct {
	sender mailer.Sender
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher. A nil logger discards output.
func NewDispatcher(sender mailer.Sender, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = logger.NewNope()
	}
	return &Dispatcher{sender: sender, logger: log}
}

// Check reports missing provider configuration without contacting the provider.
func (d *Dispatcher) Check() error {
	if c, ok := d.sender.(mailer.Checker); ok {
		if err := c.Check(); err != nil {
			return configurationError(err)
		}
	}
	return nil
}

// Dispatch sends email and classifies any failure. There is no retry.
func (d *Dispatcher) Dispatch(ctx context.Context, email *mailer.Email) (Result, error) {
	id, err := d.sender.Send(ctx, email)
	if err == nil {
		d.logger.InfoContext(ctx, "card sent",
			slog.String("message_id", id),
			slog.String("recipient_domain", recipientDomain(email.To)),
		)
		return Result{ID: id}, nil
	}

	var perr providerError
	switch {
	case errors.Is(err, mailer.ErrNotConfigured), errors.Is(err, mailer.ErrNoSender):
		d.logger.ErrorContext(ctx, "email provider not configured", slog.String("error", err.Error()))
		return Result{}, configurationError(err)

	case errors.As(err, &perr):
		d.logger.WarnContext(ctx, "email provider rejected card",
			slog.Int("provider_status", perr.ProviderStatus()),
			slog.String("error", err.Error()),
			slog.String("recipient_domain", recipientDomain(email.To)),
		)
		return Result{}, NewError(KindDeliveryProviderError, ErrDeliveryProvider.Message,
			WithError(err),
			WithDetails(perr.Details()),
			WithProviderStatus(perr.ProviderStatus()),
		)

	default:
		d.logger.ErrorContext(ctx, "card delivery failed", slog.String("error", err.Error()))
		return Result{}, NewError(KindServerError, ErrServer.Message, WithError(err), WithDetails(err.Error()))
	}
}

func configurationError(err error) *Error {
	return NewError(KindConfigurationError, ErrConfiguration.Message, WithError(err), WithDetails(err.Error()))
}

// recipientDomain keeps addresses out of logs.
func recipientDomain(to []string) string {
	if len(to) == 0 {
		return ""
	}
	_, domain, _ := strings.Cut(to[0], "@")
	return domain
}
