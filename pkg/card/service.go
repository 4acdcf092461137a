package card

import (
	"context"
	"log/slog"

	"github.com/pol3d/cardmail/pkg/logger"
)

// Service runs the send pipeline: validate, compose, dispatch.
type Service struct {
	validator  *Validator
	composer   *Composer
	dispatcher *Dispatcher
	logger     *slog.Logger
}

// NewService wires the pipeline stages together.
func NewService(v *Validator, c *Composer, d *Dispatcher, log *slog.Logger) *Service {
	if log == nil {
		log = logger.NewNope()
	}
	return &Service{validator: v, composer: c, dispatcher: d, logger: log}
}

// Limits returns the validator limits, for callers sizing request bodies.
func (s *Service) Limits() Limits {
	return s.validator.Limits()
}

// Ready reports missing configuration without sending anything.
func (s *Service) Ready() error {
	if err := s.composer.Check(); err != nil {
		return err
	}
	return s.dispatcher.Check()
}

// Send validates raw, composes the email and sends it. Every returned error
// is an *Error. Invalid requests never reach the provider.
func (s *Service) Send(ctx context.Context, raw RawRequest) (Result, error) {
	req, err := s.validator.Validate(raw)
	if err != nil {
		s.logger.DebugContext(ctx, "card request rejected", slog.String("error", err.Error()))
		return Result{}, AsError(err)
	}

	if err := s.dispatcher.Check(); err != nil {
		s.logger.ErrorContext(ctx, "email provider not configured", slog.String("error", err.Error()))
		return Result{}, AsError(err)
	}

	email, err := s.composer.Compose(req)
	if err != nil {
		s.logger.ErrorContext(ctx, "card composition failed", slog.String("error", err.Error()))
		return Result{}, AsError(err)
	}

	res, err := s.dispatcher.Dispatch(ctx, email)
	if err != nil {
		return Result{}, AsError(err)
	}
	return res, nil
}
