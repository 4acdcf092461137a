package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pol3d/cardmail"
	"github.com/pol3d/cardmail/middlewares"
	"github.com/pol3d/cardmail/pkg/card"
)

// ErrorResponse is the failure envelope shared by every error path.
type ErrorResponse struct {
	Details any    `json:"details,omitempty"`
	Kind    string `json:"kind"`
	Error   string `json:"error"`
	Status  int    `json:"status,omitempty"`
	OK      bool   `json:"ok"`
}

// ErrorHandler renders any handler error as an ErrorResponse.
// Use it with cardmail.WithErrorHandler.
func ErrorHandler(c cardmail.Context, err error) error {
	ce := classify(err)
	status := ce.StatusCode()

	attrs := []any{
		slog.String("kind", string(ce.Kind)),
		slog.Int("status", status),
		slog.String("path", c.Request().URL.Path),
	}
	switch {
	case status >= http.StatusInternalServerError:
		c.LogError("request failed", append(attrs, slog.Any("error", err))...)
	default:
		c.LogDebug("request rejected", append(attrs, slog.String("error", ce.Message))...)
	}

	return c.JSON(status, ErrorResponse{
		Kind:    string(ce.Kind),
		Error:   ce.Message,
		Details: ce.Details,
		Status:  ce.ProviderStatus,
	})
}

// NotFound routes unknown paths through the error handler.
func NotFound(c cardmail.Context) error {
	return card.ErrNotFound
}

// MethodNotAllowed routes unsupported verbs through the error handler.
func MethodNotAllowed(c cardmail.Context) error {
	return card.ErrMethodNotAllowed
}

// classify maps errors from every layer onto the card error kinds.
func classify(err error) *card.Error {
	if ce := asCardError(err); ce != nil {
		return ce
	}

	if pe, ok := middlewares.AsPanicError(err); ok {
		return card.NewError(card.KindServerError, card.ErrServer.Message, card.WithError(pe), card.WithDetails(pe.Error()))
	}
	if te, ok := middlewares.AsTimeoutError(err); ok {
		return card.NewError(card.KindServerError, card.ErrServer.Message, card.WithError(te), card.WithDetails(te.Error()))
	}

	if httpErr := cardmail.AsHTTPError(err); httpErr != nil {
		base := card.ErrServer
		switch httpErr.Code {
		case http.StatusNotFound:
			base = card.ErrNotFound
		case http.StatusMethodNotAllowed:
			base = card.ErrMethodNotAllowed
		case http.StatusRequestEntityTooLarge:
			base = card.ErrPayloadTooLarge
		case http.StatusBadRequest:
			base = card.ErrInvalidRequestBody
		}
		opts := []card.ErrorOption{card.WithError(httpErr)}
		if httpErr.Detail != "" {
			opts = append(opts, card.WithDetails(httpErr.Detail))
		}
		return card.NewError(base.Kind, base.Message, opts...)
	}

	return card.AsError(err)
}

// asCardError returns the *card.Error in the chain, or nil.
// Unlike card.AsError it does not classify foreign errors.
func asCardError(err error) *card.Error {
	var ce *card.Error
	if errors.As(err, &ce) {
		return ce
	}
	return nil
}
