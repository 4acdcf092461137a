package card

import (
	"errors"
	"net/http"
)

// Kind classifies a failure for clients. The string value is the JSON "kind".
type Kind string

const (
	KindMethodNotAllowed      Kind = "method_not_allowed"
	KindInvalidRequestBody    Kind = "invalid_request_body"
	KindInvalidRecipient      Kind = "invalid_recipient"
	KindInvalidAttachment     Kind = "invalid_attachment"
	KindUnsupportedMediaType  Kind = "unsupported_media_type"
	KindPayloadTooLarge       Kind = "payload_too_large"
	KindConfigurationError    Kind = "configuration_error"
	KindDeliveryProviderError Kind = "delivery_provider_error"
	KindServerError           Kind = "server_error"
	KindNotFound              Kind = "not_found"
)

// StatusCode maps the kind to its HTTP status.
func (k Kind) StatusCode() int {
	switch k {
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindInvalidRequestBody, KindInvalidRecipient, KindInvalidAttachment:
		return http.StatusBadRequest
	case KindUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindDeliveryProviderError:
		return http.StatusBadGateway
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure of the send pipeline.
type Error struct {
	// Err is the underlying error (for logging, not exposed to clients).
	Err error

	// Details is optional extra information safe to show to clients.
	Details any

	Kind    Kind
	Message string

	// ProviderStatus is the provider's HTTP status for delivery errors.
	ProviderStatus int
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so sentinel values
// below match any error of their kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func (e *Error) StatusCode() int {
	return e.Kind.StatusCode()
}

// ErrorOption configures an Error.
type ErrorOption func(*Error)

// WithDetails attaches client-visible details.
func WithDetails(details any) ErrorOption {
	return func(e *Error) {
		e.Details = details
	}
}

// WithError attaches the underlying cause.
func WithError(err error) ErrorOption {
	return func(e *Error) {
		e.Err = err
	}
}

// WithProviderStatus records the provider's HTTP status.
func WithProviderStatus(status int) ErrorOption {
	return func(e *Error) {
		e.ProviderStatus = status
	}
}

// NewError creates an Error of the given kind.
func NewError(kind Kind, message string, opts ...ErrorOption) *Error {
	e := &Error{Kind: kind, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sentinel errors, one per kind. Compare with errors.Is.
var (
	ErrMethodNotAllowed     = NewError(KindMethodNotAllowed, "Method not allowed")
	ErrInvalidRequestBody   = NewError(KindInvalidRequestBody, "Invalid JSON body")
	ErrInvalidRecipient     = NewError(KindInvalidRecipient, "Invalid recipient email")
	ErrInvalidAttachment    = NewError(KindInvalidAttachment, "Missing attachment base64")
	ErrUnsupportedMediaType = NewError(KindUnsupportedMediaType, "Unsupported attachment type")
	ErrPayloadTooLarge      = NewError(KindPayloadTooLarge, "Attachment is too large")
	ErrConfiguration        = NewError(KindConfigurationError, "Server is not configured")
	ErrDeliveryProvider     = NewError(KindDeliveryProviderError, "Resend API error")
	ErrServer               = NewError(KindServerError, "Server error")
	ErrNotFound             = NewError(KindNotFound, "Not found")
)

// AsError returns err as an *Error, classifying anything else as a server error.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	return NewError(KindServerError, ErrServer.Message, WithError(err), WithDetails(err.Error()))
}
