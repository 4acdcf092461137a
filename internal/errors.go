package internal

import (
	"errors"
	"net/http"
)

// HTTPError is an error with a status code. Handlers return it to choose
// the status; the ErrorHandler decides what the body looks like.
type HTTPError struct {
	// Err is the cause, kept for logs.
	Err error

	Message string

	// Detail is optional client-visible context.
	Detail string

	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates an HTTPError. An empty message becomes the status text.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	e := &HTTPError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithDetail(detail string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Detail = detail
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// IsHTTPError reports whether err wraps an HTTPError.
func IsHTTPError(err error) bool {
	return AsHTTPError(err) != nil
}

// AsHTTPError returns the HTTPError in err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// statusOf is the status used when no ErrorHandler is configured.
func statusOf(err error) int {
	if httpErr := AsHTTPError(err); httpErr != nil && httpErr.Code >= 400 {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}
