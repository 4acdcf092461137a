package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pol3d/cardmail/internal"
	"github.com/pol3d/cardmail/pkg/logger"
)

// RequestIDHeader carries the request ID on responses.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

// DefaultRequestIDHeaders are checked in order for an upstream request ID.
// Netlify and the Lambda runtime each set their own.
var DefaultRequestIDHeaders = []string{
	RequestIDHeader,
	"X-Correlation-ID",
	"X-Nf-Request-Id",
	"Lambda-Runtime-Aws-Request-Id",
}

type requestIDKey struct{}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	Generator      func() string
	ResponseHeader string
	Headers        []string
}

// RequestIDOption configures RequestIDConfig.
type RequestIDOption func(*RequestIDConfig)

// WithRequestIDHeaders replaces the headers searched for an upstream ID.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *RequestIDConfig) { cfg.Headers = headers }
}

// WithRequestIDGenerator replaces uuid.NewString. Nil is ignored.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		if gen != nil {
			cfg.Generator = gen
		}
	}
}

// WithRequestIDResponseHeader renames the response header. Empty is ignored.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		if header != "" {
			cfg.ResponseHeader = header
		}
	}
}

// RequestID tags every request with an ID, reusing a trustworthy upstream
// one when present. The ID goes into the request context, where
// RequestIDExtractor picks it up for logs, and into the response header.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := RequestIDConfig{
		Generator:      uuid.NewString,
		ResponseHeader: RequestIDHeader,
		Headers:        DefaultRequestIDHeaders,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			id := upstreamRequestID(c, cfg.Headers)
			if id == "" {
				id = cfg.Generator()
			}

			c.Set(requestIDKey{}, id)
			c.SetHeader(cfg.ResponseHeader, id)
			return next(c)
		}
	}
}

func upstreamRequestID(c internal.Context, headers []string) string {
	for _, h := range headers {
		if v := c.Header(h); validRequestID(v) {
			return v
		}
	}
	return ""
}

// validRequestID accepts short printable ASCII, keeping headers and log
// lines free of control characters.
func validRequestID(v string) bool {
	if v == "" || len(v) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(v); i++ {
		if v[i] <= ' ' || v[i] > '~' {
			return false
		}
	}
	return true
}

// GetRequestID returns the request ID stored in ctx, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDExtractor adds "request_id" to log records made with a request
// context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := GetRequestID(ctx); id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}
