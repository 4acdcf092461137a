package internal

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Context is what handlers and middleware receive for one request.
// It is itself a context.Context backed by the request context, so it can be
// passed straight to services.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter

	// Context returns the current request context.
	Context() context.Context

	// SetContext replaces the request context, e.g. to attach a deadline.
	SetContext(ctx context.Context)

	// Set stores a value in the request context.
	Set(key, value any)

	// Header returns a request header.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// ReadBody reads the whole request body. A positive limit caps the body
	// size; exceeding it returns *http.MaxBytesError. A missing body reads
	// as nil.
	ReadBody(limit int64) ([]byte, error)

	JSON(code int, v any) error
	String(code int, s string) error
	NoContent(code int) error

	// Written reports whether a status line has been sent. Once it has, the
	// error handler leaves the response alone.
	Written() bool

	LogDebug(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)
}

type requestContext struct {
	request *http.Request
	writer  *ResponseWriter
	logger  *slog.Logger
}

// newContext wraps w unless it is already a *ResponseWriter, so nested
// middleware layers share one write state.
func newContext(w http.ResponseWriter, r *http.Request, logger *slog.Logger) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w)
	}
	return &requestContext{request: r, writer: rw, logger: logger}
}

func (c *requestContext) Request() *http.Request        { return c.request }
func (c *requestContext) Response() http.ResponseWriter { return c.writer }
func (c *requestContext) Context() context.Context      { return c.request.Context() }

func (c *requestContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *requestContext) Err() error                  { return c.request.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.request.Context().Value(key) }

func (c *requestContext) SetContext(ctx context.Context) {
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Set(key, value any) {
	c.SetContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.writer.Header().Set(name, value)
}

func (c *requestContext) ReadBody(limit int64) ([]byte, error) {
	body := c.request.Body
	if body == nil || body == http.NoBody {
		return nil, nil
	}
	if limit > 0 {
		body = http.MaxBytesReader(c.writer, body, limit)
	}
	defer body.Close()
	return io.ReadAll(body)
}

func (c *requestContext) JSON(code int, v any) error {
	return c.write(code, "application/json; charset=utf-8", func(w io.Writer) error {
		return json.NewEncoder(w).Encode(v)
	})
}

func (c *requestContext) String(code int, s string) error {
	return c.write(code, "text/plain; charset=utf-8", func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func (c *requestContext) NoContent(code int) error {
	c.writer.WriteHeader(code)
	return nil
}

func (c *requestContext) write(code int, contentType string, body func(io.Writer) error) error {
	c.writer.Header().Set("Content-Type", contentType)
	c.writer.WriteHeader(code)
	return body(c.writer)
}

func (c *requestContext) Written() bool {
	return c.writer.Written()
}

func (c *requestContext) LogDebug(msg string, attrs ...any) { c.log(slog.LevelDebug, msg, attrs) }
func (c *requestContext) LogWarn(msg string, attrs ...any)  { c.log(slog.LevelWarn, msg, attrs) }
func (c *requestContext) LogError(msg string, attrs ...any) { c.log(slog.LevelError, msg, attrs) }

func (c *requestContext) log(level slog.Level, msg string, attrs []any) {
	c.logger.Log(c.request.Context(), level, msg, attrs...)
}
