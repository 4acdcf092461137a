package middlewares_test

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pol3d/cardmail/internal"
)

var _ internal.Context = (*testContext)(nil)

// testContext is a minimal internal.Context for exercising middleware in isolation.
type testContext struct {
	response http.ResponseWriter
	request  *http.Request
	written  bool
	logs     []string
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{
		response: w,
		request:  r,
	}
}

func (c *testContext) Request() *http.Request        { return c.request }
func (c *testContext) Response() http.ResponseWriter { return c.response }
func (c *testContext) Context() context.Context      { return c.request.Context() }
func (c *testContext) Header(name string) string     { return c.request.Header.Get(name) }
func (c *testContext) SetHeader(name, value string)  { c.response.Header().Set(name, value) }

func (c *testContext) ReadBody(limit int64) ([]byte, error) {
	return io.ReadAll(c.request.Body)
}

func (c *testContext) JSON(code int, v any) error {
	c.written = true
	c.response.WriteHeader(code)
	return nil
}

func (c *testContext) String(code int, s string) error {
	c.written = true
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *testContext) NoContent(code int) error {
	c.written = true
	c.response.WriteHeader(code)
	return nil
}

func (c *testContext) Written() bool                     { return c.written }
func (c *testContext) LogDebug(msg string, attrs ...any) { c.logs = append(c.logs, msg) }
func (c *testContext) LogWarn(msg string, attrs ...any)  { c.logs = append(c.logs, msg) }
func (c *testContext) LogError(msg string, attrs ...any) { c.logs = append(c.logs, msg) }

func (c *testContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *testContext) SetContext(ctx context.Context) {
	c.request = c.request.WithContext(ctx)
}

func (c *testContext) Deadline() (time.Time, bool)              { return c.request.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}                    { return c.request.Context().Done() }
func (c *testContext) Err() error                               { return c.request.Context().Err() }
func (c *testContext) Value(key any) any                        { return c.request.Context().Value(key) }
