package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/pol3d/cardmail/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 25 * time.Second

// Timeout returns middleware that attaches a deadline to the request context.
// Handlers run synchronously; when the deadline passes before anything was
// written, the handler's error is replaced by a *TimeoutError.
// The provider call observes the deadline through the request context.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()

			c.SetContext(ctx)
			err := next(c)

			if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Written() {
				c.LogWarn("request timeout", "timeout", timeout.String())
				return &TimeoutError{Duration: timeout, Err: err}
			}
			return err
		}
	}
}
