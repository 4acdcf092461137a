package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pol3d/cardmail"
	"github.com/pol3d/cardmail/middlewares"
	"github.com/pol3d/cardmail/pkg/card"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		kind    card.Kind
		details any
	}{
		{
			name: "card error passes through",
			err:  fmt.Errorf("wrapped: %w", card.ErrInvalidRecipient),
			kind: card.KindInvalidRecipient,
		},
		{
			name:    "panic",
			err:     &middlewares.PanicError{Value: "boom"},
			kind:    card.KindServerError,
			details: "panic: boom",
		},
		{
			name:    "timeout",
			err:     &middlewares.TimeoutError{Duration: time.Second, Err: context.DeadlineExceeded},
			kind:    card.KindServerError,
			details: (&middlewares.TimeoutError{Duration: time.Second, Err: context.DeadlineExceeded}).Error(),
		},
		{
			name: "http 404",
			err:  cardmail.NewHTTPError(http.StatusNotFound, "Not found"),
			kind: card.KindNotFound,
		},
		{
			name: "http 405",
			err:  cardmail.NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed"),
			kind: card.KindMethodNotAllowed,
		},
		{
			name:    "http 413 with detail",
			err:     cardmail.NewHTTPError(http.StatusRequestEntityTooLarge, "too big", cardmail.WithDetail("limit 10")),
			kind:    card.KindPayloadTooLarge,
			details: "limit 10",
		},
		{
			name: "http 400",
			err:  cardmail.NewHTTPError(http.StatusBadRequest, "bad"),
			kind: card.KindInvalidRequestBody,
		},
		{
			name: "http teapot",
			err:  cardmail.NewHTTPError(http.StatusTeapot, "teapot"),
			kind: card.KindServerError,
		},
		{
			name:    "plain error",
			err:     errors.New("disk on fire"),
			kind:    card.KindServerError,
			details: "disk on fire",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ce := classify(tt.err)
			require.NotNil(t, ce)
			assert.Equal(t, tt.kind, ce.Kind)
			if tt.details != nil {
				assert.Equal(t, tt.details, ce.Details)
			}
		})
	}
}

func TestErrorHandler_Panic(t *testing.T) {
	t.Parallel()

	app := cardmail.New(
		cardmail.WithMiddleware(
			middlewares.CORS(middlewares.WithStaticHeaders()),
			middlewares.Recover(),
		),
		cardmail.WithErrorHandler(ErrorHandler),
		cardmail.WithHandlers(panicking{}),
	)

	req := httptest.NewRequest(http.MethodPost, "/panic", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Body.String(), `"kind":"server_error"`)
	assert.Contains(t, rec.Body.String(), `"ok":false`)
}

type panicking struct{}

func (panicking) Routes(r cardmail.Router) {
	r.POST("/panic", func(c cardmail.Context) error {
		panic("boom")
	})
}
