package resend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pol3d/cardmail/pkg/mailer"
)

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = fmt.Errorf("resend: %w: missing RESEND_API_KEY", mailer.ErrNotConfigured)

// APIError is a non-2xx answer from the Resend API.
type APIError struct {
	StatusCode int
	Name       string // Resend error name, e.g. "validation_error"
	Message    string // "message" field of a JSON error body
	Body       string // Raw response body
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("resend: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("resend: status %d", e.StatusCode)
}

// ProviderStatus returns the HTTP status Resend answered with.
func (e *APIError) ProviderStatus() int {
	return e.StatusCode
}

// Details describes the failure the way the provider reported it: the JSON
// message when there is one, otherwise the decoded JSON body, otherwise the
// body text, otherwise the HTTP status.
func (e *APIError) Details() any {
	if e.Message != "" {
		return e.Message
	}
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	var v any
	if json.Unmarshal([]byte(body), &v) == nil {
		return v
	}
	return body
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: string(body)}

	var parsed struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
	if len(bytes.TrimSpace(body)) > 0 && json.Unmarshal(body, &parsed) == nil {
		apiErr.Name = parsed.Name
		apiErr.Message = parsed.Message
	}

	return apiErr
}
