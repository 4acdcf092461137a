package resend

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/resend/resend-go/v3"

	"github.com/pol3d/cardmail/pkg/mailer"
)

// maxResponseBody caps how much of a provider answer is read.
const maxResponseBody = 1 << 20

// Sender implements mailer.Sender using the Resend API.
//
// Requests are built by the resend client (auth, content negotiation, user agent)
// and executed here so the provider status and raw error body reach the caller.
type Sender struct {
	client     *resend.Client
	httpClient *http.Client
	config     Config
}

// New creates a new Resend sender.
func New(cfg Config) (*Sender, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	client := resend.NewCustomClient(httpClient, strings.TrimSpace(cfg.APIKey))
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("resend: invalid base url %q: %w", cfg.BaseURL, err)
		}
		client.BaseURL = u
	}

	return &Sender{
		client:     client,
		httpClient: httpClient,
		config:     cfg,
	}, nil
}

// emailPayload is the POST /emails body. Attachment content travels as a
// base64 string rather than the SDK's byte array encoding.
type emailPayload struct {
	*resend.SendEmailRequest
	Attachments []attachment `json:"attachments,omitempty"`
}

type attachment struct {
	Filename    string `json:"filename"`
	Content     string `json:"content"`
	ContentType string `json:"content_type,omitempty"`
}

// Check implements mailer.Checker.
func (s *Sender) Check() error {
	if strings.TrimSpace(s.config.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Send implements mailer.Sender. It returns the Resend message ID.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (string, error) {
	if err := s.Check(); err != nil {
		return "", err
	}
	if err := email.Validate(); err != nil {
		return "", err
	}

	payload := emailPayload{
		SendEmailRequest: &resend.SendEmailRequest{
			From:    email.From,
			To:      email.To,
			Subject: email.Subject,
			Html:    email.HTML,
			Text:    email.Text,
			ReplyTo: email.ReplyTo,
			Headers: email.Headers,
		},
		Attachments: convertAttachments(email.Attachments),
	}
	if len(email.Tags) > 0 {
		payload.Tags = convertTags(email.Tags)
	}

	req, err := s.client.NewRequest(ctx, http.MethodPost, "emails", payload)
	if err != nil {
		return "", fmt.Errorf("resend: failed to build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("resend: failed to send email: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return "", fmt.Errorf("resend: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", newAPIError(resp.StatusCode, body)
	}

	// A success without a parseable id is still a success.
	var out resend.SendEmailResponse
	if len(bytes.TrimSpace(body)) > 0 && json.Unmarshal(body, &out) == nil {
		return out.Id, nil
	}
	return "", nil
}

func convertAttachments(attachments []mailer.Attachment) []attachment {
	if len(attachments) == 0 {
		return nil
	}
	result := make([]attachment, len(attachments))
	for i, a := range attachments {
		result[i] = attachment{
			Filename:    a.Filename,
			Content:     base64.StdEncoding.EncodeToString(a.Content),
			ContentType: a.ContentType,
		}
	}
	return result
}

func convertTags(tags mailer.Tags) []resend.Tag {
	result := make([]resend.Tag, 0, len(tags))
	for name, value := range tags {
		result = append(result, resend.Tag{
			Name:  name,
			Value: tagValue(value),
		})
	}
	return result
}

// tagValue converts any value to a string for Resend's tag API.
// Presence-only tags (struct{}{}) become "true".
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
