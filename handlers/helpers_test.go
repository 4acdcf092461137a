package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pol3d/cardmail"
	"github.com/pol3d/cardmail/handlers"
	"github.com/pol3d/cardmail/pkg/card"
	"github.com/pol3d/cardmail/pkg/logger"
	"github.com/pol3d/cardmail/pkg/mailer/resend"
)

// fakeResend records POST /emails calls and answers with a fixed response.
type fakeResend struct {
	mu     sync.Mutex
	calls  []map[string]any
	auth   []string
	status int
	body   string
}

func newFakeResend(t *testing.T, status int, body string) (*fakeResend, *httptest.Server) {
	t.Helper()

	f := &fakeResend{status: status, body: body}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var payload map[string]any
		_ = json.Unmarshal(raw, &payload)

		f.mu.Lock()
		f.calls = append(f.calls, payload)
		f.auth = append(f.auth, r.Header.Get("Authorization"))
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_, _ = io.WriteString(w, f.body)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeResend) Auth() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.auth...)
}

func (f *fakeResend) Calls() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.calls...)
}

type appConfig struct {
	apiKey   string
	from     string
	limits   card.Limits
	settings func(*card.Settings)
}

// newApp builds the full endpoint against a provider at baseURL.
func newApp(t *testing.T, baseURL string, cfg appConfig) *cardmail.App {
	t.Helper()

	sender, err := resend.New(resend.Config{APIKey: cfg.apiKey, BaseURL: baseURL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	settings := card.Settings{From: cfg.from, ReplyTo: "reply@example.com"}
	if cfg.settings != nil {
		cfg.settings(&settings)
	}
	composer, err := card.NewComposer(settings, nil)
	require.NoError(t, err)

	log := logger.NewNope()
	svc := card.NewService(card.NewValidator(cfg.limits), composer, card.NewDispatcher(sender, log), log)
	return handlers.NewApp(svc, log, 5*time.Second)
}

func defaultAppConfig() appConfig {
	return appConfig{apiKey: "re_test", from: "Kartki <cards@example.com>"}
}

func do(app http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Origin", "https://cards.example.com")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&out), rec.Body.String())
	return out
}

func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// validBase64 returns n characters of decodable base64 (n must be a multiple of 4).
func validBase64(n int) string {
	return strings.Repeat("QUJD", n/4)
}
