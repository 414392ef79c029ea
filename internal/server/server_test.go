package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextlevelcleaning/cards/internal/notify"
	"github.com/nextlevelcleaning/cards/internal/server/ratelimit"
)

type stubMailer struct {
	calls int
}

func (m *stubMailer) Send(_ context.Context, _ *notify.EmailRequest) (*notify.EmailResult, error) {
	m.calls++
	return &notify.EmailResult{MessageID: "msg-1"}, nil
}

func writeSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.html":                          "<html>home</html>",
		"id/director/lauren-moore/index.html": "<html>card</html>",
		"data/lauren-moore.json":              `{"name":"Lauren Moore","role":"Director"}`,
		".netlify/functions/send-quote.js":    "secret",
		".env":                                "BREVO_API_KEY=x",
	}
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return dir
}

func newTestServer(t *testing.T, mailer notify.Mailer, rl *ratelimit.Config) *Server {
	t.Helper()
	if rl == nil {
		rl = &ratelimit.Config{Enabled: false}
	}
	s, err := New(Config{
		Port:      0,
		SiteDir:   writeSite(t),
		Mailer:    mailer,
		RateLimit: rl,
	})
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func do(s *Server, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNew_RequiresSiteDir(t *testing.T) {
	_, err := New(Config{SiteDir: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, &stubMailer{}, nil)

	rec := do(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestStaticSite(t *testing.T) {
	s := newTestServer(t, &stubMailer{}, nil)

	rec := do(s, http.MethodGet, "/id/director/lauren-moore/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "card")

	rec = do(s, http.MethodGet, "/data/lauren-moore.json", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lauren Moore")

	rec = do(s, http.MethodGet, "/data/nobody.json", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(s, http.MethodDelete, "/index.html", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStaticSite_HidesDotPaths(t *testing.T) {
	s := newTestServer(t, &stubMailer{}, nil)

	for _, p := range []string{"/.env", "/.netlify/functions/send-quote.js"} {
		rec := do(s, http.MethodGet, p, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, p)
		assert.NotContains(t, rec.Body.String(), "secret")
	}
}

func TestQuoteEndpoint(t *testing.T) {
	mailer := &stubMailer{}
	s := newTestServer(t, mailer, nil)
	body := `{"form_name":"quote-request","email":"a@b.co"}`

	for _, p := range []string{notify.NetlifyPath, notify.APIPath} {
		rec := do(s, http.MethodPost, p, body)
		require.Equal(t, http.StatusOK, rec.Code, p)
		var resp notify.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "msg-1", resp.MessageID)
	}
	assert.Equal(t, 2, mailer.calls)

	rec := do(s, http.MethodGet, notify.NetlifyPath, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, &stubMailer{}, nil)

	req := httptest.NewRequest(http.MethodOptions, notify.APIPath, nil)
	req.Header.Set("Origin", "https://nextlevelcleaningltd.co.uk")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t, &stubMailer{}, nil)

	rec := do(s, http.MethodGet, "/health", "")
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, id)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
}

func TestRateLimit_QuoteEndpoint(t *testing.T) {
	mailer := &stubMailer{}
	cfg := &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: ratelimit.QuotePath, Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
		},
	}
	s := newTestServer(t, mailer, cfg)
	body := `{"form_name":"quote-request","email":"a@b.co"}`

	rec := do(s, http.MethodPost, notify.APIPath, body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))

	rec = do(s, http.MethodPost, notify.APIPath, body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, 1, mailer.calls)

	rec = do(s, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := newTestServer(t, &stubMailer{}, nil)
	s.httpServer.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
