package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-tailor/internal/analysis"
	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/server/ratelimit"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pythonJob = "We need Python and React developers with 3+ years experience"

func newTestServer(t *testing.T, mutate ...func(*Config)) *Server {
	t.Helper()
	cfg := Config{
		Tokenizer: analysis.StrategyWhitespace,
		RateLimit: &ratelimit.Config{Enabled: false},
	}
	for _, m := range mutate {
		m(&cfg)
	}
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func do(t *testing.T, s *Server, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func tailorBody(t *testing.T, extra map[string]any) map[string]any {
	t.Helper()
	resume, err := json.Marshal(types.ExampleResume())
	require.NoError(t, err)
	body := map[string]any{
		"resume":   json.RawMessage(resume),
		"job_text": pythonJob,
	}
	for k, v := range extra {
		body[k] = v
	}
	return body
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["error"]
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, false, resp["auth"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAnalyzeEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/v1/analyze", AnalyzeRequest{JobText: pythonJob})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var signals types.JobSignals
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signals))
	assert.Contains(t, signals.Skills, "python")
	assert.Contains(t, signals.Skills, "react")
	assert.Contains(t, signals.Experience, "3")

	do(t, s, http.MethodPost, "/v1/analyze", AnalyzeRequest{JobText: pythonJob})
	assert.Equal(t, 1, s.extractor.Len(), "repeated text is served from the cache")
}

func TestAnalyzeEndpoint_BadRequests(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/v1/analyze", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation error: job_text - is required", decodeError(t, w))

	w = do(t, s, http.MethodPost, "/v1/analyze", "{ invalid json }")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "invalid JSON")

	w = do(t, s, http.MethodGet, "/v1/analyze", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestAnalyzeEndpoint_BodyTooLarge(t *testing.T) {
	s := newTestServer(t, func(c *Config) { c.MaxBodyBytes = 16 })

	w := do(t, s, http.MethodPost, "/v1/analyze", AnalyzeRequest{JobText: strings.Repeat("python ", 10)})

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestTailorEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/v1/tailor", tailorBody(t, nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp TailorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	_, err := uuid.Parse(resp.RunID)
	assert.NoError(t, err)
	assert.Equal(t, "markdown", resp.Format)
	assert.Equal(t, "classic", resp.Theme)
	assert.NotEmpty(t, resp.Rendered)
	require.NotNil(t, resp.Report)
	assert.Contains(t, resp.Report.Signals.Skills, "python")
	require.NotNil(t, resp.Resume)
	assert.Equal(t, resp.Report.Signals, resp.Resume.JobAnalysis)
	assert.NotNil(t, resp.Report.Education)
}

func TestTailorEndpoint_StyleAndTheme(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/v1/tailor", tailorBody(t, map[string]any{"style": "rules", "format": "html"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp TailorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "technical", resp.Theme)
	assert.Contains(t, resp.Rendered, "<html")

	w = do(t, s, http.MethodPost, "/v1/tailor", tailorBody(t, map[string]any{"theme": "Research", "format": "latex"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "research", resp.Theme)
	assert.Contains(t, resp.Rendered, `\begin{document}`)
}

func TestTailorEndpoint_MultiPageSkipsOptimization(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/v1/tailor", tailorBody(t, map[string]any{"page_mode": "multi-page"}))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp TailorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Report.Optimization)
}

func TestTailorEndpoint_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		body   any
		status int
		field  string
	}{
		{name: "unknown format", body: tailorBody(t, map[string]any{"format": "pdf"}), status: http.StatusBadRequest, field: "format"},
		{name: "unknown page mode", body: tailorBody(t, map[string]any{"page_mode": "two-page"}), status: http.StatusBadRequest, field: "page_mode"},
		{name: "llm style", body: tailorBody(t, map[string]any{"style": "llm"}), status: http.StatusBadRequest, field: "style"},
		{name: "unknown theme", body: tailorBody(t, map[string]any{"theme": "neon"}), status: http.StatusBadRequest, field: "theme"},
		{name: "missing resume", body: map[string]any{"job_text": pythonJob}, status: http.StatusBadRequest, field: "resume"},
		{name: "null resume", body: `{"resume": null, "job_text": "python"}`, status: http.StatusBadRequest, field: "resume"},
		{name: "missing job text", body: tailorBody(t, map[string]any{"job_text": ""}), status: http.StatusBadRequest, field: "job_text"},
		{name: "schema violation", body: map[string]any{"resume": map[string]any{"work": "nope"}, "job_text": pythonJob}, status: http.StatusUnprocessableEntity, field: "schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/v1/tailor", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Contains(t, decodeError(t, w), tt.field)
		})
	}
}

func TestTailorStreamEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/v1/tailor/stream", tailorBody(t, nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "event: step")
	assert.Contains(t, body, `"step":"analyze"`)
	assert.Contains(t, body, "event: result")
	assert.Less(t, strings.Index(body, "event: step"), strings.Index(body, "event: result"))
}

func TestAuth_RequiredWhenConfigured(t *testing.T) {
	jwtCfg := &config.JWTConfig{Secret: testSecret, ExpirationHours: 1}
	s := newTestServer(t, func(c *Config) { c.JWT = jwtCfg })

	w := do(t, s, http.MethodPost, "/v1/analyze", AnalyzeRequest{JobText: pythonJob})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code, "health stays public")

	token, err := NewJWTService(jwtCfg).GenerateToken(uuid.New())
	require.NoError(t, err)
	w = do(t, s, http.MethodPost, "/v1/analyze", AnalyzeRequest{JobText: pythonJob}, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(c *Config) {
		c.RateLimit = &ratelimit.Config{
			Enabled:       true,
			DefaultLimit:  100,
			DefaultWindow: time.Minute,
			EndpointConfigs: []ratelimit.EndpointConfig{
				{Path: "/v1/analyze", Method: "POST", Limit: 1, Window: time.Minute, Burst: 1},
			},
		}
	})

	w := do(t, s, http.MethodPost, "/v1/analyze", AnalyzeRequest{JobText: pythonJob})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = do(t, s, http.MethodPost, "/v1/analyze", AnalyzeRequest{JobText: pythonJob})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")

	w = do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))

	w = do(t, s, http.MethodOptions, "/v1/tailor", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, w.Body.Len(), "OPTIONS response should have empty body")
}

func TestCORSMiddleware_AllowedOrigins(t *testing.T) {
	s := newTestServer(t, func(c *Config) { c.AllowedOrigins = []string{"https://app.example"} })

	w := do(t, s, http.MethodGet, "/health", nil, "Origin", "https://app.example")
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(t, s, http.MethodGet, "/health", nil, "Origin", "https://evil.example")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID_Propagated(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/health", nil, "X-Request-ID", "abc-123")

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestSSEWriter(t *testing.T) {
	w := httptest.NewRecorder()

	sse, err := NewSSEWriter(w)
	require.NoError(t, err)
	require.NoError(t, sse.WriteEvent("step", map[string]string{"step": "rank"}))
	sse.WriteError("boom")

	assert.Equal(t, "event: step\ndata: {\"step\":\"rank\"}\n\nevent: error\ndata: {\"error\":\"boom\"}\n\n", w.Body.String())
}

func TestConfigFromEnv(t *testing.T) {
	cfg := ConfigFromEnv(&config.ServerConfig{Port: 9000, AllowedOrigins: []string{"*"}, CacheSize: 4})

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 4, cfg.CacheSize)
	assert.Nil(t, cfg.JWT)
}
