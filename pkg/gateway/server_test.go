package gateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvell/portico/pkg/accessgate"
	"github.com/arvell/portico/pkg/dispatch"
	"github.com/arvell/portico/pkg/handlers"
	"github.com/arvell/portico/pkg/portfolio"
	"github.com/arvell/portico/pkg/statuscache"
	"github.com/arvell/portico/pkg/toolregistry"
)

type testGateway struct {
	server   *Server
	handler  http.Handler
	reflinks *accessgate.MemoryReflinkService
	cache    *statuscache.Cache
}

func newTestGateway(t *testing.T, secret string) *testGateway {
	t.Helper()

	logger := zerolog.Nop()

	registry, err := toolregistry.NewWithDefaults(logger)
	require.NoError(t, err)

	reflinks := accessgate.NewMemoryReflinkService()
	gate := accessgate.NewGate(reflinks, logger)

	table, err := handlers.Table(handlers.Deps{
		Portfolio: portfolio.SeedStore(),
		Usage:     reflinks,
		Logger:    logger,
	})
	require.NoError(t, err)

	dispatcher, err := dispatch.New(dispatch.Config{
		Registry:  registry,
		Handlers:  table,
		Validator: gate,
		Logger:    logger,
	})
	require.NoError(t, err)

	cache := statuscache.New(time.Hour, logger)

	server, err := NewServer(Config{
		Host:         "127.0.0.1",
		Port:         8420,
		SharedSecret: secret,
		ExecTimeout:  5 * time.Second,
		Registry:     registry,
		Dispatcher:   dispatcher,
		StatusCache:  cache,
		Logger:       logger,
	})
	require.NoError(t, err)

	return &testGateway{
		server:   server,
		handler:  server.Handler(),
		reflinks: reflinks,
		cache:    cache,
	}
}

func (g *testGateway) execute(t *testing.T, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, dispatch.ToolResult) {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(http.MethodPost, "/api/tools/execute", &buf)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	g.handler.ServeHTTP(rec, req)

	var result dispatch.ToolResult
	if strings.Contains(rec.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(rec.Body.Bytes(), &result)
	}
	return rec, result
}

func TestExecute_Success(t *testing.T) {
	g := newTestGateway(t, "")

	rec, result := g.execute(t, ExecuteRequest{
		ToolName:   "load_profile",
		Parameters: map[string]interface{}{},
		SessionID:  "session-1",
	}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, result.Success)
	assert.Equal(t, "session-1", result.Metadata.SessionID)
	assert.Equal(t, "server", result.Metadata.Source)
}

func TestExecute_MalformedBody(t *testing.T) {
	g := newTestGateway(t, "")

	rec, result := g.execute(t, `{"toolName": `, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, result.Success)
	require.NotNil(t, result.Error)
	assert.Equal(t, dispatch.CodeValidation, result.Error.Code)
}

func TestExecute_UnknownTool(t *testing.T) {
	g := newTestGateway(t, "")

	rec, result := g.execute(t, ExecuteRequest{
		ToolName:   "no_such_tool",
		Parameters: map[string]interface{}{},
	}, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, result.Error)
	assert.Equal(t, dispatch.CodeNotFound, result.Error.Code)
}

func TestExecute_ClientToolMisrouted(t *testing.T) {
	g := newTestGateway(t, "")

	rec, result := g.execute(t, ExecuteRequest{
		ToolName:   "navigate_to_page",
		Parameters: map[string]interface{}{"path": "/projects"},
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, result.Error)
	assert.Equal(t, dispatch.CodeMisrouted, result.Error.Code)
}

func TestExecute_PremiumToolWithoutReflink(t *testing.T) {
	g := newTestGateway(t, "")

	rec, result := g.execute(t, ExecuteRequest{
		ToolName:   "process_job_spec",
		Parameters: map[string]interface{}{"text": "Need 5 years of Go."},
	}, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, result.Error)
	assert.Equal(t, dispatch.CodeUnauthorized, result.Error.Code)
	assert.Contains(t, result.Error.Message, "premium")
}

func TestExecute_PremiumToolWithReflink(t *testing.T) {
	g := newTestGateway(t, "")
	g.reflinks.Add(accessgate.Reflink{
		ID:          "rl-1",
		Code:        "ref_recruiter1",
		AccessLevel: accessgate.AccessPremium,
		TokenBudget: 10000,
	})

	rec, result := g.execute(t, ExecuteRequest{
		ToolName:   "process_job_spec",
		Parameters: map[string]interface{}{"text": "Need 5 years of Go and React."},
		ReflinkID:  "ref_recruiter1",
	}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, result.Success)
	assert.Equal(t, accessgate.AccessPremium, result.Metadata.AccessLevel)
	require.NotNil(t, result.Metadata.CostTracking)
	assert.Positive(t, result.Metadata.CostTracking.TokensRemaining)
}

func TestExecute_SharedSecret(t *testing.T) {
	g := newTestGateway(t, "hunter2")

	body := ExecuteRequest{ToolName: "load_profile", Parameters: map[string]interface{}{}}

	rec, _ := g.execute(t, body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = g.execute(t, body, map[string]string{"X-Portico-Secret": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, result := g.execute(t, body, map[string]string{"X-Portico-Secret": "hunter2"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, result.Success)
}

func TestExecute_MethodNotAllowed(t *testing.T) {
	g := newTestGateway(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/tools/execute", nil)
	rec := httptest.NewRecorder()
	g.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestExecute_MarksActivity(t *testing.T) {
	g := newTestGateway(t, "")

	require.False(t, g.cache.RecentlyActive())
	g.execute(t, ExecuteRequest{ToolName: "load_profile", Parameters: map[string]interface{}{}}, nil)
	assert.True(t, g.cache.RecentlyActive())
}

func TestCatalog(t *testing.T) {
	g := newTestGateway(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/tools", nil)
	rec := httptest.NewRecorder()
	g.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Tools []toolregistry.FunctionSpec `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.NotEmpty(t, payload.Tools)

	names := map[string]bool{}
	for _, spec := range payload.Tools {
		assert.Equal(t, "function", spec.Type)
		names[spec.Name] = true
	}
	assert.True(t, names["load_profile"])
	assert.True(t, names["navigate_to_page"])
}

func TestProviderStatus(t *testing.T) {
	g := newTestGateway(t, "")
	g.cache.Set("openai", statuscache.ProviderStatus{Available: true, LatencyMS: 80})

	rec := httptest.NewRecorder()
	g.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/providers/status?provider=openai", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Provider string                      `json:"provider"`
		Status   statuscache.ProviderStatus  `json:"status"`
		Stale    bool                        `json:"stale"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "openai", payload.Provider)
	assert.True(t, payload.Status.Available)
	assert.False(t, payload.Stale)
}

func TestProviderStatus_StaleFallback(t *testing.T) {
	g := newTestGateway(t, "")
	g.cache.Set("elevenlabs", statuscache.ProviderStatus{Available: true, LatencyMS: 200})
	g.cache.ForceRefresh()

	rec := httptest.NewRecorder()
	g.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/providers/status?provider=elevenlabs", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Stale  bool                       `json:"stale"`
		Status statuscache.ProviderStatus `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.True(t, payload.Stale)
	assert.Equal(t, int64(200), payload.Status.LatencyMS)
}

func TestProviderStatus_Unknown(t *testing.T) {
	g := newTestGateway(t, "")

	rec := httptest.NewRecorder()
	g.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/providers/status?provider=nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProviderStatus_StatsWithoutProvider(t *testing.T) {
	g := newTestGateway(t, "")
	g.cache.Set("openai", statuscache.ProviderStatus{Available: true})
	g.cache.Get("openai")

	rec := httptest.NewRecorder()
	g.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/providers/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var stats statuscache.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, 1, stats.Entries)
}

func TestHealthz(t *testing.T) {
	g := newTestGateway(t, "")

	rec := httptest.NewRecorder()
	g.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code dispatch.Code
		want int
	}{
		{dispatch.CodeValidation, http.StatusBadRequest},
		{dispatch.CodeMisrouted, http.StatusBadRequest},
		{dispatch.CodeNotFound, http.StatusNotFound},
		{dispatch.CodeUnauthorized, http.StatusForbidden},
		{dispatch.CodeHandler, http.StatusInternalServerError},
		{dispatch.CodeTimeout, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		result := dispatch.ToolResult{Success: false, Error: &dispatch.Error{Code: tt.code}}
		assert.Equal(t, tt.want, statusFor(result), string(tt.code))
	}

	assert.Equal(t, http.StatusOK, statusFor(dispatch.ToolResult{Success: true}))
}

func TestNewServer_Validation(t *testing.T) {
	_, err := NewServer(Config{})
	assert.Error(t, err)

	_, err = NewServer(Config{Port: 8420})
	assert.Error(t, err)
}
