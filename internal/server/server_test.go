package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/proofmap/proofmap/internal/model"
	"github.com/proofmap/proofmap/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() model.ServerConfig {
	cfg := model.DefaultConfig().Server
	cfg.RequestsPerSecond = 1000
	cfg.BurstSize = 1000
	return cfg
}

func newTestServer(t *testing.T, cfg model.ServerConfig) *httptest.Server {
	t.Helper()
	srv := New(pipeline.New(model.DefaultConfig()), cfg)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestServer_Analyze(t *testing.T) {
	ts := newTestServer(t, testConfig())

	body := `{"text": "Let $G$ be a finite group. Then $G$ is nontrivial."}`
	resp, err := http.Post(ts.URL+"/analyze", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	for _, key := range []string{"steps", "assumptions", "flags", "graph", "warnings"} {
		assert.Contains(t, decoded, key)
	}
	steps, ok := decoded["steps"].([]any)
	require.True(t, ok)
	assert.Len(t, steps, 2)
}

func TestServer_AnalyzeEmptyText(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp, err := http.Post(ts.URL+"/analyze", "application/json", strings.NewReader(`{"text": ""}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	assert.Equal(t, "proof text is empty", decoded["error"])
}

func TestServer_AnalyzeInvalidJSON(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp, err := http.Post(ts.URL+"/analyze", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_AnalyzeMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp, err := http.Get(ts.URL + "/analyze")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServer_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RequestsPerSecond = 0.001
	cfg.BurstSize = 1
	ts := newTestServer(t, cfg)

	body := `{"text": "Let $x$ be real."}`

	resp, err := http.Post(ts.URL+"/analyze", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/analyze", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestServer_Healthz(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_ShutdownOnContextCancel(t *testing.T) {
	cfg := testConfig()
	cfg.Addr = "127.0.0.1:0"
	srv := New(pipeline.New(model.DefaultConfig()), cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Expected clean shutdown, got %v", err)
	}
}

func TestLimiter_PerClientBuckets(t *testing.T) {
	l := NewLimiter(0.001, 1)

	if !l.Allow("10.0.0.1:1234") {
		t.Fatal("Expected first request allowed")
	}
	if l.Allow("10.0.0.1:5678") {
		t.Error("Expected same host (different port) to share one bucket")
	}
	if !l.Allow("10.0.0.2:1234") {
		t.Error("Expected a different host to get its own bucket")
	}
}

func TestClientKey(t *testing.T) {
	if got := clientKey("192.168.1.5:8080"); got != "192.168.1.5" {
		t.Errorf("Expected host only, got %q", got)
	}
	if got := clientKey("unparseable"); got != "unparseable" {
		t.Errorf("Expected raw fallback, got %q", got)
	}
}
