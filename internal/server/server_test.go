package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendpulse/internal/config"
	"trendpulse/internal/domain/trend"
)

type stubService struct {
	dataset trend.Dataset
}

func (s stubService) Trends(context.Context) trend.Dataset { return s.dataset }

func (s stubService) Filtered(_ context.Context, w trend.Window) trend.Dataset {
	return trend.Filter(s.dataset, w, time.Now())
}

func (s stubService) IsValidKey(_ context.Context, key string) bool { return key == "secret" }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.ServerConfig{
		CorsOrigins:    []string{"*"},
		RequestTimeout: 5 * time.Second,
	}
	svc := stubService{dataset: trend.EmptyDataset(time.Now(), "")}
	srv := NewServer(cfg, "owner@example.com", svc, zerolog.Nop())

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string, header http.Header) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestRoutes(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts, "/api/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)

	resp, _ = get(t, ts, "/api/trends", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = get(t, ts, "/api/trends", http.Header{"X-Api-Key": {"secret"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"generations"`)

	resp, body = get(t, ts, "/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Trend Pulse")

	resp, _ = get(t, ts, "/api/docs/openapi.json", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = get(t, ts, "/api/docs", nil)
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, "/api/docs/index.html", resp.Header.Get("Location"))

	resp, body = get(t, ts, "/api/docs/index.html", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "swagger-ui")
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/trends", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://dashboard.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	req.Header.Set("Access-Control-Request-Headers", "X-API-Key")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
