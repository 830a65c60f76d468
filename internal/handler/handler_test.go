package handler

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
	"go.uber.org/zap"

	"aging-dashboard/internal/assets"
	"aging-dashboard/internal/loader"
	"aging-dashboard/internal/metrics"
	"aging-dashboard/internal/model"
)

type failingFetcher struct{}

func (failingFetcher) Fetch(context.Context) (io.ReadCloser, error) {
	return nil, errors.New("connection refused")
}

type testServer struct {
	client  *fasthttp.Client
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T, fetcher loader.Fetcher) *testServer {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	h := New(loader.New(fetcher, zap.NewNop(), m), assets.Snapshot, zap.NewNop(), m, reg)

	ln := fasthttputil.NewInmemoryListener()
	go fasthttp.Serve(ln, h.Handle)
	t.Cleanup(func() { ln.Close() })

	return &testServer{
		client: &fasthttp.Client{
			Dial: func(string) (net.Conn, error) { return ln.Dial() },
		},
		metrics: m,
	}
}

func (s *testServer) do(t *testing.T, method, path string) *fasthttp.Response {
	t.Helper()
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.Header.SetMethod(method)
	req.SetRequestURI("http://dashboard" + path)

	resp := &fasthttp.Response{}
	require.NoError(t, s.client.Do(req, resp))
	return resp
}

func TestPageReady(t *testing.T) {
	s := newTestServer(t, loader.BytesFetcher(assets.Snapshot))
	resp := s.do(t, fasthttp.MethodGet, "/")

	assert.Equal(t, fasthttp.StatusOK, resp.StatusCode())
	assert.Equal(t, "text/html; charset=utf-8", string(resp.Header.ContentType()))
	assert.NotEmpty(t, string(resp.Header.Peek("X-Request-ID")))

	body := string(resp.Body())
	assert.Contains(t, body, "SENIOŘI 65+")
	assert.Equal(t, 4, strings.Count(body, "<svg"))

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Renders.WithLabelValues(model.OutcomeSuccess)))
}

func TestPageLoadFailureShowsErrorView(t *testing.T) {
	s := newTestServer(t, failingFetcher{})
	resp := s.do(t, fasthttp.MethodGet, "/")

	assert.Equal(t, fasthttp.StatusOK, resp.StatusCode())
	body := string(resp.Body())
	assert.Contains(t, body, "Chyba při načítání dat")
	assert.NotContains(t, body, "<svg")
}

func TestPageIncompleteSnapshot(t *testing.T) {
	s := newTestServer(t, loader.BytesFetcher(`{}`))
	resp := s.do(t, fasthttp.MethodGet, "/")

	assert.Equal(t, fasthttp.StatusInternalServerError, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "Chyba při načítání dat")
}

func TestPageEmptyCategories(t *testing.T) {
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(assets.Snapshot, &doc))
	health := doc["health_conditions"].(map[string]interface{})
	health["geriatric_patients"] = map[string]interface{}{}
	health["chronic_diseases"] = map[string]interface{}{}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	s := newTestServer(t, loader.BytesFetcher(raw))
	resp := s.do(t, fasthttp.MethodGet, "/")

	assert.Equal(t, fasthttp.StatusOK, resp.StatusCode())
	body := string(resp.Body())
	assert.Equal(t, 4, strings.Count(body, "<svg"))
	assert.Contains(t, body, "Geriatričtí pacienti dle rizika")
	assert.NotContains(t, body, "Chyba při načítání dat")
}

func TestDataJSON(t *testing.T) {
	s := newTestServer(t, failingFetcher{})
	resp := s.do(t, fasthttp.MethodGet, loader.DataPath)

	assert.Equal(t, fasthttp.StatusOK, resp.StatusCode())
	assert.Equal(t, "application/json", string(resp.Header.ContentType()))
	assert.Equal(t, assets.Snapshot, resp.Body())
}

func TestAPIView(t *testing.T) {
	s := newTestServer(t, loader.BytesFetcher(assets.Snapshot))
	resp := s.do(t, fasthttp.MethodGet, "/api/view")
	require.Equal(t, fasthttp.StatusOK, resp.StatusCode())

	var view model.View
	require.NoError(t, json.Unmarshal(resp.Body(), &view))
	assert.Len(t, view.Cards, 4)
	assert.Len(t, view.TargetGroups, 4)
	assert.Equal(t, "2.30M", view.Cards[0].Value)
}

func TestAPIViewUnavailable(t *testing.T) {
	s := newTestServer(t, failingFetcher{})
	resp := s.do(t, fasthttp.MethodGet, "/api/view")

	assert.Equal(t, fasthttp.StatusBadGateway, resp.StatusCode())
	var errResp model.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body(), &errResp))
	assert.Equal(t, fasthttp.StatusBadGateway, errResp.Status)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, failingFetcher{})
	resp := s.do(t, fasthttp.MethodGet, "/healthz")

	assert.Equal(t, fasthttp.StatusOK, resp.StatusCode())
	var health model.HealthResponse
	require.NoError(t, json.Unmarshal(resp.Body(), &health))
	assert.Equal(t, "ok", health.Status)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, loader.BytesFetcher(assets.Snapshot))
	s.do(t, fasthttp.MethodGet, "/")

	resp := s.do(t, fasthttp.MethodGet, "/metrics")
	assert.Equal(t, fasthttp.StatusOK, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), `aging_dashboard_loads_total{state="ready"} 1`)
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t, failingFetcher{})
	resp := s.do(t, fasthttp.MethodGet, "/nope")

	assert.Equal(t, fasthttp.StatusNotFound, resp.StatusCode())
	assert.NotEmpty(t, string(resp.Header.Peek("X-Request-ID")))
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, failingFetcher{})
	resp := s.do(t, fasthttp.MethodPost, "/")

	assert.Equal(t, fasthttp.StatusMethodNotAllowed, resp.StatusCode())
	var errResp model.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body(), &errResp))
	assert.Equal(t, "Method not allowed", errResp.Message)
}
