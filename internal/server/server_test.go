package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/menuboard/internal/config"
	"github.com/Lixing-Zhang/menuboard/internal/menuapi"
	"github.com/Lixing-Zhang/menuboard/internal/metrics"
	"github.com/Lixing-Zhang/menuboard/internal/render"
	"github.com/Lixing-Zhang/menuboard/internal/repository"
	"github.com/Lixing-Zhang/menuboard/internal/service"
	"github.com/Lixing-Zhang/menuboard/pkg/logger"
)

type stack struct {
	api     *httptest.Server
	display *httptest.Server
	metrics *metrics.Recorder
}

func newStack(t *testing.T) *stack {
	t.Helper()
	log := logger.New("error")

	svc := service.NewMenuService(repository.NewSampleMenuRepository())
	api := httptest.NewServer(NewSampleAPIRouter(svc, nil, log))
	t.Cleanup(api.Close)

	rec := metrics.NewWithRegistry(prometheus.NewRegistry())
	client, err := menuapi.NewClient(api.URL+"/api/v1", 5*time.Second,
		menuapi.WithObserver(rec), menuapi.WithLogger(log))
	require.NoError(t, err)

	renderer, err := render.New(render.Options{})
	require.NoError(t, err)

	display := httptest.NewServer(NewDisplayRouter(DisplayDeps{
		Upstream:       client,
		Renderer:       renderer,
		Metrics:        rec,
		Logger:         log,
		AllowedOrigins: []string{"*"},
		ReadyTimeout:   time.Second,
	}))
	t.Cleanup(display.Close)

	return &stack{api: api, display: display, metrics: rec}
}

func fetch(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestDisplay_AgainstSampleAPI(t *testing.T) {
	s := newStack(t)

	status, body := fetch(t, s.display.URL+"/")
	require.Equal(t, http.StatusOK, status)
	for _, want := range []string{"전체", "커피", "시즌메뉴", "아메리카노", "₩4,500", "프라페", "₩7,000"} {
		assert.Contains(t, body, want)
	}

	status, body = fetch(t, s.display.URL+"/fragments/menus?category_id=3")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "치즈케이크")
	assert.Contains(t, body, "품절")
	assert.NotContains(t, body, "아메리카노")

	status, body = fetch(t, s.display.URL+"/fragments/tabs?category_id=3")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `aria-selected="true" data-category-id="3"`)
}

func TestDisplay_OperationalEndpoints(t *testing.T) {
	s := newStack(t)

	status, _ := fetch(t, s.display.URL+"/health")
	assert.Equal(t, http.StatusOK, status)

	status, body := fetch(t, s.display.URL+"/ready")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"ready"`)

	status, body = fetch(t, s.display.URL+"/static/js/menuboard.js")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "AbortController")

	status, body = fetch(t, s.display.URL+"/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "menuboard_upstream_requests_total")
	assert.Contains(t, body, "menuboard_http_requests_total")
}

func TestDisplay_UpstreamDown(t *testing.T) {
	s := newStack(t)
	s.api.Close()

	status, body := fetch(t, s.display.URL+"/fragments/menus")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Contains(t, body, "메뉴를 불러오지 못했습니다.")

	status, _ = fetch(t, s.display.URL+"/ready")
	assert.Equal(t, http.StatusServiceUnavailable, status)

	status, body = fetch(t, s.display.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "다시 시도")
	assert.Contains(t, body, `data-empty-text="메뉴가 없습니다."><div class="menu-error"`, "grid itself shows the error state")
}

func TestSampleAPI_CORS(t *testing.T) {
	s := newStack(t)

	req, err := http.NewRequest(http.MethodGet, s.api.URL+"/api/v1/categories", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestSampleAPI_Metrics(t *testing.T) {
	svc := service.NewMenuService(repository.NewSampleMenuRepository())
	rec := metrics.NewWithRegistry(prometheus.NewRegistry())
	api := httptest.NewServer(NewSampleAPIRouter(svc, rec, logger.New("error")))
	defer api.Close()

	status, _ := fetch(t, api.URL+"/api/v1/menus/1")
	require.Equal(t, http.StatusOK, status)

	status, body := fetch(t, api.URL+"/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `menuboard_http_requests_total{route="/api/v1/menus/{menuId}",status="200"} 1`)
}

func TestSampleAPI_NoMetricsWithoutRecorder(t *testing.T) {
	s := newStack(t)

	status, _ := fetch(t, s.api.URL+"/metrics")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRun_GracefulShutdown(t *testing.T) {
	srv := NewHTTPServer("127.0.0.1:0", http.NotFoundHandler(), config.ServerConfig{ReadTimeout: 5, WriteTimeout: 5})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, srv, time.Second, logger.New("error")) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_ListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := NewHTTPServer(ln.Addr().String(), http.NotFoundHandler(), config.ServerConfig{})
	err = Run(context.Background(), srv, time.Second, logger.New("error"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server failed to start")
}
