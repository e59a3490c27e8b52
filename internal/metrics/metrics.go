package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "menuboard"

// Outcome labels for upstream calls.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Recorder is the set of collectors the display service reports to.
type Recorder struct {
	registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	renders          *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
}

// New creates a Recorder backed by its own registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.NewRegistry())
}

// NewWithRegistry registers the collectors on reg.
func NewWithRegistry(reg *prometheus.Registry) *Recorder {
	r := &Recorder{
		registry: reg,
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Requests made to the menu API, by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of menu API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Rendered views, by view and grid state.",
		}, []string{"view", "state"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route pattern and status code.",
		}, []string{"route", "status"}),
	}

	reg.MustRegister(
		r.upstreamRequests,
		r.upstreamDuration,
		r.renders,
		r.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// ObserveUpstream records one menu API call.
func (r *Recorder) ObserveUpstream(endpoint string, d time.Duration, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	r.upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	r.upstreamDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// IncRender counts a rendered view.
func (r *Recorder) IncRender(view, state string) {
	if r == nil {
		return
	}
	r.renders.WithLabelValues(view, state).Inc()
}

// IncHTTP counts a served HTTP request.
func (r *Recorder) IncHTTP(route string, status int) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// Handler returns an HTTP handler serving the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// UpstreamRequests exposes the upstream counter, mainly for tests.
func (r *Recorder) UpstreamRequests() *prometheus.CounterVec {
	return r.upstreamRequests
}

// Renders exposes the render counter, mainly for tests.
func (r *Recorder) Renders() *prometheus.CounterVec {
	return r.renders
}

// HTTPRequests exposes the HTTP request counter, mainly for tests.
func (r *Recorder) HTTPRequests() *prometheus.CounterVec {
	return r.httpRequests
}
