// Package metrics provides Prometheus metrics for the project viewer.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the viewer.
type Metrics struct {
	LoadsTotal        *prometheus.CounterVec
	UpstreamDuration  *prometheus.HistogramVec
	GuidelineRequests *prometheus.CounterVec
	HTTPRequestsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates and registers all metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		LoadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "viewer_loads_total",
				Help: "Total number of viewer page loads by outcome.",
			},
			[]string{"outcome"},
		),
		UpstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "viewer_upstream_duration_seconds",
				Help:    "ArkIDE metadata request duration by response class.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status"},
		),
		GuidelineRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "viewer_guideline_requests_total",
				Help: "Total guideline document requests by key and format.",
			},
			[]string{"key", "format"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "viewer_http_requests_total",
				Help: "Total HTTP requests by route and status code.",
			},
			[]string{"route", "code"},
		),
		registry: reg,
	}

	reg.MustRegister(m.LoadsTotal)
	reg.MustRegister(m.UpstreamDuration)
	reg.MustRegister(m.GuidelineRequests)
	reg.MustRegister(m.HTTPRequestsTotal)
	reg.MustRegister(collectors.NewGoCollector())

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordLoad increments the load counter for an outcome.
func (m *Metrics) RecordLoad(outcome string) {
	m.LoadsTotal.WithLabelValues(outcome).Inc()
}

// ObserveUpstream records the duration of a metadata request.
func (m *Metrics) ObserveUpstream(status string, seconds float64) {
	m.UpstreamDuration.WithLabelValues(status).Observe(seconds)
}

// RecordGuideline increments the guideline request counter.
func (m *Metrics) RecordGuideline(key, format string) {
	m.GuidelineRequests.WithLabelValues(key, format).Inc()
}

// RecordHTTP increments the HTTP request counter.
func (m *Metrics) RecordHTTP(route, code string) {
	m.HTTPRequestsTotal.WithLabelValues(route, code).Inc()
}
