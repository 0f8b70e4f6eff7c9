// ABOUTME: Prometheus collectors for HTTP traffic and sizing activity
// ABOUTME: Nil-safe recorders so callers work with metrics disabled

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "graph_sizing"

// Outcome label values.
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeConfigError     = "configuration_error"
	OutcomeError           = "error"
)

// Metrics holds every collector the service exports.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests         *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	SizingCalculations   *prometheus.CounterVec
	Forecasts            *prometheus.CounterVec
	ForecastScalingYears *prometheus.CounterVec
	GraphStatsCollection *prometheus.CounterVec
}

// New creates the collectors and registers them, along with the Go runtime
// and process collectors, on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by method, route, and status code",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by method and route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		SizingCalculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sizing_calculations_total",
				Help:      "Sizing calculations by outcome",
			},
			[]string{"outcome"},
		),
		Forecasts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "forecasts_total",
				Help:      "Completed forecasts by growth model",
			},
			[]string{"growth_model"},
		),
		ForecastScalingYears: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "forecast_scaling_years_total",
				Help:      "Projected years flagged as needing scaling, by growth model",
			},
			[]string{"growth_model"},
		),
		GraphStatsCollection: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "graph_stats_collections_total",
				Help:      "Graph statistics reads by outcome",
			},
			[]string{"outcome"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.SizingCalculations,
		m.Forecasts,
		m.ForecastScalingYears,
		m.GraphStatsCollection,
	)
	return m
}

// Registry exposes the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// RecordSizing counts a sizing calculation.
func (m *Metrics) RecordSizing(outcome string) {
	if m == nil {
		return
	}
	m.SizingCalculations.WithLabelValues(outcome).Inc()
}

// RecordForecast counts a forecast and the years it flagged for scaling.
func (m *Metrics) RecordForecast(growthModel string, scalingYears int) {
	if m == nil {
		return
	}
	m.Forecasts.WithLabelValues(growthModel).Inc()
	if scalingYears > 0 {
		m.ForecastScalingYears.WithLabelValues(growthModel).Add(float64(scalingYears))
	}
}

// RecordGraphStats counts a statistics read.
func (m *Metrics) RecordGraphStats(outcome string) {
	if m == nil {
		return
	}
	m.GraphStatsCollection.WithLabelValues(outcome).Inc()
}
