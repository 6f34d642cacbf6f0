// Package metrics exposes Prometheus instrumentation for the serving
// layer: HTTP traffic, engine invocations and guard rejections. The
// engine's pure functions are never instrumented directly; the guard
// and the HTTP middleware record on their behalf.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Engine Metrics
	SimulationsTotal     *prometheus.CounterVec
	SimulationDuration   *prometheus.HistogramVec
	TrajectoryLength     *prometheus.HistogramVec
	NetworkHealthHEff    prometheus.Gauge
	NetworkHealthH       prometheus.Gauge
	NetworkHealthEntropy prometheus.Gauge

	// Guard Metrics
	RateLimitedTotal   *prometheus.CounterVec
	TimeoutsTotal      *prometheus.CounterVec
	BoundsRejectsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initHTTPMetrics()
	r.initEngineMetrics()
	r.initGuardMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
