package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initEngineMetrics() {
	r.SimulationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "she_simulations_total",
			Help: "Total number of engine invocations",
		},
		[]string{"kind", "status"},
	)

	r.SimulationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "she_simulation_duration_seconds",
			Help:    "Engine invocation latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	r.TrajectoryLength = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "she_trajectory_length",
			Help:    "Number of points in produced trajectories",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
		[]string{"kind"},
	)

	r.NetworkHealthH = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "she_network_health_h",
			Help: "Total slack H of the most recently measured network",
		},
	)

	r.NetworkHealthHEff = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "she_network_health_h_eff",
			Help: "Effective slack HEff of the most recently measured network",
		},
	)

	r.NetworkHealthEntropy = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "she_network_health_entropy",
			Help: "Utilization dispersion S of the most recently measured network",
		},
	)
}

func (r *Registry) initGuardMetrics() {
	r.RateLimitedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "she_rate_limited_total",
			Help: "Calls rejected by the sliding-window rate limiter",
		},
		[]string{"kind"},
	)

	r.TimeoutsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "she_timeouts_total",
			Help: "Simulations aborted by the wall-clock budget",
		},
		[]string{"kind"},
	)

	r.BoundsRejectsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "she_bounds_rejects_total",
			Help: "Calls refused by parameter bounds validation",
		},
		[]string{"kind"},
	)
}
