package metrics

import "time"

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncHTTPRequestsInFlight increments the in-flight request gauge
func (r *Registry) IncHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Inc()
}

// DecHTTPRequestsInFlight decrements the in-flight request gauge
func (r *Registry) DecHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Dec()
}

// RecordSimulation records one engine invocation
func (r *Registry) RecordSimulation(kind, status string, duration time.Duration) {
	r.SimulationsTotal.WithLabelValues(kind, status).Inc()
	r.SimulationDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordTrajectory records the length of a produced trajectory
func (r *Registry) RecordTrajectory(kind string, points int) {
	r.TrajectoryLength.WithLabelValues(kind).Observe(float64(points))
}

// RecordNetworkHealth updates the last-measured network health gauges
func (r *Registry) RecordNetworkHealth(h, hEff, s float64) {
	r.NetworkHealthH.Set(h)
	r.NetworkHealthHEff.Set(hEff)
	r.NetworkHealthEntropy.Set(s)
}

// RecordRateLimited counts a rate-limiter rejection
func (r *Registry) RecordRateLimited(kind string) {
	r.RateLimitedTotal.WithLabelValues(kind).Inc()
}

// RecordTimeout counts a wall-clock abort
func (r *Registry) RecordTimeout(kind string) {
	r.TimeoutsTotal.WithLabelValues(kind).Inc()
}

// RecordBoundsReject counts a bounds-validation refusal
func (r *Registry) RecordBoundsReject(kind string) {
	r.BoundsRejectsTotal.WithLabelValues(kind).Inc()
}
