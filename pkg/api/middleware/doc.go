// Package middleware provides HTTP middleware for the structural
// health API server: request IDs, structured request logging,
// Prometheus instrumentation and panic recovery. Each middleware is a
// standard func(http.Handler) http.Handler wrapper so they compose in
// any order.
package middleware
