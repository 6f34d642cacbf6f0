// Package api exposes the structural health engine over HTTP. Every
// mutating endpoint funnels through the guard, so bounds, per-caller
// rate limits and the wall-clock budget apply uniformly no matter how
// a request arrives.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/svaldes/structhealth/pkg/api/middleware"
	"github.com/svaldes/structhealth/pkg/chessmetrics"
	"github.com/svaldes/structhealth/pkg/guard"
	"github.com/svaldes/structhealth/pkg/logging"
	"github.com/svaldes/structhealth/pkg/metrics"
	"github.com/svaldes/structhealth/pkg/scenario"
)

// Server represents the HTTP API server
type Server struct {
	guard      *guard.Guard
	metrics    *metrics.Registry
	logger     logging.Logger
	thresholds scenario.Thresholds
	startTime  time.Time
	version    string
	config     ServerConfig

	httpServer *http.Server
}

// NewServer creates a new API server around an already constructed
// guard. The guard's lifecycle stays with the caller.
func NewServer(g *guard.Guard, cfg ServerConfig, reg *metrics.Registry, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Server{
		guard:      g,
		metrics:    reg,
		logger:     logger,
		thresholds: cfg.Thresholds,
		startTime:  time.Now(),
		version:    "1.0.0",
		config:     cfg,
	}
}

// Handler builds the full middleware-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health and metrics
	mux.HandleFunc("/health", s.handleHealth)
	if s.metrics != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.GetPrometheusRegistry(), promhttp.HandlerOpts{}))
	}

	// Engine endpoints
	mux.HandleFunc("/network", s.handleNetwork)
	mux.HandleFunc("/game", s.handleGame)
	mux.HandleFunc("/scenarios/compare", s.handleCompare)
	mux.HandleFunc("/classify", s.handleClassify)

	var handler http.Handler = mux
	handler = middleware.Metrics(s.metricsRecorder())(handler)
	handler = middleware.Logging(s.logger)(handler)
	handler = middleware.RequestID()(handler)
	handler = middleware.PanicRecovery(s.logger)(handler)
	return handler
}

// metricsRecorder adapts the registry to the middleware interface,
// keeping the typed-nil pitfall out of the handler chain.
func (s *Server) metricsRecorder() middleware.MetricsRecorder {
	if s.metrics == nil {
		return nil
	}
	return s.metrics
}

// Start starts the HTTP server and blocks until it exits.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.logger.Info("structural health API server starting",
		logging.String("addr", addr), logging.String("version", s.version))

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(s.config.ReadTimeout),
		WriteTimeout: time.Duration(s.config.WriteTimeout),
		IdleTimeout:  time.Duration(s.config.IdleTimeout),
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).String(),
	}
	s.respondJSON(w, http.StatusOK, response)
}

// Helper methods

// callerID identifies the caller for rate limiting. The remote IP is
// the key; the port churns per connection and would defeat the limit.
func callerID(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}
	s.respondJSON(w, status, response)
}

// respondEngineError maps guard and engine errors to HTTP statuses.
// Rate-limit rejections carry a Retry-After hint.
func (s *Server) respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, guard.ErrRateLimitExceeded):
		wait := s.guard.RetryAfter(callerID(r))
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		s.respondError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, guard.ErrTimeoutExceeded):
		s.respondError(w, http.StatusGatewayTimeout, err.Error())
	default:
		s.respondError(w, http.StatusBadRequest, err.Error())
	}
}

// respondGameError reports an aborted game run. The prefix simulated
// before the abort is valid and goes into the body, so an illegal
// replayed move or an exhausted wall-clock budget does not throw away
// the work already done.
func (s *Server) respondGameError(w http.ResponseWriter, r *http.Request, err error, trajectory chessmetrics.Trajectory) {
	if len(trajectory) == 0 {
		s.respondEngineError(w, r, err)
		return
	}

	status := http.StatusBadRequest
	if errors.Is(err, guard.ErrTimeoutExceeded) {
		status = http.StatusGatewayTimeout
	}
	s.respondJSON(w, status, GameErrorResponse{
		Error:      http.StatusText(status),
		Message:    err.Error(),
		Code:       status,
		Trajectory: trajectory,
	})
}
