// Package guard wraps the engine's externally triggered entry points
// with bounds validation, per-caller rate limiting and a wall-clock
// budget. It owns no numeric logic: every computation it performs is
// delegated to the pure engine packages.
package guard

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/svaldes/structhealth/pkg/capacity"
	"github.com/svaldes/structhealth/pkg/chessmetrics"
	"github.com/svaldes/structhealth/pkg/logging"
	"github.com/svaldes/structhealth/pkg/metrics"
	"github.com/svaldes/structhealth/pkg/scenario"
	"github.com/svaldes/structhealth/pkg/validation"
)

// Common errors returned by the guard
var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrTimeoutExceeded   = errors.New("wall-clock budget exceeded")
)

// Config bounds every externally triggered parameter and sets the
// defensive budgets. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	MinNetworkSize int
	MaxNetworkSize int
	MaxGameMoves   int
	MinSteps       int
	MaxSteps       int

	WallClockBudget time.Duration
	RateLimit       *RateLimitConfig
}

// DefaultConfig returns the stock guard configuration.
func DefaultConfig() Config {
	return Config{
		MinNetworkSize:  3,
		MaxNetworkSize:  15,
		MaxGameMoves:    500,
		MinSteps:        1,
		MaxSteps:        500,
		WallClockBudget: 30 * time.Second,
		RateLimit:       DefaultRateLimitConfig(),
	}
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	cv := validation.NewConfigValidator("guard.Config")
	cv.MinInt("MinNetworkSize", c.MinNetworkSize, 1).
		OrderedInt("NetworkSize", c.MinNetworkSize, c.MaxNetworkSize).
		RangeInt("MaxGameMoves", c.MaxGameMoves, 1, chessmetrics.MaxMoves).
		MinInt("MinSteps", c.MinSteps, scenario.MinSteps).
		OrderedInt("Steps", c.MinSteps, c.MaxSteps).
		RangeInt("MaxSteps", c.MaxSteps, 1, scenario.MaxSteps).
		RequiredDuration("WallClockBudget", c.WallClockBudget)
	if c.RateLimit != nil {
		cv.MinInt("RateLimit.MaxCalls", c.RateLimit.MaxCalls, 1).
			RequiredDuration("RateLimit.Window", c.RateLimit.Window)
	}
	return cv.Error()
}

// Guard is the defensive wrapper around the engine entry points.
type Guard struct {
	config  Config
	limiter *SlidingWindowLimiter
	metrics *metrics.Registry
	logger  logging.Logger
}

// Option configures optional guard collaborators.
type Option func(*Guard)

// WithMetrics wires a Prometheus registry for guard instrumentation.
func WithMetrics(r *metrics.Registry) Option {
	return func(g *Guard) { g.metrics = r }
}

// WithLogger wires a structured logger for rejections and aborts.
func WithLogger(l logging.Logger) Option {
	return func(g *Guard) { g.logger = l }
}

// New builds a guard from a validated configuration.
func New(config Config, opts ...Option) (*Guard, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("guard config: %w", err)
	}

	g := &Guard{
		config:  config,
		limiter: NewSlidingWindowLimiter(config.RateLimit),
		logger:  logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Close stops the limiter's background cleanup.
func (g *Guard) Close() {
	g.limiter.Stop()
}

// RetryAfter reports how long the caller must wait before the limiter
// admits another call.
func (g *Guard) RetryAfter(callerID string) time.Duration {
	return g.limiter.TimeUntilNextAllowed(callerID)
}

// BuildNetwork validates bounds and budget, then builds a network and
// computes its metrics triple.
func (g *Guard) BuildNetwork(callerID string, size int, rng *rand.Rand) (*capacity.Network, capacity.Metrics, error) {
	const kind = "network"
	if size < g.config.MinNetworkSize || size > g.config.MaxNetworkSize {
		g.reject(kind, callerID)
		return nil, capacity.Metrics{}, fmt.Errorf("%w: size %d outside [%d, %d]",
			capacity.ErrInvalidSize, size, g.config.MinNetworkSize, g.config.MaxNetworkSize)
	}
	if err := g.admit(kind, callerID); err != nil {
		return nil, capacity.Metrics{}, err
	}

	start := time.Now()
	nw, err := capacity.BuildNetwork(size, rng)
	if err != nil {
		g.record(kind, "error", start)
		return nil, capacity.Metrics{}, err
	}
	m := capacity.ComputeMetrics(nw)
	if g.metrics != nil {
		g.metrics.RecordNetworkHealth(m.H, m.HEff, m.S)
	}
	g.record(kind, "ok", start)
	return nw, m, nil
}

// RunGame validates bounds and budget, then simulates a game under the
// wall-clock deadline. A deadline abort surfaces ErrTimeoutExceeded
// together with the trajectory prefix already produced.
func (g *Guard) RunGame(ctx context.Context, callerID string, opts chessmetrics.GameOptions) (chessmetrics.Trajectory, error) {
	const kind = "game"
	if opts.MaxMoves < 0 || opts.MaxMoves > g.config.MaxGameMoves {
		g.reject(kind, callerID)
		return nil, fmt.Errorf("%w: %d outside [0, %d]",
			chessmetrics.ErrInvalidMoveCount, opts.MaxMoves, g.config.MaxGameMoves)
	}
	if err := g.admit(kind, callerID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.config.WallClockBudget)
	defer cancel()

	start := time.Now()
	trajectory, err := chessmetrics.RunGame(ctx, opts)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			if g.metrics != nil {
				g.metrics.RecordTimeout(kind)
			}
			g.logger.Warn("game aborted by wall-clock budget",
				logging.Caller(callerID), logging.Duration("budget", g.config.WallClockBudget))
			g.record(kind, "timeout", start)
			return trajectory, fmt.Errorf("%w after %v", ErrTimeoutExceeded, g.config.WallClockBudget)
		}
		g.record(kind, "error", start)
		return trajectory, err
	}
	if g.metrics != nil {
		g.metrics.RecordTrajectory(kind, len(trajectory))
	}
	g.record(kind, "ok", start)
	return trajectory, nil
}

// Simulate validates bounds and budget, then runs one scenario.
func (g *Guard) Simulate(ctx context.Context, callerID string, s scenario.Scenario) ([]float64, error) {
	const kind = "scenario"
	if s.Steps < g.config.MinSteps || s.Steps > g.config.MaxSteps {
		g.reject(kind, callerID)
		return nil, fmt.Errorf("%w: %d outside [%d, %d]",
			scenario.ErrInvalidStepCount, s.Steps, g.config.MinSteps, g.config.MaxSteps)
	}
	if err := g.admit(kind, callerID); err != nil {
		return nil, err
	}
	if err := g.checkDeadline(ctx, kind, callerID); err != nil {
		return nil, err
	}

	start := time.Now()
	trajectory, err := scenario.Simulate(s)
	if err != nil {
		g.record(kind, "error", start)
		return nil, err
	}
	if g.metrics != nil {
		g.metrics.RecordTrajectory(kind, len(trajectory))
	}
	g.record(kind, "ok", start)
	return trajectory, nil
}

// CompareScenarios validates every scenario's bounds and the budget,
// then ranks the batch.
func (g *Guard) CompareScenarios(ctx context.Context, callerID string, scenarios []scenario.Scenario, th scenario.Thresholds) ([]scenario.Result, error) {
	const kind = "compare"
	for _, s := range scenarios {
		if s.Steps < g.config.MinSteps || s.Steps > g.config.MaxSteps {
			g.reject(kind, callerID)
			return nil, fmt.Errorf("%w: scenario %q steps %d outside [%d, %d]",
				scenario.ErrInvalidStepCount, s.Name, s.Steps, g.config.MinSteps, g.config.MaxSteps)
		}
	}
	if err := th.Validate(); err != nil {
		g.reject(kind, callerID)
		return nil, err
	}
	if err := g.admit(kind, callerID); err != nil {
		return nil, err
	}
	if err := g.checkDeadline(ctx, kind, callerID); err != nil {
		return nil, err
	}

	start := time.Now()
	results, err := scenario.Compare(scenarios, th)
	if err != nil {
		g.record(kind, "error", start)
		return nil, err
	}
	g.record(kind, "ok", start)
	return results, nil
}

// admit charges one call against the caller's window budget.
func (g *Guard) admit(kind, callerID string) error {
	if g.limiter.Allow(callerID) {
		return nil
	}
	if g.metrics != nil {
		g.metrics.RecordRateLimited(kind)
	}
	wait := g.limiter.TimeUntilNextAllowed(callerID)
	g.logger.Warn("rate limit exceeded",
		logging.Caller(callerID), logging.Operation(kind), logging.Duration("retry_after", wait))
	return fmt.Errorf("%w: retry in %v", ErrRateLimitExceeded, wait.Round(time.Millisecond))
}

func (g *Guard) checkDeadline(ctx context.Context, kind, callerID string) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		if g.metrics != nil {
			g.metrics.RecordTimeout(kind)
		}
		g.logger.Warn("call aborted before start",
			logging.Caller(callerID), logging.Operation(kind), logging.Error(err))
		return fmt.Errorf("%w: %v", ErrTimeoutExceeded, err)
	}
	return nil
}

func (g *Guard) reject(kind, callerID string) {
	if g.metrics != nil {
		g.metrics.RecordBoundsReject(kind)
	}
	g.logger.Warn("bounds validation refused call",
		logging.Caller(callerID), logging.Operation(kind))
}

func (g *Guard) record(kind, status string, start time.Time) {
	if g.metrics != nil {
		g.metrics.RecordSimulation(kind, status, time.Since(start))
	}
}
