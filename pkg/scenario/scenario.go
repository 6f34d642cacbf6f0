// Package scenario simulates the degradation of effective slack over
// discrete steps, classifies the outcome into tiers and ranks batches
// of scenarios.
package scenario

import (
	"errors"
	"fmt"
)

// Step-count bounds for a single simulation.
const (
	MinSteps = 1
	MaxSteps = 500
)

// Common errors returned by the scenario package
var (
	ErrInvalidStepCount  = errors.New("invalid step count")
	ErrInvalidDecayRate  = errors.New("invalid decay rate")
	ErrInvalidThresholds = errors.New("invalid thresholds")
)

// Scenario describes one degradation run: an initial effective slack
// and a per-step fractional decay rate. A decay rate >= 1 collapses
// the scenario in a single step.
type Scenario struct {
	Name      string  `json:"name"`
	HEff0     float64 `json:"h_eff_0"`
	DecayRate float64 `json:"decay_rate"`
	Steps     int     `json:"steps"`
}

// Simulate produces the HEff trajectory over s.Steps discrete steps:
//
//	v[0] = HEff0
//	v[t] = max(0, v[t-1] * (1 - DecayRate))
//
// The sequence is non-increasing and zero is an absorbing state. A
// negative DecayRate would grow the trajectory and break both, so it
// is rejected, as are Steps outside [MinSteps, MaxSteps], before any
// work.
func Simulate(s Scenario) ([]float64, error) {
	if s.Steps < MinSteps || s.Steps > MaxSteps {
		return nil, fmt.Errorf("%w: %d outside [%d, %d]", ErrInvalidStepCount, s.Steps, MinSteps, MaxSteps)
	}
	if s.DecayRate < 0 {
		return nil, fmt.Errorf("%w: %g is negative", ErrInvalidDecayRate, s.DecayRate)
	}

	trajectory := make([]float64, 0, s.Steps)
	h := s.HEff0
	for t := 0; t < s.Steps; t++ {
		trajectory = append(trajectory, h)
		h = h * (1 - s.DecayRate)
		if h < 0 {
			h = 0
		}
	}
	return trajectory, nil
}
