package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// NetworkRequest asks the engine to build and measure one network.
// The seed makes the build reproducible; the same seed always yields
// the same network.
type NetworkRequest struct {
	Size int   `json:"size" validate:"required"`
	Seed int64 `json:"seed"`
}

// GameRequest asks the engine to simulate one game. Either a seed for
// random play or an explicit SAN move list must be provided.
type GameRequest struct {
	MaxMoves int      `json:"max_moves" validate:"min=0,max=500"`
	Seed     *int64   `json:"seed" validate:"required_without=Moves"`
	Moves    []string `json:"moves" validate:"omitempty,max=500,dive,min=1,max=10"`
}

// ScenarioRequest is one degradation scenario in a comparison batch.
type ScenarioRequest struct {
	Name      string  `json:"name" validate:"required,max=80"`
	HEff0     float64 `json:"h_eff_0"`
	DecayRate float64 `json:"decay_rate" validate:"min=0"`
	Steps     int     `json:"steps" validate:"min=1,max=500"`
}

// CompareRequest ranks a batch of scenarios. Thresholds are optional;
// the engine defaults apply when omitted.
type CompareRequest struct {
	// An empty batch is valid and ranks to an empty result.
	Scenarios  []ScenarioRequest `json:"scenarios" validate:"omitempty,max=100,dive"`
	Thresholds *ThresholdsSpec   `json:"thresholds"`
}

// ClassifyRequest classifies a single (h_eff, decay) pair.
type ClassifyRequest struct {
	HEff       float64         `json:"h_eff"`
	Decay      float64         `json:"decay" validate:"min=0"`
	Thresholds *ThresholdsSpec `json:"thresholds"`
}

// ThresholdsSpec mirrors scenario.Thresholds on the wire. Internal
// consistency (alpha at least as demanding as beta) is checked by the
// engine itself; here only basic sanity applies.
type ThresholdsSpec struct {
	AlphaHMin     float64 `json:"alpha_h_min"`
	AlphaDecayMax float64 `json:"alpha_decay_max" validate:"min=0"`
	BetaHMin      float64 `json:"beta_h_min"`
	BetaDecayMax  float64 `json:"beta_decay_max" validate:"min=0"`
}

// ValidateNetworkRequest validates a network build request.
func ValidateNetworkRequest(req *NetworkRequest) error {
	if req == nil {
		return errors.New("network request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if req.Size < 1 {
		return fmt.Errorf("Size: must be at least 1, got %d", req.Size)
	}
	return nil
}

// ValidateGameRequest validates a game simulation request.
func ValidateGameRequest(req *GameRequest) error {
	if req == nil {
		return errors.New("game request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if req.Seed == nil && len(req.Moves) == 0 {
		return errors.New("either seed or moves must be provided")
	}
	return nil
}

// ValidateCompareRequest validates a scenario comparison request.
func ValidateCompareRequest(req *CompareRequest) error {
	if req == nil {
		return errors.New("compare request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateClassifyRequest validates a classification request.
func ValidateClassifyRequest(req *ClassifyRequest) error {
	if req == nil {
		return errors.New("classify request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into a readable message
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed '%s' validation", fe.Field(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}
