package scenario

import "fmt"

// Tier is the coarse health classification, best to worst.
type Tier int

const (
	TierAlpha Tier = iota
	TierBeta
	TierGamma
)

func (t Tier) String() string {
	switch t {
	case TierAlpha:
		return "Alpha"
	case TierBeta:
		return "Beta"
	case TierGamma:
		return "Gamma"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// MarshalJSON renders tiers by name.
func (t Tier) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON parses a tier by name.
func (t *Tier) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"Alpha"`:
		*t = TierAlpha
	case `"Beta"`:
		*t = TierBeta
	case `"Gamma"`:
		*t = TierGamma
	default:
		return fmt.Errorf("unknown tier %s", data)
	}
	return nil
}

// State is the display label for a single live snapshot. States are
// synonyms of the tiers: Vivo=Alpha, Zombi=Beta, Colapsado=Gamma.
type State string

const (
	StateVivo      State = "VIVO"
	StateZombi     State = "ZOMBI"
	StateColapsado State = "COLAPSADO"
)

// Thresholds configures the classifier. All comparisons are closed
// intervals: a value exactly on a threshold satisfies it.
type Thresholds struct {
	AlphaHMin     float64 `json:"alpha_h_min" yaml:"alpha_h_min"`
	AlphaDecayMax float64 `json:"alpha_decay_max" yaml:"alpha_decay_max"`
	BetaHMin      float64 `json:"beta_h_min" yaml:"beta_h_min"`
	BetaDecayMax  float64 `json:"beta_decay_max" yaml:"beta_decay_max"`
}

// DefaultThresholds returns the stock classifier configuration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		AlphaHMin:     60.0,
		AlphaDecayMax: 1.0,
		BetaHMin:      30.0,
		BetaDecayMax:  3.0,
	}
}

// Validate checks internal consistency: the Alpha band must be at
// least as demanding as the Beta band on both axes.
func (th Thresholds) Validate() error {
	if th.AlphaHMin < th.BetaHMin {
		return fmt.Errorf("%w: alpha_h_min %.2f below beta_h_min %.2f", ErrInvalidThresholds, th.AlphaHMin, th.BetaHMin)
	}
	if th.AlphaDecayMax > th.BetaDecayMax {
		return fmt.Errorf("%w: alpha_decay_max %.2f above beta_decay_max %.2f", ErrInvalidThresholds, th.AlphaDecayMax, th.BetaDecayMax)
	}
	return nil
}

// Classify maps one (hEff, decay) pair to a tier. First match wins:
//
//  1. Alpha when hEff >= AlphaHMin AND decay <= AlphaDecayMax
//  2. Beta when hEff >= BetaHMin OR decay <= BetaDecayMax
//  3. Gamma otherwise
//
// Total over its domain: every pair maps to exactly one tier.
func Classify(hEff, decay float64, th Thresholds) (Tier, error) {
	if err := th.Validate(); err != nil {
		return TierGamma, err
	}
	if hEff >= th.AlphaHMin && decay <= th.AlphaDecayMax {
		return TierAlpha, nil
	}
	if hEff >= th.BetaHMin || decay <= th.BetaDecayMax {
		return TierBeta, nil
	}
	return TierGamma, nil
}

// SnapshotState labels a single live snapshot using the same
// thresholds as Classify.
func SnapshotState(hEff, decay float64, th Thresholds) (State, error) {
	tier, err := Classify(hEff, decay, th)
	if err != nil {
		return "", err
	}
	switch tier {
	case TierAlpha:
		return StateVivo, nil
	case TierBeta:
		return StateZombi, nil
	default:
		return StateColapsado, nil
	}
}
