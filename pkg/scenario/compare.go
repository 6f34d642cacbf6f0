package scenario

import "sort"

// Result is one ranked entry produced by Compare.
type Result struct {
	Scenario  Scenario `json:"scenario"`
	FinalHEff float64  `json:"final_h_eff"`
	Decay     float64  `json:"decay"`
	Tier      Tier     `json:"tier"`
}

// Compare simulates every scenario, classifies it on the trajectory's
// final HEff together with its decay rate, and returns the batch
// ranked best first.
//
// Sort key: tier ascending (Alpha best), then final HEff descending,
// then decay ascending as the deterministic tie-break. The sort is
// stable, so ranking the same batch twice (or in any input order)
// yields the same output order. An empty batch returns an empty slice;
// a single scenario comes back wrapped without special-casing.
func Compare(scenarios []Scenario, th Thresholds) ([]Result, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(scenarios))
	for _, s := range scenarios {
		trajectory, err := Simulate(s)
		if err != nil {
			return nil, err
		}
		final := trajectory[len(trajectory)-1]
		tier, err := Classify(final, s.DecayRate, th)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{
			Scenario:  s,
			FinalHEff: final,
			Decay:     s.DecayRate,
			Tier:      tier,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Tier != results[j].Tier {
			return results[i].Tier < results[j].Tier
		}
		if results[i].FinalHEff != results[j].FinalHEff {
			return results[i].FinalHEff > results[j].FinalHEff
		}
		if results[i].Decay != results[j].Decay {
			return results[i].Decay < results[j].Decay
		}
		// Name settles full ties so the ranking is independent of
		// input order.
		return results[i].Scenario.Name < results[j].Scenario.Name
	})
	return results, nil
}
