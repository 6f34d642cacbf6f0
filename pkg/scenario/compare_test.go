package scenario

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

// TestCompare_Ranking tests tier-first ranking with metric tie-breaks
func TestCompare_Ranking(t *testing.T) {
	scenarios := []Scenario{
		{Name: "Escenario C", HEff0: 28.9, DecayRate: 0.45, Steps: 5},
		{Name: "Escenario A", HEff0: 172.4, DecayRate: 0.08, Steps: 5},
		{Name: "Escenario B", HEff0: 151.6, DecayRate: 0.21, Steps: 5},
	}

	results, err := Compare(scenarios, DefaultThresholds())
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	// A keeps the most final slack at the slowest decay; C decays from
	// an already low start.
	wantOrder := []string{"Escenario A", "Escenario B", "Escenario C"}
	for i, want := range wantOrder {
		if results[i].Scenario.Name != want {
			t.Errorf("rank %d = %s, want %s", i+1, results[i].Scenario.Name, want)
		}
	}

	for _, r := range results {
		if r.Decay != r.Scenario.DecayRate {
			t.Errorf("%s: result decay %f != scenario decay %f", r.Scenario.Name, r.Decay, r.Scenario.DecayRate)
		}
	}
}

// TestCompare_DecayTieBreak tests that lower decay ranks higher on equal
// tier and final HEff
func TestCompare_DecayTieBreak(t *testing.T) {
	scenarios := []Scenario{
		{Name: "fast", HEff0: 80, DecayRate: 1.2, Steps: 10},
		{Name: "faster", HEff0: 80, DecayRate: 2.0, Steps: 10},
	}
	// Both collapse to 0 and classify identically; decay decides.
	results, err := Compare(scenarios, DefaultThresholds())
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if results[0].Scenario.Name != "fast" {
		t.Errorf("rank 1 = %s, want fast (lower decay)", results[0].Scenario.Name)
	}
}

// TestCompare_OrderIndependent tests that input order does not leak into
// the ranking
func TestCompare_OrderIndependent(t *testing.T) {
	scenarios := []Scenario{
		{Name: "a", HEff0: 70, DecayRate: 0.1, Steps: 8},
		{Name: "b", HEff0: 55, DecayRate: 0.1, Steps: 8},
		{Name: "c", HEff0: 55, DecayRate: 0.3, Steps: 8},
		{Name: "d", HEff0: 12, DecayRate: 4.0, Steps: 8},
	}
	reversed := make([]Scenario, len(scenarios))
	for i, s := range scenarios {
		reversed[len(scenarios)-1-i] = s
	}

	forward, err := Compare(scenarios, DefaultThresholds())
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	backward, err := Compare(reversed, DefaultThresholds())
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if !reflect.DeepEqual(forward, backward) {
		t.Errorf("ranking depends on input order:\n%v\n%v", forward, backward)
	}

	again, err := Compare(scenarios, DefaultThresholds())
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if !reflect.DeepEqual(forward, again) {
		t.Error("ranking the same batch twice differs")
	}
}

// TestCompare_EmptyAndSingle tests the trivial batch sizes
func TestCompare_EmptyAndSingle(t *testing.T) {
	results, err := Compare(nil, DefaultThresholds())
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("empty batch returned %d results", len(results))
	}

	one := []Scenario{{Name: "solo", HEff0: 42, DecayRate: 0.2, Steps: 3}}
	results, err = Compare(one, DefaultThresholds())
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(results) != 1 || results[0].Scenario.Name != "solo" {
		t.Errorf("single batch results = %v", results)
	}
}

// TestCompare_PropagatesErrors tests that invalid inputs refuse the batch
func TestCompare_PropagatesErrors(t *testing.T) {
	_, err := Compare([]Scenario{{Name: "bad", HEff0: 10, DecayRate: 0.1, Steps: 0}}, DefaultThresholds())
	if !errors.Is(err, ErrInvalidStepCount) {
		t.Errorf("error = %v, want ErrInvalidStepCount", err)
	}

	_, err = Compare(nil, Thresholds{AlphaHMin: 10, BetaHMin: 50, BetaDecayMax: 1})
	if !errors.Is(err, ErrInvalidThresholds) {
		t.Errorf("error = %v, want ErrInvalidThresholds", err)
	}
}

func BenchmarkCompare(b *testing.B) {
	scenarios := make([]Scenario, 0, 20)
	for i := 0; i < 20; i++ {
		scenarios = append(scenarios, Scenario{
			Name:      fmt.Sprintf("s%02d", i),
			HEff0:     float64(10 * (i + 1)),
			DecayRate: float64(i) * 0.05,
			Steps:     50,
		})
	}
	th := DefaultThresholds()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Compare(scenarios, th); err != nil {
			b.Fatal(err)
		}
	}
}
