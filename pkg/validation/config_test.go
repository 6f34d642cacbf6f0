package validation

import (
	"strings"
	"testing"
	"time"
)

// TestConfigValidator_CollectsAllErrors tests that validation does not
// stop at the first failure
func TestConfigValidator_CollectsAllErrors(t *testing.T) {
	cv := NewConfigValidator("GuardConfig")
	cv.RangeInt("MaxNetworkSize", 50, 3, 15).
		MinInt("RateLimitCalls", 0, 1).
		RequiredDuration("RateLimitWindow", 0)

	if !cv.HasErrors() {
		t.Fatal("expected errors")
	}
	err := cv.Error()
	if err == nil {
		t.Fatal("Error() = nil with collected errors")
	}
	for _, want := range []string{"MaxNetworkSize", "RateLimitCalls", "RateLimitWindow"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing field %s", err.Error(), want)
		}
	}
}

// TestConfigValidator_Passing tests the no-error path
func TestConfigValidator_Passing(t *testing.T) {
	cv := NewConfigValidator("GuardConfig")
	cv.RangeInt("MaxNetworkSize", 10, 3, 15).
		OrderedInt("MoveBounds", 0, 500).
		MinDuration("WallClockBudget", time.Second, 100*time.Millisecond).
		MinFloat("Threshold", 30, 0)

	if cv.HasErrors() {
		t.Errorf("unexpected errors: %v", cv.Error())
	}
	if cv.Error() != nil {
		t.Errorf("Error() = %v, want nil", cv.Error())
	}
}

// TestConfigValidator_OrderedInt tests bound ordering
func TestConfigValidator_OrderedInt(t *testing.T) {
	cv := NewConfigValidator("Bounds")
	cv.OrderedInt("Steps", 500, 1)
	if !cv.HasErrors() {
		t.Error("inverted bounds accepted")
	}
}
