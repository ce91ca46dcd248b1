package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	// First sample of a sine at phase 0 should be 0.
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestDeterministicNoiseReproducible(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
	}
}

func TestRamp(t *testing.T) {
	r := Ramp(0.5, 4)
	RequireSliceNearlyEqual(t, r, []float64{0, 0.5, 1, 1.5}, 0)
}

func TestQuantize16Clamps(t *testing.T) {
	got := Quantize16([]float64{0.4, -0.6, 40000, -40000})
	want := []int{0, -1, math.MaxInt16, math.MinInt16}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Quantize16[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
