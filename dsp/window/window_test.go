package window

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateAllTypes(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			typ, err := Parse(name)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", name, err)
			}

			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
			}
		})
	}
}

func TestHannMatchesClosedForm(t *testing.T) {
	const n = 256

	w := Generate(TypeHann, n)
	for i, v := range w {
		x := float64(i) / float64(n-1)
		want := 0.5 * (1 - math.Cos(2*math.Pi*x))
		if v != want {
			t.Fatalf("w[%d]=%v, want %v", i, v, want)
		}
	}

	if w[0] != 0 || !almostEqual(w[n-1], 0, 1e-15) {
		t.Fatalf("symmetric hann should vanish at both edges: %v %v", w[0], w[n-1])
	}
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	a := Generate(TypeHann, 16)

	b := Generate(TypeHann, 16, WithPeriodic())
	if len(a) != 16 || len(b) != 16 {
		t.Fatalf("unexpected lengths: %d %d", len(a), len(b))
	}

	if almostEqual(a[15], b[15], 1e-12) {
		t.Fatal("expected different end coefficient for periodic form")
	}
}

func TestApplyCoefficients(t *testing.T) {
	samples := []float64{2, 2, 2, 2}
	coeffs := Generate(TypeHann, 4)
	dst := make([]float64, 4)

	if err := ApplyCoefficients(dst, samples, coeffs); err != nil {
		t.Fatalf("ApplyCoefficients() error = %v", err)
	}

	for i := range dst {
		if !almostEqual(dst[i], 2*coeffs[i], 1e-12) {
			t.Fatalf("dst[%d]=%v, want %v", i, dst[i], 2*coeffs[i])
		}
	}

	if err := ApplyCoefficients(dst, samples[:3], coeffs); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestParseUnknown(t *testing.T) {
	if _, err := Parse("kaiser"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("Parse(kaiser) error = %v, want ErrUnknownType", err)
	}
}

func TestValidationAndEdgeCases(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("Generate(0) = %v, want nil", w)
	}

	w := Generate(TypeHann, 1)
	if len(w) != 1 || w[0] != 0 {
		t.Fatalf("single-sample hann = %v", w)
	}
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
