package calculator

import (
	"math"
	"testing"
)

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.8f, want %.8f (tol=%g, diff=%g)", label, got, want, tol, math.Abs(got-want))
	}
}

func constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// zigzag returns a most-recent-first series oscillating around base with a mild uptrend.
func zigzag(n int, base float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		age := float64(n - 1 - i)
		swing := 3.0
		if i%2 == 0 {
			swing = -3.0
		}
		out[i] = base + age*0.25 + swing
	}
	return out
}
