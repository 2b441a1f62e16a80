// Package check provides numeric assertions for the problem library tests:
// tolerance comparisons with uniform failure messages and a finite-difference
// check that a closed-form solution satisfies its differential equation.
package check

import (
	"math"
	"testing"
)

// ApproxEq fails the test unless |got-want| <= tol.
func ApproxEq(t testing.TB, name string, got, want, tol float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v (tol %g, diff %g)", name, got, want, tol, math.Abs(got-want))
	}
}

// VecApproxEq fails the test unless the slices have equal length and agree
// componentwise within tol.
func VecApproxEq(t testing.TB, name string, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: length mismatch: got %d, want %d", name, len(got), len(want))
	}
	for i := range got {
		if math.IsNaN(got[i]) || math.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s[%d]: got %v, want %v (tol %g)", name, i, got[i], want[i], tol)
		}
	}
}

// Deriv approximates d/dx exact(x) with a five point central difference.
func Deriv(exact func(x float64) []float64, x, h float64) []float64 {
	p2 := exact(x + 2*h)
	p1 := exact(x + h)
	m1 := exact(x - h)
	m2 := exact(x - 2*h)
	d := make([]float64, len(p1))
	for i := range d {
		d[i] = (-p2[i] + 8*p1[i] - 8*m1[i] + m2[i]) / (12 * h)
	}
	return d
}

// DerivApproxEq fails the test unless got matches the five point finite
// difference derivative of exact at x within tol. It verifies that a
// right-hand side and a closed-form solution describe the same system.
func DerivApproxEq(t testing.TB, name string, got []float64, exact func(x float64) []float64, x, tol float64) {
	t.Helper()
	VecApproxEq(t, name, got, Deriv(exact, x, 1e-3), tol)
}
