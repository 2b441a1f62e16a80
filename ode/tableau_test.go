package ode

import (
	"math"
	"testing"
)

// sumBC returns Σ b_i·c_i^p.
func sumBC(t *tableau, p float64) float64 {
	var s float64
	for i, bi := range t.b {
		s += bi * math.Pow(t.c[i], p)
	}
	return s
}

func TestTableauOrderConditions(t *testing.T) {
	for _, m := range ExplicitMethods() {
		m := m
		t.Run(m.String(), func(t *testing.T) {
			tab, err := tableauFor(m)
			if err != nil {
				t.Fatalf("tableauFor: %v", err)
			}
			info := m.Info()
			n := tab.nstage()
			if info.Stages != n {
				t.Fatalf("Info.Stages = %d, tableau has %d stages", info.Stages, n)
			}
			if len(tab.c) != n {
				t.Fatalf("len(c) = %d, want %d", len(tab.c), n)
			}

			tol := 1e-13
			if m == DoPri8 {
				tol = 1e-12
			}

			// Row sums of a must reproduce the stage abscissae.
			for i := 0; i < n; i++ {
				var row float64
				for j := 0; j < n; j++ {
					row += tab.a.At(i, j)
				}
				if math.Abs(row-tab.c[i]) > tol {
					t.Errorf("row %d sum = %v, want c = %v", i, row, tab.c[i])
				}
			}

			// Quadrature conditions up to the claimed order (capped at 4).
			if got := sumBC(tab, 0); math.Abs(got-1) > tol {
				t.Errorf("sum b = %v, want 1", got)
			}
			if info.Order >= 2 {
				if got := sumBC(tab, 1); math.Abs(got-0.5) > tol {
					t.Errorf("sum b*c = %v, want 1/2", got)
				}
			}
			if info.Order >= 3 {
				if got := sumBC(tab, 2); math.Abs(got-1.0/3.0) > tol {
					t.Errorf("sum b*c^2 = %v, want 1/3", got)
				}
				var bac float64
				for i := 0; i < n; i++ {
					for j := 0; j < n; j++ {
						bac += tab.b[i] * tab.a.At(i, j) * tab.c[j]
					}
				}
				if math.Abs(bac-1.0/6.0) > tol {
					t.Errorf("sum b*A*c = %v, want 1/6", bac)
				}
			}
			if info.Order >= 4 {
				if got := sumBC(tab, 3); math.Abs(got-0.25) > tol {
					t.Errorf("sum b*c^3 = %v, want 1/4", got)
				}
			}

			// The estimator weight difference must vanish against constants,
			// and against linears when both members reach order two.
			if info.Embedded {
				if len(tab.e) != n {
					t.Fatalf("len(e) = %d, want %d", len(tab.e), n)
				}
				var se, sec float64
				for i, ei := range tab.e {
					se += ei
					sec += ei * tab.c[i]
				}
				if math.Abs(se) > 1e-8 {
					t.Errorf("sum e = %v, want 0", se)
				}
				if info.Order >= 2 && info.EstimatorOrder >= 2 && math.Abs(sec) > 1e-8 {
					t.Errorf("sum e*c = %v, want 0", sec)
				}
			}
		})
	}
}

func TestDopri5FirstSameAsLast(t *testing.T) {
	tab := dopri5Tableau()
	n := tab.nstage()
	for j := 0; j < n; j++ {
		if got, want := tab.a.At(n-1, j), tab.b[j]; math.Abs(got-want) > 1e-15 {
			t.Errorf("a[%d][%d] = %v, want b[%d] = %v", n-1, j, got, j, want)
		}
	}
	if tab.c[n-1] != 1 {
		t.Errorf("c[last] = %v, want 1", tab.c[n-1])
	}
}

func TestDopri5DenseShape(t *testing.T) {
	tab := dopri5Tableau()
	r, c := tab.d.Dims()
	if r != 1 || c != 7 {
		t.Fatalf("dense weights are %dx%d, want 1x7", r, c)
	}
}

func TestDopri8DenseTables(t *testing.T) {
	tab := dopri8Tableau()

	if len(tab.cd) != 3 {
		t.Fatalf("len(cd) = %d, want 3", len(tab.cd))
	}
	r, c := tab.ad.Dims()
	if r != 3 || c != 16 {
		t.Fatalf("extra stage table is %dx%d, want 3x16", r, c)
	}
	r, c = tab.d.Dims()
	if r != 4 || c != 16 {
		t.Fatalf("dense weights are %dx%d, want 4x16", r, c)
	}

	// Each extra stage row must be consistent with its abscissa.
	for i := 0; i < 3; i++ {
		var row float64
		for j := 0; j < 16; j++ {
			row += tab.ad.At(i, j)
		}
		if math.Abs(row-tab.cd[i]) > 1e-12 {
			t.Errorf("extra stage %d row sum = %v, want %v", i, row, tab.cd[i])
		}
	}
}

func TestDopri8BlendWeights(t *testing.T) {
	tab := dopri8Tableau()
	if got := dopri8Bhh1 + dopri8Bhh2 + dopri8Bhh3; math.Abs(got-1) > 1e-15 {
		t.Errorf("sum bhh = %v, want 1", got)
	}
	// First order quadrature of the companion scheme: its nonzero weights sit
	// on stages 0, 8 and 11.
	if got := dopri8Bhh2*tab.c[8] + dopri8Bhh3*tab.c[11]; math.Abs(got-0.5) > 1e-14 {
		t.Errorf("sum bhh*c = %v, want 1/2", got)
	}
}

func TestTableauForRejectsNonExplicit(t *testing.T) {
	for _, m := range []Method{Radau5, BwEuler, FwEuler} {
		if _, err := tableauFor(m); err != ErrMethodUnavailable {
			t.Errorf("%s: err = %v, want ErrMethodUnavailable", m, err)
		}
	}
}

func TestParseMethodRoundTrip(t *testing.T) {
	for _, m := range ExplicitMethods() {
		got, err := ParseMethod(m.String())
		if err != nil {
			t.Fatalf("ParseMethod(%q): %v", m.String(), err)
		}
		if got != m {
			t.Errorf("ParseMethod(%q) = %v, want %v", m.String(), got, m)
		}
	}
	if _, err := ParseMethod("nope"); err == nil {
		t.Error("expected error for unknown method name")
	}
}
