package problems

import (
	"context"
	"math"
	"testing"

	"github.com/odelab/odelab/internal/check"
	"github.com/odelab/odelab/ode"
)

func TestRegistry(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("no registered problems")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
	for _, name := range names {
		p, err := Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		if p.System.Ndim != len(p.Y0) {
			t.Errorf("%s: Ndim = %d, len(Y0) = %d", name, p.System.Ndim, len(p.Y0))
		}
		if p.Xf <= p.X0 {
			t.Errorf("%s: empty interval [%g, %g]", name, p.X0, p.Xf)
		}
	}
	if _, err := Get("nope"); err == nil {
		t.Error("expected error for unknown problem")
	}
}

func TestExactMatchesInitialState(t *testing.T) {
	for _, name := range Names() {
		p, err := Get(name)
		if err != nil {
			t.Fatal(err)
		}
		if p.Exact == nil {
			continue
		}
		check.VecApproxEq(t, name+" exact at x0", p.Exact(p.X0), p.Y0, 1e-12)
	}
}

// The closed-form solutions must satisfy their differential equations: the
// right-hand side evaluated on the exact trajectory has to match its finite
// difference derivative.
func TestExactSatisfiesSystem(t *testing.T) {
	tests := []struct {
		problem Problem
		xs      []float64
		tol     float64
	}{
		{Decay(-1), []float64{0.2, 0.8}, 1e-9},
		{Decay(-3.5), []float64{0.5}, 1e-8},
		{Harmonic(1), []float64{0.3, 2.0}, 1e-9},
		{Harmonic(2.5), []float64{1.1}, 1e-8},
		{HairerWanner11(), []float64{0.2, 1.0}, 1e-6},
		{TwoBody(), []float64{0.4, 3.0}, 1e-9},
	}
	for _, tc := range tests {
		for _, x := range tc.xs {
			f := make([]float64, tc.problem.System.Ndim)
			if err := tc.problem.System.Fcn(f, x, tc.problem.Exact(x)); err != nil {
				t.Fatalf("%s: Fcn: %v", tc.problem.Name, err)
			}
			check.DerivApproxEq(t, tc.problem.Name, f, tc.problem.Exact, x, tc.tol)
		}
	}
}

func solveProblem(t *testing.T, p Problem, m ode.Method, tol float64) ([]float64, ode.Stats) {
	t.Helper()
	par := ode.NewParams(m)
	if err := par.SetTolerances(tol, tol); err != nil {
		t.Fatal(err)
	}
	par.MaxSteps = 200000
	sol, err := ode.NewSolver(par, p.System)
	if err != nil {
		t.Fatalf("%s: NewSolver: %v", p.Name, err)
	}
	y := p.Clone()
	if err := sol.Solve(context.Background(), y, p.X0, p.Xf); err != nil {
		t.Fatalf("%s: Solve: %v", p.Name, err)
	}
	return y, sol.Stats()
}

func TestTwoBodyCircularOrbit(t *testing.T) {
	p := TwoBody()
	y, _ := solveProblem(t, p, ode.DoPri8, 1e-10)

	check.VecApproxEq(t, "state after one revolution", y, p.Exact(p.Xf), 1e-6)
	check.ApproxEq(t, "energy", p.Energy(y), -0.5, 1e-9)
}

func TestArenstorfPeriodicOrbit(t *testing.T) {
	p := Arenstorf()
	y, st := solveProblem(t, p, ode.DoPri8, 1e-11)

	check.VecApproxEq(t, "state after one period", y, p.Y0, 1e-3)
	if st.NAccepted < 50 {
		t.Errorf("NAccepted = %d, suspiciously few for a three-loop orbit", st.NAccepted)
	}
}

func TestHarmonicEnergyConservation(t *testing.T) {
	p := Harmonic(1)
	y, _ := solveProblem(t, p, ode.DoPri5, 1e-9)
	check.ApproxEq(t, "energy", p.Energy(y), p.Energy(p.Y0), 1e-7)
}

func TestVanDerPolFinite(t *testing.T) {
	p := VanDerPol(1)
	y, st := solveProblem(t, p, ode.DoPri5, 1e-7)
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("y[%d] = %v", i, v)
		}
	}
	if st.NAccepted == 0 {
		t.Error("no accepted steps")
	}
}

func TestLorenzFinite(t *testing.T) {
	p := Lorenz(10, 28, 8.0/3.0)
	p.Xf = 1 // a short stretch is enough to exercise the attractor
	y, _ := solveProblem(t, p, ode.DoPri8, 1e-9)
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("y[%d] = %v", i, v)
		}
	}
}

func TestHairerWanner11Accuracy(t *testing.T) {
	p := HairerWanner11()
	y, _ := solveProblem(t, p, ode.DoPri5, 1e-8)
	check.VecApproxEq(t, "y at xf", y, p.Exact(p.Xf), 1e-6)
}

func TestRosslerFinite(t *testing.T) {
	p := Rossler(0.2, 0.2, 5.7)
	p.Xf = 5
	y, _ := solveProblem(t, p, ode.DoPri5, 1e-9)
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("y[%d] = %v", i, v)
		}
	}
}

// The Duffing right-hand side must carry its periodic forcing: the same state
// gives different derivatives half a forcing period apart.
func TestDuffingForced(t *testing.T) {
	p := Duffing(0.3, -1, 1, 0.5, 1.2)
	f0 := make([]float64, 2)
	f1 := make([]float64, 2)
	if err := p.System.Fcn(f0, 0, p.Y0); err != nil {
		t.Fatal(err)
	}
	if err := p.System.Fcn(f1, math.Pi/1.2, p.Y0); err != nil {
		t.Fatal(err)
	}
	if f0[1] == f1[1] {
		t.Errorf("f[1] = %g at both phases, forcing term lost", f0[1])
	}
}
