package ode

import (
	"context"
	"math"
	"testing"
)

func harmonicFunc() Func {
	return func(f []float64, x float64, y []float64) error {
		f[0] = y[1]
		f[1] = -y[0]
		return nil
	}
}

// The interpolant must reproduce the step ends: θ=0 returns the state before
// the step, θ=1 the proposed update.
func TestDenseEndpointExactness(t *testing.T) {
	for _, m := range []Method{DoPri5, DoPri8} {
		m := m
		t.Run(m.String(), func(t *testing.T) {
			par := NewParams(m)
			par.DenseDx = 0.1
			stp, err := newERKStepper(par, NewSystem(2, harmonicFunc()))
			if err != nil {
				t.Fatalf("newERKStepper: %v", err)
			}
			work := &workspace{}
			work.reset(0)

			y := []float64{1, 0}
			h := 0.2
			if err := stp.step(work, 0, y, h); err != nil {
				t.Fatalf("step: %v", err)
			}
			if err := stp.denseUpdate(work, 0, y, h); err != nil {
				t.Fatalf("denseUpdate: %v", err)
			}
			w := append([]float64(nil), stp.w...)

			yOut := make([]float64, 2)
			stp.denseEvaluate(yOut, 0, h, h)
			for i := range yOut {
				if math.Abs(yOut[i]-y[i]) > 1e-14 {
					t.Errorf("theta=0: yOut[%d] = %v, want %v", i, yOut[i], y[i])
				}
			}
			stp.denseEvaluate(yOut, h, h, h)
			for i := range yOut {
				if math.Abs(yOut[i]-w[i]) > 1e-14 {
					t.Errorf("theta=1: yOut[%d] = %v, want %v", i, yOut[i], w[i])
				}
			}
		})
	}
}

func TestDenseExtraStageEvaluations(t *testing.T) {
	par := NewParams(DoPri8)
	par.DenseDx = 0.1
	stp, err := newERKStepper(par, NewSystem(2, harmonicFunc()))
	if err != nil {
		t.Fatalf("newERKStepper: %v", err)
	}
	work := &workspace{}
	work.reset(0)

	y := []float64{1, 0}
	if err := stp.step(work, 0, y, 0.2); err != nil {
		t.Fatalf("step: %v", err)
	}
	if work.Stats.NFcnEval != 12 {
		t.Fatalf("NFcnEval after step = %d, want 12", work.Stats.NFcnEval)
	}
	if err := stp.denseUpdate(work, 0, y, 0.2); err != nil {
		t.Fatalf("denseUpdate: %v", err)
	}
	if work.Stats.NFcnEval != 15 {
		t.Errorf("NFcnEval after dense update = %d, want 15", work.Stats.NFcnEval)
	}
}

func TestDenseOutputDecay(t *testing.T) {
	par := NewParams(DoPri5)
	if err := par.SetTolerances(1e-8, 1e-8); err != nil {
		t.Fatal(err)
	}
	par.DenseDx = 0.05
	sol, err := NewSolver(par, NewSystem(1, decayFunc(-1)))
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}

	var xs []float64
	calls := 0
	sol.OnDense(func(step int, h, x float64, y []float64) error {
		calls++
		if step == 0 {
			return nil
		}
		xs = append(xs, x)
		if want := math.Exp(-x); math.Abs(y[0]-want) > 1e-6 {
			t.Errorf("dense y(%g) = %v, want %v", x, y[0], want)
		}
		return nil
	})

	y := []float64{1}
	if err := sol.Solve(context.Background(), y, 0, 1); err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if got := sol.Stats().NDenseEval; got != 20 {
		t.Errorf("NDenseEval = %d, want 20", got)
	}
	if calls != 21 {
		t.Errorf("callback invocations = %d, want 21 (initial point plus 20 interpolations)", calls)
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			t.Errorf("dense positions not increasing: x[%d]=%v, x[%d]=%v", i-1, xs[i-1], i, xs[i])
		}
	}
}

func TestDenseOutputHarmonicDopri8(t *testing.T) {
	par := NewParams(DoPri8)
	if err := par.SetTolerances(1e-10, 1e-10); err != nil {
		t.Fatal(err)
	}
	par.DenseDx = math.Pi / 32
	sol, err := NewSolver(par, NewSystem(2, harmonicFunc()))
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}

	var worst float64
	sol.OnDense(func(step int, h, x float64, y []float64) error {
		if d := math.Abs(y[0] - math.Cos(x)); d > worst {
			worst = d
		}
		if d := math.Abs(y[1] + math.Sin(x)); d > worst {
			worst = d
		}
		return nil
	})

	y := []float64{1, 0}
	if err := sol.Solve(context.Background(), y, 0, math.Pi); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if worst > 1e-6 {
		t.Errorf("worst dense error = %v, want <= 1e-6", worst)
	}
	if sol.Stats().NDenseEval == 0 {
		t.Error("expected dense evaluations")
	}
}
