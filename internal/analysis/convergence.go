package analysis

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/odelab/odelab/ode"
	"github.com/odelab/odelab/problems"
)

// OrderEstimate holds a measured convergence study: the step sizes actually
// used, the end-point errors against the exact solution and the fitted slope
// of log error versus log step.
type OrderEstimate struct {
	Steps  []float64
	Errors []float64
	Order  float64
}

// MeasureOrder integrates prob with fixed steps of every size in hs and fits
// the empirical order of convergence of the method. The problem must carry
// an exact solution.
func MeasureOrder(ctx context.Context, m ode.Method, prob problems.Problem, hs []float64) (OrderEstimate, error) {
	if prob.Exact == nil {
		return OrderEstimate{}, fmt.Errorf("analysis: problem %q has no exact solution", prob.Name)
	}
	if len(hs) < 2 {
		return OrderEstimate{}, fmt.Errorf("analysis: need at least two step sizes, got %d", len(hs))
	}

	est := OrderEstimate{
		Steps:  make([]float64, 0, len(hs)),
		Errors: make([]float64, 0, len(hs)),
	}
	ref := prob.Exact(prob.Xf)

	for _, h := range hs {
		par := ode.NewParams(m)
		par.FixedH = h

		sol, err := ode.NewSolver(par, prob.System)
		if err != nil {
			return OrderEstimate{}, err
		}

		y := make([]float64, len(prob.Y0))
		copy(y, prob.Y0)
		if err := sol.Solve(ctx, y, prob.X0, prob.Xf); err != nil {
			return OrderEstimate{}, err
		}

		worst := 0.0
		for i := range y {
			if diff := math.Abs(y[i] - ref[i]); diff > worst {
				worst = diff
			}
		}
		if worst == 0 {
			// Exact to the last bit; carries no information for the fit.
			continue
		}

		// The loop divides the interval evenly, so record the step it
		// actually took rather than the one requested.
		nsteps := math.Ceil((prob.Xf - prob.X0) / h)
		est.Steps = append(est.Steps, (prob.Xf-prob.X0)/nsteps)
		est.Errors = append(est.Errors, worst)
	}

	if len(est.Steps) < 2 {
		return est, fmt.Errorf("analysis: not enough error samples for a fit")
	}

	logH := make([]float64, len(est.Steps))
	logE := make([]float64, len(est.Steps))
	for i := range est.Steps {
		logH[i] = math.Log(est.Steps[i])
		logE[i] = math.Log(est.Errors[i])
	}
	_, slope := stat.LinearRegression(logH, logE, nil, false)
	est.Order = slope

	return est, nil
}
