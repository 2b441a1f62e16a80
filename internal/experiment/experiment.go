package experiment

import (
	"context"
	"fmt"

	"github.com/go-kit/kit/log"

	"github.com/odelab/odelab/internal/config"
	"github.com/odelab/odelab/internal/metrics"
	"github.com/odelab/odelab/ode"
	"github.com/odelab/odelab/problems"
)

// Result is the outcome of a single run: the recorded trajectory, the final
// state, the solver counters and the metric values.
type Result struct {
	Problem string
	Method  string
	X0, Xf  float64
	Y       []float64
	Xs      []float64
	Ys      [][]float64
	Stats   ode.Stats
	Metrics map[string]float64
}

// Experiment wires a run configuration to a problem, a solver and a set of
// metrics, and records the trajectory while solving.
type Experiment struct {
	cfg    *config.Config
	prob   problems.Problem
	par    ode.Params
	sol    *ode.Solver
	ms     []metrics.Metric
	logger log.Logger

	x0, xf float64
	y0     []float64
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg, logger: log.NewNopLogger()}
}

func (e *Experiment) SetLogger(l log.Logger) {
	if l == nil {
		l = log.NewNopLogger()
	}
	e.logger = l
}

// Setup resolves the configuration against the registry and constructs the
// solver. It must run before Run.
func (e *Experiment) Setup(reg *Registry) error {
	prob, err := reg.GetProblem(e.cfg.Problem)
	if err != nil {
		return err
	}

	par, err := e.cfg.Params()
	if err != nil {
		return err
	}

	e.x0, e.xf = prob.X0, prob.Xf
	if e.cfg.HasSpan() {
		e.x0, e.xf = e.cfg.Span.X0, e.cfg.Span.Xf
	}

	e.y0 = append([]float64(nil), prob.Y0...)
	if len(e.cfg.Y0) > 0 {
		if len(e.cfg.Y0) != prob.System.Ndim {
			return fmt.Errorf("y0 override has %d components, problem %s wants %d",
				len(e.cfg.Y0), prob.Name, prob.System.Ndim)
		}
		copy(e.y0, e.cfg.Y0)
	}

	sol, err := ode.NewSolver(par, prob.System)
	if err != nil {
		return err
	}
	sol.SetLogger(e.logger)

	e.prob = prob
	e.par = par
	e.sol = sol
	e.ms = reg.DefaultMetrics(prob)
	return nil
}

// Run integrates the configured problem, recording one trajectory point per
// accepted step, or per dense output point when dense output is enabled.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.sol == nil {
		return nil, fmt.Errorf("experiment not set up")
	}

	for _, m := range e.ms {
		m.Reset()
	}

	res := &Result{
		Problem: e.prob.Name,
		Method:  e.par.Method.String(),
		X0:      e.x0,
		Xf:      e.xf,
		Metrics: make(map[string]float64),
	}

	record := func(step int, h, x float64, y []float64) error {
		res.Xs = append(res.Xs, x)
		res.Ys = append(res.Ys, append([]float64(nil), y...))
		metrics.ObserveAll(e.ms, x, y)
		return nil
	}
	if e.par.DenseDx > 0 {
		e.sol.OnDense(record)
	} else {
		e.sol.OnStep(record)
	}

	y := append([]float64(nil), e.y0...)
	if err := e.sol.Solve(ctx, y, e.x0, e.xf); err != nil {
		return nil, err
	}

	res.Y = y
	res.Stats = e.sol.Stats()
	for _, m := range e.ms {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}

// Solver exposes the underlying solver, for attaching extra callbacks.
func (e *Experiment) Solver() *ode.Solver {
	return e.sol
}
