package ode

import (
	"context"
	"fmt"
	"math"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"gonum.org/v1/gonum/floats"
)

// StepOutputFunc receives every accepted step: the accepted step count, the
// step size just taken, the new position and the state there. The slice is
// reused between calls; copy it to retain it. Returning an error aborts the
// integration.
type StepOutputFunc func(step int, h, x float64, y []float64) error

// DenseOutputFunc receives interpolated points spaced DenseDx apart inside
// accepted steps. Same reuse and abort semantics as StepOutputFunc.
type DenseOutputFunc func(step int, h, x float64, y []float64) error

// Solver integrates a System over an interval with an explicit Runge-Kutta
// method. A Solver is not safe for concurrent use; construct one per
// goroutine.
type Solver struct {
	par  Params
	sys  System
	stp  *erkStepper
	work workspace

	logger   log.Logger
	stepOut  StepOutputFunc
	denseOut DenseOutputFunc

	yOut []float64 // dense evaluation scratch
}

// NewSolver validates the parameters against the system and method and
// returns a ready solver.
func NewSolver(par Params, sys System) (*Solver, error) {
	if err := par.validate(); err != nil {
		return nil, err
	}
	stp, err := newERKStepper(par, sys)
	if err != nil {
		return nil, err
	}
	return &Solver{
		par:    par,
		sys:    sys,
		stp:    stp,
		logger: log.NewNopLogger(),
		yOut:   make([]float64, sys.Ndim),
	}, nil
}

// SetLogger routes step and summary diagnostics through l. The default
// discards everything.
func (o *Solver) SetLogger(l log.Logger) {
	if l == nil {
		l = log.NewNopLogger()
	}
	o.logger = l
}

// OnStep registers the accepted-step callback.
func (o *Solver) OnStep(fn StepOutputFunc) { o.stepOut = fn }

// OnDense registers the dense output callback; it requires Params.DenseDx > 0
// and a method with interpolation coefficients.
func (o *Solver) OnDense(fn DenseOutputFunc) { o.denseOut = fn }

// Stats returns the counters of the latest Solve call.
func (o *Solver) Stats() Stats { return o.work.Stats }

// Solve integrates y from x0 to xf in place. On failure y holds the state at
// the last accepted step and the returned error wraps the failing position.
func (o *Solver) Solve(ctx context.Context, y []float64, x0, xf float64) error {
	if len(y) != o.sys.Ndim {
		return fmt.Errorf("%w: len(y)=%d, system dimension is %d", ErrDimension, len(y), o.sys.Ndim)
	}
	if xf <= x0 {
		return fmt.Errorf("%w: empty interval [%g, %g]", ErrInvalidParams, x0, xf)
	}
	if o.denseOut != nil && o.par.DenseDx <= 0 {
		return ErrDenseNotEnabled
	}
	if o.par.FixedH > 0 {
		return o.solveFixed(ctx, y, x0, xf)
	}
	return o.solveAdaptive(ctx, y, x0, xf)
}

func (o *Solver) solveAdaptive(ctx context.Context, y []float64, x0, xf float64) error {
	o.work.reset(0)
	hini := o.par.InitialH
	if hini == 0 {
		h, err := o.initialStep(y, x0, xf)
		if err != nil {
			return o.stepError(x0, err)
		}
		hini = h
	}
	o.work.HNew = math.Min(hini, xf-x0)

	x := x0
	xDense := x0 + o.par.DenseDx
	if err := o.emitInitial(x, y); err != nil {
		return err
	}

	last := false
	for {
		select {
		case <-ctx.Done():
			return o.stepError(x, ctx.Err())
		default:
		}
		if o.work.Stats.NSteps >= o.par.MaxSteps {
			return o.stepError(x, ErrTooManySteps)
		}
		h := o.work.HNew
		if x+h >= xf {
			last = true
			h = xf - x
		}
		if !last && h < o.par.Hmin {
			return o.stepError(x, ErrStepTooSmall)
		}
		o.work.Stats.NSteps++

		if err := o.stp.step(&o.work, x, y, h); err != nil {
			return o.stepError(x, err)
		}
		if math.IsNaN(o.work.RelError) || math.IsInf(o.work.RelError, 0) {
			return o.stepError(x, ErrNotFinite)
		}

		if o.work.RelError > 1 {
			if o.work.Stats.NAccepted > 0 {
				o.work.Stats.NRejected++
			}
			o.stp.reject(&o.work, h)
			if o.work.FirstStep && o.par.MfirstRej > 0 {
				o.work.HNew = h * o.par.MfirstRej
			}
			o.work.FollowsReject = true
			last = false
			if o.par.Verbose {
				level.Debug(o.logger).Log("msg", "step rejected", "x", x, "h", h,
					"rel_err", o.work.RelError, "h_new", o.work.HNew)
			}
			continue
		}

		if o.denseActive() {
			if err := o.stp.denseUpdate(&o.work, x, y, h); err != nil {
				return o.stepError(x, err)
			}
		}
		o.stp.accept(&o.work, h, y)
		for _, v := range y {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return o.stepError(x, ErrNotFinite)
			}
		}
		x += h
		o.work.Stats.NAccepted++
		o.work.Stats.LastH = h
		o.work.RelErrorPrev = math.Max(o.par.RelErrPrevMin, o.work.RelError)
		o.work.FirstStep = false
		o.work.FollowsReject = false
		if o.par.Verbose {
			level.Debug(o.logger).Log("msg", "step accepted", "step", o.work.Stats.NAccepted,
				"x", x, "h", h, "rel_err", o.work.RelError)
		}
		o.checkStiffness(x)
		if err := o.emit(o.work.Stats.NAccepted, h, x, y, &xDense); err != nil {
			return o.stepError(x, err)
		}
		if last {
			break
		}
	}
	o.work.Stats.HOpt = o.work.HNew
	o.logSummary()
	return nil
}

// solveFixed integrates with equal steps and no error control. The interval
// is split into ceil((xf-x0)/FixedH) steps of identical size.
func (o *Solver) solveFixed(ctx context.Context, y []float64, x0, xf float64) error {
	nsteps := int(math.Ceil((xf - x0) / o.par.FixedH))
	h := (xf - x0) / float64(nsteps)
	o.work.reset(h)

	x := x0
	xDense := x0 + o.par.DenseDx
	if err := o.emitInitial(x, y); err != nil {
		return err
	}

	for n := 0; n < nsteps; n++ {
		select {
		case <-ctx.Done():
			return o.stepError(x, ctx.Err())
		default:
		}
		o.work.Stats.NSteps++
		if err := o.stp.step(&o.work, x, y, h); err != nil {
			return o.stepError(x, err)
		}
		if o.denseActive() {
			if err := o.stp.denseUpdate(&o.work, x, y, h); err != nil {
				return o.stepError(x, err)
			}
		}
		o.stp.accept(&o.work, h, y)
		for _, v := range y {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return o.stepError(x, ErrNotFinite)
			}
		}
		x = x0 + float64(n+1)*h
		o.work.Stats.NAccepted++
		o.work.Stats.LastH = h
		o.work.FirstStep = false
		if err := o.emit(o.work.Stats.NAccepted, h, x, y, &xDense); err != nil {
			return o.stepError(x, err)
		}
	}
	o.work.Stats.HOpt = h
	o.logSummary()
	return nil
}

// initialStep estimates a first trial step from two right-hand side
// evaluations, following Hairer's HINIT: a step small enough that the Euler
// increment stays within tolerance, refined by a second derivative estimate.
func (o *Solver) initialStep(y []float64, x0, xf float64) (float64, error) {
	f0 := make([]float64, o.sys.Ndim)
	if err := o.sys.Fcn(f0, x0, y); err != nil {
		return 0, err
	}
	o.work.Stats.NFcnEval++

	var dnf, dny float64
	for m, ym := range y {
		sk := o.par.AbsTol + o.par.RelTol*math.Abs(ym)
		dnf += (f0[m] / sk) * (f0[m] / sk)
		dny += (ym / sk) * (ym / sk)
	}
	h0 := 1e-6
	if dnf > 1e-10 && dny > 1e-10 {
		h0 = 0.01 * math.Sqrt(dny/dnf)
	}
	h0 = math.Min(h0, xf-x0)

	y1 := make([]float64, o.sys.Ndim)
	copy(y1, y)
	floats.AddScaled(y1, h0, f0)
	f1 := make([]float64, o.sys.Ndim)
	if err := o.sys.Fcn(f1, x0+h0, y1); err != nil {
		return 0, err
	}
	o.work.Stats.NFcnEval++

	var der2 float64
	for m := range f0 {
		sk := o.par.AbsTol + o.par.RelTol*math.Abs(y[m])
		d := (f1[m] - f0[m]) / sk
		der2 += d * d
	}
	der2 = math.Sqrt(der2) / h0

	der12 := math.Max(der2, math.Sqrt(dnf))
	h1 := math.Max(1e-6, h0*1e-3)
	if der12 > 1e-15 {
		h1 = math.Pow(0.01/der12, 1.0/float64(o.stp.info.Order))
	}
	return math.Min(math.Min(100*h0, h1), xf-x0), nil
}

// checkStiffness applies Hairer's heuristic on the h·ρ ratio computed by the
// stepper: StiffNyes consecutive flagged checks mark the run stiff,
// StiffNnot calm checks clear the streak. Detection is advisory and sticky;
// it never aborts the run.
func (o *Solver) checkStiffness(x float64) {
	p := &o.par
	if p.StiffNstp <= 0 || p.StiffHlim <= 0 || o.work.Stats.StiffnessDetected {
		return
	}
	if o.work.Stats.NAccepted%p.StiffNstp != 0 && o.work.stiffYes == 0 {
		return
	}
	if o.stp.stiffRatio > p.StiffHlim {
		o.work.stiffNot = 0
		o.work.stiffYes++
		if o.work.stiffYes >= p.StiffNyes {
			o.work.Stats.StiffnessDetected = true
			o.work.Stats.StiffnessX = x
			level.Warn(o.logger).Log("msg", "problem appears stiff", "x", x,
				"h_rho", o.stp.stiffRatio, "method", o.par.Method.String())
		}
	} else if o.work.stiffYes > 0 {
		o.work.stiffNot++
		if o.work.stiffNot >= p.StiffNnot {
			o.work.stiffYes = 0
			o.work.stiffNot = 0
		}
	}
}

func (o *Solver) denseActive() bool {
	return o.stp.dense != nil && o.denseOut != nil
}

// emitInitial reports the starting point through both callbacks as step 0.
func (o *Solver) emitInitial(x float64, y []float64) error {
	if o.stepOut != nil {
		if err := o.stepOut(0, o.work.HNew, x, y); err != nil {
			return err
		}
	}
	if o.denseOut != nil {
		if err := o.denseOut(0, o.work.HNew, x, y); err != nil {
			return err
		}
	}
	return nil
}

// emit runs the accepted-step callback and walks the dense cursor up to the
// new position. The cursor comparison tolerates rounding at the interval end.
func (o *Solver) emit(step int, h, xNew float64, y []float64, xDense *float64) error {
	if o.stepOut != nil {
		if err := o.stepOut(step, h, xNew, y); err != nil {
			return err
		}
	}
	if !o.denseActive() {
		return nil
	}
	tol := 1e-10 * math.Max(1, math.Abs(xNew))
	for *xDense <= xNew+tol {
		o.stp.denseEvaluate(o.yOut, *xDense, xNew, h)
		o.work.Stats.NDenseEval++
		if err := o.denseOut(step, h, *xDense, o.yOut); err != nil {
			return err
		}
		*xDense += o.par.DenseDx
	}
	return nil
}

func (o *Solver) stepError(x float64, err error) error {
	return &StepError{Step: o.work.Stats.NSteps, X: x, Err: err}
}

func (o *Solver) logSummary() {
	s := o.work.Stats
	level.Debug(o.logger).Log("msg", "solve finished", "method", o.par.Method.String(),
		"n_steps", s.NSteps, "n_accepted", s.NAccepted, "n_rejected", s.NRejected,
		"n_fcn_eval", s.NFcnEval, "n_dense_eval", s.NDenseEval,
		"last_h", s.LastH, "h_opt", s.HOpt)
}
