package ode

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// erkStepper advances one explicit Runge-Kutta step at a time. It owns the
// stage work arrays and the step size controller; the Solver drives it and
// decides acceptance.
type erkStepper struct {
	sys  System
	par  Params
	tab  *tableau
	info Info

	nstage int
	lund   float64 // controller exponent, Lund-stabilized
	dMin   float64 // 1/Mmin, largest allowed shrink divisor
	dMax   float64 // 1/Mmax, smallest allowed divisor (largest growth)

	k [][]float64 // stage derivatives
	v [][]float64 // stage states
	w []float64   // proposed update

	stiffRatio float64 // latest h·ρ estimate, embedded methods only

	errModel errorModel
	dense    denseOutput
}

func newERKStepper(par Params, sys System) (*erkStepper, error) {
	if sys.Ndim <= 0 || sys.Fcn == nil {
		return nil, fmt.Errorf("%w: system needs a positive dimension and a right-hand side", ErrDimension)
	}
	if sys.Mass != nil {
		return nil, ErrMassMatrix
	}
	tab, err := tableauFor(par.Method)
	if err != nil {
		return nil, err
	}
	info := par.Method.Info()
	if !info.Embedded && par.FixedH == 0 {
		return nil, ErrNoEmbedded
	}
	if par.DenseDx > 0 && !info.DenseOutput {
		return nil, ErrNoDense
	}

	o := &erkStepper{
		sys:    sys,
		par:    par,
		tab:    tab,
		info:   info,
		nstage: tab.nstage(),
		dMin:   1.0 / par.Mmin,
		dMax:   1.0 / par.Mmax,
		k:      make([][]float64, tab.nstage()),
		v:      make([][]float64, tab.nstage()),
		w:      make([]float64, sys.Ndim),
	}
	for i := range o.k {
		o.k[i] = make([]float64, sys.Ndim)
		o.v[i] = make([]float64, sys.Ndim)
	}
	if info.Embedded {
		o.lund = 1.0 / float64(info.EstimatorOrder+1)
		if par.StabBeta > 0 {
			o.lund -= par.StabBeta * par.StabBetaM
		}
	}

	switch {
	case par.FixedH > 0 || !info.Embedded:
		o.errModel = noEstimator{}
	case par.Method == DoPri8:
		o.errModel = &dualNormEstimator{bk: make([]float64, sys.Ndim)}
	default:
		o.errModel = rmsEstimator{}
	}

	if par.DenseDx > 0 {
		switch par.Method {
		case DoPri5:
			o.dense = newDopri5Dense(sys.Ndim)
		case DoPri8:
			o.dense = newDopri8Dense(sys.Ndim)
		}
	}
	return o, nil
}

// step evaluates the stages over [x, x+h] and fills work.RelError. The first
// stage is reused from the previous step for FSAL methods, except on the very
// first step and right after a rejection, where the derivative at (x, y) must
// be recomputed.
func (o *erkStepper) step(work *workspace, x float64, y []float64, h float64) error {
	if work.FirstStep || work.FollowsReject || !o.info.FSAL {
		copy(o.v[0], y)
		if err := o.sys.Fcn(o.k[0], x, y); err != nil {
			return err
		}
		work.Stats.NFcnEval++
	}
	for i := 1; i < o.nstage; i++ {
		copy(o.v[i], y)
		for j := 0; j < i; j++ {
			if aij := o.tab.a.At(i, j); aij != 0 {
				floats.AddScaled(o.v[i], h*aij, o.k[j])
			}
		}
		if err := o.sys.Fcn(o.k[i], x+o.tab.c[i]*h, o.v[i]); err != nil {
			return err
		}
		work.Stats.NFcnEval++
	}
	work.RelError = o.errModel.estimate(o, y, h)
	if o.info.Embedded {
		o.updateStiffnessRatio(h)
	}
	return nil
}

// updateStiffnessRatio estimates h times the dominant eigenvalue from the
// last two stages. The previous value is retained when the stage states
// coincide.
func (o *erkStepper) updateStiffnessRatio(h float64) {
	n := o.nstage
	var snum, sden float64
	for m := 0; m < o.sys.Ndim; m++ {
		dk := o.k[n-1][m] - o.k[n-2][m]
		dv := o.v[n-1][m] - o.v[n-2][m]
		snum += dk * dk
		sden += dv * dv
	}
	if sden > 0 {
		o.stiffRatio = math.Abs(h) * math.Sqrt(snum/sden)
	}
}

// accept commits the proposed update into y and proposes the next step size.
// For FSAL methods the last stage derivative becomes the first stage of the
// next step.
func (o *erkStepper) accept(work *workspace, h float64, y []float64) {
	copy(y, o.w)
	if o.info.FSAL {
		o.k[0], o.k[o.nstage-1] = o.k[o.nstage-1], o.k[0]
	}
	if !o.info.Embedded {
		work.HNew = h
		return
	}
	d := math.Pow(work.RelError, o.lund)
	if o.par.StabBeta > 0 && work.RelErrorPrev > 0 {
		d /= math.Pow(work.RelErrorPrev, o.par.StabBeta)
	}
	d = math.Max(o.dMax, math.Min(o.dMin, d/o.par.Mfac))
	work.HNew = h / d
}

// reject proposes a smaller step size after a failed error test.
func (o *erkStepper) reject(work *workspace, h float64) {
	d := math.Pow(work.RelError, o.lund) / o.par.Mfac
	work.HNew = h / math.Min(o.dMin, d)
}

// denseUpdate rebuilds the interpolation polynomial for the step just
// completed. It must run before accept, while y still holds the left end
// state and the stage slots are unswapped.
func (o *erkStepper) denseUpdate(work *workspace, x float64, y []float64, h float64) error {
	return o.dense.update(o, work, x, y, h)
}

// denseEvaluate interpolates the solution at xOut inside the accepted step
// ending at xNew.
func (o *erkStepper) denseEvaluate(yOut []float64, xOut, xNew, h float64) {
	o.dense.evaluate(yOut, xOut, xNew, h)
}

// errorModel computes the proposed update w and the scaled error estimate of
// a completed stage evaluation.
type errorModel interface {
	estimate(o *erkStepper, y []float64, h float64) float64
}

// noEstimator serves fixed-step integration: it forms the update and reports
// no error.
type noEstimator struct{}

func (noEstimator) estimate(o *erkStepper, y []float64, h float64) float64 {
	copy(o.w, y)
	for i := 0; i < o.nstage; i++ {
		if bi := o.tab.b[i]; bi != 0 {
			floats.AddScaled(o.w, h*bi, o.k[i])
		}
	}
	return 0
}

// rmsEstimator scales the embedded weight difference by the mixed tolerance
// and returns its root mean square over the dimensions.
type rmsEstimator struct{}

func (rmsEstimator) estimate(o *erkStepper, y []float64, h float64) float64 {
	copy(o.w, y)
	for i := 0; i < o.nstage; i++ {
		if bi := o.tab.b[i]; bi != 0 {
			floats.AddScaled(o.w, h*bi, o.k[i])
		}
	}
	var sum float64
	for m := 0; m < o.sys.Ndim; m++ {
		var errm float64
		for i := 0; i < o.nstage; i++ {
			if ei := o.tab.e[i]; ei != 0 {
				errm += ei * o.k[i][m]
			}
		}
		sk := o.par.AbsTol + o.par.RelTol*math.Max(math.Abs(y[m]), math.Abs(o.w[m]))
		sum += (errm / sk) * (errm / sk)
	}
	return math.Max(1e-10, math.Abs(h)*math.Sqrt(sum/float64(o.sys.Ndim)))
}

// dualNormEstimator implements the blended 5th/3rd order estimate of DOP853:
// the 5th order norm is damped by the 3rd order one so that a freakishly
// small high-order estimate cannot open up the step size.
type dualNormEstimator struct {
	bk []float64 // unscaled update Σ b·k
}

func (e *dualNormEstimator) estimate(o *erkStepper, y []float64, h float64) float64 {
	for m := range e.bk {
		e.bk[m] = 0
	}
	for i := 0; i < o.nstage; i++ {
		if bi := o.tab.b[i]; bi != 0 {
			floats.AddScaled(e.bk, bi, o.k[i])
		}
	}
	copy(o.w, y)
	floats.AddScaled(o.w, h, e.bk)

	var err3, err5 float64
	for m := 0; m < o.sys.Ndim; m++ {
		sk := o.par.AbsTol + o.par.RelTol*math.Max(math.Abs(y[m]), math.Abs(o.w[m]))
		erra := e.bk[m] - dopri8Bhh1*o.k[0][m] - dopri8Bhh2*o.k[8][m] - dopri8Bhh3*o.k[11][m]
		var errb float64
		for i := 0; i < o.nstage; i++ {
			if ei := o.tab.e[i]; ei != 0 {
				errb += ei * o.k[i][m]
			}
		}
		err3 += (erra / sk) * (erra / sk)
		err5 += (errb / sk) * (errb / sk)
	}
	den := err5 + 0.01*err3
	if den <= 0 {
		den = 1
	}
	return math.Abs(h) * err5 * math.Sqrt(1.0/(float64(o.sys.Ndim)*den))
}
