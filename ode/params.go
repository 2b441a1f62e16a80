package ode

import "fmt"

// macheps is the 64-bit floating point machine epsilon.
const macheps = 2.220446049250313e-16

// Params configures the solver. Zero values are not usable directly; obtain
// defaults from NewParams and override selected fields before constructing a
// Solver.
type Params struct {
	// Method selects the Runge-Kutta scheme.
	Method Method

	// AbsTol and RelTol are the absolute and relative error tolerances used
	// to scale the embedded error estimate.
	AbsTol float64
	RelTol float64

	// Hmin is the smallest step size the adaptive loop will attempt before
	// giving up with ErrStepTooSmall.
	Hmin float64

	// InitialH is the trial size of the first step. Zero requests an
	// automatic estimate from two right-hand side evaluations.
	InitialH float64

	// FixedH disables the step controller and integrates with equal steps of
	// roughly this size. Required for methods without an embedded estimator.
	FixedH float64

	// MaxSteps bounds the total number of step attempts, accepted or not.
	MaxSteps int

	// Mmin, Mmax and Mfac shape the step size controller: a new step is
	// confined to [Mmin·h, Mmax·h] and scaled by the safety factor Mfac.
	Mmin float64
	Mmax float64
	Mfac float64

	// MfirstRej shrinks the very first step by this factor when it is
	// rejected, instead of trusting the controller. Zero disables.
	MfirstRej float64

	// StabBeta is the Lund stabilization exponent; StabBetaM weights its
	// contribution to the controller exponent. Both zero disable
	// stabilization.
	StabBeta  float64
	StabBetaM float64

	// RelErrPrevMin floors the previous relative error used by Lund
	// stabilization, so one very accurate step cannot unduly inflate the next.
	RelErrPrevMin float64

	// StiffNstp is the stiffness check cadence in accepted steps; zero
	// disables detection. StiffHlim is the h·ρ threshold, StiffNyes the
	// number of consecutive flagged checks that mark the run stiff and
	// StiffNnot the number of calm checks that clear the streak.
	StiffNstp int
	StiffHlim float64
	StiffNyes int
	StiffNnot int

	// DenseDx is the spacing of interpolated outputs within accepted steps;
	// zero disables the dense output walk.
	DenseDx float64

	// Verbose makes the solver log every accepted and rejected step.
	Verbose bool
}

// NewParams returns default parameters for the given method. The stabilization
// weight and stiffness threshold follow Hairer's settings for the two
// Dormand-Prince methods and are zero elsewhere.
func NewParams(method Method) Params {
	p := Params{
		Method:        method,
		AbsTol:        1e-4,
		RelTol:        1e-4,
		Hmin:          1e-10,
		InitialH:      1e-4,
		MaxSteps:      1000,
		Mmin:          0.125,
		Mmax:          5.0,
		Mfac:          0.9,
		MfirstRej:     0.1,
		StabBeta:      0.04,
		RelErrPrevMin: 1e-4,
		StiffNstp:     1,
		StiffNyes:     15,
		StiffNnot:     6,
	}
	switch method {
	case DoPri5:
		p.StabBetaM = 0.75
		p.StiffHlim = 3.25
	case DoPri8:
		p.StabBetaM = 0.2
		p.StiffHlim = 6.1
	}
	return p
}

// SetTolerances sets both tolerances and validates them.
func (p *Params) SetTolerances(abs, rel float64) error {
	if abs <= 0 {
		return fmt.Errorf("%w: absolute tolerance must be positive", ErrInvalidParams)
	}
	if abs <= 10*macheps {
		return fmt.Errorf("%w: absolute tolerance %g is too close to machine epsilon", ErrInvalidParams, abs)
	}
	if rel <= 0 {
		return fmt.Errorf("%w: relative tolerance must be positive", ErrInvalidParams)
	}
	p.AbsTol = abs
	p.RelTol = rel
	return nil
}

func (p *Params) validate() error {
	if err := p.SetTolerances(p.AbsTol, p.RelTol); err != nil {
		return err
	}
	if p.Hmin <= 0 {
		return fmt.Errorf("%w: Hmin must be positive", ErrInvalidParams)
	}
	if p.MaxSteps <= 0 {
		return fmt.Errorf("%w: MaxSteps must be positive", ErrInvalidParams)
	}
	if p.Mmin <= 0 || p.Mmin >= 1 {
		return fmt.Errorf("%w: Mmin must be within (0, 1)", ErrInvalidParams)
	}
	if p.Mmax <= 1 {
		return fmt.Errorf("%w: Mmax must be greater than 1", ErrInvalidParams)
	}
	if p.Mfac <= 0 || p.Mfac > 1 {
		return fmt.Errorf("%w: Mfac must be within (0, 1]", ErrInvalidParams)
	}
	if p.FixedH < 0 {
		return fmt.Errorf("%w: FixedH must not be negative", ErrInvalidParams)
	}
	if p.DenseDx < 0 {
		return fmt.Errorf("%w: DenseDx must not be negative", ErrInvalidParams)
	}
	return nil
}
