package ode

import (
	"errors"
	"fmt"
)

// Domain errors for solver construction and integration.
var (
	// ErrMethodUnavailable indicates a method the explicit engine cannot run
	// (implicit schemes, or forward Euler which has no practical use here).
	ErrMethodUnavailable = errors.New("ode: method is not supported by the explicit Runge-Kutta engine")

	// ErrNoEmbedded indicates adaptive stepping was requested for a method
	// without an embedded error estimator.
	ErrNoEmbedded = errors.New("ode: adaptive stepping requires an embedded error estimator (set FixedH)")

	// ErrNoDense indicates dense output was requested for a method without
	// interpolation coefficients.
	ErrNoDense = errors.New("ode: method has no dense output coefficients")

	// ErrDenseNotEnabled indicates a dense output callback was set without
	// enabling dense output through DenseDx.
	ErrDenseNotEnabled = errors.New("ode: dense output callback requires DenseDx > 0")

	// ErrMassMatrix indicates a mass matrix was supplied; explicit methods
	// integrate y' = f(x, y) only.
	ErrMassMatrix = errors.New("ode: mass matrix is not supported by explicit methods")

	// ErrStepTooSmall indicates the adaptive step size fell below Hmin.
	ErrStepTooSmall = errors.New("ode: step size fell below Hmin")

	// ErrTooManySteps indicates MaxSteps was reached before xf.
	ErrTooManySteps = errors.New("ode: maximum number of steps exceeded")

	// ErrNotFinite indicates the solution or error estimate left the range of
	// finite floating point values.
	ErrNotFinite = errors.New("ode: solution diverged (NaN or Inf detected)")

	// ErrDimension indicates mismatched state and system dimensions.
	ErrDimension = errors.New("ode: dimension mismatch between state and system")

	// ErrInvalidParams indicates a Params field outside its valid range.
	ErrInvalidParams = errors.New("ode: invalid solver parameters")
)

// StepError wraps an error with the integration position where it occurred.
type StepError struct {
	Step int     // attempted step count at failure
	X    float64 // left end of the failing step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d at x=%g: %v", e.Step, e.X, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
