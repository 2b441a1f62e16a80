package ode

import "gonum.org/v1/gonum/mat"

// Func evaluates the right-hand side of y' = f(x, y), writing the result
// into f. Returning an error aborts the integration.
type Func func(f []float64, x float64, y []float64) error

// JacFunc evaluates J = alpha·df/dy into j. The explicit engine never calls
// it; it is carried so problem definitions remain complete for implicit
// methods.
type JacFunc func(j *mat.Dense, alpha float64, x float64, y []float64) error

// System defines an initial value problem of dimension Ndim. Only Fcn is
// required; Jac and Mass are optional and Mass is rejected by the explicit
// engine.
type System struct {
	Ndim int
	Fcn  Func
	Jac  JacFunc
	Mass *mat.Dense
}

// NewSystem returns a System for the given dimension and right-hand side.
func NewSystem(ndim int, fcn Func) System {
	return System{Ndim: ndim, Fcn: fcn}
}
