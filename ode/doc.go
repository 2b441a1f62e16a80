// Package ode solves initial value problems for systems of ordinary
// differential equations using explicit Runge-Kutta methods.
//
// The package centers on a small set of types:
//
//   - [System]: the problem definition (dimension and right-hand side dy/dx = f(x, y))
//   - [Method]: one of the supported Runge-Kutta schemes, orders 2 through 8
//   - [Params]: tolerances and step-control settings with per-method defaults
//   - [Solver]: the driver that advances the solution from x0 to xf
//
// Embedded pairs such as [DoPri5] and [DoPri8] run with adaptive step-size
// control driven by a Lund-stabilized proportional-integral controller.
// Classic fixed-step schemes ([Rk4], [Heun3], ...) require FixedH to be set.
// DoPri5 and DoPri8 additionally offer dense output: a polynomial interpolant
// over each accepted step that yields solution values at arbitrary interior
// points without extra steps.
//
// # Example
//
//	sys := ode.NewSystem(1, func(f []float64, x float64, y []float64) error {
//		f[0] = -y[0]
//		return nil
//	})
//	par := ode.NewParams(ode.DoPri5)
//	solver, _ := ode.NewSolver(par, sys)
//	y := []float64{1.0}
//	err := solver.Solve(context.Background(), y, 0, 1)
//
// # Thread Safety
//
// Solver instances are NOT thread-safe: each holds a preallocated workspace
// reused across steps. For concurrent runs create one Solver per goroutine.
package ode
