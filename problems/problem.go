// Package problems bundles classic initial value problems used to exercise
// and benchmark the solvers: linear test equations with closed-form
// solutions, celestial mechanics orbits and the usual chaotic suspects.
package problems

import (
	"fmt"
	"sort"

	"github.com/odelab/odelab/ode"
)

// Problem is a ready-to-integrate initial value problem. Exact is nil when no
// closed-form solution exists; Energy is nil when the system has no conserved
// quantity worth tracking.
type Problem struct {
	Name   string
	System ode.System
	Y0     []float64
	X0, Xf float64

	// Exact returns the analytic solution at x.
	Exact func(x float64) []float64

	// Energy returns the conserved quantity of a state.
	Energy func(y []float64) float64
}

// Clone returns a copy of the initial state, safe to hand to a solver.
func (p Problem) Clone() []float64 {
	return append([]float64(nil), p.Y0...)
}

var registry = map[string]func() Problem{
	"decay":     func() Problem { return Decay(-1) },
	"harmonic":  func() Problem { return Harmonic(1) },
	"hw11":      func() Problem { return HairerWanner11() },
	"vanderpol": func() Problem { return VanDerPol(1) },
	"lorenz":    func() Problem { return Lorenz(10, 28, 8.0/3.0) },
	"rossler":   func() Problem { return Rossler(0.2, 0.2, 5.7) },
	"duffing":   func() Problem { return Duffing(0.3, -1, 1, 0.5, 1.2) },
	"arenstorf": func() Problem { return Arenstorf() },
	"twobody":   func() Problem { return TwoBody() },
}

// Get returns the named problem with its canonical parameters.
func Get(name string) (Problem, error) {
	factory, ok := registry[name]
	if !ok {
		return Problem{}, fmt.Errorf("problems: unknown problem %q", name)
	}
	return factory(), nil
}

// Names lists the registered problems in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
