package problems

import (
	"math"

	"github.com/odelab/odelab/ode"
)

// VanDerPol is the van der Pol oscillator in Lienard form,
// y'' = ((1-y²)y' - y)/ε. Small ε makes it a standard stiffness torture
// test; ε = 1 is the classic mildly nonlinear oscillator.
func VanDerPol(eps float64) Problem {
	return Problem{
		Name: "vanderpol",
		System: ode.NewSystem(2, func(f []float64, x float64, y []float64) error {
			f[0] = y[1]
			f[1] = ((1-y[0]*y[0])*y[1] - y[0]) / eps
			return nil
		}),
		Y0: []float64{2, -0.6},
		X0: 0,
		Xf: 2,
	}
}

// Lorenz is the Lorenz attractor with the conventional parameter order
// (σ, ρ, β).
func Lorenz(sigma, rho, beta float64) Problem {
	return Problem{
		Name: "lorenz",
		System: ode.NewSystem(3, func(f []float64, x float64, y []float64) error {
			f[0] = sigma * (y[1] - y[0])
			f[1] = y[0]*(rho-y[2]) - y[1]
			f[2] = y[0]*y[1] - beta*y[2]
			return nil
		}),
		Y0: []float64{1, 1, 1},
		X0: 0,
		Xf: 10,
	}
}

// Rossler is the Rossler attractor; the classic (0.2, 0.2, 5.7) parameters
// give a single-scroll chaotic band.
func Rossler(a, b, c float64) Problem {
	return Problem{
		Name: "rossler",
		System: ode.NewSystem(3, func(f []float64, x float64, y []float64) error {
			f[0] = -y[1] - y[2]
			f[1] = y[0] + a*y[1]
			f[2] = b + y[2]*(y[0]-c)
			return nil
		}),
		Y0: []float64{1, 1, 1},
		X0: 0,
		Xf: 50,
	}
}

// Duffing is the periodically forced Duffing oscillator
// y'' + δy' + αy + βy³ = γ cos(ωx), a double-well potential for α < 0.
func Duffing(delta, alpha, beta, gamma, omega float64) Problem {
	return Problem{
		Name: "duffing",
		System: ode.NewSystem(2, func(f []float64, x float64, y []float64) error {
			f[0] = y[1]
			f[1] = -delta*y[1] - alpha*y[0] - beta*y[0]*y[0]*y[0] + gamma*math.Cos(omega*x)
			return nil
		}),
		Y0: []float64{1, 0},
		X0: 0,
		Xf: 40,
	}
}
