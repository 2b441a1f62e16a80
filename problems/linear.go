package problems

import (
	"math"

	"github.com/odelab/odelab/ode"
)

// Decay is the scalar test equation y' = λy with y(0) = 1.
func Decay(lambda float64) Problem {
	return Problem{
		Name: "decay",
		System: ode.NewSystem(1, func(f []float64, x float64, y []float64) error {
			f[0] = lambda * y[0]
			return nil
		}),
		Y0: []float64{1},
		X0: 0,
		Xf: 1,
		Exact: func(x float64) []float64 {
			return []float64{math.Exp(lambda * x)}
		},
	}
}

// Harmonic is the oscillator y'' = -ω²y started at rest offset, integrated
// over one period. State is [position, velocity].
func Harmonic(omega float64) Problem {
	w2 := omega * omega
	return Problem{
		Name: "harmonic",
		System: ode.NewSystem(2, func(f []float64, x float64, y []float64) error {
			f[0] = y[1]
			f[1] = -w2 * y[0]
			return nil
		}),
		Y0: []float64{1, 0},
		X0: 0,
		Xf: 2 * math.Pi / omega,
		Exact: func(x float64) []float64 {
			return []float64{math.Cos(omega * x), -omega * math.Sin(omega * x)}
		},
		Energy: func(y []float64) float64 {
			return 0.5 * (y[1]*y[1] + w2*y[0]*y[0])
		},
	}
}

// HairerWanner11 is equation (1.1) from Hairer & Wanner volume II:
// y' = -50(y - cos x), y(0) = 0. Mildly stiff; the transient decays within a
// fraction of the interval and the smooth solution follows cos x.
func HairerWanner11() Problem {
	return Problem{
		Name: "hw11",
		System: ode.NewSystem(1, func(f []float64, x float64, y []float64) error {
			f[0] = -50 * (y[0] - math.Cos(x))
			return nil
		}),
		Y0: []float64{0},
		X0: 0,
		Xf: 1.5,
		Exact: func(x float64) []float64 {
			c := 2500.0 / 2501.0
			return []float64{
				c*math.Cos(x) + (50.0/2501.0)*math.Sin(x) - c*math.Exp(-50*x),
			}
		},
	}
}
