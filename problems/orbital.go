package problems

import (
	"math"

	"github.com/odelab/odelab/ode"
)

// Arenstorf orbit constants: Earth-Moon mass ratio and the period of the
// closed three-loop orbit from Hairer, Norsett & Wanner.
const (
	arenstorfMu     = 0.012277471
	arenstorfPeriod = 17.0652165601579625588917206249
)

// Arenstorf is the restricted three-body problem in rotating coordinates,
// started on a periodic orbit. State is [x, y, x', y'].
func Arenstorf() Problem {
	mu := arenstorfMu
	mp := 1 - mu
	return Problem{
		Name: "arenstorf",
		System: ode.NewSystem(4, func(f []float64, x float64, y []float64) error {
			r1 := (y[0]+mu)*(y[0]+mu) + y[1]*y[1]
			r2 := (y[0]-mp)*(y[0]-mp) + y[1]*y[1]
			d1 := r1 * math.Sqrt(r1)
			d2 := r2 * math.Sqrt(r2)
			f[0] = y[2]
			f[1] = y[3]
			f[2] = y[0] + 2*y[3] - mp*(y[0]+mu)/d1 - mu*(y[0]-mp)/d2
			f[3] = y[1] - 2*y[2] - mp*y[1]/d1 - mu*y[1]/d2
			return nil
		}),
		Y0: []float64{0.994, 0, 0, -2.00158510637908252240537862224},
		X0: 0,
		Xf: arenstorfPeriod,
	}
}

// TwoBody is the Kepler problem on a circular orbit of radius one, so the
// exact solution is trigonometric and the energy is exactly -1/2. State is
// [x, y, x', y'].
func TwoBody() Problem {
	return Problem{
		Name: "twobody",
		System: ode.NewSystem(4, func(f []float64, x float64, y []float64) error {
			r2 := y[0]*y[0] + y[1]*y[1]
			r3 := r2 * math.Sqrt(r2)
			f[0] = y[2]
			f[1] = y[3]
			f[2] = -y[0] / r3
			f[3] = -y[1] / r3
			return nil
		}),
		Y0: []float64{1, 0, 0, 1},
		X0: 0,
		Xf: 2 * math.Pi,
		Exact: func(x float64) []float64 {
			return []float64{math.Cos(x), math.Sin(x), -math.Sin(x), math.Cos(x)}
		},
		Energy: func(y []float64) float64 {
			v2 := y[2]*y[2] + y[3]*y[3]
			r := math.Hypot(y[0], y[1])
			return 0.5*v2 - 1/r
		},
	}
}
