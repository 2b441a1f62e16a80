package ode

import "gonum.org/v1/gonum/mat"

// tableau holds the Butcher arrays of an explicit Runge-Kutta method.
//
// a is strictly lower triangular (stage coefficients), c the stage abscissae
// and b the update weights. For embedded pairs, e = b - bhat is the weight
// difference against the companion estimator. The dense output arrays (ad,
// cd, d) are populated only for methods with interpolation coefficients.
type tableau struct {
	a *mat.Dense
	b []float64
	c []float64
	e []float64

	ad *mat.Dense // extra-stage coefficients (DoPri8)
	cd []float64  // extra-stage abscissae (DoPri8)
	d  *mat.Dense // interpolation weights (DoPri5: 1 row, DoPri8: 4 rows)
}

func (t *tableau) nstage() int { return len(t.b) }

// newTableau assembles a tableau from per-stage rows of a: rows[i] lists
// a[i+1][0..i] (stage 0 has no predecessors).
func newTableau(rows [][]float64, b, c, e []float64) *tableau {
	n := len(b)
	a := mat.NewDense(n, n, nil)
	for i, row := range rows {
		for j, v := range row {
			a.Set(i+1, j, v)
		}
	}
	return &tableau{a: a, b: b, c: c, e: e}
}

// tableauFor returns the Butcher tableau of m, or ErrMethodUnavailable for
// methods the explicit engine does not run.
func tableauFor(m Method) (*tableau, error) {
	switch m {
	case Rk2:
		return rk2Tableau(), nil
	case Rk3:
		return rk3Tableau(), nil
	case Heun3:
		return heun3Tableau(), nil
	case Rk4:
		return rk4Tableau(), nil
	case Rk4alt:
		return rk4altTableau(), nil
	case MdEuler:
		return mdEulerTableau(), nil
	case Merson4:
		return merson4Tableau(), nil
	case Zonneveld4:
		return zonneveld4Tableau(), nil
	case Fehlberg4:
		return fehlberg4Tableau(), nil
	case DoPri5:
		return dopri5Tableau(), nil
	case Verner6:
		return verner6Tableau(), nil
	case Fehlberg7:
		return fehlberg7Tableau(), nil
	case DoPri8:
		return dopri8Tableau(), nil
	}
	return nil, ErrMethodUnavailable
}
