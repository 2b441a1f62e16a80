package ode

import "gonum.org/v1/gonum/floats"

// denseOutput interpolates the solution inside an accepted step. update is
// called once per accepted step with the left end state still in y; evaluate
// may then be called any number of times for points inside the step.
type denseOutput interface {
	update(o *erkStepper, work *workspace, x float64, y []float64, h float64) error
	evaluate(yOut []float64, xOut, xNew, h float64)
}

// dopri5Dense is the quartic interpolant of DOPRI5, built from the step end
// states and derivatives plus one extra weighted stage combination.
type dopri5Dense struct {
	d [5][]float64
}

func newDopri5Dense(ndim int) *dopri5Dense {
	o := &dopri5Dense{}
	for i := range o.d {
		o.d[i] = make([]float64, ndim)
	}
	return o
}

func (o *dopri5Dense) update(s *erkStepper, _ *workspace, _ float64, y []float64, h float64) error {
	last := s.nstage - 1
	for m := range y {
		d1 := s.w[m] - y[m]
		d2 := h*s.k[0][m] - d1
		var dd float64
		for j := 0; j < s.nstage; j++ {
			dd += s.tab.d.At(0, j) * s.k[j][m]
		}
		o.d[0][m] = y[m]
		o.d[1][m] = d1
		o.d[2][m] = d2
		o.d[3][m] = d1 - h*s.k[last][m] - d2
		o.d[4][m] = h * dd
	}
	return nil
}

func (o *dopri5Dense) evaluate(yOut []float64, xOut, xNew, h float64) {
	theta := (xOut - (xNew - h)) / h
	u := 1 - theta
	for m := range yOut {
		yOut[m] = o.d[0][m] + theta*(o.d[1][m]+u*(o.d[2][m]+theta*(o.d[3][m]+u*o.d[4][m])))
	}
}

// dopri8Dense is the degree seven interpolant of DOP853. Beyond the regular
// stages it evaluates the right-hand side at three extra abscissae inside the
// step.
type dopri8Dense struct {
	d  [8][]float64
	kd [3][]float64 // extra stage derivatives
	vd []float64    // extra stage state scratch
}

func newDopri8Dense(ndim int) *dopri8Dense {
	o := &dopri8Dense{vd: make([]float64, ndim)}
	for i := range o.d {
		o.d[i] = make([]float64, ndim)
	}
	for i := range o.kd {
		o.kd[i] = make([]float64, ndim)
	}
	return o
}

func (o *dopri8Dense) update(s *erkStepper, work *workspace, x float64, y []float64, h float64) error {
	for m := range y {
		d1 := s.w[m] - y[m]
		d2 := h*s.k[0][m] - d1
		o.d[0][m] = y[m]
		o.d[1][m] = d1
		o.d[2][m] = d2
		o.d[3][m] = d1 - h*s.k[11][m] - d2
	}

	_, cols := s.tab.ad.Dims()
	for r := range o.kd {
		copy(o.vd, y)
		for j := 0; j < cols; j++ {
			if adj := s.tab.ad.At(r, j); adj != 0 {
				floats.AddScaled(o.vd, h*adj, o.stageVec(s, j))
			}
		}
		if err := s.sys.Fcn(o.kd[r], x+s.tab.cd[r]*h, o.vd); err != nil {
			return err
		}
		work.Stats.NFcnEval++
	}

	for r := 0; r < 4; r++ {
		row := o.d[4+r]
		for m := range row {
			row[m] = 0
		}
		for j := 0; j < cols; j++ {
			if dj := s.tab.d.At(r, j); dj != 0 {
				floats.AddScaled(row, dj, o.stageVec(s, j))
			}
		}
		floats.Scale(h, row)
	}
	return nil
}

// stageVec maps a dense table column to a stage derivative: columns 0..11
// are the regular stages, column 12 repeats the last one (standing in for a
// separate end point evaluation) and columns 13..15 are the extra stages.
func (o *dopri8Dense) stageVec(s *erkStepper, j int) []float64 {
	switch {
	case j < 12:
		return s.k[j]
	case j == 12:
		return s.k[11]
	default:
		return o.kd[j-13]
	}
}

func (o *dopri8Dense) evaluate(yOut []float64, xOut, xNew, h float64) {
	theta := (xOut - (xNew - h)) / h
	u := 1 - theta
	for m := range yOut {
		yOut[m] = o.d[0][m] +
			theta*(o.d[1][m]+u*(o.d[2][m]+theta*(o.d[3][m]+u*(o.d[4][m]+theta*(o.d[5][m]+u*(o.d[6][m]+theta*o.d[7][m]))))))
	}
}
