package metrics

import "math"

// Drift tracks the maximum relative deviation of a conserved quantity from
// its value at the first observed point.
type Drift struct {
	name     string
	quantity func([]float64) float64
	initial  float64
	maxDrift float64
	samples  int
}

func NewDrift(name string, quantity func([]float64) float64) *Drift {
	return &Drift{name: name, quantity: quantity}
}

func (d *Drift) Name() string { return d.name }

func (d *Drift) Observe(x float64, y []float64) {
	if d.quantity == nil {
		return
	}
	q := d.quantity(y)
	if d.samples == 0 {
		d.initial = q
	}
	d.samples++

	diff := math.Abs(q - d.initial)
	if d.initial != 0 {
		diff /= math.Abs(d.initial)
	}
	if diff > d.maxDrift {
		d.maxDrift = diff
	}
}

func (d *Drift) Value() float64 { return d.maxDrift }

func (d *Drift) Reset() {
	d.initial = 0
	d.maxDrift = 0
	d.samples = 0
}
