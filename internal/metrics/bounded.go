package metrics

import "math"

// Bounded reports the fraction of observed points whose components all stay
// below a threshold in absolute value.
type Bounded struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewBounded(threshold float64) *Bounded {
	return &Bounded{name: "bounded", threshold: threshold}
}

func (b *Bounded) Name() string { return b.name }

func (b *Bounded) Observe(x float64, y []float64) {
	b.samples++
	for _, v := range y {
		if math.Abs(v) > b.threshold {
			b.violations++
			break
		}
	}
}

func (b *Bounded) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Bounded) Reset() {
	b.violations = 0
	b.samples = 0
}
