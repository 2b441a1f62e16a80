package metrics

// Metric accumulates a scalar diagnostic over the output points of a run.
type Metric interface {
	Name() string
	Observe(x float64, y []float64)
	Value() float64
	Reset()
}

// ObserveAll feeds one output point to every metric.
func ObserveAll(ms []Metric, x float64, y []float64) {
	for _, m := range ms {
		m.Observe(x, y)
	}
}
