package metrics

import "math"

// ExactError tracks the worst componentwise deviation from a reference
// solution over the observed points.
type ExactError struct {
	name     string
	exact    func(float64) []float64
	maxError float64
	samples  int
}

func NewExactError(exact func(float64) []float64) *ExactError {
	return &ExactError{name: "exact_error", exact: exact}
}

func (e *ExactError) Name() string { return e.name }

func (e *ExactError) Observe(x float64, y []float64) {
	if e.exact == nil {
		return
	}
	ref := e.exact(x)
	if len(ref) != len(y) {
		return
	}
	e.samples++
	for i := range y {
		if diff := math.Abs(y[i] - ref[i]); diff > e.maxError {
			e.maxError = diff
		}
	}
}

func (e *ExactError) Value() float64 { return e.maxError }

func (e *ExactError) Reset() {
	e.maxError = 0
	e.samples = 0
}
