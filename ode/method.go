package ode

import "fmt"

// Method identifies a Runge-Kutta scheme.
type Method int

const (
	// Radau5 is the implicit Radau IIA method of order 5. Listed for
	// completeness; the explicit engine rejects it at construction.
	Radau5 Method = iota

	// BwEuler is the implicit backward Euler method (order 1). Rejected at
	// construction.
	BwEuler

	// FwEuler is the explicit forward Euler method (order 1). It carries no
	// embedded estimator and no real accuracy; rejected at construction.
	FwEuler

	// Rk2 is the explicit midpoint method (order 2).
	Rk2

	// Rk3 is Kutta's third-order method.
	Rk3

	// Heun3 is Heun's third-order method.
	Heun3

	// Rk4 is the classical fourth-order Runge-Kutta method.
	Rk4

	// Rk4alt is the fourth-order 3/8 rule.
	Rk4alt

	// MdEuler is the modified Euler pair 2(1).
	MdEuler

	// Merson4 is Merson's embedded pair 4("5"): the estimator reaches order 5
	// only for linear constant-coefficient problems, otherwise order 3.
	Merson4

	// Zonneveld4 is Zonneveld's embedded pair 4(3).
	Zonneveld4

	// Fehlberg4 is the Runge-Kutta-Fehlberg pair 4(5).
	Fehlberg4

	// DoPri5 is the Dormand-Prince pair 5(4) with dense output (FSAL).
	DoPri5

	// Verner6 is Verner's pair 6(5) (the DVERK coefficients).
	Verner6

	// Fehlberg7 is the Runge-Kutta-Fehlberg pair 7(8).
	Fehlberg7

	// DoPri8 is the Dormand-Prince 8(5,3) method with a blended 5th/3rd order
	// estimator and dense output (Hairer's DOP853 coefficients).
	DoPri8
)

// Info describes the structural properties of a method.
type Info struct {
	Order          int  // order of the propagated solution
	EstimatorOrder int  // order of the embedded estimator; 0 when absent
	Stages         int  // number of stages per step
	Implicit       bool // requires nonlinear iterations per step
	Embedded       bool // carries an embedded error estimator
	FSAL           bool // first stage of a step reuses the last stage of the previous one
	DenseOutput    bool // interpolation coefficients available
}

var methodInfo = map[Method]Info{
	Radau5:     {Order: 5, EstimatorOrder: 4, Stages: 3, Implicit: true, Embedded: true},
	BwEuler:    {Order: 1, Stages: 1, Implicit: true},
	FwEuler:    {Order: 1, Stages: 1},
	Rk2:        {Order: 2, Stages: 2},
	Rk3:        {Order: 3, Stages: 3},
	Heun3:      {Order: 3, Stages: 3},
	Rk4:        {Order: 4, Stages: 4},
	Rk4alt:     {Order: 4, Stages: 4},
	MdEuler:    {Order: 2, EstimatorOrder: 1, Stages: 2, Embedded: true},
	Merson4:    {Order: 4, EstimatorOrder: 3, Stages: 5, Embedded: true},
	Zonneveld4: {Order: 4, EstimatorOrder: 3, Stages: 5, Embedded: true},
	Fehlberg4:  {Order: 4, EstimatorOrder: 5, Stages: 6, Embedded: true},
	DoPri5:     {Order: 5, EstimatorOrder: 4, Stages: 7, Embedded: true, FSAL: true, DenseOutput: true},
	Verner6:    {Order: 6, EstimatorOrder: 5, Stages: 8, Embedded: true},
	Fehlberg7:  {Order: 7, EstimatorOrder: 8, Stages: 13, Embedded: true},
	DoPri8:     {Order: 8, EstimatorOrder: 7, Stages: 12, Embedded: true, DenseOutput: true},
}

var methodNames = map[Method]string{
	Radau5:     "radau5",
	BwEuler:    "bweuler",
	FwEuler:    "fweuler",
	Rk2:        "rk2",
	Rk3:        "rk3",
	Heun3:      "heun3",
	Rk4:        "rk4",
	Rk4alt:     "rk4alt",
	MdEuler:    "mdeuler",
	Merson4:    "merson4",
	Zonneveld4: "zonneveld4",
	Fehlberg4:  "fehlberg4",
	DoPri5:     "dopri5",
	Verner6:    "verner6",
	Fehlberg7:  "fehlberg7",
	DoPri8:     "dopri8",
}

// Info returns the structural properties of m.
func (m Method) Info() Info {
	return methodInfo[m]
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod resolves a method from its lowercase name ("dopri5", "rk4", ...).
func ParseMethod(name string) (Method, error) {
	for m, n := range methodNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("ode: unknown method %q", name)
}

// ExplicitMethods lists the methods the explicit engine accepts, ordered by
// increasing order.
func ExplicitMethods() []Method {
	return []Method{
		MdEuler, Rk2, Rk3, Heun3,
		Rk4, Rk4alt, Merson4, Zonneveld4, Fehlberg4,
		DoPri5, Verner6, Fehlberg7, DoPri8,
	}
}
