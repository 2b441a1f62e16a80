package ode

// Stats collects counters and diagnostics from one Solve call.
type Stats struct {
	// NFcnEval counts right-hand side evaluations, including those spent on
	// the automatic initial step estimate and on dense output stages.
	NFcnEval int `json:"n_fcn_eval"`

	// NSteps counts step attempts; NAccepted and NRejected split them.
	// Rejections before the first acceptance are not counted.
	NSteps    int `json:"n_steps"`
	NAccepted int `json:"n_accepted"`
	NRejected int `json:"n_rejected"`

	// NDenseEval counts interpolated dense output evaluations.
	NDenseEval int `json:"n_dense_eval"`

	// LastH is the size of the last accepted step; HOpt is the controller's
	// estimate for the next one.
	LastH float64 `json:"last_h"`
	HOpt  float64 `json:"h_opt"`

	// StiffnessDetected reports that the stiffness heuristic flagged the
	// problem, with StiffnessX the position of the first persistent flag.
	StiffnessDetected bool    `json:"stiffness_detected"`
	StiffnessX        float64 `json:"stiffness_x"`
}

// workspace holds the controller state threaded through step, accept and
// reject decisions.
type workspace struct {
	RelError      float64 // scaled error estimate of the latest step
	RelErrorPrev  float64 // floored estimate of the previous accepted step
	HNew          float64 // next step size proposed by the controller
	FirstStep     bool
	FollowsReject bool // the latest attempt follows a rejection

	Stats Stats

	stiffYes int // consecutive stiffness flags
	stiffNot int // consecutive calm checks
}

func (w *workspace) reset(hini float64) {
	*w = workspace{HNew: hini, FirstStep: true}
}
