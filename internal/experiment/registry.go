package experiment

import (
	"fmt"

	"github.com/odelab/odelab/internal/metrics"
	"github.com/odelab/odelab/ode"
	"github.com/odelab/odelab/problems"
)

// Registry resolves the names appearing in run configurations and scenario
// files into problems, methods and metrics.
type Registry struct {
	metrics map[string]func(problems.Problem) metrics.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func(problems.Problem) metrics.Metric),
	}

	r.metrics["exact_error"] = func(p problems.Problem) metrics.Metric {
		return metrics.NewExactError(p.Exact)
	}
	r.metrics["energy_drift"] = func(p problems.Problem) metrics.Metric {
		return metrics.NewDrift("energy_drift", p.Energy)
	}
	r.metrics["bounded"] = func(p problems.Problem) metrics.Metric {
		return metrics.NewBounded(1e6)
	}

	return r
}

func (r *Registry) GetProblem(name string) (problems.Problem, error) {
	return problems.Get(name)
}

func (r *Registry) GetMethod(name string) (ode.Method, error) {
	return ode.ParseMethod(name)
}

func (r *Registry) GetMetric(name string, prob problems.Problem) (metrics.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(prob), nil
}

func (r *Registry) ListProblems() []string {
	return problems.Names()
}

// DefaultMetrics builds the metrics a problem can support: the exact-error
// tracker when a reference solution exists, the drift tracker when a
// conserved quantity exists and a boundedness check always.
func (r *Registry) DefaultMetrics(prob problems.Problem) []metrics.Metric {
	ms := []metrics.Metric{metrics.NewBounded(1e6)}
	if prob.Exact != nil {
		ms = append(ms, metrics.NewExactError(prob.Exact))
	}
	if prob.Energy != nil {
		ms = append(ms, metrics.NewDrift("energy_drift", prob.Energy))
	}
	return ms
}
