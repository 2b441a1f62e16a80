package experiment

import (
	"context"
	"fmt"
	"os"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"gopkg.in/yaml.v3"

	"github.com/odelab/odelab/internal/config"
)

// Scenario is a scripted sequence of runs loaded from YAML.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run of a scenario: a full run configuration plus a
// label under which its artifacts are saved.
type ScenarioStep struct {
	config.Config `yaml:",inline"`
	SaveAs        string `yaml:"save_as"`
}

// LoadScenario reads a scenario file and fills in the usual defaults for
// fields the steps leave out.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}

	for i := range sc.Steps {
		if sc.Steps[i].Problem == "" {
			sc.Steps[i].Problem = config.DefaultProblem
		}
		if sc.Steps[i].Method == "" {
			sc.Steps[i].Method = config.DefaultMethod
		}
	}
	return &sc, nil
}

// RunScenario executes all steps in order and returns one result per step.
// It stops at the first failing step, returning the results gathered so far.
func RunScenario(ctx context.Context, logger log.Logger, sc *Scenario, reg *Registry) ([]Result, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	results := make([]Result, 0, len(sc.Steps))
	for i := range sc.Steps {
		step := &sc.Steps[i]
		level.Info(logger).Log("msg", "running scenario step",
			"scenario", sc.Name, "step", i+1, "of", len(sc.Steps),
			"problem", step.Problem, "method", step.Method)

		exp := New(&step.Config)
		exp.SetLogger(logger)
		if err := exp.Setup(reg); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		res, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, *res)
	}
	return results, nil
}
