package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/odelab/odelab/ode"
)

const (
	DefaultProblem  = "harmonic"
	DefaultMethod   = "dopri5"
	DefaultAbsTol   = 1e-6
	DefaultRelTol   = 1e-6
	DefaultMaxSteps = 100000
	DefaultFormat   = "csv"
)

type Config struct {
	Problem  string       `yaml:"problem"`
	Method   string       `yaml:"method"`
	AbsTol   float64      `yaml:"abs_tol"`
	RelTol   float64      `yaml:"rel_tol"`
	InitialH float64      `yaml:"initial_h"`
	FixedH   float64      `yaml:"fixed_h"`
	MaxSteps int          `yaml:"max_steps"`
	DenseDx  float64      `yaml:"dense_dx"`
	Span     SpanConfig   `yaml:"span"`
	Y0       []float64    `yaml:"y0"`
	Output   OutputConfig `yaml:"output"`
	Verbose  bool         `yaml:"verbose"`
}

// SpanConfig overrides the integration interval of the selected problem.
// An empty span (x0 == xf) keeps the problem's own interval.
type SpanConfig struct {
	X0 float64 `yaml:"x0"`
	Xf float64 `yaml:"xf"`
}

type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
	Plot   string `yaml:"plot"`
}

func DefaultConfig() *Config {
	return &Config{
		Problem:  DefaultProblem,
		Method:   DefaultMethod,
		AbsTol:   DefaultAbsTol,
		RelTol:   DefaultRelTol,
		MaxSteps: DefaultMaxSteps,
		Output: OutputConfig{
			Format: DefaultFormat,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// HasSpan reports whether the config overrides the problem interval.
func (c *Config) HasSpan() bool {
	return c.Span.Xf != c.Span.X0
}

// Params converts the run configuration into solver parameters. Fields left
// at zero fall back to the defaults of the selected method.
func (c *Config) Params() (ode.Params, error) {
	m, err := ode.ParseMethod(c.Method)
	if err != nil {
		return ode.Params{}, err
	}
	p := ode.NewParams(m)
	if c.AbsTol > 0 || c.RelTol > 0 {
		abs, rel := c.AbsTol, c.RelTol
		if abs == 0 {
			abs = rel
		}
		if rel == 0 {
			rel = abs
		}
		if err := p.SetTolerances(abs, rel); err != nil {
			return ode.Params{}, err
		}
	}
	if c.InitialH > 0 {
		p.InitialH = c.InitialH
	}
	if c.FixedH > 0 {
		p.FixedH = c.FixedH
	}
	if c.MaxSteps > 0 {
		p.MaxSteps = c.MaxSteps
	}
	if c.DenseDx > 0 {
		p.DenseDx = c.DenseDx
	}
	p.Verbose = c.Verbose
	return p, nil
}
