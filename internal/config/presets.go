package config

import "sort"

var Presets = map[string]map[string]*Config{
	"harmonic": {
		"default": {
			Problem: "harmonic", Method: "dopri5", AbsTol: 1e-9, RelTol: 1e-9,
			DenseDx: 0.05,
		},
		"loose": {
			Problem: "harmonic", Method: "dopri5", AbsTol: 1e-4, RelTol: 1e-4,
		},
		"fixed": {
			Problem: "harmonic", Method: "rk4", FixedH: 0.01,
		},
	},
	"decay": {
		"default": {
			Problem: "decay", Method: "dopri5", AbsTol: 1e-8, RelTol: 1e-8,
		},
	},
	"hw11": {
		"transient": {
			Problem: "hw11", Method: "dopri5", AbsTol: 1e-8, RelTol: 1e-8,
			DenseDx: 0.01,
		},
	},
	"arenstorf": {
		"orbit": {
			Problem: "arenstorf", Method: "dopri8", AbsTol: 1e-11, RelTol: 1e-11,
			DenseDx: 0.1,
		},
		"coarse": {
			Problem: "arenstorf", Method: "dopri5", AbsTol: 1e-7, RelTol: 1e-7,
		},
	},
	"twobody": {
		"circle": {
			Problem: "twobody", Method: "dopri8", AbsTol: 1e-10, RelTol: 1e-10,
			DenseDx: 0.05,
		},
	},
	"vanderpol": {
		"relaxation": {
			Problem: "vanderpol", Method: "dopri5", AbsTol: 1e-8, RelTol: 1e-8,
		},
		"tight": {
			Problem: "vanderpol", Method: "dopri8", AbsTol: 1e-10, RelTol: 1e-10,
		},
	},
	"lorenz": {
		"butterfly": {
			Problem: "lorenz", Method: "dopri5", AbsTol: 1e-9, RelTol: 1e-9,
			Span: SpanConfig{Xf: 25}, DenseDx: 0.01,
		},
		"short": {
			Problem: "lorenz", Method: "dopri5", AbsTol: 1e-8, RelTol: 1e-8,
			Span: SpanConfig{Xf: 5},
		},
	},
	"rossler": {
		"band": {
			Problem: "rossler", Method: "dopri5", AbsTol: 1e-9, RelTol: 1e-9,
			Span: SpanConfig{Xf: 100}, DenseDx: 0.05,
		},
	},
	"duffing": {
		"chaotic": {
			Problem: "duffing", Method: "dopri5", AbsTol: 1e-9, RelTol: 1e-9,
			DenseDx: 0.02,
		},
	},
}

func GetPreset(problem, preset string) *Config {
	problemPresets, ok := Presets[problem]
	if !ok {
		return nil
	}
	cfg, ok := problemPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(problem string) []string {
	problemPresets, ok := Presets[problem]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(problemPresets))
	for name := range problemPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
