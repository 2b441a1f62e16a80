package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/odelab/odelab/ode"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Problem != "harmonic" {
		t.Errorf("expected problem harmonic, got %s", cfg.Problem)
	}
	if cfg.Method != "dopri5" {
		t.Errorf("expected method dopri5, got %s", cfg.Method)
	}
	if cfg.AbsTol <= 0 || cfg.RelTol <= 0 {
		t.Error("tolerances should be positive")
	}
	if cfg.MaxSteps <= 0 {
		t.Error("max steps should be positive")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("harmonic", "loose")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.AbsTol != 1e-4 {
		t.Errorf("expected abs_tol 1e-4, got %g", cfg.AbsTol)
	}

	cfg = GetPreset("arenstorf", "orbit")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Method != "dopri8" {
		t.Errorf("expected method dopri8, got %s", cfg.Method)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg := GetPreset("harmonic", "nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg = GetPreset("nonexistent", "loose")
	if cfg != nil {
		t.Error("expected nil for nonexistent problem")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("harmonic")
	if len(presets) == 0 {
		t.Error("expected presets for harmonic")
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] >= presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}

	presets = ListPresets("nonexistent")
	if presets != nil {
		t.Error("expected nil for nonexistent problem")
	}
}

func TestParams(t *testing.T) {
	tests := []struct {
		name   string
		cfg    *Config
		method ode.Method
		absTol float64
		relTol float64
		fixedH float64
	}{
		{"defaults", DefaultConfig(), ode.DoPri5, 1e-6, 1e-6, 0},
		{"fixed preset", GetPreset("harmonic", "fixed"), ode.Rk4, 1e-4, 1e-4, 0.01},
		{"mirrored abs", &Config{Method: "dopri8", AbsTol: 1e-8}, ode.DoPri8, 1e-8, 1e-8, 0},
		{"mirrored rel", &Config{Method: "verner6", RelTol: 1e-7}, ode.Verner6, 1e-7, 1e-7, 0},
	}

	for _, tt := range tests {
		p, err := tt.cfg.Params()
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if p.Method != tt.method {
			t.Errorf("%s: expected method %v, got %v", tt.name, tt.method, p.Method)
		}
		if p.AbsTol != tt.absTol || p.RelTol != tt.relTol {
			t.Errorf("%s: expected tolerances %g/%g, got %g/%g",
				tt.name, tt.absTol, tt.relTol, p.AbsTol, p.RelTol)
		}
		if p.FixedH != tt.fixedH {
			t.Errorf("%s: expected fixed_h %g, got %g", tt.name, tt.fixedH, p.FixedH)
		}
	}
}

func TestParams_UnknownMethod(t *testing.T) {
	cfg := &Config{Method: "rk99"}
	if _, err := cfg.Params(); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte("method: dopri8\nabs_tol: 1e-9\nspan:\n  xf: 3.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Method != "dopri8" {
		t.Errorf("expected method dopri8, got %s", cfg.Method)
	}
	if cfg.AbsTol != 1e-9 {
		t.Errorf("expected abs_tol 1e-9, got %g", cfg.AbsTol)
	}
	if cfg.Problem != "harmonic" {
		t.Errorf("expected default problem kept, got %s", cfg.Problem)
	}
	if !cfg.HasSpan() || cfg.Span.Xf != 3.5 {
		t.Errorf("expected span override to 3.5, got %+v", cfg.Span)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	want := DefaultConfig()
	want.Problem = "lorenz"
	want.Span = SpanConfig{Xf: 25}
	want.Y0 = []float64{1, 1, 1}
	want.Output.Dir = "out"

	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if got.Problem != want.Problem || got.Span != want.Span {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
	if len(got.Y0) != 3 || got.Y0[0] != 1 {
		t.Errorf("expected y0 [1 1 1], got %v", got.Y0)
	}
	if got.Output.Dir != "out" {
		t.Errorf("expected output dir out, got %s", got.Output.Dir)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
