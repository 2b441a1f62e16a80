package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odelab/odelab/ode"
	"github.com/odelab/odelab/problems"
)

func TestLyapunovDecay(t *testing.T) {
	sys := ode.NewSystem(1, func(f []float64, x float64, y []float64) error {
		f[0] = -y[0]
		return nil
	})

	// Separations contract like exp(-x), so the exponent is -1.
	got, err := Lyapunov(context.Background(), sys, []float64{1}, 0, 0.01, 5, 1e-8)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, got, 1e-6)
}

func TestLyapunovHarmonic(t *testing.T) {
	prob := problems.Harmonic(1)

	// Rotation preserves separations, so the exponent vanishes.
	got, err := Lyapunov(context.Background(), prob.System, prob.Y0, prob.X0, 0.01, 10, 1e-8)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, 1e-9)
}

func TestLyapunovLorenz(t *testing.T) {
	prob := problems.Lorenz(10, 28, 8.0/3.0)

	got, err := Lyapunov(context.Background(), prob.System, prob.Y0, prob.X0, 0.01, 20, 1e-6)
	require.NoError(t, err)
	assert.Greater(t, got, 0.3, "Lorenz should report a positive exponent")
}

func TestLyapunov_BadArgs(t *testing.T) {
	prob := problems.Harmonic(1)

	_, err := Lyapunov(context.Background(), prob.System, []float64{1}, 0, 0.01, 1, 1e-8)
	assert.Error(t, err, "wrong dimension")

	_, err = Lyapunov(context.Background(), prob.System, prob.Y0, 0, 0, 1, 1e-8)
	assert.Error(t, err, "zero interval")
}

func TestMeasureOrderRk4(t *testing.T) {
	prob := problems.Harmonic(1)
	hs := []float64{0.2, 0.1, 0.05, 0.025}

	est, err := MeasureOrder(context.Background(), ode.Rk4, prob, hs)
	require.NoError(t, err)
	require.Len(t, est.Errors, len(hs))

	for i := 1; i < len(est.Errors); i++ {
		assert.Less(t, est.Errors[i], est.Errors[i-1], "errors should shrink with the step")
	}
	assert.InDelta(t, 4.0, est.Order, 0.3)
}

func TestMeasureOrderMdEuler(t *testing.T) {
	prob := problems.Harmonic(1)
	hs := []float64{0.2, 0.1, 0.05, 0.025}

	est, err := MeasureOrder(context.Background(), ode.MdEuler, prob, hs)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, est.Order, 0.3)
}

func TestMeasureOrder_NoExact(t *testing.T) {
	prob := problems.VanDerPol(1)

	_, err := MeasureOrder(context.Background(), ode.Rk4, prob, []float64{0.1, 0.05})
	assert.Error(t, err)
}

func TestMeasureOrder_TooFewSteps(t *testing.T) {
	prob := problems.Harmonic(1)

	_, err := MeasureOrder(context.Background(), ode.Rk4, prob, []float64{0.1})
	assert.Error(t, err)
}

func TestSpectrumSine(t *testing.T) {
	n := 256
	dx := 0.01
	f0 := 25.0 / (float64(n) * dx) // lands exactly on bin 25

	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * f0 * float64(i) * dx)
	}

	freqs, amps := Spectrum(samples, dx)
	require.Len(t, amps, n/2+1)
	assert.InDelta(t, f0, freqs[25], 1e-12)
	assert.InDelta(t, 1.0, amps[25], 1e-9)

	assert.InDelta(t, f0, DominantFrequency(samples, dx), 1e-12)
}

func TestSpectrumDC(t *testing.T) {
	samples := make([]float64, 128)
	for i := range samples {
		samples[i] = 2.0
	}

	_, amps := Spectrum(samples, 0.5)
	assert.InDelta(t, 2.0, amps[0], 1e-9)
	for k := 1; k < len(amps); k++ {
		assert.Less(t, amps[k], 1e-9)
	}
}

func TestSpectrumEmpty(t *testing.T) {
	freqs, amps := Spectrum(nil, 0.1)
	assert.Nil(t, freqs)
	assert.Nil(t, amps)
}

func TestDominantFrequencyTwoTones(t *testing.T) {
	n := 512
	dx := 0.02
	f1 := 10.0 / (float64(n) * dx)
	f2 := 40.0 / (float64(n) * dx)

	samples := make([]float64, n)
	for i := range samples {
		x := float64(i) * dx
		samples[i] = math.Sin(2*math.Pi*f1*x) + 0.4*math.Sin(2*math.Pi*f2*x)
	}

	assert.InDelta(t, f1, DominantFrequency(samples, dx), 1e-12)
}
