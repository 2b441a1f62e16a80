package compute

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odelab/odelab/ode"
	"github.com/odelab/odelab/problems"
)

func TestVecPool(t *testing.T) {
	pool := NewVecPool(4)

	v1 := pool.Get()
	require.Len(t, v1, 4)

	v1[0] = 1.0
	v1[1] = 2.0
	pool.Put(v1)

	v2 := pool.Get()
	assert.Equal(t, []float64{0, 0, 0, 0}, v2, "pool should hand out zeroed vectors")
}

func TestVecPool_GetAndCopy(t *testing.T) {
	pool := NewVecPool(3)
	src := []float64{1, 2, 3}

	dst := pool.GetAndCopy(src)
	assert.Equal(t, src, dst)

	dst[0] = 99
	assert.Equal(t, 1.0, src[0], "copy must be independent")
}

func TestVecPool_RejectsWrongSize(t *testing.T) {
	pool := NewVecPool(2)
	pool.Put([]float64{1, 2, 3}) // silently dropped

	v := pool.Get()
	assert.Len(t, v, 2)
}

func TestSweepToleranceLadder(t *testing.T) {
	prob := problems.Decay(-1)
	tols := []float64{1e-4, 1e-6, 1e-8}

	tasks := ToleranceLadder(ode.DoPri5, prob.System, prob.Y0, prob.X0, prob.Xf, tols)
	require.Len(t, tasks, 3)
	assert.Equal(t, "dopri5@0.0001", tasks[0].Name)

	results := Sweep(context.Background(), tasks)
	require.Len(t, results, 3)

	exact := prob.Exact(prob.Xf)[0]
	prevSteps := 0
	for i, res := range results {
		require.NoError(t, res.Err, res.Name)
		assert.Less(t, math.Abs(res.Y[0]-exact), 10*tols[i], res.Name)
		assert.GreaterOrEqual(t, res.Stats.NSteps, prevSteps, "tighter tolerance should not take fewer steps")
		prevSteps = res.Stats.NSteps
	}
}

func TestSweepReportsPerTaskErrors(t *testing.T) {
	prob := problems.Decay(-1)

	good := ode.NewParams(ode.DoPri5)
	bad := ode.NewParams(ode.DoPri5)
	bad.AbsTol = -1

	tasks := []Task{
		{Name: "good", Params: good, Sys: prob.System, Y0: prob.Y0, X0: prob.X0, Xf: prob.Xf},
		{Name: "bad", Params: bad, Sys: prob.System, Y0: prob.Y0, X0: prob.X0, Xf: prob.Xf},
	}

	results := Sweep(context.Background(), tasks)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, ode.ErrInvalidParams)
}

func TestSweepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prob := problems.Decay(-1)
	tasks := ToleranceLadder(ode.DoPri5, prob.System, prob.Y0, prob.X0, prob.Xf, []float64{1e-6})

	results := Sweep(ctx, tasks)
	require.Len(t, results, 1)
	assert.True(t, errors.Is(results[0].Err, context.Canceled), "got %v", results[0].Err)
}

func TestEnsembleHarmonic(t *testing.T) {
	prob := problems.Harmonic(1)

	par := ode.NewParams(ode.DoPri5)
	par.AbsTol, par.RelTol = 1e-9, 1e-9
	par.MaxSteps = 100000

	starts := make([][]float64, 8)
	for i := range starts {
		starts[i] = []float64{1 + 0.01*float64(i), 0}
	}

	results := Ensemble(context.Background(), par, prob.System, starts, prob.X0, prob.Xf)
	require.Len(t, results, 8)

	// A full period returns every member to its start.
	for i, res := range results {
		require.NoError(t, res.Err)
		assert.InDelta(t, starts[i][0], res.Y[0], 1e-6)
		assert.InDelta(t, 0, res.Y[1], 1e-6)
	}
}

func TestEnsembleDimensionMismatch(t *testing.T) {
	prob := problems.Harmonic(1)
	par := ode.NewParams(ode.DoPri5)

	results := Ensemble(context.Background(), par, prob.System, [][]float64{{1}, {1, 0}}, 0, 1)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
}
