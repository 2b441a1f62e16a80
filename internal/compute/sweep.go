package compute

import (
	"context"
	"fmt"
	"sync"

	"github.com/odelab/odelab/ode"
)

// Task describes one integration in a batch.
type Task struct {
	Name   string
	Params ode.Params
	Sys    ode.System
	Y0     []float64
	X0, Xf float64
}

// Result carries the outcome of one task.
type Result struct {
	Name  string
	Y     []float64
	Stats ode.Stats
	Err   error
}

// Sweep integrates all tasks concurrently, one goroutine per task, and
// returns the outcomes in task order. Individual failures land in the
// matching Result rather than aborting the batch.
func Sweep(ctx context.Context, tasks []Task) []Result {
	results := make([]Result, len(tasks))

	var wg sync.WaitGroup
	for i := range tasks {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = runTask(ctx, tasks[idx])
		}(i)
	}
	wg.Wait()

	return results
}

func runTask(ctx context.Context, task Task) Result {
	res := Result{Name: task.Name}

	sol, err := ode.NewSolver(task.Params, task.Sys)
	if err != nil {
		res.Err = err
		return res
	}

	y := make([]float64, len(task.Y0))
	copy(y, task.Y0)

	res.Err = sol.Solve(ctx, y, task.X0, task.Xf)
	res.Y = y
	res.Stats = sol.Stats()
	return res
}

// ToleranceLadder builds one task per tolerance, sharing the method, system
// and interval. Useful for work-precision studies.
func ToleranceLadder(m ode.Method, sys ode.System, y0 []float64, x0, xf float64, tols []float64) []Task {
	tasks := make([]Task, 0, len(tols))
	for _, tol := range tols {
		par := ode.NewParams(m)
		par.AbsTol = tol
		par.RelTol = tol
		par.MaxSteps = 1000000

		tasks = append(tasks, Task{
			Name:   fmt.Sprintf("%v@%g", m, tol),
			Params: par,
			Sys:    sys,
			Y0:     y0,
			X0:     x0,
			Xf:     xf,
		})
	}
	return tasks
}

// Ensemble integrates the same system from many starting states under shared
// parameters. Scratch vectors come from a pool so large ensembles do not
// allocate one per member.
func Ensemble(ctx context.Context, par ode.Params, sys ode.System, starts [][]float64, x0, xf float64) []Result {
	results := make([]Result, len(starts))
	pool := NewVecPool(sys.Ndim)

	var wg sync.WaitGroup
	for i := range starts {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			if len(starts[idx]) != sys.Ndim {
				results[idx] = Result{Err: fmt.Errorf("compute: start %d has %d components, system wants %d",
					idx, len(starts[idx]), sys.Ndim)}
				return
			}

			sol, err := ode.NewSolver(par, sys)
			if err != nil {
				results[idx] = Result{Err: err}
				return
			}

			y := pool.GetAndCopy(starts[idx])
			err = sol.Solve(ctx, y, x0, xf)

			results[idx] = Result{
				Y:     append([]float64(nil), y...),
				Stats: sol.Stats(),
				Err:   err,
			}
			pool.Put(y)
		}(i)
	}
	wg.Wait()

	return results
}
