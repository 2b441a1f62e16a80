// Package compute runs batches of integrations in parallel.
//
// The package fans independent solver runs out, one goroutine each:
//
//   - [Sweep]: run a slice of [Task] concurrently
//   - [ToleranceLadder]: the same problem at a descending series of tolerances
//   - [Ensemble]: the same problem from many initial conditions
//
// Results come back index-aligned with their tasks, so a failed run never
// shifts its neighbors. Per-task errors land in [Result].Err rather than
// aborting the batch.
//
// # Example
//
//	tasks := compute.ToleranceLadder(ode.DoPri5, sys, y0, 0, 10, []float64{1e-4, 1e-6, 1e-8})
//	results := compute.Sweep(ctx, tasks)
//	for i, r := range results {
//	    fmt.Println(tasks[i].Name, r.Stats.NSteps, r.Err)
//	}
package compute
