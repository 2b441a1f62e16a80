// Package analysis provides post-run diagnostics for solver output.
//
// The package includes tools for characterizing solutions and methods:
//
//   - [Lyapunov]: largest Lyapunov exponent via trajectory separation
//   - [MeasureOrder]: empirical convergence order of a method
//   - [Spectrum], [DominantFrequency]: amplitude spectra of sampled output
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.Lyapunov(ctx, sys, y0, 0, 0.01, 50, 1e-8)
//	if err == nil && lambda > 0 {
//	    // trajectories diverge exponentially
//	}
package analysis
