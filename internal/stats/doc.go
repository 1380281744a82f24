// Package stats reduces a path ensemble to per-time-step summaries.
//
// Quantiles use the continuous linear-interpolation estimator: for a sorted
// sample x of size n and probability p, h = (n-1)p and the result
// interpolates between x[floor(h)] and x[floor(h)+1]. This is the default of
// most numerical environments, so bands are reproducible across
// implementations.
package stats
