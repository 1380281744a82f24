// Package model defines the immutable inputs and outputs of a short-rate
// simulation run.
//
// The package holds the resolved run configuration and the containers the
// engine produces:
//
//   - [Config]: validated model and run parameters
//   - [TimeGrid]: uniform time discretisation of [0, T]
//   - [Path]: one simulated rate trajectory
//   - [Ensemble]: all paths of a run, indexed by (time, path)
//
// # Errors
//
// Failures are reported through [ConfigError], [EvaluationError] and
// [NumericError]. Each unwraps to a sentinel ([ErrConfig], [ErrEvaluation],
// [ErrNumeric]) so callers can branch with errors.Is.
package model
