package model

import (
	"errors"
	"fmt"
)

// Domain errors for simulation requests.
var (
	// ErrConfig indicates a parameter violates a structural constraint.
	ErrConfig = errors.New("ratesim: invalid configuration")

	// ErrEvaluation indicates a user expression failed to compile or evaluate.
	ErrEvaluation = errors.New("ratesim: expression evaluation failed")

	// ErrNumeric indicates a simulated value became NaN or Inf.
	ErrNumeric = errors.New("ratesim: non-finite value during integration")

	// ErrCanceled indicates the run was stopped before all paths completed.
	ErrCanceled = errors.New("ratesim: simulation canceled")
)

// ConfigError names the offending parameter and the constraint it broke.
type ConfigError struct {
	Field      string
	Constraint string
	Value      any
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: must be %s (got %v)", e.Field, e.Constraint, e.Value)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// EvaluationError wraps a failure of the expression named by Target
// ("theta" or "sigma").
type EvaluationError struct {
	Target  string
	Expr    string
	Time    float64
	AtPoint bool
	Wrapped error
}

func (e *EvaluationError) Error() string {
	if e.AtPoint {
		return fmt.Sprintf("%s expression %q at t=%g: %v", e.Target, e.Expr, e.Time, e.Wrapped)
	}
	return fmt.Sprintf("%s expression %q: %v", e.Target, e.Expr, e.Wrapped)
}

func (e *EvaluationError) Unwrap() []error { return []error{ErrEvaluation, e.Wrapped} }

// NumericError records where a path left the representable range.
type NumericError struct {
	Path  int
	Step  int
	Time  float64
	Value float64
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("path %d step %d (t=%.4f): rate became %v", e.Path+1, e.Step, e.Time, e.Value)
}

func (e *NumericError) Unwrap() error { return ErrNumeric }
