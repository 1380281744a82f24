// Package formula evaluates user-supplied scalar expressions of time over a
// time grid.
//
// Expressions are compiled once by expr-lang against a closed environment:
// the free variable t, the constants pi and e, and a fixed set of
// elementary functions. Nothing else is resolvable, so an expression can
// compute a number and do nothing more.
package formula

import (
	"errors"
	"fmt"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/model"
)

// Variable is the name of the free time variable.
const Variable = "t"

var (
	errEmpty     = errors.New("empty expression")
	errNonFinite = errors.New("math domain error (result is not finite)")
)

// builtins are the expr-lang builtins left enabled.
var builtins = []string{"abs", "ceil", "floor", "round", "max", "min"}

// Evaluator turns an expression into one value per grid point.
type Evaluator interface {
	Evaluate(expression string, t []float64) ([]float64, error)
}

// Expr is the expr-lang backed Evaluator.
type Expr struct{}

func NewExpr() *Expr {
	return &Expr{}
}

func environment() map[string]any {
	return map[string]any{
		Variable: 0.0,
		"pi":     math.Pi,
		"e":      math.E,
		"sin":    math.Sin,
		"cos":    math.Cos,
		"tan":    math.Tan,
		"asin":   math.Asin,
		"acos":   math.Acos,
		"atan":   math.Atan,
		"sinh":   math.Sinh,
		"cosh":   math.Cosh,
		"tanh":   math.Tanh,
		"exp":    math.Exp,
		"log":    math.Log,
		"log10":  math.Log10,
		"log2":   math.Log2,
		"sqrt":   math.Sqrt,
		"pow":    math.Pow,
	}
}

// Compile checks the expression against the closed environment.
func Compile(expression string) (*vm.Program, error) {
	if expression == "" {
		return nil, errEmpty
	}
	opts := []expr.Option{
		expr.Env(environment()),
		expr.AsFloat64(),
		expr.DisableAllBuiltins(),
	}
	for _, name := range builtins {
		opts = append(opts, expr.EnableBuiltin(name))
	}
	return expr.Compile(expression, opts...)
}

// Evaluate compiles expression once and applies it to every point of t.
// Failures are returned as *model.EvaluationError.
func (x *Expr) Evaluate(expression string, t []float64) ([]float64, error) {
	program, err := Compile(expression)
	if err != nil {
		return nil, &model.EvaluationError{Expr: expression, Wrapped: err}
	}

	env := environment()
	machine := vm.VM{}
	out := make([]float64, len(t))

	for i, ti := range t {
		env[Variable] = ti
		res, err := machine.Run(program, env)
		if err != nil {
			return nil, &model.EvaluationError{Expr: expression, Time: ti, AtPoint: true, Wrapped: err}
		}
		v, ok := res.(float64)
		if !ok {
			return nil, &model.EvaluationError{Expr: expression, Time: ti, AtPoint: true,
				Wrapped: fmt.Errorf("expected a number, got %T", res)}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &model.EvaluationError{Expr: expression, Time: ti, AtPoint: true, Wrapped: errNonFinite}
		}
		out[i] = v
	}

	return out, nil
}

// ClampNonNegative replaces negative values with zero in place.
func ClampNonNegative(values []float64) []float64 {
	for i, v := range values {
		values[i] = math.Max(v, 0)
	}
	return values
}
