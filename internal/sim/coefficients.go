package sim

import (
	"errors"
	"fmt"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/formula"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/model"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/models"
)

// Coefficients are evaluated once per run and shared read-only by all paths.
type Coefficients struct {
	Theta []float64
	// SigmaSeries is nil unless the volatility is time-dependent.
	SigmaSeries []float64
}

// ResolveCoefficients evaluates the equilibrium and, in dynamic mode, the
// volatility over the grid. Volatility values are clamped at zero.
func ResolveCoefficients(cfg model.Config, grid model.TimeGrid, ev formula.Evaluator) (*Coefficients, error) {
	c := &Coefficients{}
	points := grid.Points()

	switch cfg.Equilibrium {
	case model.EquilibriumDynamic:
		theta, err := evaluate(ev, "theta", cfg.ThetaExpr, points)
		if err != nil {
			return nil, err
		}
		c.Theta = theta
	default:
		c.Theta = make([]float64, len(points))
		for i := range c.Theta {
			c.Theta[i] = cfg.RBar
		}
	}

	if cfg.Volatility == model.VolatilityDynamic {
		sigma, err := evaluate(ev, "sigma", cfg.SigmaExpr, points)
		if err != nil {
			return nil, err
		}
		c.SigmaSeries = formula.ClampNonNegative(sigma)
	}

	return c, nil
}

func evaluate(ev formula.Evaluator, target, expr string, points []float64) ([]float64, error) {
	values, err := ev.Evaluate(expr, points)
	if err != nil {
		var evalErr *model.EvaluationError
		if errors.As(err, &evalErr) {
			evalErr.Target = target
			return nil, evalErr
		}
		return nil, &model.EvaluationError{Target: target, Expr: expr, Wrapped: err}
	}
	if len(values) != len(points) {
		return nil, &model.EvaluationError{Target: target, Expr: expr,
			Wrapped: fmt.Errorf("expected %d values, got %d", len(points), len(values))}
	}
	return values, nil
}

// Dynamics builds the mean-reverting SDE for cfg on these coefficients.
func (c *Coefficients) Dynamics(cfg model.Config) *models.MeanReverting {
	var vol models.Volatility
	if cfg.Volatility == model.VolatilityDynamic {
		vol = models.NewTimeDependent(c.SigmaSeries)
	} else {
		vol = models.NewCEV(cfg.Sigma, cfg.Gamma)
	}
	return models.NewMeanReverting(cfg.Alpha, c.Theta, vol)
}
