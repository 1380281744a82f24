package config

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/model"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := validate.RegisterValidation("finite", isFinite); err != nil {
		panic(err)
	}
	validate.RegisterStructValidation(activeRepresentation, Params{})
}

func isFinite(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// activeRepresentation checks the fields only the selected modes read.
func activeRepresentation(sl validator.StructLevel) {
	p := sl.Current().Interface().(Params)

	if p.EquilibriumType == EquilibriumConstant && !finite(p.RBar) {
		sl.ReportError(p.RBar, "rBar", "RBar", "finite", "")
	}
	if p.VolatilityType == VolatilityCEV {
		if !finite(p.Sigma) {
			sl.ReportError(p.Sigma, "sigma", "Sigma", "finite", "")
		} else if p.Sigma < 0 {
			sl.ReportError(p.Sigma, "sigma", "Sigma", "gte", "0")
		}
		if !finite(p.Gamma) {
			sl.ReportError(p.Gamma, "gamma", "Gamma", "finite", "")
		}
	}
}

// Validate returns the first violated constraint as a *model.ConfigError.
func Validate(p Params) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &model.ConfigError{Field: fe.Field(), Constraint: constraint(fe), Value: fe.Value()}
	}
	return fmt.Errorf("%w: %v", model.ErrConfig, err)
}

func constraint(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "> " + fe.Param()
	case "gte":
		return ">= " + fe.Param()
	case "lt":
		return "< " + fe.Param()
	case "lte":
		return "<= " + fe.Param()
	case "oneof":
		return "one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "required_if":
		parts := strings.Fields(fe.Param())
		if len(parts) == 2 {
			return fmt.Sprintf("set when %s is %s", parts[0], parts[1])
		}
		return "set"
	case "finite":
		return "a finite number"
	default:
		return fe.Tag()
	}
}

// MaxPoints bounds the number of rates a single run may hold in memory.
const MaxPoints = 250_000_000

// ExceedsPoints reports whether nPaths paths of steps+1 rates hold more than
// max values. It does not overflow for any positive nPaths and steps.
func ExceedsPoints(nPaths, steps int, max int64) bool {
	if nPaths < 1 || steps < 0 || max < 1 {
		return false
	}
	return int64(steps)+1 > max/int64(nPaths)
}

// Resolve validates p and converts it into an immutable model configuration
// and its time grid. Nothing is simulated on error.
func Resolve(p Params) (model.Config, model.TimeGrid, error) {
	if err := Validate(p); err != nil {
		return model.Config{}, model.TimeGrid{}, err
	}

	if ExceedsPoints(p.NPaths, p.Steps, MaxPoints) {
		return model.Config{}, model.TimeGrid{}, &model.ConfigError{
			Field:      "nPaths",
			Constraint: fmt.Sprintf("nPaths * (steps + 1) <= %d", MaxPoints),
			Value:      p.NPaths,
		}
	}

	cfg := model.Config{
		Alpha:           p.Alpha,
		Equilibrium:     model.EquilibriumConstant,
		RBar:            p.RBar,
		Volatility:      model.VolatilityCEV,
		Sigma:           p.Sigma,
		Gamma:           p.Gamma,
		R0:              p.R0,
		Horizon:         p.Horizon,
		Steps:           p.Steps,
		NPaths:          p.NPaths,
		ConfidenceLevel: p.ConfInterval,
		Seed:            p.Seed,
		Workers:         p.Workers,
	}
	if p.EquilibriumType == EquilibriumDynamic {
		cfg.Equilibrium = model.EquilibriumDynamic
		cfg.ThetaExpr = p.ThetaExpr
		cfg.RBar = 0
	}
	if p.VolatilityType == VolatilityDynamic {
		cfg.Volatility = model.VolatilityDynamic
		cfg.SigmaExpr = p.SigmaExpr
		cfg.Sigma, cfg.Gamma = 0, 0
	}

	return cfg, model.NewTimeGrid(cfg.Horizon, cfg.Steps), nil
}
