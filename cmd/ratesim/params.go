package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/config"
)

// bindParamFlags registers one flag per model parameter, defaulting to
// config.Default().
func bindParamFlags(cmd *cobra.Command, p *config.Params) {
	*p = *config.Default()
	f := cmd.Flags()
	f.StringVar(&p.EquilibriumType, "equilibrium", p.EquilibriumType, "equilibrium type (Constant, Dynamic)")
	f.Float64Var(&p.RBar, "r-bar", p.RBar, "constant long-term level")
	f.StringVar(&p.ThetaExpr, "theta-expr", p.ThetaExpr, "long-term level theta(t) for Dynamic equilibrium")
	f.Float64Var(&p.Alpha, "alpha", p.Alpha, "mean-reversion speed")
	f.StringVar(&p.VolatilityType, "volatility", p.VolatilityType, "volatility type (CEV, Dynamic)")
	f.Float64Var(&p.Sigma, "sigma", p.Sigma, "CEV volatility level")
	f.Float64Var(&p.Gamma, "gamma", p.Gamma, "CEV elasticity")
	f.StringVar(&p.SigmaExpr, "sigma-expr", p.SigmaExpr, "volatility sigma(t) for Dynamic volatility")
	f.Float64Var(&p.R0, "r0", p.R0, "initial rate")
	f.Float64Var(&p.Horizon, "horizon", p.Horizon, "time horizon T in years")
	f.IntVar(&p.Steps, "steps", p.Steps, "number of time steps")
	f.IntVar(&p.NPaths, "paths", p.NPaths, "number of sample paths")
	f.Float64Var(&p.ConfInterval, "conf", p.ConfInterval, "confidence level of the band, in (0, 1)")
	f.Uint64Var(&p.Seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	f.IntVar(&p.Workers, "workers", 0, "worker goroutines, 0 for one per CPU")
}

// paramOverrides maps each flag to the field it sets.
func paramOverrides(dst *config.Params, src *config.Params) map[string]func() {
	return map[string]func(){
		"equilibrium": func() { dst.EquilibriumType = src.EquilibriumType },
		"r-bar":       func() { dst.RBar = src.RBar },
		"theta-expr":  func() { dst.ThetaExpr = src.ThetaExpr },
		"alpha":       func() { dst.Alpha = src.Alpha },
		"volatility":  func() { dst.VolatilityType = src.VolatilityType },
		"sigma":       func() { dst.Sigma = src.Sigma },
		"gamma":       func() { dst.Gamma = src.Gamma },
		"sigma-expr":  func() { dst.SigmaExpr = src.SigmaExpr },
		"r0":          func() { dst.R0 = src.R0 },
		"horizon":     func() { dst.Horizon = src.Horizon },
		"steps":       func() { dst.Steps = src.Steps },
		"paths":       func() { dst.NPaths = src.NPaths },
		"conf":        func() { dst.ConfInterval = src.ConfInterval },
		"seed":        func() { dst.Seed = src.Seed },
		"workers":     func() { dst.Workers = src.Workers },
	}
}

// resolveParams layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveParams(cmd *cobra.Command, flags *config.Params, preset, configFile string) (config.Params, error) {
	p := *config.Default()

	if preset != "" {
		ps := config.GetPreset(preset)
		if ps == nil {
			return p, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		p = *ps
	}

	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, p)
		if err != nil {
			return p, fmt.Errorf("failed to load config: %w", err)
		}
		p = *loaded
	}

	for name, set := range paramOverrides(&p, flags) {
		if cmd.Flags().Changed(name) {
			set()
		}
	}

	// A zero seed means none was given anywhere; take the time-based default.
	if p.Seed == 0 {
		p.Seed = flags.Seed
	}

	return p, nil
}
