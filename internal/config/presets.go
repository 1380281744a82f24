package config

import "sort"

// Presets are named textbook special cases of the generalized CEV model.
var Presets = map[string]func(p *Params){
	// gamma = 0: normal rates, may go negative
	"vasicek": func(p *Params) {
		p.Alpha, p.RBar, p.Sigma, p.Gamma, p.R0 = 0.3, 0.05, 0.01, 0, 0.03
	},
	// gamma = 0.5: square-root diffusion, floored at zero
	"cir": func(p *Params) {
		p.Alpha, p.RBar, p.Sigma, p.Gamma, p.R0 = 0.3, 0.05, 0.05, 0.5, 0.03
	},
	// gamma = 1: proportional volatility
	"dothan": func(p *Params) {
		p.Alpha, p.RBar, p.Sigma, p.Gamma, p.R0 = 0.1, 0.05, 0.2, 1, 0.03
	},
	"brennan-schwartz": func(p *Params) {
		p.Alpha, p.RBar, p.Sigma, p.Gamma, p.R0 = 0.2, 0.06, 0.1, 1.5, 0.04
	},
	"seasonal": func(p *Params) {
		p.EquilibriumType = EquilibriumDynamic
		p.ThetaExpr = "0.04 + 0.01 * sin(2 * pi * t)"
		p.Alpha, p.Sigma, p.Gamma, p.R0 = 1.0, 0.05, 0.5, 0.04
	},
	"hump-vol": func(p *Params) {
		p.VolatilityType = VolatilityDynamic
		p.SigmaExpr = "0.005 + 0.02 * t * exp(-t / 2)"
		p.Alpha, p.RBar, p.R0 = 0.3, 0.04, 0.02
	},
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Params {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	p := Default()
	apply(p)
	return p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
