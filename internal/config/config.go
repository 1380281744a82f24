package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

const (
	EquilibriumConstant = "Constant"
	EquilibriumDynamic  = "Dynamic"
	VolatilityCEV       = "CEV"
	VolatilityDynamic   = "Dynamic"
)

// Params is the flat parameter set accepted from files, flags and the HTTP
// API. It is resolved into a model.Config by Resolve.
type Params struct {
	EquilibriumType string  `yaml:"equilibrium_type" json:"equilibriumType" default:"Constant" validate:"oneof=Constant Dynamic"`
	RBar            float64 `yaml:"r_bar" json:"rBar" default:"0.05"`
	ThetaExpr       string  `yaml:"theta_expr" json:"thetaExpr" default:"0.05 + 0.01 * sin(t)" validate:"required_if=EquilibriumType Dynamic"`
	Alpha           float64 `yaml:"alpha" json:"alpha" default:"0.3" validate:"finite,gte=0"`

	VolatilityType string  `yaml:"volatility_type" json:"volatilityType" default:"CEV" validate:"oneof=CEV Dynamic"`
	Sigma          float64 `yaml:"sigma" json:"sigma" default:"0.05"`
	Gamma          float64 `yaml:"gamma" json:"gamma" default:"0.5"`
	SigmaExpr      string  `yaml:"sigma_expr" json:"sigmaExpr" default:"0.01 + 0.005 * t" validate:"required_if=VolatilityType Dynamic"`

	R0           float64 `yaml:"r0" json:"r0" default:"0.03" validate:"finite"`
	Horizon      float64 `yaml:"horizon" json:"T" default:"10" validate:"finite,gt=0"`
	Steps        int     `yaml:"steps" json:"steps" default:"1000" validate:"gte=1,lte=100000000"`
	NPaths       int     `yaml:"n_paths" json:"nPaths" default:"100" validate:"gte=1,lte=100000000"`
	ConfInterval float64 `yaml:"conf_interval" json:"confInterval" default:"0.95" validate:"gt=0,lt=1"`

	Seed    uint64 `yaml:"seed" json:"seed"`
	Workers int    `yaml:"workers" json:"workers" validate:"gte=0"`
}

// Default returns a parameter set filled from the struct defaults.
func Default() *Params {
	p := &Params{}
	if err := defaults.Set(p); err != nil {
		panic(fmt.Sprintf("config: invalid default tags: %v", err))
	}
	return p
}

// Load reads a YAML parameter file on top of the defaults.
func Load(path string) (*Params, error) {
	return LoadOnto(path, *Default())
}

// LoadOnto reads a YAML parameter file on top of base. Keys absent from
// the file keep their base value.
func LoadOnto(path string, base Params) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := base
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &p, nil
}

func Save(path string, p *Params) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
