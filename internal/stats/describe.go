package stats

import (
	"fmt"

	mstats "github.com/montanaflynn/stats"
)

// Description summarises one cross-section, typically the horizon.
type Description struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	// NegativeShare is the fraction of values below zero.
	NegativeShare float64 `json:"negative_share"`
}

// Describe computes moments and extremes. StdDev is the sample standard
// deviation and zero for a single value.
func Describe(values []float64) (Description, error) {
	data := mstats.Float64Data(values)
	d := Description{Count: len(values)}
	if len(values) == 0 {
		return d, fmt.Errorf("describe: %w", mstats.ErrEmptyInput)
	}

	var err error
	if d.Mean, err = data.Mean(); err != nil {
		return d, fmt.Errorf("describe mean: %w", err)
	}
	if d.Min, err = data.Min(); err != nil {
		return d, fmt.Errorf("describe min: %w", err)
	}
	if d.Max, err = data.Max(); err != nil {
		return d, fmt.Errorf("describe max: %w", err)
	}
	if len(values) > 1 {
		if d.StdDev, err = data.StandardDeviationSample(); err != nil {
			return d, fmt.Errorf("describe std dev: %w", err)
		}
	}

	negative := 0
	for _, v := range values {
		if v < 0 {
			negative++
		}
	}
	d.NegativeShare = float64(negative) / float64(len(values))

	return d, nil
}
