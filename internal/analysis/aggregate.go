package analysis

import (
	"github.com/montanaflynn/stats"

	"astmd/domain/core"
	"astmd/domain/material"
)

// Aggregate summarizes one scalar result across the sample set. Samples
// that failed upstream are already filtered out by the caller; zero
// contributing samples is an invocation-level failure.
func Aggregate(values []float64) (material.Aggregate, error) {
	if len(values) == 0 {
		return material.Aggregate{}, core.ErrEmptyAggregate
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return material.Aggregate{}, err
	}
	minV, err := stats.Min(values)
	if err != nil {
		return material.Aggregate{}, err
	}
	maxV, err := stats.Max(values)
	if err != nil {
		return material.Aggregate{}, err
	}

	// Single sample: no spread to report.
	sd := 0.0
	if len(values) > 1 {
		sd, err = stats.StandardDeviationSample(values)
		if err != nil {
			return material.Aggregate{}, err
		}
	}

	return material.Aggregate{
		Mean:   mean,
		StdDev: sd,
		Min:    minV,
		Max:    maxV,
		N:      len(values),
	}, nil
}
