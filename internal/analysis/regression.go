// Package analysis holds the numeric core: least-squares modulus
// estimation over explicit sub-range selectors, and cross-sample
// aggregation of scalar results.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"astmd/domain/core"
)

// FitLine performs an ordinary least-squares fit of y against x and
// returns slope and intercept. A modulus is always the local slope of
// an otherwise non-linear curve, so callers select the region explicitly
// and this stays a dumb fit.
func FitLine(x, y []float64) (slope, intercept float64, err error) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, 0, core.NewInsufficientRangeError(min(len(x), len(y)))
	}
	intercept, slope = stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		// Zero x-variance in the selected range.
		return 0, 0, core.NewInsufficientRangeError(len(x))
	}
	return slope, intercept, nil
}

// FitIndexRange fits over the half-open index range [lo, hi).
func FitIndexRange(x, y []float64, lo, hi int) (slope, intercept float64, err error) {
	if lo < 0 || hi > len(x) || hi > len(y) || hi-lo < 2 {
		return 0, 0, core.NewInsufficientRangeError(max(hi-lo, 0))
	}
	return FitLine(x[lo:hi], y[lo:hi])
}

// ChordSlope returns the slope between the two recorded points nearest
// x1 and x2. Nearest-sample policy, no interpolation: this matches the
// D3039 chord-modulus table lookup of the legacy tooling and keeps the
// result reproducible from the raw record.
//
// file is used only for error context.
func ChordSlope(x, y []float64, x1, x2 float64, file string) (float64, error) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, core.NewInsufficientRangeError(min(len(x), len(y)))
	}
	hi := x2
	if x1 > x2 {
		hi = x1
	}
	maxX := x[0]
	for _, v := range x {
		if v > maxX {
			maxX = v
		}
	}
	if maxX < hi {
		return 0, core.NewRangeNotReachedError(file, hi, maxX)
	}
	i1 := nearestIndex(x, x1)
	i2 := nearestIndex(x, x2)
	if i1 == i2 || x[i1] == x[i2] {
		return 0, core.NewInsufficientRangeError(1)
	}
	return (y[i2] - y[i1]) / (x[i2] - x[i1]), nil
}

// MaxWindowSlope slides a fixed-width window along the record, fits each
// window by least squares and returns the steepest slope found. window and
// stride are in samples. Used for the D790 tangent modulus, where the
// standard wants the steepest initial portion of the load-deflection curve.
func MaxWindowSlope(x, y []float64, window, stride int) (float64, error) {
	if window < 2 || stride < 1 {
		return 0, core.NewInsufficientRangeError(window)
	}
	if len(x) != len(y) || len(x) < window {
		return 0, core.NewInsufficientRangeError(min(len(x), len(y)))
	}
	best := math.Inf(-1)
	found := false
	for lo := 0; lo+window <= len(x); lo += stride {
		slope, _, err := FitIndexRange(x, y, lo, lo+window)
		if err != nil {
			continue
		}
		found = true
		if slope > best {
			best = slope
		}
	}
	if !found {
		return 0, core.NewInsufficientRangeError(window)
	}
	return best, nil
}

func nearestIndex(x []float64, target float64) int {
	idx, best := 0, math.Abs(x[0]-target)
	for i, v := range x {
		if d := math.Abs(v - target); d < best {
			idx, best = i, d
		}
	}
	return idx
}
