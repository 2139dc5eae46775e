package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astmd/domain/core"
)

func linearData(n int, slope, intercept float64) (x, y []float64) {
	x = make([]float64, n)
	y = make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i) * 0.1
		y[i] = slope*x[i] + intercept
	}
	return x, y
}

func TestFitLineRecoversSlopeAndIntercept(t *testing.T) {
	x, y := linearData(50, 3.0, 1.0)

	slope, intercept, err := FitLine(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, slope, 1e-9)
	assert.InDelta(t, 1.0, intercept, 1e-9)
}

func TestFitLineRejectsDegenerateInput(t *testing.T) {
	_, _, err := FitLine([]float64{1}, []float64{2})
	assert.ErrorIs(t, err, core.ErrInsufficientRange)

	_, _, err = FitLine(nil, nil)
	assert.ErrorIs(t, err, core.ErrInsufficientRange)

	// Zero x-variance: no line is defined.
	_, _, err = FitLine([]float64{2, 2, 2}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, core.ErrInsufficientRange)
}

func TestFitIndexRangeExactOnAnySubRange(t *testing.T) {
	x, y := linearData(100, -7.5, 4.0)

	for _, bounds := range [][2]int{{0, 100}, {10, 40}, {95, 98}} {
		slope, _, err := FitIndexRange(x, y, bounds[0], bounds[1])
		require.NoError(t, err)
		assert.InDelta(t, -7.5, slope, 1e-9, "range %v", bounds)
	}

	_, _, err := FitIndexRange(x, y, 10, 11)
	assert.ErrorIs(t, err, core.ErrInsufficientRange)
	_, _, err = FitIndexRange(x, y, 50, 200)
	assert.ErrorIs(t, err, core.ErrInsufficientRange)
}

func TestChordSlopeAtMandatedStrains(t *testing.T) {
	// Synthetic strain sweep [0, 0.003] with stress = 1000*strain: the
	// chord between 0.001 and 0.002 must be exactly 1000.
	n := 31
	strain := make([]float64, n)
	stress := make([]float64, n)
	for i := 0; i < n; i++ {
		strain[i] = float64(i) * 0.0001
		stress[i] = 1000 * strain[i]
	}

	slope, err := ChordSlope(strain, stress, 0.001, 0.002, "sample1.txt")
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, slope, 1e-9)
}

func TestChordSlopeRangeNotReached(t *testing.T) {
	strain := []float64{0, 0.0005, 0.001, 0.0015}
	stress := []float64{0, 0.5, 1.0, 1.5}

	_, err := ChordSlope(strain, stress, 0.001, 0.002, "short.txt")
	assert.ErrorIs(t, err, core.ErrRangeNotReached)
	assert.Contains(t, err.Error(), "short.txt")
}

func TestChordSlopeCoincidentPoints(t *testing.T) {
	// Both targets resolve to the same recorded point.
	strain := []float64{0, 0.0015, 0.003}
	stress := []float64{0, 1.5, 3.0}

	_, err := ChordSlope(strain, stress, 0.0014, 0.0016, "sparse.txt")
	assert.ErrorIs(t, err, core.ErrInsufficientRange)
}

func TestMaxWindowSlopeOnPerfectLine(t *testing.T) {
	x, y := linearData(200, 42.0, 0)

	slope, err := MaxWindowSlope(x, y, 25, 5)
	require.NoError(t, err)
	assert.InDelta(t, 42.0, slope, 1e-9)
}

func TestMaxWindowSlopeFindsSteepestRegion(t *testing.T) {
	// Slope 2 for the first half, slope 10 for the second.
	n := 100
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i)
		if i < n/2 {
			y[i] = 2 * x[i]
		} else {
			y[i] = y[n/2-1] + 10*(x[i]-x[n/2-1])
		}
	}

	slope, err := MaxWindowSlope(x, y, 10, 1)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, slope, 1e-9)
}

func TestMaxWindowSlopeShortRecord(t *testing.T) {
	x, y := linearData(10, 1.0, 0)
	_, err := MaxWindowSlope(x, y, 25, 5)
	assert.ErrorIs(t, err, core.ErrInsufficientRange)
}
