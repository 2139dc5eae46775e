package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeriesMaxY(t *testing.T) {
	s := Series{X: []float64{0, 1, 2, 3}, Y: []float64{1, 5, 3, 2}}
	idx, max := s.MaxY()
	assert.Equal(t, 1, idx)
	assert.Equal(t, 5.0, max)

	idx, _ = Series{}.MaxY()
	assert.Equal(t, -1, idx)
}

func TestSeriesTrimAtPeak(t *testing.T) {
	s := Series{X: []float64{0, 1, 2, 3}, Y: []float64{1, 5, 3, 2}}
	trimmed := s.TrimAtPeak()
	assert.Equal(t, []float64{0, 1}, trimmed.X)
	assert.Equal(t, []float64{1, 5}, trimmed.Y)

	// Monotonic record: nothing to trim.
	mono := Series{X: []float64{0, 1, 2}, Y: []float64{1, 2, 3}}
	assert.Equal(t, 3, mono.TrimAtPeak().Len())
}

func TestSeriesNearestIndex(t *testing.T) {
	s := Series{X: []float64{0, 0.001, 0.002, 0.003}, Y: []float64{0, 1, 2, 3}}
	assert.Equal(t, 1, s.NearestIndex(0.0011))
	assert.Equal(t, 2, s.NearestIndex(0.0019))
	assert.Equal(t, 0, s.NearestIndex(-5))
	assert.Equal(t, 3, s.NearestIndex(99))
	assert.Equal(t, -1, Series{}.NearestIndex(0))
}

func TestAverageSeriesUnequalLengths(t *testing.T) {
	a := Series{X: []float64{0, 1}, Y: []float64{10, 20}}
	b := Series{X: []float64{0, 1, 2, 3}, Y: []float64{30, 40, 50, 60}}

	avg := AverageSeries([]Series{a, b})

	// Both series contribute while alive, the longer one carries the tail.
	assert.Equal(t, []float64{20, 30, 50, 60}, avg.Y)
	assert.Equal(t, []float64{0, 1, 2, 3}, avg.X)
}
