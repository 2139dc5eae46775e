package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astmd/domain/core"
)

func TestAggregateMean(t *testing.T) {
	agg, err := Aggregate([]float64{10, 20, 30})
	require.NoError(t, err)

	assert.InDelta(t, 20.0, agg.Mean, 1e-9)
	assert.InDelta(t, 10.0, agg.StdDev, 1e-9) // sample standard deviation
	assert.Equal(t, 10.0, agg.Min)
	assert.Equal(t, 30.0, agg.Max)
	assert.Equal(t, 3, agg.N)
}

func TestAggregateSingleSampleHasNoSpread(t *testing.T) {
	agg, err := Aggregate([]float64{42})
	require.NoError(t, err)

	assert.Equal(t, 42.0, agg.Mean)
	assert.Equal(t, 0.0, agg.StdDev)
	assert.Equal(t, 1, agg.N)
}

func TestAggregateEmpty(t *testing.T) {
	_, err := Aggregate(nil)
	assert.ErrorIs(t, err, core.ErrEmptyAggregate)
}
