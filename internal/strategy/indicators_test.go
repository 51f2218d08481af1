package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovingAverage_InsufficientData(t *testing.T) {
	series := []float64{1, 2, 3}

	for _, period := range []int{4, 21, 50, 100} {
		_, ok := MovingAverage(series, period)
		assert.False(t, ok, "period %d must be unavailable", period)
	}
}

func TestMovingAverage_EmptySeries(t *testing.T) {
	_, ok := MovingAverage(nil, 21)
	assert.False(t, ok)
}

func TestMovingAverage_ExactPeriod(t *testing.T) {
	series := []float64{10, 20, 30, 40}

	v, ok := MovingAverage(series, 4)
	require.True(t, ok)
	assert.InDelta(t, 25.0, v, 1e-9)
}

func TestMovingAverage_UsesTail(t *testing.T) {
	series := []float64{1000, 1000, 10, 20, 30}

	v, ok := MovingAverage(series, 3)
	require.True(t, ok)
	assert.InDelta(t, 20.0, v, 1e-9)
}

func TestStochasticState_ShortSeries(t *testing.T) {
	_, ok := StochasticState(nil)
	assert.False(t, ok)

	_, ok = StochasticState([]float64{100, 101, 102})
	assert.False(t, ok)
}

// пила, затем резкое движение: %K прижимается к 100 или 0
func chopThenTrend(step float64) []float64 {
	series := []float64{100}
	for i := 0; i < 30; i++ {
		if i%2 == 0 {
			series = append(series, series[len(series)-1]+1)
		} else {
			series = append(series, series[len(series)-1]-1)
		}
	}
	for i := 0; i < 15; i++ {
		series = append(series, series[len(series)-1]+step)
	}
	return series
}

func TestStochasticState_OverboughtAfterRally(t *testing.T) {
	st, ok := StochasticState(chopThenTrend(5))
	require.True(t, ok)
	assert.Equal(t, StochOverbought, st)
}

func TestStochasticState_OversoldAfterSelloff(t *testing.T) {
	st, ok := StochasticState(chopThenTrend(-5))
	require.True(t, ok)
	assert.Equal(t, StochOversold, st)
}

func TestRSISeries_Bounds(t *testing.T) {
	series := []float64{44, 44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.1,
		45.42, 45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28, 46.0, 46.03,
		46.41, 46.22, 45.64}

	rsi := rsiSeries(series, 14)
	require.NotEmpty(t, rsi)
	for _, v := range rsi {
		assert.False(t, math.IsNaN(v))
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}
