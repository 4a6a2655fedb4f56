package dials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentileScoreEmptyHistoryIsNeutral(t *testing.T) {
	assert.Equal(t, 50.0, PercentileScore(123.4, nil, false))
	assert.Equal(t, 50.0, PercentileScore(-99.0, nil, true))
	assert.Equal(t, 50.0, PercentileScore(0, []float64{}, false))
}

func TestPercentileScoreRanksInclusive(t *testing.T) {
	history := []float64{1, 2, 3, 4, 5}

	assert.Equal(t, 0.0, PercentileScore(0.5, history, false))
	assert.Equal(t, 100.0, PercentileScore(5, history, false))
	assert.Equal(t, 60.0, PercentileScore(3, history, false)) // ties count as <=
	assert.Equal(t, 40.0, PercentileScore(2.5, history, false))
}

func TestPercentileScoreMonotonic(t *testing.T) {
	history := []float64{3.1, -2.0, 7.7, 0.4, 5.5, 5.5, 9.0}
	probes := []float64{-5, -2, 0, 0.4, 3, 5.5, 8, 12}

	var prev float64
	for i, x := range probes {
		s := PercentileScore(x, history, false)
		if i > 0 {
			assert.GreaterOrEqual(t, s, prev, "plain score must be non-decreasing at x=%v", x)
		}
		prev = s
	}

	for i, x := range probes {
		s := PercentileScore(x, history, true)
		if i > 0 {
			assert.LessOrEqual(t, s, prev, "inverted score must be non-increasing at x=%v", x)
		}
		prev = s
	}
}

func TestPercentileScoreInvertComplement(t *testing.T) {
	history := []float64{10, 20, 30, 40}
	for _, x := range []float64{5, 15, 20, 35, 50} {
		plain := PercentileScore(x, history, false)
		inverted := PercentileScore(x, history, true)
		assert.InDelta(t, 100.0-plain, inverted, 1e-9)
	}
}

func TestPercentileScoreIgnoresHistoryOrder(t *testing.T) {
	a := PercentileScore(3, []float64{1, 2, 3, 4, 5}, false)
	b := PercentileScore(3, []float64{5, 3, 1, 4, 2}, false)
	assert.Equal(t, a, b)
}

func TestSmooth(t *testing.T) {
	assert.Equal(t, 60.0, Smooth(60, nil, 0.2))

	prev := 40.0
	assert.InDelta(t, 44.0, Smooth(60, &prev, 0.2), 1e-9)
	assert.InDelta(t, 60.0, Smooth(60, &prev, 1.0), 1e-9)
	assert.InDelta(t, 40.0, Smooth(60, &prev, 0.0), 1e-9)
}

func TestClassifyHigherIsWorse(t *testing.T) {
	bands := Bands{GoodMax: 18, WarnMax: 28, HigherIsWorse: true}

	assert.Equal(t, StatusGood, Classify(12, bands))
	assert.Equal(t, StatusGood, Classify(18, bands)) // boundary is GOOD
	assert.Equal(t, StatusWarn, Classify(20, bands))
	assert.Equal(t, StatusWarn, Classify(28, bands))
	assert.Equal(t, StatusDelayed, Classify(30, bands))
}

func TestClassifyLowerIsWorse(t *testing.T) {
	bands := Bands{GoodMax: 0, WarnMax: -50, HigherIsWorse: false}

	assert.Equal(t, StatusGood, Classify(25, bands))
	assert.Equal(t, StatusGood, Classify(0, bands)) // boundary is GOOD
	assert.Equal(t, StatusWarn, Classify(-25, bands))
	assert.Equal(t, StatusWarn, Classify(-50, bands))
	assert.Equal(t, StatusDelayed, Classify(-51, bands))
}

func TestDrawdown(t *testing.T) {
	closes := []float64{100, 102, 98, 103, 101}

	dd, err := Drawdown(closes, 5)
	require.NoError(t, err)
	assert.InDelta(t, (101.0/103.0-1.0)*100.0, dd, 1e-9)

	// at the highs
	dd, err = Drawdown([]float64{90, 95, 98, 99, 100}, 5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, dd)
}

func TestDrawdownInsufficientHistory(t *testing.T) {
	_, err := Drawdown([]float64{100, 101}, 21)
	assert.Error(t, err)

	// minimum of five bars applies even for short lookbacks
	_, err = Drawdown([]float64{100, 101, 102}, 2)
	assert.Error(t, err)
}
