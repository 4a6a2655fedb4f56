package dials

import (
	"errors"
	"math"
	"sort"
)

var errInsufficientHistory = errors.New("dials: insufficient history")

// PercentileScore maps the current value to its 0-100 percentile rank within
// history: the fraction of historical values not exceeding it. An empty
// history carries no information and yields the neutral midpoint 50.
// invert flips the rank for series where lower raw values mean more stress.
func PercentileScore(current float64, history []float64, invert bool) float64 {
	if len(history) == 0 {
		return 50.0
	}
	vals := append([]float64(nil), history...)
	sort.Float64s(vals)
	le := sort.Search(len(vals), func(i int) bool { return vals[i] > current })
	r := float64(le) / float64(len(vals))
	if invert {
		r = 1.0 - r
	}
	return clamp(r*100.0, 0.0, 100.0)
}

// Smooth blends a freshly computed score with the previously published one
// via an exponential moving average. A nil previous value means a cold start
// and the current value passes through unchanged.
func Smooth(current float64, previous *float64, alpha float64) float64 {
	if previous == nil {
		return current
	}
	return alpha*current + (1.0-alpha)*(*previous)
}

// Bands holds the per-dial classification thresholds.
type Bands struct {
	GoodMax       float64
	WarnMax       float64
	HigherIsWorse bool
}

// Classify maps a value to its status band. A value exactly at GoodMax
// classifies GOOD in both directions.
func Classify(value float64, b Bands) Status {
	if b.HigherIsWorse {
		if value <= b.GoodMax {
			return StatusGood
		}
		if value <= b.WarnMax {
			return StatusWarn
		}
		return StatusDelayed
	}
	if value >= b.GoodMax {
		return StatusGood
	}
	if value >= b.WarnMax {
		return StatusWarn
	}
	return StatusDelayed
}

// Drawdown computes the percent decline from the peak close within the last
// lookback bars to the latest close. Returns a negative percent, or zero at
// the highs. Fewer than max(5, lookback) bars is not enough history.
func Drawdown(closes []float64, lookback int) (float64, error) {
	min := lookback
	if min < 5 {
		min = 5
	}
	if len(closes) < min {
		return 0, errInsufficientHistory
	}
	window := closes[len(closes)-lookback:]
	peak := window[0]
	for _, c := range window[1:] {
		if c > peak {
			peak = c
		}
	}
	if peak <= 0 {
		return 0, errInsufficientHistory
	}
	last := window[len(window)-1]
	return (last/peak - 1.0) * 100.0, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundTo(v float64, prec int) float64 {
	p := math.Pow10(prec)
	return math.Round(v*p) / p
}
