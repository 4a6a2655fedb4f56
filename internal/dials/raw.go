package dials

import (
	"context"
	"errors"
	"fmt"

	"github.com/phuslu/log"
)

const placeholderText = "—"

// LevelDialSpec displays the latest observation of one series as-is,
// optionally rescaled (e.g. percent to basis points). Raw dials are never
// smoothed; they show what was observed.
type LevelDialSpec struct {
	ID       string
	Title    string
	SeriesID string
	Scale    float64
	Round    int
	Bands    Bands
	Unit     string
	Min      float64
	Max      float64
	MinLabel string
	MidLabel string
	MaxLabel string
	Tooltip  string
}

func (spec LevelDialSpec) build(ctx context.Context, e *Engine, asOf string) Dial {
	obs, err := e.Data.Latest(ctx, spec.SeriesID)
	if err != nil {
		log.Warn().Str("dial", spec.ID).Str("series", spec.SeriesID).Err(err).Msg("series unavailable")
		return Dial{
			ID:        spec.ID,
			Type:      "gauge",
			Title:     spec.Title,
			Status:    StatusDelayed,
			ValueText: "FRED key?",
			Pct:       50,
			MinLabel:  spec.MinLabel,
			MidLabel:  spec.MidLabel,
			MaxLabel:  spec.MaxLabel,
			Tooltip:   fmt.Sprintf("Could not fetch series %s: %v. Check env var FRED_API_KEY.", spec.SeriesID, err),
			UpdatedAt: asOf,
		}
	}

	scale := spec.Scale
	if scale == 0 {
		scale = 1
	}
	value := obs.Value * scale

	return Dial{
		ID:        spec.ID,
		Type:      "gauge",
		Title:     spec.Title,
		Status:    Classify(value, spec.Bands),
		Value:     ptr(roundTo(value, spec.Round)),
		Unit:      spec.Unit,
		Min:       ptr(spec.Min),
		Max:       ptr(spec.Max),
		MinLabel:  spec.MinLabel,
		MidLabel:  spec.MidLabel,
		MaxLabel:  spec.MaxLabel,
		Tooltip:   spec.Tooltip,
		UpdatedAt: asOf,
	}
}

// DrawdownDialSpec displays the percent decline from the peak close within a
// trailing lookback window of a traded symbol.
type DrawdownDialSpec struct {
	ID       string
	Title    string
	Symbol   string
	Lookback int
	Bands    Bands
	Min      float64
	Max      float64
	MinLabel string
	MidLabel string
	MaxLabel string
	Tooltip  string
}

func (spec DrawdownDialSpec) build(ctx context.Context, e *Engine, asOf string) Dial {
	dd, err := spec.compute(ctx, e)
	if err != nil {
		log.Warn().Str("dial", spec.ID).Str("symbol", spec.Symbol).Err(err).Msg("drawdown unavailable")
		return Dial{
			ID:        spec.ID,
			Type:      "gauge",
			Title:     spec.Title,
			Status:    StatusDelayed,
			ValueText: placeholderText,
			Pct:       50,
			MinLabel:  spec.MinLabel,
			MidLabel:  spec.MidLabel,
			MaxLabel:  spec.MaxLabel,
			Tooltip:   fmt.Sprintf("%s fetch failed: %v", spec.Symbol, err),
			UpdatedAt: asOf,
		}
	}

	return Dial{
		ID:        spec.ID,
		Type:      "gauge",
		Title:     spec.Title,
		Status:    Classify(dd, spec.Bands),
		Value:     ptr(roundTo(dd, 1)),
		Unit:      "%",
		Min:       ptr(spec.Min),
		Max:       ptr(spec.Max),
		MinLabel:  spec.MinLabel,
		MidLabel:  spec.MidLabel,
		MaxLabel:  spec.MaxLabel,
		Tooltip:   spec.Tooltip,
		UpdatedAt: asOf,
	}
}

func (spec DrawdownDialSpec) compute(ctx context.Context, e *Engine) (float64, error) {
	if e.Quotes == nil {
		return 0, errors.New("no quote provider configured")
	}
	closes, err := e.Quotes.DailyCloses(ctx, spec.Symbol)
	if err != nil {
		return 0, err
	}
	return Drawdown(closes.Values(), spec.Lookback)
}
