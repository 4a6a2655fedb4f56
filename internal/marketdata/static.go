package marketdata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"dialboard/internal/dials"
)

// StaticProvider serves series and quotes from a JSON file. Useful for
// offline development and as a deterministic stand-in for the remote
// providers in tests.
type StaticProvider struct {
	series map[string]dials.Series
	quotes map[string]dials.Series
}

type rawStaticObservation struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type rawStaticFile struct {
	Series map[string][]rawStaticObservation `json:"series"`
	Quotes map[string][]rawStaticObservation `json:"quotes"`
}

// NewStaticProvider reads and decodes the given JSON file.
func NewStaticProvider(path string) (*StaticProvider, error) {
	if path == "" {
		return nil, errors.New("static provider requires a path")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("static provider: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()

	var file rawStaticFile
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("static provider: decode %s: %w", path, err)
	}

	p := &StaticProvider{
		series: make(map[string]dials.Series, len(file.Series)),
		quotes: make(map[string]dials.Series, len(file.Quotes)),
	}
	for id, raws := range file.Series {
		series, err := decodeStaticSeries(raws)
		if err != nil {
			return nil, fmt.Errorf("static provider: series %s: %w", id, err)
		}
		p.series[id] = series
	}
	for symbol, raws := range file.Quotes {
		series, err := decodeStaticSeries(raws)
		if err != nil {
			return nil, fmt.Errorf("static provider: quotes %s: %w", symbol, err)
		}
		p.quotes[symbol] = series
	}
	return p, nil
}

// Latest returns the most recent observation of the series.
func (p *StaticProvider) Latest(ctx context.Context, seriesID string) (dials.Observation, error) {
	series, err := p.Series(ctx, seriesID, 0)
	if err != nil {
		return dials.Observation{}, err
	}
	last, ok := series.Last()
	if !ok {
		return dials.Observation{}, fmt.Errorf("series %s: %w", seriesID, ErrNoObservations)
	}
	return last, nil
}

// Series returns the most recent limit observations, or all of them when
// limit is zero.
func (p *StaticProvider) Series(ctx context.Context, seriesID string, limit int) (dials.Series, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	series, ok := p.series[seriesID]
	if !ok {
		return nil, fmt.Errorf("static provider: unknown series %s", seriesID)
	}
	if limit > 0 && len(series) > limit {
		series = series[len(series)-limit:]
	}
	return series, nil
}

// DailyCloses returns the symbol's close series.
func (p *StaticProvider) DailyCloses(ctx context.Context, symbol string) (dials.Series, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	series, ok := p.quotes[symbol]
	if !ok {
		return nil, fmt.Errorf("static provider: unknown symbol %s", symbol)
	}
	return series, nil
}

func decodeStaticSeries(raws []rawStaticObservation) (dials.Series, error) {
	series := make(dials.Series, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for _, r := range raws {
		if _, ok := seen[r.Date]; ok {
			return nil, fmt.Errorf("duplicate date %s", r.Date)
		}
		seen[r.Date] = struct{}{}
		date, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			return nil, fmt.Errorf("parse date %s: %w", r.Date, err)
		}
		series = append(series, dials.Observation{Date: date, Value: r.Value})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series, nil
}
