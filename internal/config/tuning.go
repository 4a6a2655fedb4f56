package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"dialboard/internal/dials"
)

var validate = validator.New()

// tuningFile mirrors dials.Tuning with optional fields so a file can
// override only the constants it names.
type tuningFile struct {
	Alpha            *float64 `toml:"alpha" validate:"omitempty,gt=0,lte=1"`
	CurveCap         *float64 `toml:"curve_cap" validate:"omitempty,gte=0,lte=100"`
	SahmFloor        *float64 `toml:"sahm_floor" validate:"omitempty,gte=0,lte=100"`
	CoinFloor        *float64 `toml:"coin_floor" validate:"omitempty,gte=0,lte=100"`
	KickerOffset     *int     `toml:"kicker_offset" validate:"omitempty,gt=0"`
	KickerPercentile *float64 `toml:"kicker_percentile" validate:"omitempty,gte=0,lte=100"`
	KickerBonus      *float64 `toml:"kicker_bonus" validate:"omitempty,gte=0"`
}

// LoadTuning returns the default tuning overlaid with values from the given
// TOML file. An empty path means defaults. The tuned constants are stated
// heuristics, so they live in configuration rather than code.
func LoadTuning(path string) (dials.Tuning, error) {
	t := dials.DefaultTuning()
	if path == "" {
		return t, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning %s: %w", path, err)
	}

	var file tuningFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return t, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := validate.Struct(file); err != nil {
		return t, fmt.Errorf("validate tuning %s: %w", path, err)
	}

	if file.Alpha != nil {
		t.Alpha = *file.Alpha
	}
	if file.CurveCap != nil {
		t.CurveCap = *file.CurveCap
	}
	if file.SahmFloor != nil {
		t.SahmFloor = *file.SahmFloor
	}
	if file.CoinFloor != nil {
		t.CoinFloor = *file.CoinFloor
	}
	if file.KickerOffset != nil {
		t.KickerOffset = *file.KickerOffset
	}
	if file.KickerPercentile != nil {
		t.KickerPercentile = *file.KickerPercentile
	}
	if file.KickerBonus != nil {
		t.KickerBonus = *file.KickerBonus
	}

	return t, nil
}
