package dials

import (
	"context"
	"fmt"
	"strings"

	"github.com/phuslu/log"
)

// ScoreMethod selects how a component's current value maps to 0-100.
type ScoreMethod string

const (
	// MethodPercentile ranks the current value within the tail-windowed history.
	MethodPercentile ScoreMethod = "percentile"
	// MethodPercentileInverted ranks with low raw values scoring high.
	MethodPercentileInverted ScoreMethod = "percentile_inverted"
	// MethodScaled multiplies the current value by Scale and clamps to [0,100].
	MethodScaled ScoreMethod = "scaled"
)

// ComponentSpec names one input of a composite dial. When MinusSeriesID is
// set the component scores the inner-join differential SeriesID-MinusSeriesID
// instead of the series itself.
type ComponentSpec struct {
	Name          string
	SeriesID      string
	MinusSeriesID string
	Years         int
	Weight        float64
	Method        ScoreMethod
	Scale         float64
}

// Confirmer is one corroborating component checked by a confirmation cap.
type Confirmer struct {
	Name  string
	Floor float64
}

// ConfirmationCap limits a leading component's score when none of the
// confirmers reach their floor. A missing confirmer counts as unconfirmed.
type ConfirmationCap struct {
	Leading    string
	Cap        float64
	Confirmers []Confirmer
}

// MomentumKicker adds a fixed bonus to the blended composite when the
// current Offset-observation delta of the series ranks at or above
// Percentile within the trailing history of such deltas.
type MomentumKicker struct {
	SeriesID   string
	Years      int
	Offset     int
	Percentile float64
	Bonus      float64
	MinObs     int
}

// CompositeSpec is the full per-dial configuration of a composite dial:
// components with weights, override rules, smoothing weight, status bands
// and display metadata.
type CompositeSpec struct {
	ID         string
	Title      string
	Components []ComponentSpec
	Cap        *ConfirmationCap
	Kicker     *MomentumKicker
	Alpha      float64
	Bands      Bands
	MinLabel   string
	MidLabel   string
	MaxLabel   string
	Tooltip    string
}

// build runs the per-dial pipeline: fetch and score each component, apply
// override rules, blend, smooth against the previous published value,
// classify and emit. It always produces a Dial; every failure is contained.
func (spec CompositeSpec) build(ctx context.Context, e *Engine, asOf string) Dial {
	comps := make([]Component, 0, len(spec.Components))
	var warnings []string
	for _, cs := range spec.Components {
		score, err := e.componentScore(ctx, cs)
		if err != nil {
			log.Warn().Str("dial", spec.ID).Str("component", cs.Name).Err(err).Msg("component unavailable")
			warnings = append(warnings, fmt.Sprintf("%s (%s) unavailable: %v", cs.Name, cs.SeriesID, err))
			comps = append(comps, Component{Name: cs.Name, Weight: cs.Weight})
			continue
		}
		comps = append(comps, Component{Name: cs.Name, Score: ptr(score), Weight: cs.Weight})
	}

	if spec.Cap != nil {
		if applyConfirmationCap(comps, *spec.Cap) {
			log.Debug().Str("dial", spec.ID).Str("component", spec.Cap.Leading).Float64("cap", spec.Cap.Cap).Msg("confirmation cap applied")
		}
	}

	result := Blend(comps)
	if result.Score == nil {
		tooltip := fmt.Sprintf("%s unavailable (all components missing).", spec.Title)
		if len(warnings) > 0 {
			tooltip += " Warnings: " + joinWarnings(warnings)
		}
		return placeholderDial(spec, tooltip, asOf)
	}

	score := *result.Score
	if spec.Kicker != nil {
		bonus, err := e.kickerBonus(ctx, *spec.Kicker)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("momentum kicker (%s) unavailable: %v", spec.Kicker.SeriesID, err))
		} else if bonus > 0 {
			log.Debug().Str("dial", spec.ID).Float64("bonus", bonus).Msg("momentum kicker applied")
			score += bonus
		}
	}
	score = clamp(score, 0.0, 100.0)

	var prev *float64
	if e.Previous != nil {
		if v, ok := e.Previous.PreviousValue(spec.ID); ok {
			prev = &v
		}
	}
	score = Smooth(score, prev, spec.Alpha)

	tooltip := spec.Tooltip
	if len(warnings) > 0 {
		tooltip += " Warnings: " + joinWarnings(warnings)
	}

	return Dial{
		ID:        spec.ID,
		Type:      "gauge",
		Title:     spec.Title,
		Status:    Classify(score, spec.Bands),
		Value:     ptr(roundTo(score, 0)),
		Min:       ptr(0),
		Max:       ptr(100),
		MinLabel:  spec.MinLabel,
		MidLabel:  spec.MidLabel,
		MaxLabel:  spec.MaxLabel,
		Tooltip:   tooltip,
		UpdatedAt: asOf,
	}
}

// placeholderDial is the degraded form a composite dial takes when every
// component is unavailable.
func placeholderDial(spec CompositeSpec, tooltip, asOf string) Dial {
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
		Tooltip:   tooltip,
		UpdatedAt: asOf,
	}
}

// componentScore fetches the component's tail-windowed series and maps its
// latest value to 0-100 per the component's method.
func (e *Engine) componentScore(ctx context.Context, cs ComponentSpec) (float64, error) {
	series, err := e.Data.Series(ctx, cs.SeriesID, defaultSeriesLimit)
	if err != nil {
		return 0, err
	}
	if cs.MinusSeriesID != "" {
		minus, err := e.Data.Series(ctx, cs.MinusSeriesID, defaultSeriesLimit)
		if err != nil {
			return 0, err
		}
		series = DiffByDate(series, minus)
	}
	tail := series.TailYears(cs.Years)
	last, ok := tail.Last()
	if !ok {
		return 0, fmt.Errorf("series %s: %w", cs.SeriesID, errInsufficientHistory)
	}
	switch cs.Method {
	case MethodPercentileInverted:
		return PercentileScore(last.Value, tail.Values(), true), nil
	case MethodScaled:
		return clamp(last.Value*cs.Scale, 0.0, 100.0), nil
	default:
		return PercentileScore(last.Value, tail.Values(), false), nil
	}
}

// kickerBonus returns the kicker's bonus when the current delta ranks in the
// configured top percentile, zero otherwise. A series too short for a
// meaningful delta history skips the kicker silently.
func (e *Engine) kickerBonus(ctx context.Context, k MomentumKicker) (float64, error) {
	series, err := e.Data.Series(ctx, k.SeriesID, defaultSeriesLimit)
	if err != nil {
		return 0, err
	}
	tail := series.TailYears(k.Years)
	if len(tail) <= k.MinObs {
		return 0, nil
	}
	deltas := tail.Deltas(k.Offset)
	if len(deltas) == 0 {
		return 0, nil
	}
	current := deltas[len(deltas)-1]
	if PercentileScore(current, deltas, false) >= k.Percentile {
		return k.Bonus, nil
	}
	return 0, nil
}

// applyConfirmationCap caps the leading component in place and reports
// whether the cap changed its score.
func applyConfirmationCap(comps []Component, rule ConfirmationCap) bool {
	for _, conf := range rule.Confirmers {
		c := findComponent(comps, conf.Name)
		if c != nil && c.Score != nil && *c.Score >= conf.Floor {
			return false
		}
	}
	lead := findComponent(comps, rule.Leading)
	if lead == nil || lead.Score == nil {
		return false
	}
	if *lead.Score > rule.Cap {
		lead.Score = ptr(rule.Cap)
		return true
	}
	return false
}

func findComponent(comps []Component, name string) *Component {
	for i := range comps {
		if comps[i].Name == name {
			return &comps[i]
		}
	}
	return nil
}

func joinWarnings(warnings []string) string {
	return strings.Join(warnings, " | ")
}
