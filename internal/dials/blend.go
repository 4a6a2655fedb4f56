package dials

import "fmt"

// Blend combines named, weighted component scores into one composite.
// Weights are renormalized over the components that are actually available,
// so a missing component does not drag the composite down by its absence.
// When nothing is available the score is nil and the warnings say why.
func Blend(components []Component) CompositeResult {
	var warnings []string
	available := make([]Component, 0, len(components))
	for _, c := range components {
		if c.Score == nil {
			warnings = append(warnings, fmt.Sprintf("component %s unavailable", c.Name))
			continue
		}
		available = append(available, c)
	}

	if len(available) == 0 {
		if len(warnings) == 0 {
			warnings = append(warnings, "no components configured")
		}
		return CompositeResult{Warnings: warnings}
	}

	var wsum float64
	for _, c := range available {
		wsum += c.Weight
	}

	var score float64
	for _, c := range available {
		score += (c.Weight / wsum) * *c.Score
	}

	return CompositeResult{Score: ptr(clamp(score, 0.0, 100.0)), Warnings: warnings}
}
