// Package simulation derives the client-facing visual-effect configuration
// from a detection result. Every numeric formula and threshold here is part
// of the observable contract with the browser extension and must not drift.
package simulation

import (
	"strconv"
	"strings"

	"seelikeme/pkg/types"
)

// Sentinel primary-disability value for an empty detection result
const primaryNone = "none"

// Synthesize maps a detection result to a simulation configuration.
// FUNCTIONAL DISCOVERY: Pure and deterministic - identical inputs always
// yield identical configs, so callers may recompute on demand instead of
// caching derived state
func Synthesize(result types.DetectionResult) types.SimulationConfig {
	dyslexia := result[types.DomainDyslexia]
	adhd := result[types.DomainADHD]
	autism := result[types.DomainAutism]

	return types.SimulationConfig{
		Dyslexia:       dyslexiaConfig(dyslexia),
		ADHD:           adhdConfig(adhd),
		Autism:         autismConfig(autism),
		GlobalSettings: globalSettings(result),
	}
}

func dyslexiaConfig(r types.DomainResult) types.DomainConfig {
	return types.DomainConfig{
		Enabled:    r.Prediction == 1,
		Intensity:  intensity(r),
		Confidence: r.Confidence,
		Settings: map[string]interface{}{
			"letter_spacing": pick(r.Confidence > 0.8, "3px", "2px"),
			"line_height":    pick(r.Confidence > 0.7, "2.0", "1.6"),
			"font_family":    "OpenDyslexic, Arial, sans-serif",
			"text_shimmer":   r.Confidence > 0.6,
			"word_spacing":   pick(r.Confidence > 0.5, "0.3em", "0.1em"),
		},
	}
}

func adhdConfig(r types.DomainResult) types.DomainConfig {
	return types.DomainConfig{
		// FUNCTIONAL DISCOVERY: The attention domain additionally gates on
		// confidence - low-confidence positives stay disabled
		Enabled:    r.Prediction == 1 && r.Confidence > 0.6,
		Intensity:  intensity(r),
		Confidence: r.Confidence,
		Settings: map[string]interface{}{
			"distraction_blur":   px(r.Confidence * 4),
			"focus_highlight":    r.Confidence > 0.7,
			"animation_speed":    pick(r.Confidence > 0.6, "slow", "normal"),
			"attention_overlay":  r.Confidence > 0.8,
			"scroll_sensitivity": r.Confidence * 2,
		},
	}
}

func autismConfig(r types.DomainResult) types.DomainConfig {
	return types.DomainConfig{
		Enabled:    r.Prediction == 1,
		Intensity:  intensity(r),
		Confidence: r.Confidence,
		Settings: map[string]interface{}{
			"brightness_reduction": r.Confidence * 0.4,
			"contrast_reduction":   r.Confidence * 0.3,
			"animation_slowdown":   r.Confidence * 3,
			"sensory_filtering":    r.Confidence > 0.5,
			"color_temperature":    pick(r.Confidence > 0.6, "warm", "normal"),
		},
	}
}

// globalSettings derives the dominant trait and overall intensity.
// ARCHITECTURAL DISCOVERY: Explicit ordered comparison over the fixed domain
// enumeration replaces generic max-by-key selection - strict greater-than
// means the first-enumerated domain wins ties deterministically
func globalSettings(result types.DetectionResult) types.GlobalSettings {
	if len(result) == 0 {
		return types.GlobalSettings{SimulationIntensity: 0, PrimaryDisability: primaryNone}
	}

	primary := ""
	best := -1.0
	for _, domain := range types.DomainOrder {
		r, ok := result[domain]
		if !ok {
			continue
		}
		if r.Confidence > best {
			best = r.Confidence
			primary = domain
		}
	}
	if primary == "" {
		return types.GlobalSettings{SimulationIntensity: 0, PrimaryDisability: primaryNone}
	}

	return types.GlobalSettings{
		SimulationIntensity: best,
		PrimaryDisability:   primary,
	}
}

func intensity(r types.DomainResult) string {
	if r.SimulationStrength == "" {
		return types.StrengthNone
	}
	return r.SimulationStrength
}

func pick(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// px renders a pixel value with an explicit decimal point at integral
// values ("2.0px", not "2px") - the exact string the extension has always
// parsed from this field
func px(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s + "px"
}
