package model

import (
	"seelikeme/pkg/types"
)

// DefaultArtifacts returns the shipped parameter sets exported from the most
// recent offline training run. cmd/modelgen serializes these to the canonical
// artifact files; tests use them directly for deterministic predictions.
//
// Coefficients are over standardized normalized features. Negative weights
// mean lower measured ability raises the positive-class probability.
func DefaultArtifacts() []*Artifact {
	return []*Artifact{
		{
			Domain:   types.DomainDyslexia,
			Method:   MethodEnsemble,
			Accuracy: 0.91,
			FeatureNames: []string{
				"reading_speed", "comprehension_score", "spelling_accuracy",
				"phonemic_awareness", "working_memory",
			},
			Mean:      []float64{0.5, 0.5, 0.5, 0.5, 0.5},
			Scale:     []float64{0.25, 0.25, 0.25, 0.25, 0.25},
			Coef:      []float64{-0.9, -0.7, -0.8, -0.6, -0.6},
			Intercept: -0.4,
		},
		{
			Domain:   types.DomainADHD,
			Method:   MethodEnsemble,
			Accuracy: 0.79,
			FeatureNames: []string{
				"attention_span", "hyperactivity_level", "impulsivity_score",
				"focus_duration", "task_completion",
			},
			Mean:      []float64{0.5, 0.5, 0.5, 0.5, 0.5},
			Scale:     []float64{0.25, 0.25, 0.25, 0.25, 0.25},
			Coef:      []float64{-0.8, 0.9, 0.9, -0.7, -0.8},
			Intercept: -0.6,
		},
		{
			Domain:   types.DomainAutism,
			Method:   MethodHybrid,
			Accuracy: 0.86,
			FeatureNames: []string{
				"light_sensitivity", "sound_sensitivity", "texture_sensitivity",
				"eye_contact_difficulty", "social_interaction_challenges",
				"routine_importance", "change_resistance",
			},
			Mean:      []float64{3, 3, 3, 3, 3, 3, 3},
			Scale:     []float64{1.2, 1.2, 1.2, 1.2, 1.2, 1.2, 1.2},
			Coef:      []float64{0.35, 0.35, 0.3, 0.5, 0.55, 0.25, 0.3},
			Intercept: -0.9,
		},
	}
}

// DefaultArtifact returns the shipped parameter set for one domain, nil if
// the domain is unknown.
func DefaultArtifact(domain string) *Artifact {
	for _, artifact := range DefaultArtifacts() {
		if artifact.Domain == domain {
			return artifact
		}
	}
	return nil
}
