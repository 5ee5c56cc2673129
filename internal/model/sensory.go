package model

import (
	"seelikeme/pkg/types"
)

// Hybrid blend weights: how much the learned model vs the hand-built
// scoring heuristic contributes to the final confidence.
// FUNCTIONAL DISCOVERY: Adapter-internal configuration, not part of the
// detection contract - tuned offline against the validation split
const (
	sensoryModelWeight     = 0.6
	sensoryHeuristicWeight = 0.4
)

// Heuristic category weights over the 1-5 ratings, mirroring the trainer's
// label construction: social challenges dominate, then sensory, then behavioral
const (
	sensoryCategoryWeight    = 0.3
	socialCategoryWeight     = 0.5
	behavioralCategoryWeight = 0.2
)

// SensoryAdapter classifies the sensory/behavioral domain with a hybrid of
// a learned logistic model and a weighted scoring heuristic over the raw
// clamped ratings.
type SensoryAdapter struct {
	artifact   *Artifact
	highCutoff float64
}

// NewSensoryAdapter creates the hybrid adapter around a loaded artifact.
// A nil artifact produces a permanently unavailable adapter.
func NewSensoryAdapter(artifact *Artifact, highCutoff float64) *SensoryAdapter {
	return &SensoryAdapter{artifact: artifact, highCutoff: highCutoff}
}

// Predict runs the hybrid classifier against a clamped sensory assessment.
// FUNCTIONAL DISCOVERY: Same degrade-not-fail contract as the vector
// adapters - a missing model yields the deterministic fallback outcome
func (a *SensoryAdapter) Predict(assessment types.SensoryAssessment) types.DomainResult {
	if a == nil || a.artifact == nil {
		return Unavailable()
	}

	features := featureVector(assessment)

	// A mis-sized parameter set degrades like a missing one
	if len(a.artifact.Coef) != len(features) {
		return Unavailable()
	}

	modelProb := a.artifact.Probability(features)
	confidence := sensoryModelWeight*modelProb + sensoryHeuristicWeight*heuristicScore(assessment)

	return outcome(confidence, a.artifact, a.highCutoff)
}

// Loaded reports whether a usable model backs this adapter
func (a *SensoryAdapter) Loaded() bool {
	return a != nil && a.artifact != nil
}

// Accuracy returns the model's static held-out validation accuracy
func (a *SensoryAdapter) Accuracy() float64 {
	if !a.Loaded() {
		return 0
	}
	return a.artifact.Accuracy
}

// Method returns the adapter's method tag
func (a *SensoryAdapter) Method() string {
	if !a.Loaded() {
		return MethodUnavailable
	}
	return a.artifact.Method
}

// featureVector flattens the assessment in the artifact's fixed feature order
func featureVector(a types.SensoryAssessment) []float64 {
	return []float64{
		float64(a.LightSensitivity),
		float64(a.SoundSensitivity),
		float64(a.TextureSensitivity),
		float64(a.EyeContactDifficulty),
		float64(a.SocialInteractionChallenges),
		float64(a.RoutineImportance),
		float64(a.ChangeResistance),
	}
}

// heuristicScore computes the weighted category composite in [0.2, 1.0]
func heuristicScore(a types.SensoryAssessment) float64 {
	sensory := float64(a.LightSensitivity+a.SoundSensitivity+a.TextureSensitivity) / 3.0
	social := float64(a.EyeContactDifficulty+a.SocialInteractionChallenges) / 2.0
	behavioral := float64(a.RoutineImportance+a.ChangeResistance) / 2.0

	composite := sensoryCategoryWeight*sensory + socialCategoryWeight*social + behavioralCategoryWeight*behavioral
	return composite / 5.0 // scale from the 1-5 rating range into [0,1]
}
