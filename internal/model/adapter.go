package model

import (
	"seelikeme/pkg/types"
)

// Confidence cutoffs below the per-domain high threshold, shared by all
// adapters when bucketing confidence into a simulation strength.
const (
	mediumStrengthCutoff = 0.6
	lowStrengthCutoff    = 0.4
)

// Positive-class decision boundary for all binary classifiers
const decisionThreshold = 0.5

// VectorAdapter wraps a fitted scaler + logistic classifier over a
// normalized 5-vector. Used by the reading and attention domains.
// ARCHITECTURAL DISCOVERY: Uniform predict contract across adapters lets the
// orchestrator treat domains identically despite different model internals
type VectorAdapter struct {
	artifact   *Artifact
	highCutoff float64
}

// NewVectorAdapter creates an adapter around a loaded artifact.
// A nil artifact produces a permanently unavailable adapter.
func NewVectorAdapter(artifact *Artifact, highCutoff float64) *VectorAdapter {
	return &VectorAdapter{artifact: artifact, highCutoff: highCutoff}
}

// Predict runs the classifier against a normalized feature vector.
// FUNCTIONAL DISCOVERY: Never returns an error - an unloaded model yields
// the deterministic fallback outcome so detection degrades, not fails
func (a *VectorAdapter) Predict(features [5]float64) types.DomainResult {
	if a == nil || a.artifact == nil {
		return Unavailable()
	}

	// A mis-sized parameter set degrades like a missing one
	if len(a.artifact.Coef) != len(features) {
		return Unavailable()
	}

	confidence := a.artifact.Probability(features[:])
	return outcome(confidence, a.artifact, a.highCutoff)
}

// Loaded reports whether a usable model backs this adapter
func (a *VectorAdapter) Loaded() bool {
	return a != nil && a.artifact != nil
}

// Accuracy returns the model's static held-out validation accuracy
func (a *VectorAdapter) Accuracy() float64 {
	if !a.Loaded() {
		return 0
	}
	return a.artifact.Accuracy
}

// Method returns the adapter's method tag
func (a *VectorAdapter) Method() string {
	if !a.Loaded() {
		return MethodUnavailable
	}
	return a.artifact.Method
}

// Unavailable is the deterministic fallback outcome for a missing model
func Unavailable() types.DomainResult {
	return types.DomainResult{
		Prediction:         0,
		Confidence:         0.0,
		Accuracy:           0,
		SimulationStrength: types.StrengthNone,
		Method:             MethodUnavailable,
	}
}

// outcome derives the full domain result from a positive-class probability
func outcome(confidence float64, artifact *Artifact, highCutoff float64) types.DomainResult {
	prediction := 0
	if confidence >= decisionThreshold {
		prediction = 1
	}

	return types.DomainResult{
		Prediction:         prediction,
		Confidence:         confidence,
		Accuracy:           artifact.Accuracy,
		SimulationStrength: strengthFor(confidence, highCutoff),
		Method:             artifact.Method,
	}
}

// strengthFor buckets confidence into a coarse simulation strength.
// The high cutoff is per-domain configuration (part of the client contract);
// the medium and low cutoffs are fixed.
func strengthFor(confidence, highCutoff float64) string {
	switch {
	case confidence >= highCutoff:
		return types.StrengthHigh
	case confidence >= mediumStrengthCutoff:
		return types.StrengthMedium
	case confidence >= lowStrengthCutoff:
		return types.StrengthLow
	default:
		return types.StrengthNone
	}
}
