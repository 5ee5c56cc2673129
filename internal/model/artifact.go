package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"seelikeme/pkg/types"
)

// Canonical artifact file names, one per trait domain.
// ARCHITECTURAL DISCOVERY: Configuration and startup checks share this single
// list - the source of truth for artifact naming lives in exactly one place
const (
	ArtifactDyslexia = "dyslexia_model.json"
	ArtifactADHD     = "adhd_model.json"
	ArtifactAutism   = "autism_model.json"
)

// Method tags reported in detection results
const (
	MethodEnsemble    = "compatible_ml_ensemble"
	MethodHybrid      = "enhanced_hybrid"
	MethodUnavailable = "unavailable"
)

// Artifact is the fitted parameter set exported by the offline trainer:
// a standard scaler (mean/scale per feature) plus logistic-regression
// coefficients and the model's held-out validation accuracy.
// FUNCTIONAL DISCOVERY: Read-only after load, safe to share across
// concurrent inference calls without locking
type Artifact struct {
	Domain       string    `json:"domain"`
	Method       string    `json:"method"`
	Accuracy     float64   `json:"accuracy"`
	FeatureNames []string  `json:"feature_names"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
	Coef         []float64 `json:"coef"`
	Intercept    float64   `json:"intercept"`
}

// Validate checks internal consistency of a loaded artifact
func (a *Artifact) Validate() error {
	if !types.IsValidDomain(a.Domain) {
		return fmt.Errorf("%w: %q", ErrUnknownArtifact, a.Domain)
	}
	n := len(a.FeatureNames)
	if n == 0 {
		return fmt.Errorf("%w: empty feature list", ErrMalformedArtifact)
	}
	if len(a.Mean) != n || len(a.Scale) != n || len(a.Coef) != n {
		return ErrDimensionMismatch
	}
	for i, s := range a.Scale {
		if s == 0 {
			return fmt.Errorf("%w: zero scale for feature %s", ErrMalformedArtifact, a.FeatureNames[i])
		}
	}
	if a.Accuracy < 0 || a.Accuracy > 1 {
		return fmt.Errorf("%w: accuracy %v out of range", ErrMalformedArtifact, a.Accuracy)
	}
	return nil
}

// Probability standardizes the feature vector with the fitted scaler and
// returns the positive-class probability from the logistic model.
func (a *Artifact) Probability(features []float64) float64 {
	z := a.Intercept
	for i, x := range features {
		z += a.Coef[i] * (x - a.Mean[i]) / a.Scale[i]
	}
	return sigmoid(z)
}

// LoadArtifact reads and validates one artifact file
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedArtifact, filepath.Base(path), err)
	}

	if err := artifact.Validate(); err != nil {
		return nil, fmt.Errorf("artifact %s: %w", filepath.Base(path), err)
	}

	return &artifact, nil
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
