package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seelikeme/pkg/types"
)

func TestVectorAdapterPredictDyslexiaPositive(t *testing.T) {
	adapter := NewVectorAdapter(DefaultArtifact(types.DomainDyslexia), 0.85)

	// Slow reading, weak comprehension and phonemic awareness
	got := adapter.Predict([5]float64{0.2, 0.4, 0.5, 0.2, 0.2})

	assert.Equal(t, 1, got.Prediction)
	assert.InDelta(t, 0.9168, got.Confidence, 0.001)
	assert.Equal(t, types.StrengthHigh, got.SimulationStrength)
	assert.Equal(t, MethodEnsemble, got.Method)
	assert.InDelta(t, 0.91, got.Accuracy, 1e-9)
}

func TestVectorAdapterPredictADHDNegative(t *testing.T) {
	adapter := NewVectorAdapter(DefaultArtifact(types.DomainADHD), 0.80)

	// Mid-range measurements sit at the scaler mean, leaving the intercept
	got := adapter.Predict([5]float64{0.5, 0.5, 0.5, 0.5, 0.5})

	assert.Equal(t, 0, got.Prediction)
	assert.InDelta(t, 0.3543, got.Confidence, 0.001)
	assert.Equal(t, types.StrengthNone, got.SimulationStrength)
}

func TestVectorAdapterNilArtifactFallback(t *testing.T) {
	adapter := NewVectorAdapter(nil, 0.85)

	got := adapter.Predict([5]float64{0.2, 0.4, 0.5, 0.2, 0.2})

	assert.Equal(t, Unavailable(), got)
	assert.False(t, adapter.Loaded())
	assert.Zero(t, adapter.Accuracy())
	assert.Equal(t, MethodUnavailable, adapter.Method())
}

func TestUnavailableOutcomeShape(t *testing.T) {
	got := Unavailable()

	assert.Equal(t, 0, got.Prediction)
	assert.Zero(t, got.Confidence)
	assert.Equal(t, types.StrengthNone, got.SimulationStrength)
	assert.Equal(t, "unavailable", got.Method)
}

func TestStrengthForBuckets(t *testing.T) {
	cases := []struct {
		confidence float64
		want       string
	}{
		{0.95, types.StrengthHigh},
		{0.85, types.StrengthHigh}, // cutoff is inclusive
		{0.84, types.StrengthMedium},
		{0.6, types.StrengthMedium},
		{0.59, types.StrengthLow},
		{0.4, types.StrengthLow},
		{0.39, types.StrengthNone},
		{0.0, types.StrengthNone},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, strengthFor(c.confidence, 0.85), "confidence %v", c.confidence)
	}
}

func TestSensoryAdapterHybridBlend(t *testing.T) {
	adapter := NewSensoryAdapter(DefaultArtifact(types.DomainAutism), 0.80)

	// All mid-scale: the model contributes sigmoid of the intercept, the
	// heuristic contributes the scaled mid composite
	neutral := adapter.Predict(types.SensoryAssessment{
		LightSensitivity: 3, SoundSensitivity: 3, TextureSensitivity: 3,
		EyeContactDifficulty: 3, SocialInteractionChallenges: 3,
		RoutineImportance: 3, ChangeResistance: 3,
	})
	assert.Equal(t, 0, neutral.Prediction)
	assert.InDelta(t, 0.4135, neutral.Confidence, 0.001)
	assert.Equal(t, types.StrengthLow, neutral.SimulationStrength)
	assert.Equal(t, MethodHybrid, neutral.Method)

	elevated := adapter.Predict(types.SensoryAssessment{
		LightSensitivity: 5, SoundSensitivity: 5, TextureSensitivity: 5,
		EyeContactDifficulty: 5, SocialInteractionChallenges: 5,
		RoutineImportance: 5, ChangeResistance: 5,
	})
	assert.Equal(t, 1, elevated.Prediction)
	assert.Greater(t, elevated.Confidence, neutral.Confidence)
	assert.Equal(t, types.StrengthHigh, elevated.SimulationStrength)
}

func TestSensoryAdapterNilArtifactFallback(t *testing.T) {
	adapter := NewSensoryAdapter(nil, 0.80)
	assert.Equal(t, Unavailable(), adapter.Predict(types.SensoryAssessment{}))
}

func TestHeuristicScoreWeighting(t *testing.T) {
	// Social challenges dominate: maxed social vs maxed behavioral
	socialHeavy := heuristicScore(types.SensoryAssessment{
		LightSensitivity: 1, SoundSensitivity: 1, TextureSensitivity: 1,
		EyeContactDifficulty: 5, SocialInteractionChallenges: 5,
		RoutineImportance: 1, ChangeResistance: 1,
	})
	behavioralHeavy := heuristicScore(types.SensoryAssessment{
		LightSensitivity: 1, SoundSensitivity: 1, TextureSensitivity: 1,
		EyeContactDifficulty: 1, SocialInteractionChallenges: 1,
		RoutineImportance: 5, ChangeResistance: 5,
	})

	assert.Greater(t, socialHeavy, behavioralHeavy)
}

func TestArtifactValidate(t *testing.T) {
	valid := DefaultArtifact(types.DomainDyslexia)
	require.NoError(t, valid.Validate())

	unknown := *valid
	unknown.Domain = "telepathy"
	assert.ErrorIs(t, unknown.Validate(), ErrUnknownArtifact)

	mismatched := *valid
	mismatched.Coef = []float64{1, 2}
	assert.ErrorIs(t, mismatched.Validate(), ErrDimensionMismatch)

	zeroScale := *valid
	zeroScale.Scale = []float64{0.25, 0, 0.25, 0.25, 0.25}
	assert.ErrorIs(t, zeroScale.Validate(), ErrMalformedArtifact)

	badAccuracy := *valid
	badAccuracy.Accuracy = 1.2
	assert.ErrorIs(t, badAccuracy.Validate(), ErrMalformedArtifact)
}

func TestLoadArtifactRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ArtifactADHD)

	data, err := json.Marshal(DefaultArtifact(types.DomainADHD))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := LoadArtifact(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultArtifact(types.DomainADHD), loaded)
}

func TestLoadArtifactMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ArtifactDyslexia)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadArtifact(path)
	assert.ErrorIs(t, err, ErrMalformedArtifact)
}

func TestLoadArtifactMissingFile(t *testing.T) {
	_, err := LoadArtifact(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadBundleFromDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, artifact := range DefaultArtifacts() {
		data, err := json.Marshal(artifact)
		require.NoError(t, err)
		name := map[string]string{
			types.DomainDyslexia: ArtifactDyslexia,
			types.DomainADHD:     ArtifactADHD,
			types.DomainAutism:   ArtifactAutism,
		}[artifact.Domain]
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}

	bundle := LoadBundle(dir, Cutoffs{Dyslexia: 0.85, ADHD: 0.80, Autism: 0.80})

	assert.True(t, bundle.AllLoaded())
	assert.Equal(t, map[string]bool{
		types.DomainDyslexia: true,
		types.DomainADHD:     true,
		types.DomainAutism:   true,
	}, bundle.LoadedDomains())
}

func TestLoadBundleRejectsMisfiledArtifact(t *testing.T) {
	// A reading parameter set saved under the sensory slot's canonical name:
	// self-consistent, so it validates, but it must not load into a slot
	// whose feature vector it cannot fit
	dir := t.TempDir()
	data, err := json.Marshal(DefaultArtifact(types.DomainDyslexia))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ArtifactAutism), data, 0o644))

	bundle := LoadBundle(dir, Cutoffs{Dyslexia: 0.85, ADHD: 0.80, Autism: 0.80})

	assert.False(t, bundle.Sensory.Loaded())
	assessment := types.SensoryAssessment{
		LightSensitivity: 5, SoundSensitivity: 5, TextureSensitivity: 5,
		EyeContactDifficulty: 5, SocialInteractionChallenges: 5,
		RoutineImportance: 5, ChangeResistance: 5,
	}
	assert.Equal(t, Unavailable(), bundle.Sensory.Predict(assessment))
}

func TestLoadBundleRejectsSwappedDomainArtifact(t *testing.T) {
	// Same feature count, wrong domain: the adhd parameter set under the
	// dyslexia name is rejected by domain, not just by dimension
	dir := t.TempDir()
	data, err := json.Marshal(DefaultArtifact(types.DomainADHD))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ArtifactDyslexia), data, 0o644))

	bundle := LoadBundle(dir, Cutoffs{Dyslexia: 0.85, ADHD: 0.80, Autism: 0.80})
	assert.False(t, bundle.Reading.Loaded())
}

func TestPredictDegradesOnMisSizedArtifact(t *testing.T) {
	// In-memory bundles bypass the loader's slot check; the predict path
	// must still degrade instead of indexing past the parameter arrays
	sensory := NewSensoryAdapter(DefaultArtifact(types.DomainDyslexia), 0.80)
	assert.Equal(t, Unavailable(), sensory.Predict(types.SensoryAssessment{
		LightSensitivity: 5, SoundSensitivity: 5, TextureSensitivity: 5,
		EyeContactDifficulty: 5, SocialInteractionChallenges: 5,
		RoutineImportance: 5, ChangeResistance: 5,
	}))

	vector := NewVectorAdapter(DefaultArtifact(types.DomainAutism), 0.85)
	assert.Equal(t, Unavailable(), vector.Predict([5]float64{0.2, 0.4, 0.5, 0.2, 0.2}))
}

func TestLoadBundleEmptyDirectoryDegrades(t *testing.T) {
	bundle := LoadBundle(t.TempDir(), Cutoffs{Dyslexia: 0.85, ADHD: 0.80, Autism: 0.80})

	assert.False(t, bundle.AllLoaded())
	for domain, loaded := range bundle.LoadedDomains() {
		assert.False(t, loaded, "domain %s", domain)
	}
	assert.Equal(t, Unavailable(), bundle.Reading.Predict([5]float64{0.2, 0.2, 0.2, 0.2, 0.2}))
}
