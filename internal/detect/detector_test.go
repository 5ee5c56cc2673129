package detect

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seelikeme/internal/model"
	"seelikeme/pkg/types"
)

func fullBundle() *model.Bundle {
	return model.NewBundle(
		model.DefaultArtifact(types.DomainDyslexia),
		model.DefaultArtifact(types.DomainADHD),
		model.DefaultArtifact(types.DomainAutism),
		model.Cutoffs{Dyslexia: 0.85, ADHD: 0.80, Autism: 0.80},
	)
}

func strugglingReaderAssessment() types.Assessment {
	return types.Assessment{
		SessionID: "session-1",
		Reading: types.ReadingAssessment{
			ReadingSpeed:       60,
			ComprehensionScore: 40,
			SpellingAccuracy:   50,
			PhonemicAwareness:  2,
			WorkingMemory:      2,
		},
		Attention: types.AttentionAssessment{
			AttentionSpan:      30,
			HyperactivityLevel: 5,
			ImpulsivityScore:   5,
			FocusDuration:      60,
			TaskCompletion:     50,
		},
		Sensory: types.SensoryAssessment{
			LightSensitivity: 3, SoundSensitivity: 3, TextureSensitivity: 3,
			EyeContactDifficulty: 3, SocialInteractionChallenges: 3,
			RoutineImportance: 3, ChangeResistance: 3,
		},
	}
}

func TestDetectAllProducesAllDomains(t *testing.T) {
	detector := NewDetector(fullBundle(), DefaultWorkers)

	result := detector.DetectAll(context.Background(), strugglingReaderAssessment())

	require.Len(t, result, 3)
	for _, domain := range types.DomainOrder {
		_, ok := result[domain]
		assert.True(t, ok, "missing domain %s", domain)
	}

	reading := result[types.DomainDyslexia]
	assert.Equal(t, 1, reading.Prediction)
	assert.Greater(t, reading.Confidence, 0.8)
	assert.Equal(t, types.StrengthHigh, reading.SimulationStrength)

	attention := result[types.DomainADHD]
	assert.Equal(t, 0, attention.Prediction)
	assert.Less(t, attention.Confidence, 0.5)
}

func TestDetectAllIsDeterministic(t *testing.T) {
	detector := NewDetector(fullBundle(), DefaultWorkers)
	assessment := strugglingReaderAssessment()

	first := detector.DetectAll(context.Background(), assessment)
	second := detector.DetectAll(context.Background(), assessment)

	assert.Equal(t, first, second)
}

func TestDetectAllPartialModelAvailability(t *testing.T) {
	// Attention model missing: that domain degrades, the others are unaffected
	bundle := model.NewBundle(
		model.DefaultArtifact(types.DomainDyslexia),
		nil,
		model.DefaultArtifact(types.DomainAutism),
		model.Cutoffs{Dyslexia: 0.85, ADHD: 0.80, Autism: 0.80},
	)
	detector := NewDetector(bundle, DefaultWorkers)

	result := detector.DetectAll(context.Background(), strugglingReaderAssessment())

	require.Len(t, result, 3)
	assert.Equal(t, model.Unavailable(), result[types.DomainADHD])
	assert.Equal(t, 1, result[types.DomainDyslexia].Prediction)
	assert.Greater(t, result[types.DomainAutism].Confidence, 0.0)
}

func TestDetectAllMalformedInputDegradesToNeutral(t *testing.T) {
	detector := NewDetector(fullBundle(), DefaultWorkers)
	assessment := strugglingReaderAssessment()
	assessment.Reading.ReadingSpeed = math.NaN()

	result := detector.DetectAll(context.Background(), assessment)

	// The neutral default vector sits at the scaler mean, so the reading
	// outcome matches a fully mid-range assessment
	adapter := model.NewVectorAdapter(model.DefaultArtifact(types.DomainDyslexia), 0.85)
	want := adapter.Predict([5]float64{0.5, 0.5, 0.5, 0.5, 0.5})
	assert.Equal(t, want, result[types.DomainDyslexia])
}

func TestDetectAllCancelledContext(t *testing.T) {
	detector := NewDetector(fullBundle(), 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := detector.DetectAll(ctx, strugglingReaderAssessment())

	require.Len(t, result, 3)
	for domain, outcome := range result {
		assert.Equal(t, model.Unavailable(), outcome, "domain %s", domain)
	}
}

func TestNewDetectorDefaultsWorkerCount(t *testing.T) {
	detector := NewDetector(fullBundle(), 0)
	assert.Equal(t, DefaultWorkers, cap(detector.slots))
}
