package features

import (
	"math"

	"seelikeme/pkg/types"
)

// Valid input ranges per trait domain. Each numeric feature is clamped to its
// range and scaled by the upper bound, producing values in [0,1].
const (
	maxReadingSpeed   = 300 // words per minute
	maxPercentage     = 100
	maxCognitiveScale = 10 // phonemic awareness, working memory scales

	maxAttentionSpan = 60 // minutes before distraction
	minBehaviorScale = 1  // hyperactivity/impulsivity lower bound is 1, not 0
	maxBehaviorScale = 10
	maxFocusDuration = 120 // minutes of sustained focus

	minSensoryRating = 1
	maxSensoryRating = 5
	midSensoryRating = 3
)

// neutralVector is substituted whenever a feature set cannot be normalized
// FUNCTIONAL DISCOVERY: Mid-range defaults keep the classifiers on their
// decision boundary rather than biasing toward either label
var neutralVector = [5]float64{0.5, 0.5, 0.5, 0.5, 0.5}

// NormalizeReading maps a reading assessment to a 5-vector in [0,1].
// Contract guarantee: output is always well-formed and in-range even under
// malformed input; a non-finite measurement yields the neutral default vector
// and ErrNormalizationFailure for the caller to log.
func NormalizeReading(a types.ReadingAssessment) ([5]float64, error) {
	raw := [5]float64{
		a.ReadingSpeed,
		a.ComprehensionScore,
		a.SpellingAccuracy,
		a.PhonemicAwareness,
		a.WorkingMemory,
	}
	if !allFinite(raw[:]) {
		return neutralVector, ErrNormalizationFailure
	}

	return [5]float64{
		clamp(a.ReadingSpeed, 0, maxReadingSpeed) / maxReadingSpeed,
		clamp(a.ComprehensionScore, 0, maxPercentage) / maxPercentage,
		clamp(a.SpellingAccuracy, 0, maxPercentage) / maxPercentage,
		clamp(a.PhonemicAwareness, 0, maxCognitiveScale) / maxCognitiveScale,
		clamp(a.WorkingMemory, 0, maxCognitiveScale) / maxCognitiveScale,
	}, nil
}

// NormalizeAttention maps an attention assessment to a 5-vector in [0,1].
// Same clamp-and-scale pattern as reading with attention domain bounds.
func NormalizeAttention(a types.AttentionAssessment) ([5]float64, error) {
	raw := [5]float64{
		a.AttentionSpan,
		a.HyperactivityLevel,
		a.ImpulsivityScore,
		a.FocusDuration,
		a.TaskCompletion,
	}
	if !allFinite(raw[:]) {
		return neutralVector, ErrNormalizationFailure
	}

	return [5]float64{
		clamp(a.AttentionSpan, 0, maxAttentionSpan) / maxAttentionSpan,
		clamp(a.HyperactivityLevel, minBehaviorScale, maxBehaviorScale) / maxBehaviorScale,
		clamp(a.ImpulsivityScore, minBehaviorScale, maxBehaviorScale) / maxBehaviorScale,
		clamp(a.FocusDuration, 0, maxFocusDuration) / maxFocusDuration,
		clamp(a.TaskCompletion, 0, maxPercentage) / maxPercentage,
	}, nil
}

// NormalizeSensory clamps each sensory/behavioral rating to integer [1,5].
// No scaling: the sensory adapter consumes the clamped ratings directly
// through its hybrid scoring path.
func NormalizeSensory(a types.SensoryAssessment) types.SensoryAssessment {
	return types.SensoryAssessment{
		LightSensitivity:            clampRating(a.LightSensitivity),
		SoundSensitivity:            clampRating(a.SoundSensitivity),
		TextureSensitivity:          clampRating(a.TextureSensitivity),
		EyeContactDifficulty:        clampRating(a.EyeContactDifficulty),
		SocialInteractionChallenges: clampRating(a.SocialInteractionChallenges),
		RoutineImportance:           clampRating(a.RoutineImportance),
		ChangeResistance:            clampRating(a.ChangeResistance),
	}
}

// NeutralSensory returns the mid-scale default used when a sensory assessment
// cannot be interpreted (every field at the scale midpoint).
func NeutralSensory() types.SensoryAssessment {
	return types.SensoryAssessment{
		LightSensitivity:            midSensoryRating,
		SoundSensitivity:            midSensoryRating,
		TextureSensitivity:          midSensoryRating,
		EyeContactDifficulty:        midSensoryRating,
		SocialInteractionChallenges: midSensoryRating,
		RoutineImportance:           midSensoryRating,
		ChangeResistance:            midSensoryRating,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampRating(v int) int {
	if v < minSensoryRating {
		return minSensoryRating
	}
	if v > maxSensoryRating {
		return maxSensoryRating
	}
	return v
}

func allFinite(vs []float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
