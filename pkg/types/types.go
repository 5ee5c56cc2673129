package types

import (
	"time"
)

// ARCHITECTURAL DISCOVERY: Message type constants defined exactly as consumed
// by the browser extension to ensure wire compatibility across the system
const (
	MessageTypeConnectionEstablished = "connection_established"
	MessageTypeDetectionComplete     = "detection_complete"
	MessageTypeSimulationConfig      = "simulation_config"
	MessageTypeSimulationFeedback    = "simulation_feedback"
	MessageTypeFeedbackReceived      = "feedback_received"
	MessageTypeRequestUpdate         = "request_update"
	MessageTypeSimulationUpdate      = "simulation_update"
	MessageTypeToggleSimulation      = "toggle_simulation"
	MessageTypeSimulationToggled     = "simulation_toggled"
	MessageTypeSystemBroadcast       = "system_broadcast"
)

// Trait domain keys as they appear on the wire
const (
	DomainDyslexia = "dyslexia"
	DomainADHD     = "adhd"
	DomainAutism   = "autism"
)

// DomainOrder fixes the enumeration order used wherever domains are compared.
// FUNCTIONAL DISCOVERY: Explicit ordering guarantees deterministic tie-breaks
// instead of relying on map iteration order
var DomainOrder = [3]string{DomainDyslexia, DomainADHD, DomainAutism}

// Simulation strength buckets derived from classifier confidence
const (
	StrengthNone   = "none"
	StrengthLow    = "low"
	StrengthMedium = "medium"
	StrengthHigh   = "high"
)

// ReadingAssessment carries the five reading-pattern measurements
type ReadingAssessment struct {
	ReadingSpeed       float64 `json:"reading_speed"`
	ComprehensionScore float64 `json:"comprehension_score"`
	SpellingAccuracy   float64 `json:"spelling_accuracy"`
	PhonemicAwareness  float64 `json:"phonemic_awareness"`
	WorkingMemory      float64 `json:"working_memory"`
}

// AttentionAssessment carries the five attention-pattern measurements
type AttentionAssessment struct {
	AttentionSpan      float64 `json:"attention_span"`
	HyperactivityLevel float64 `json:"hyperactivity_level"`
	ImpulsivityScore   float64 `json:"impulsivity_score"`
	FocusDuration      float64 `json:"focus_duration"`
	TaskCompletion     float64 `json:"task_completion"`
}

// SensoryAssessment carries the seven sensory/behavioral ratings, each 1-5
type SensoryAssessment struct {
	LightSensitivity            int `json:"light_sensitivity"`
	SoundSensitivity            int `json:"sound_sensitivity"`
	TextureSensitivity          int `json:"texture_sensitivity"`
	EyeContactDifficulty        int `json:"eye_contact_difficulty"`
	SocialInteractionChallenges int `json:"social_interaction_challenges"`
	RoutineImportance           int `json:"routine_importance"`
	ChangeResistance            int `json:"change_resistance"`
}

// Assessment is the immutable input bundle for one detection request
// FUNCTIONAL DISCOVERY: Constructed once per request and never mutated,
// which lets the three domain adapters read it concurrently without locking
type Assessment struct {
	SessionID string              `json:"session_id"`
	UserAge   *int                `json:"user_age,omitempty"`
	Reading   ReadingAssessment   `json:"reading"`
	Attention AttentionAssessment `json:"attention"`
	Sensory   SensoryAssessment   `json:"sensory"`
}

// DomainResult is one classifier's outcome for a single trait domain
type DomainResult struct {
	Prediction         int     `json:"prediction"`
	Confidence         float64 `json:"confidence"`
	Accuracy           float64 `json:"accuracy"`
	SimulationStrength string  `json:"simulation_strength"`
	Method             string  `json:"method"`
}

// DetectionResult maps trait domain key -> outcome for one assessment
// ARCHITECTURAL DISCOVERY: Mapping semantics, not sequence - the orchestrator
// combines adapter outputs order-independently
type DetectionResult map[string]DomainResult

// DomainConfig is the per-domain block of a simulation configuration
type DomainConfig struct {
	Enabled    bool                   `json:"enabled"`
	Intensity  string                 `json:"intensity"`
	Confidence float64                `json:"confidence"`
	Settings   map[string]interface{} `json:"settings"`
}

// GlobalSettings summarizes the dominant trait across all three domains
type GlobalSettings struct {
	SimulationIntensity float64 `json:"simulation_intensity"`
	PrimaryDisability   string  `json:"primary_disability"`
}

// SimulationConfig is the derived visual-effect configuration pushed to the
// client. Recomputed on demand from a DetectionResult, never mutated in place.
type SimulationConfig struct {
	Dyslexia       DomainConfig   `json:"dyslexia"`
	ADHD           DomainConfig   `json:"adhd"`
	Autism         DomainConfig   `json:"autism"`
	GlobalSettings GlobalSettings `json:"global_settings"`
}

// Session tracks one live-channel binding
// FUNCTIONAL DISCOVERY: LastActivity updated on every successful send gives
// operators a cheap liveness signal without pinging the client
type Session struct {
	SessionID    string    `json:"session_id"`
	ConnectedAt  time.Time `json:"connected_at"`
	LastActivity time.Time `json:"last_activity"`
}
