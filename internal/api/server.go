package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"seelikeme/internal/detect"
	"seelikeme/internal/model"
	"seelikeme/internal/simulation"
	"seelikeme/internal/websocket"
	"seelikeme/pkg/interfaces"
	"seelikeme/pkg/types"
)

// ARCHITECTURAL DISCOVERY: HTTP API layer serves as pure interface between
// external clients and the detection core - no business logic, only HTTP
// handling, boundary validation and JSON serialization
type Server struct {
	detector *detect.Detector
	store    interfaces.Store
	registry *websocket.Registry
	router   *http.ServeMux
}

// NewServer initializes all dependencies and sets up routing
func NewServer(detector *detect.Detector, store interfaces.Store, registry *websocket.Registry) *Server {
	s := &Server{
		detector: detector,
		store:    store,
		registry: registry,
		router:   http.NewServeMux(),
	}

	s.setupRoutes()
	return s
}

// ARCHITECTURAL DISCOVERY: Route setup follows REST conventions with proper middleware
// CORS and JSON middleware applied to all routes for extension compatibility
func (s *Server) setupRoutes() {
	s.router.Handle("/api/v1/detect", s.corsMiddleware(s.jsonMiddleware(http.HandlerFunc(s.handleDetect))))
	s.router.Handle("/api/v1/session/", s.corsMiddleware(s.jsonMiddleware(http.HandlerFunc(s.handleSession))))
	s.router.Handle("/api/v1/feedback", s.corsMiddleware(s.jsonMiddleware(http.HandlerFunc(s.handleFeedback))))
	s.router.Handle("/api/v1/models/info", s.corsMiddleware(s.jsonMiddleware(http.HandlerFunc(s.handleModelInfo))))
	s.router.Handle("/health", s.corsMiddleware(s.jsonMiddleware(http.HandlerFunc(s.healthCheck))))
}

// ServeHTTP implements http.Handler for integration with the standard HTTP server
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// DetectRequest is the inbound detection payload: 17 required scalars plus
// session binding.
// FUNCTIONAL DISCOVERY: Pointer fields distinguish "missing" from zero so the
// boundary can reject incomplete requests before the core ever runs
type DetectRequest struct {
	ReadingSpeed       *float64 `json:"reading_speed"`
	ComprehensionScore *float64 `json:"comprehension_score"`
	SpellingAccuracy   *float64 `json:"spelling_accuracy"`
	PhonemicAwareness  *float64 `json:"phonemic_awareness"`
	WorkingMemory      *float64 `json:"working_memory"`

	AttentionSpan      *float64 `json:"attention_span"`
	HyperactivityLevel *float64 `json:"hyperactivity_level"`
	ImpulsivityScore   *float64 `json:"impulsivity_score"`
	FocusDuration      *float64 `json:"focus_duration"`
	TaskCompletion     *float64 `json:"task_completion"`

	LightSensitivity            *int `json:"light_sensitivity"`
	SoundSensitivity            *int `json:"sound_sensitivity"`
	TextureSensitivity          *int `json:"texture_sensitivity"`
	EyeContactDifficulty        *int `json:"eye_contact_difficulty"`
	SocialInteractionChallenges *int `json:"social_interaction_challenges"`
	RoutineImportance           *int `json:"routine_importance"`
	ChangeResistance            *int `json:"change_resistance"`

	SessionID string `json:"session_id"`
	UserAge   *int   `json:"user_age"`
}

// missingFields collects the names of absent required fields for the error body
func (req *DetectRequest) missingFields() []string {
	var missing []string

	checkFloat := func(name string, v *float64) {
		if v == nil {
			missing = append(missing, name)
		}
	}
	checkInt := func(name string, v *int) {
		if v == nil {
			missing = append(missing, name)
		}
	}

	checkFloat("reading_speed", req.ReadingSpeed)
	checkFloat("comprehension_score", req.ComprehensionScore)
	checkFloat("spelling_accuracy", req.SpellingAccuracy)
	checkFloat("phonemic_awareness", req.PhonemicAwareness)
	checkFloat("working_memory", req.WorkingMemory)
	checkFloat("attention_span", req.AttentionSpan)
	checkFloat("hyperactivity_level", req.HyperactivityLevel)
	checkFloat("impulsivity_score", req.ImpulsivityScore)
	checkFloat("focus_duration", req.FocusDuration)
	checkFloat("task_completion", req.TaskCompletion)
	checkInt("light_sensitivity", req.LightSensitivity)
	checkInt("sound_sensitivity", req.SoundSensitivity)
	checkInt("texture_sensitivity", req.TextureSensitivity)
	checkInt("eye_contact_difficulty", req.EyeContactDifficulty)
	checkInt("social_interaction_challenges", req.SocialInteractionChallenges)
	checkInt("routine_importance", req.RoutineImportance)
	checkInt("change_resistance", req.ChangeResistance)

	if req.SessionID == "" {
		missing = append(missing, "session_id")
	}

	return missing
}

// assessment assembles the immutable detection input from a validated request
func (req *DetectRequest) assessment() types.Assessment {
	return types.Assessment{
		SessionID: req.SessionID,
		UserAge:   req.UserAge,
		Reading: types.ReadingAssessment{
			ReadingSpeed:       *req.ReadingSpeed,
			ComprehensionScore: *req.ComprehensionScore,
			SpellingAccuracy:   *req.SpellingAccuracy,
			PhonemicAwareness:  *req.PhonemicAwareness,
			WorkingMemory:      *req.WorkingMemory,
		},
		Attention: types.AttentionAssessment{
			AttentionSpan:      *req.AttentionSpan,
			HyperactivityLevel: *req.HyperactivityLevel,
			ImpulsivityScore:   *req.ImpulsivityScore,
			FocusDuration:      *req.FocusDuration,
			TaskCompletion:     *req.TaskCompletion,
		},
		Sensory: types.SensoryAssessment{
			LightSensitivity:            *req.LightSensitivity,
			SoundSensitivity:            *req.SoundSensitivity,
			TextureSensitivity:          *req.TextureSensitivity,
			EyeContactDifficulty:        *req.EyeContactDifficulty,
			SocialInteractionChallenges: *req.SocialInteractionChallenges,
			RoutineImportance:           *req.RoutineImportance,
			ChangeResistance:            *req.ChangeResistance,
		},
	}
}

// DetectResponse is the outbound detection envelope
type DetectResponse struct {
	Status           string                 `json:"status"`
	SessionID        string                 `json:"session_id"`
	DetectionResults types.DetectionResult  `json:"detection_results"`
	SimulationConfig types.SimulationConfig `json:"simulation_config"`
	ModelInfo        map[string]interface{} `json:"model_info"`
	Timestamp        time.Time              `json:"timestamp"`
}

// SessionResponse wraps a cached session lookup
type SessionResponse struct {
	Status           string                 `json:"status"`
	SessionData      types.DetectionResult  `json:"session_data"`
	SimulationConfig types.SimulationConfig `json:"simulation_config"`
}

// FeedbackRequest is the structured feedback form
type FeedbackRequest struct {
	SessionID         string `json:"session_id"`
	DisabilityType    string `json:"disability_type"`
	AccuracyRating    int    `json:"accuracy_rating"`
	SimulationQuality int    `json:"simulation_quality"`
	Comments          string `json:"comments,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// handleDetect runs the full detection pipeline for one assessment.
// POST /api/v1/detect
func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req DetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	// FUNCTIONAL DISCOVERY: Reject missing fields before invoking the core -
	// the detection pipeline assumes field presence
	if missing := req.missingFields(); len(missing) > 0 {
		s.sendError(w, fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")), http.StatusBadRequest)
		return
	}

	if !types.IsValidSessionID(req.SessionID) {
		s.sendError(w, "Invalid session_id format", http.StatusBadRequest)
		return
	}

	requestID := uuid.New().String()
	log.Printf("Processing detection request: id=%s session=%s", requestID, req.SessionID)

	results := s.detector.DetectAll(r.Context(), req.assessment())
	config := simulation.Synthesize(results)

	// Persistence failures are logged, never surfaced - the store is an
	// optional collaborator
	if err := s.store.SaveResult(r.Context(), req.SessionID, results); err != nil {
		log.Printf("Failed to cache detection result: id=%s session=%s error=%v", requestID, req.SessionID, err)
	}

	// Live-channel delivery: failure is the registry's concern, not the
	// HTTP caller's
	s.registry.SendDetectionUpdate(req.SessionID, results)
	s.registry.SendSimulationConfig(req.SessionID, config)

	s.sendJSON(w, http.StatusOK, DetectResponse{
		Status:           "success",
		SessionID:        req.SessionID,
		DetectionResults: results,
		SimulationConfig: config,
		ModelInfo: map[string]interface{}{
			"adhd_accuracy":     results[types.DomainADHD].Accuracy,
			"dyslexia_accuracy": results[types.DomainDyslexia].Accuracy,
			"autism_method":     results[types.DomainAutism].Method,
		},
		Timestamp: time.Now().UTC(),
	})
}

// handleSession retrieves cached session data.
// GET /api/v1/session/{session_id}
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID := strings.TrimPrefix(r.URL.Path, "/api/v1/session/")
	if sessionID == "" || strings.Contains(sessionID, "/") {
		s.sendError(w, "Session ID required", http.StatusBadRequest)
		return
	}

	result, err := s.store.GetResult(r.Context(), sessionID)
	if err == interfaces.ErrSessionNotFound {
		s.sendError(w, "Session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("Session lookup failed: session=%s error=%v", sessionID, err)
		s.sendError(w, "Session lookup failed", http.StatusInternalServerError)
		return
	}

	s.sendJSON(w, http.StatusOK, SessionResponse{
		Status:           "success",
		SessionData:      result,
		SimulationConfig: simulation.Synthesize(result),
	})
}

// handleFeedback stores structured user feedback.
// POST /api/v1/feedback
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if !types.IsValidSessionID(req.SessionID) {
		s.sendError(w, "Invalid session_id format", http.StatusBadRequest)
		return
	}

	if !types.IsValidDomain(req.DisabilityType) {
		s.sendError(w, types.ErrInvalidDisability.Error(), http.StatusBadRequest)
		return
	}

	if !types.IsValidRating(req.AccuracyRating) || !types.IsValidRating(req.SimulationQuality) {
		s.sendError(w, types.ErrInvalidRating.Error(), http.StatusBadRequest)
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"disability_type":    req.DisabilityType,
		"accuracy_rating":    req.AccuracyRating,
		"simulation_quality": req.SimulationQuality,
		"comments":           req.Comments,
		"timestamp":          time.Now().UTC(),
	})
	if err != nil {
		s.sendError(w, "Failed to encode feedback", http.StatusInternalServerError)
		return
	}

	if err := s.store.SaveFeedback(r.Context(), req.SessionID, payload); err != nil {
		log.Printf("Failed to store feedback: session=%s error=%v", req.SessionID, err)
		s.sendError(w, "Failed to store feedback", http.StatusInternalServerError)
		return
	}

	s.sendJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Feedback submitted successfully",
	})
}

// handleModelInfo reports loaded-model metadata.
// GET /api/v1/models/info
func (s *Server) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	models := s.detector.Models()

	s.sendJSON(w, http.StatusOK, map[string]interface{}{
		"models_loaded": models.LoadedDomains(),
		"model_files": map[string]string{
			types.DomainDyslexia: model.ArtifactDyslexia,
			types.DomainADHD:     model.ArtifactADHD,
			types.DomainAutism:   model.ArtifactAutism,
		},
		"model_accuracies": map[string]float64{
			types.DomainDyslexia: models.Reading.Accuracy(),
			types.DomainADHD:     models.Attention.Accuracy(),
			types.DomainAutism:   models.Sensory.Accuracy(),
		},
		"detection_methods": map[string]string{
			types.DomainDyslexia: models.Reading.Method(),
			types.DomainADHD:     models.Attention.Method(),
			types.DomainAutism:   models.Sensory.Method(),
		},
	})
}

// healthCheck reports service, model and store status.
// GET /health
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "healthy",
		"service":         "See Like Me Backend",
		"models_loaded":   s.detector.Models().AllLoaded(),
		"store_connected": s.store.Connected(),
		"active_sessions": s.registry.Count(),
		"timestamp":       time.Now().UTC(),
	})
}

func (s *Server) sendJSON(w http.ResponseWriter, code int, v interface{}) {
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// FUNCTIONAL DISCOVERY: Consistent error response format
func (s *Server) sendError(w http.ResponseWriter, message string, code int) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(code),
		Code:    code,
		Message: message,
	})
}

// ARCHITECTURAL DISCOVERY: CORS middleware enables extension access
// Allows all origins in development - would be restricted in production
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// FUNCTIONAL DISCOVERY: JSON middleware ensures proper content-type headers
func (s *Server) jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		next.ServeHTTP(w, r)
	})
}
