package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"seelikeme/internal/simulation"
	"seelikeme/pkg/interfaces"
	"seelikeme/pkg/types"
)

// WebSocket upgrader with production-ready settings
// ARCHITECTURAL DISCOVERY: Separate upgrader configuration enables reuse
// and consistent WebSocket settings across different handler instances
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// FUNCTIONAL DISCOVERY: The browser extension connects from an
		// extension origin; stricter checking belongs in deployment config
		return true
	},
	HandshakeTimeout: 10 * time.Second,
}

// Handler upgrades live-channel requests and runs the per-session read loop
type Handler struct {
	registry     *Registry
	store        interfaces.Store
	writeTimeout time.Duration
	bufferSize   int
}

// NewHandler creates a WebSocket handler with dependency injection.
// The transport settings come from configuration; non-positive values fall
// back to the connection defaults.
func NewHandler(registry *Registry, store interfaces.Store, writeTimeout time.Duration, bufferSize int) *Handler {
	return &Handler{
		registry:     registry,
		store:        store,
		writeTimeout: writeTimeout,
		bufferSize:   bufferSize,
	}
}

// clientMessage is the inbound message envelope from the extension
type clientMessage struct {
	Type       string          `json:"type"`
	Feedback   json.RawMessage `json:"feedback,omitempty"`
	Disability string          `json:"disability,omitempty"`
	Enabled    bool            `json:"enabled,omitempty"`
}

// HandleWebSocket handles /ws/{session_id} connection requests.
// ARCHITECTURAL DISCOVERY: Validation before upgrade returns proper HTTP
// errors and prevents invalid connections from consuming registry state
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimPrefix(r.URL.Path, "/ws/")
	if sessionID == "" || strings.Contains(sessionID, "/") {
		http.Error(w, "Session ID required: /ws/{session_id}", http.StatusBadRequest)
		return
	}

	if !types.IsValidSessionID(sessionID) {
		http.Error(w, "Invalid session_id format", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	wsConn := NewConnection(conn, h.writeTimeout, h.bufferSize)
	wsConn.SetSession(sessionID)

	// Registration sends the connection_established ack
	if err := h.registry.Register(wsConn); err != nil {
		log.Printf("Failed to register session %s: %v", sessionID, err)
		_ = wsConn.Close()
		return
	}

	go h.readLoop(wsConn, conn)
}

// readLoop services inbound client messages until the channel drops.
// FUNCTIONAL DISCOVERY: A read error is the disconnect signal - the registry
// purge is idempotent, so racing an implicit send-failure disconnect is safe
func (h *Handler) readLoop(wsConn *Connection, conn *websocket.Conn) {
	sessionID := wsConn.GetSessionID()
	defer h.registry.Disconnect(sessionID)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Printf("Live channel read ended for session %s: %v", sessionID, err)
			return
		}

		var message clientMessage
		if err := json.Unmarshal(data, &message); err != nil {
			log.Printf("Malformed client message from session %s: %v", sessionID, err)
			continue
		}

		h.handleMessage(wsConn, sessionID, message)
	}
}

// handleMessage dispatches one inbound client message
func (h *Handler) handleMessage(wsConn *Connection, sessionID string, message clientMessage) {
	switch message.Type {
	case types.MessageTypeSimulationFeedback:
		h.handleFeedback(wsConn, sessionID, message)

	case types.MessageTypeRequestUpdate:
		h.handleRequestUpdate(wsConn, sessionID)

	case types.MessageTypeToggleSimulation:
		// Echo the toggle so the extension can confirm the state change
		h.reply(wsConn, sessionID, map[string]interface{}{
			"type":       types.MessageTypeSimulationToggled,
			"disability": message.Disability,
			"enabled":    message.Enabled,
		})

	default:
		log.Printf("Unknown message type %q from session %s", message.Type, sessionID)
	}
}

func (h *Handler) handleFeedback(wsConn *Connection, sessionID string, message clientMessage) {
	if err := h.store.SaveFeedback(wsConn.ctx, sessionID, message.Feedback); err != nil {
		log.Printf("Failed to store feedback for session %s: %v", sessionID, err)
	}

	h.reply(wsConn, sessionID, map[string]interface{}{
		"type":    types.MessageTypeFeedbackReceived,
		"message": "Thank you for your feedback!",
	})
}

// handleRequestUpdate replays the cached detection result as a fresh config.
// FUNCTIONAL DISCOVERY: A cache miss (including the no-op store) produces no
// reply at all, matching the extension's fire-and-forget update requests
func (h *Handler) handleRequestUpdate(wsConn *Connection, sessionID string) {
	result, err := h.store.GetResult(wsConn.ctx, sessionID)
	if err != nil {
		if err != interfaces.ErrSessionNotFound {
			log.Printf("Failed to load cached session data for %s: %v", sessionID, err)
		}
		return
	}

	h.reply(wsConn, sessionID, map[string]interface{}{
		"type":   types.MessageTypeSimulationUpdate,
		"config": simulation.Synthesize(result),
	})
}

func (h *Handler) reply(wsConn *Connection, sessionID string, payload map[string]interface{}) {
	if err := wsConn.WriteJSON(payload); err != nil {
		log.Printf("Reply failed for session %s, disconnecting: %v", sessionID, err)
		h.registry.Disconnect(sessionID)
	}
}
