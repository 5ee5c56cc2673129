package websocket

import (
	"log"
	"sync"
	"time"

	"seelikeme/pkg/types"
)

// Registry owns the mapping from session ID to live channel - at most one
// channel per session at any time, and no other component holds a live
// reference.
// ARCHITECTURAL DISCOVERY: The registry is the single piece of mutable
// shared state in the system; every mutation happens under one mutex so
// connects, disconnects and broadcasts are atomic with respect to each other
type Registry struct {
	mu       sync.RWMutex
	channels map[string]*Connection
	sessions map[string]*types.Session
}

// NewRegistry creates an empty session registry
func NewRegistry() *Registry {
	return &Registry{
		channels: make(map[string]*Connection),
		sessions: make(map[string]*types.Session),
	}
}

// Register binds a connection to its session and sends the connection ack.
// FUNCTIONAL DISCOVERY: Re-registering an open session replaces the previous
// entry and closes its channel - chosen for reconnect-after-network-blip
// compatibility; the old channel is closed asynchronously to avoid holding
// the lock across a close
func (r *Registry) Register(conn *Connection) error {
	if conn == nil {
		return ErrNilConnection
	}

	sessionID := conn.GetSessionID()
	if sessionID == "" {
		return ErrNoSessionID
	}

	r.mu.Lock()
	if previous, exists := r.channels[sessionID]; exists {
		go func() {
			if err := previous.Close(); err != nil {
				log.Printf("Failed to close replaced channel for session %s: %v", sessionID, err)
			}
		}()
	}

	now := time.Now().UTC()
	r.channels[sessionID] = conn
	r.sessions[sessionID] = &types.Session{
		SessionID:    sessionID,
		ConnectedAt:  now,
		LastActivity: now,
	}
	r.mu.Unlock()

	log.Printf("Live channel connected: session=%s", sessionID)

	// Connection acknowledgement carrying session id and timestamp
	r.Send(sessionID, map[string]interface{}{
		"type":       types.MessageTypeConnectionEstablished,
		"session_id": sessionID,
		"message":    "Connected to See Like Me backend",
		"timestamp":  now,
	})

	return nil
}

// Disconnect removes all registry state for a session.
// FUNCTIONAL DISCOVERY: Idempotent - disconnecting an unknown session is a
// no-op, not an error, so implicit disconnects and client-initiated closes
// can race safely
func (r *Registry) Disconnect(sessionID string) {
	r.mu.Lock()
	conn, exists := r.channels[sessionID]
	delete(r.channels, sessionID)
	delete(r.sessions, sessionID)
	r.mu.Unlock()

	if !exists {
		return
	}

	if err := conn.Close(); err != nil {
		log.Printf("Error closing channel for session %s: %v", sessionID, err)
	}
	log.Printf("Live channel disconnected: session=%s", sessionID)
}

// Send delivers one payload to a session's live channel.
// FUNCTIONAL DISCOVERY: Transmission failure is treated as an implicit
// disconnect - state is purged and the failure stays silent to the caller,
// who observes undelivered results only through the log
func (r *Registry) Send(sessionID string, payload interface{}) {
	r.mu.RLock()
	conn, exists := r.channels[sessionID]
	r.mu.RUnlock()

	if !exists {
		log.Printf("No live channel for session %s, dropping message", sessionID)
		return
	}

	if err := conn.WriteJSON(payload); err != nil {
		log.Printf("Send failed for session %s, disconnecting: %v", sessionID, err)
		r.removeIfCurrent(sessionID, conn)
		return
	}

	r.touch(sessionID)
}

// SendDetectionUpdate pushes a detection_complete envelope to the session
func (r *Registry) SendDetectionUpdate(sessionID string, results types.DetectionResult) {
	r.Send(sessionID, map[string]interface{}{
		"type":       types.MessageTypeDetectionComplete,
		"session_id": sessionID,
		"results":    results,
		"model_info": ModelInfo(results),
		"timestamp":  time.Now().UTC(),
	})
}

// SendSimulationConfig pushes a simulation_config envelope to the session
func (r *Registry) SendSimulationConfig(sessionID string, config types.SimulationConfig) {
	r.Send(sessionID, map[string]interface{}{
		"type":       types.MessageTypeSimulationConfig,
		"session_id": sessionID,
		"config":     config,
		"timestamp":  time.Now().UTC(),
	})
}

// Broadcast sends a system payload to every open session.
// FUNCTIONAL DISCOVERY: Each delivery is attempted independently so one
// failed channel never blocks the rest; failed sessions are purged after
// the pass completes, never while scanning the registry
func (r *Registry) Broadcast(payload map[string]interface{}) {
	message := make(map[string]interface{}, len(payload)+2)
	for k, v := range payload {
		message[k] = v
	}
	message["type"] = types.MessageTypeSystemBroadcast
	message["timestamp"] = time.Now().UTC()

	r.mu.RLock()
	targets := make(map[string]*Connection, len(r.channels))
	for sessionID, conn := range r.channels {
		targets[sessionID] = conn
	}
	r.mu.RUnlock()

	type failedSend struct {
		sessionID string
		conn      *Connection
	}
	var failed []failedSend
	for sessionID, conn := range targets {
		if err := conn.WriteJSON(message); err != nil {
			log.Printf("Broadcast failed for session %s: %v", sessionID, err)
			failed = append(failed, failedSend{sessionID, conn})
			continue
		}
		r.touch(sessionID)
	}

	// Same guard as the Send path: a session that reconnected after the
	// snapshot keeps its newer channel
	for _, f := range failed {
		r.removeIfCurrent(f.sessionID, f.conn)
	}
}

// ActiveSessions returns the IDs of all open sessions
func (r *Registry) ActiveSessions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.channels))
	for sessionID := range r.channels {
		ids = append(ids, sessionID)
	}
	return ids
}

// Count returns the number of open sessions
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels)
}

// SessionInfo returns the tracked lifecycle record for one session
func (r *Registry) SessionInfo(sessionID string) (types.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[sessionID]
	if !exists {
		return types.Session{}, false
	}
	return *session, true
}

// CloseAll disconnects every session, used during shutdown
func (r *Registry) CloseAll() {
	for _, sessionID := range r.ActiveSessions() {
		r.Disconnect(sessionID)
	}
}

// ModelInfo summarizes per-domain model metadata from a detection result,
// matching the envelope the extension expects alongside results.
func ModelInfo(results types.DetectionResult) map[string]interface{} {
	return map[string]interface{}{
		"dyslexia_accuracy": results[types.DomainDyslexia].Accuracy,
		"adhd_accuracy":     results[types.DomainADHD].Accuracy,
		"autism_method":     results[types.DomainAutism].Method,
	}
}

// removeIfCurrent purges a session only if the failed connection is still the
// registered one.
// RACE CONDITION FIX: A reconnect may have replaced the channel between the
// failed write and the purge; the newer registration must survive
func (r *Registry) removeIfCurrent(sessionID string, conn *Connection) {
	r.mu.Lock()
	current, exists := r.channels[sessionID]
	if exists && current == conn {
		delete(r.channels, sessionID)
		delete(r.sessions, sessionID)
	}
	r.mu.Unlock()

	if err := conn.Close(); err != nil {
		log.Printf("Error closing failed channel for session %s: %v", sessionID, err)
	}
}

// touch updates LastActivity after a successful send
func (r *Registry) touch(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session, exists := r.sessions[sessionID]; exists {
		session.LastActivity = time.Now().UTC()
	}
}
