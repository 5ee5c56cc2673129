package interfaces

import (
	"context"

	"seelikeme/pkg/types"
)

// Store is the optional persistence collaborator for session results and
// user feedback.
// ARCHITECTURAL DISCOVERY: Interface with a no-op and a SQLite-backed
// implementation, selected by configuration - no inline disabled-persistence
// conditionals scattered through the core
type Store interface {
	// SaveResult persists the latest detection result for a session.
	// FUNCTIONAL DISCOVERY: Last-write-wins per session; the live channel is
	// the source of truth for freshness, the store only serves request_update
	SaveResult(ctx context.Context, sessionID string, result types.DetectionResult) error

	// GetResult returns the cached detection result for a session.
	// Returns ErrSessionNotFound when nothing is cached (always the case for
	// the no-op implementation).
	GetResult(ctx context.Context, sessionID string) (types.DetectionResult, error)

	// SaveFeedback persists one raw feedback payload for a session.
	SaveFeedback(ctx context.Context, sessionID string, payload []byte) error

	// Connected reports whether a real backing store is available.
	Connected() bool

	// Close releases store resources.
	Close() error
}
