package interfaces

import "errors"

// Shared error types surfaced across component boundaries
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrStoreClosed     = errors.New("store is closed")
)
