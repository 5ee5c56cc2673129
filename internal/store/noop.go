// Package store provides the optional persistence collaborator: a no-op
// implementation for the default disabled-persistence configuration and a
// SQLite-backed implementation for deployments that cache session results.
package store

import (
	"context"

	"seelikeme/pkg/interfaces"
	"seelikeme/pkg/types"
)

// Noop is the disabled-persistence store.
// ARCHITECTURAL DISCOVERY: Modeling the disabled branch as a full interface
// implementation keeps the core free of feature-flag conditionals
type Noop struct{}

// NewNoop creates the disabled store
func NewNoop() *Noop {
	return &Noop{}
}

// SaveResult discards the result
func (n *Noop) SaveResult(ctx context.Context, sessionID string, result types.DetectionResult) error {
	return nil
}

// GetResult always reports a cache miss
func (n *Noop) GetResult(ctx context.Context, sessionID string) (types.DetectionResult, error) {
	return nil, interfaces.ErrSessionNotFound
}

// SaveFeedback discards the feedback payload
func (n *Noop) SaveFeedback(ctx context.Context, sessionID string, payload []byte) error {
	return nil
}

// Connected always reports false for the disabled store
func (n *Noop) Connected() bool {
	return false
}

// Close is a no-op
func (n *Noop) Close() error {
	return nil
}
