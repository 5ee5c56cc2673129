package model

import "errors"

// Artifact error types
var (
	ErrMalformedArtifact = errors.New("malformed model artifact")
	ErrDimensionMismatch = errors.New("artifact parameter dimensions do not match feature names")
	ErrUnknownArtifact   = errors.New("artifact domain not recognized")
)
