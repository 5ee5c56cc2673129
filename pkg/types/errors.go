package types

import "errors"

// ARCHITECTURAL DISCOVERY: Specific error types enable proper error handling
// and user-friendly error messages throughout the system
var (
	ErrInvalidSessionID  = errors.New("session ID must be 1-64 characters, alphanumeric + underscore/hyphen only")
	ErrInvalidRating     = errors.New("ratings must be between 1 and 5")
	ErrInvalidDisability = errors.New("disability must be one of dyslexia, adhd, autism")
)
