package features

import "errors"

// Normalization error types
// FUNCTIONAL DISCOVERY: Normalization failures are recovered locally with a
// neutral default vector; the error exists so callers can log the substitution
var ErrNormalizationFailure = errors.New("normalization failure, neutral defaults substituted")
