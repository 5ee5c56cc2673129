package types

import (
	"regexp"
)

// FUNCTIONAL DISCOVERY: Regex compiled once at package initialization
// for better performance in high-frequency validation scenarios
var sessionIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// IsValidSessionID checks if a caller-supplied session ID meets format requirements
// FUNCTIONAL DISCOVERY: 1-64 character limit keeps IDs usable as storage keys
// and prevents abusive registry growth from oversized identifiers
func IsValidSessionID(sessionID string) bool {
	if len(sessionID) < 1 || len(sessionID) > 64 {
		return false
	}
	return sessionIDRegex.MatchString(sessionID)
}

// IsValidDomain checks if a domain key is one of the three modeled trait domains
// ARCHITECTURAL DISCOVERY: Explicit validation prevents undefined domain keys
// from entering the toggle/feedback paths
func IsValidDomain(domain string) bool {
	switch domain {
	case DomainDyslexia, DomainADHD, DomainAutism:
		return true
	default:
		return false
	}
}

// IsValidRating checks a 1-5 questionnaire or feedback rating
func IsValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

// Validate ensures the assessment can be handed to the detection core
// FUNCTIONAL DISCOVERY: The core assumes field presence; only the session
// binding is validated here, field presence is enforced at the HTTP boundary
func (a *Assessment) Validate() error {
	if !IsValidSessionID(a.SessionID) {
		return ErrInvalidSessionID
	}
	return nil
}
