package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidSessionID(t *testing.T) {
	valid := []string{
		"a",
		"session-123",
		"user_42",
		"ABC-def_789",
		strings.Repeat("x", 64),
	}
	for _, id := range valid {
		assert.True(t, IsValidSessionID(id), "expected %q to be valid", id)
	}

	invalid := []string{
		"",
		strings.Repeat("x", 65),
		"has space",
		"slash/id",
		"dot.id",
		"emoji-🙂",
		"semi;colon",
	}
	for _, id := range invalid {
		assert.False(t, IsValidSessionID(id), "expected %q to be invalid", id)
	}
}

func TestIsValidDomain(t *testing.T) {
	for _, domain := range DomainOrder {
		assert.True(t, IsValidDomain(domain))
	}
	assert.False(t, IsValidDomain(""))
	assert.False(t, IsValidDomain("dyscalculia"))
	assert.False(t, IsValidDomain("Dyslexia")) // keys are lowercase on the wire
}

func TestIsValidRating(t *testing.T) {
	for r := 1; r <= 5; r++ {
		assert.True(t, IsValidRating(r))
	}
	assert.False(t, IsValidRating(0))
	assert.False(t, IsValidRating(6))
	assert.False(t, IsValidRating(-1))
}

func TestAssessmentValidate(t *testing.T) {
	a := &Assessment{SessionID: "session-1"}
	assert.NoError(t, a.Validate())

	a.SessionID = "bad id"
	assert.ErrorIs(t, a.Validate(), ErrInvalidSessionID)

	a.SessionID = ""
	assert.ErrorIs(t, a.Validate(), ErrInvalidSessionID)
}
