package domain

import "github.com/google/uuid"

// NewID returns a fresh random (v4) identifier.
func NewID() string {
	return uuid.NewString()
}

// CanonicalID parses raw as a UUID and returns its canonical lower-case form.
// The second result is false if raw is not a UUID.
func CanonicalID(raw string) (string, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
