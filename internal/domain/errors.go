// Package domain contains the quality-management entities shared by all modules.
package domain

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ValidationError reports a client-writable field that violates its constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// label title-cases an enum literal. Casers are stateful, so one is built per call.
func label(raw string) string {
	return cases.Title(language.English).String(strings.ToLower(raw))
}

// Now returns the current time in the precision every store can round-trip.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
