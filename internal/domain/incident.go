package domain

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Incident field bounds.
const (
	MaxIncidentTypeLen       = 100
	MaxIncidentReportedByLen = 100
)

// DefaultReporter is used when an incident is reported without a name.
const DefaultReporter = "Anonymous"

// Severity represents how serious a reported incident is.
type Severity string

// Incident severities.
const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Severities lists all valid severities in ascending order.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// IsValid checks if the severity is valid.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Label returns the human-readable name, e.g. "Critical".
func (s Severity) Label() string {
	return label(string(s))
}

// ParseSeverity converts raw input into a Severity.
// An empty value yields the default severity.
func ParseSeverity(raw string) (Severity, error) {
	if raw == "" {
		return SeverityLow, nil
	}
	s := Severity(raw)
	if !s.IsValid() {
		return "", &ValidationError{Field: "severity", Message: fmt.Sprintf("%q is not a valid choice", raw)}
	}
	return s, nil
}

// IncidentStatus represents the resolution state of an incident.
type IncidentStatus string

// Incident statuses.
const (
	IncidentStatusOpen          IncidentStatus = "OPEN"
	IncidentStatusInvestigating IncidentStatus = "INVESTIGATING"
	IncidentStatusResolved      IncidentStatus = "RESOLVED"
)

// IncidentStatuses lists all valid statuses in lifecycle order.
var IncidentStatuses = []IncidentStatus{IncidentStatusOpen, IncidentStatusInvestigating, IncidentStatusResolved}

// IsValid checks if the incident status is valid.
func (s IncidentStatus) IsValid() bool {
	switch s {
	case IncidentStatusOpen, IncidentStatusInvestigating, IncidentStatusResolved:
		return true
	}
	return false
}

// Label returns the human-readable name, e.g. "Investigating".
func (s IncidentStatus) Label() string {
	return label(string(s))
}

// ParseIncidentStatus converts raw input into an IncidentStatus.
// An empty value yields the default status.
func ParseIncidentStatus(raw string) (IncidentStatus, error) {
	if raw == "" {
		return IncidentStatusOpen, nil
	}
	s := IncidentStatus(raw)
	if !s.IsValid() {
		return "", &ValidationError{Field: "status", Message: fmt.Sprintf("%q is not a valid choice", raw)}
	}
	return s, nil
}

// Incident represents a reported compliance or safety event.
// ReportedAt is set once on creation and never changes afterwards.
type Incident struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Severity    Severity       `json:"severity"`
	Status      IncidentStatus `json:"status"`
	ReportedAt  time.Time      `json:"reported_at"`
	ReportedBy  string         `json:"reported_by"`
}

// IsOpen returns true if the incident still awaits handling.
func (i *Incident) IsOpen() bool {
	return i.Status == IncidentStatusOpen
}

// Validate checks the client-writable fields against their bounds.
func (i *Incident) Validate() error {
	switch {
	case i.Type == "":
		return &ValidationError{Field: "type", Message: "required"}
	case utf8.RuneCountInString(i.Type) > MaxIncidentTypeLen:
		return &ValidationError{Field: "type", Message: fmt.Sprintf("must be at most %d characters", MaxIncidentTypeLen)}
	case i.Description == "":
		return &ValidationError{Field: "description", Message: "required"}
	case !i.Severity.IsValid():
		return &ValidationError{Field: "severity", Message: fmt.Sprintf("%q is not a valid choice", i.Severity)}
	case !i.Status.IsValid():
		return &ValidationError{Field: "status", Message: fmt.Sprintf("%q is not a valid choice", i.Status)}
	case utf8.RuneCountInString(i.ReportedBy) > MaxIncidentReportedByLen:
		return &ValidationError{Field: "reported_by", Message: fmt.Sprintf("must be at most %d characters", MaxIncidentReportedByLen)}
	}
	return nil
}

func (i *Incident) String() string {
	return fmt.Sprintf("%s - %s (%s)", i.Type, i.Severity, i.Status)
}
