package domain

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Standard field bounds.
const (
	MaxStandardTitleLen    = 200
	MaxStandardCategoryLen = 100
	MaxStandardVersionLen  = 20
)

// DefaultStandardVersion is assigned when a standard is created without a version.
const DefaultStandardVersion = "1.0"

// Standard represents a compliance guideline with rich text or checklist content.
// LastUpdated is owned by the server and re-stamped on every write.
type Standard struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Content     string    `json:"content"`
	Version     string    `json:"version"`
	LastUpdated time.Time `json:"last_updated"`
}

// Validate checks the client-writable fields against their bounds.
func (s *Standard) Validate() error {
	switch {
	case s.Title == "":
		return &ValidationError{Field: "title", Message: "required"}
	case utf8.RuneCountInString(s.Title) > MaxStandardTitleLen:
		return &ValidationError{Field: "title", Message: fmt.Sprintf("must be at most %d characters", MaxStandardTitleLen)}
	case s.Category == "":
		return &ValidationError{Field: "category", Message: "required"}
	case utf8.RuneCountInString(s.Category) > MaxStandardCategoryLen:
		return &ValidationError{Field: "category", Message: fmt.Sprintf("must be at most %d characters", MaxStandardCategoryLen)}
	case s.Content == "":
		return &ValidationError{Field: "content", Message: "required"}
	case utf8.RuneCountInString(s.Version) > MaxStandardVersionLen:
		return &ValidationError{Field: "version", Message: fmt.Sprintf("must be at most %d characters", MaxStandardVersionLen)}
	}
	return nil
}

func (s *Standard) String() string {
	return fmt.Sprintf("%s (%s)", s.Title, s.Version)
}
