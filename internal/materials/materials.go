// Package materials provides the application-materials rules: resume entry
// summarization and duplicate detection for resume types and organizations.
package materials

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TypeLinkedIn is the reserved entry type for the user's LinkedIn profile.
// Exactly one entry may carry it and it is excluded from the resume count.
const TypeLinkedIn = "linkedin"

// Entry represents one application-material entry: a typed resume or the
// LinkedIn profile entry.
type Entry struct {
	ID           uuid.UUID `json:"id"`
	Type         string    `json:"type"`
	Organization string    `json:"organization,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Summary is the derived output of the application-materials step.
type Summary struct {
	ResumeCount        int  `json:"resumeCount"`
	HasLinkedInProfile bool `json:"hasLinkedInProfile"`
}

// Summarize computes the step's derived output: the resume count excludes the
// LinkedIn-typed entry, which instead sets HasLinkedInProfile.
func Summarize(entries []Entry) Summary {
	var summary Summary
	for _, e := range entries {
		if strings.EqualFold(e.Type, TypeLinkedIn) {
			summary.HasLinkedInProfile = true
			continue
		}
		summary.ResumeCount++
	}
	return summary
}

// Meta returns the summary as scalar update-record meta fields.
func (s Summary) Meta() map[string]any {
	return map[string]any{
		"resumeCount":        s.ResumeCount,
		"hasLinkedInProfile": s.HasLinkedInProfile,
	}
}

// ValidateNewType rejects a resume type that already exists, compared
// case-insensitively. Surfaced as a field-level validation error before any
// network round trip.
func ValidateNewType(existing []string, candidate string) error {
	name := strings.TrimSpace(candidate)
	if name == "" {
		return fmt.Errorf("resume type is required")
	}
	for _, t := range existing {
		if strings.EqualFold(strings.TrimSpace(t), name) {
			return fmt.Errorf("resume type %q already exists", name)
		}
	}
	return nil
}

// ValidateNewOrganization rejects an organization name that already exists,
// compared case-insensitively.
func ValidateNewOrganization(existing []string, candidate string) error {
	name := strings.TrimSpace(candidate)
	if name == "" {
		return fmt.Errorf("organization name is required")
	}
	for _, o := range existing {
		if strings.EqualFold(strings.TrimSpace(o), name) {
			return fmt.Errorf("organization %q already exists", name)
		}
	}
	return nil
}
