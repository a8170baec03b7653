// Package brand provides brand-building activity types and profile platform detection.
package brand

import (
	"strings"
)

// Platform represents a supported brand-building platform.
type Platform string

const (
	// PlatformLinkedIn is the LinkedIn platform
	PlatformLinkedIn Platform = "linkedin"
	// PlatformX is the X (formerly Twitter) platform
	PlatformX Platform = "x"
)

// DetectPlatform identifies the brand platform from a profile URL.
// Matching is a case-insensitive substring check against known hosts,
// which is what the backend expects for these entries. Returns false
// when the URL belongs to no supported platform.
func DetectPlatform(urlStr string) (Platform, bool) {
	lower := strings.ToLower(urlStr)

	if strings.Contains(lower, "linkedin.com") {
		return PlatformLinkedIn, true
	}

	// X kept both its old and new domains
	if strings.Contains(lower, "x.com") || strings.Contains(lower, "twitter.com") {
		return PlatformX, true
	}

	return "", false
}

// DisplayName returns the human-readable platform name.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformLinkedIn:
		return "LinkedIn"
	case PlatformX:
		return "X"
	default:
		return string(p)
	}
}
