package brand

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MaxScreenshots is the maximum number of screenshots allowed per activity entry.
const MaxScreenshots = 5

// Screenshot represents an uploaded screenshot attached to a brand-building activity.
type Screenshot struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType,omitempty"`
	SizeBytes   int64     `json:"sizeBytes,omitempty"`
}

// PlatformActivity represents a single brand-building activity on one platform.
type PlatformActivity struct {
	Platform    Platform     `json:"platform"`
	ProfileURL  string       `json:"profileUrl" validate:"required"`
	Screenshots []Screenshot `json:"screenshots" validate:"required,min=1,max=5"`
	Notes       string       `json:"notes,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}

// NewActivity builds a PlatformActivity from a profile URL, auto-detecting the
// platform from the URL host. Returns an error when the platform cannot be
// detected or the screenshot count is out of range.
func NewActivity(profileURL string, screenshots []Screenshot, notes string, now time.Time) (*PlatformActivity, error) {
	platform, ok := DetectPlatform(profileURL)
	if !ok {
		return nil, fmt.Errorf("could not detect platform from URL: %s", profileURL)
	}

	activity := &PlatformActivity{
		Platform:    platform,
		ProfileURL:  profileURL,
		Screenshots: screenshots,
		Notes:       notes,
		Timestamp:   now,
	}

	if err := activity.Validate(); err != nil {
		return nil, err
	}

	return activity, nil
}

// Validate checks that the activity satisfies the entry rules: a profile URL
// that resolves to a supported platform and 1-5 screenshots.
func (a *PlatformActivity) Validate() error {
	validate := validator.New()
	if err := validate.Struct(a); err != nil {
		return err
	}

	detected, ok := DetectPlatform(a.ProfileURL)
	if !ok {
		return fmt.Errorf("could not detect platform from URL: %s", a.ProfileURL)
	}
	if a.Platform != "" && a.Platform != detected {
		return fmt.Errorf("platform %q does not match URL platform %q", a.Platform, detected)
	}

	return nil
}
