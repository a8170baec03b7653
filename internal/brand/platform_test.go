package brand

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPlatform_LinkedIn(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://linkedin.com/in/x", PlatformLinkedIn},
		{"https://www.linkedin.com/in/jane-doe", PlatformLinkedIn},
		{"HTTPS://WWW.LINKEDIN.COM/IN/JANE", PlatformLinkedIn},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			platform, ok := DetectPlatform(tt.url)
			require.True(t, ok)
			assert.Equal(t, tt.expected, platform)
		})
	}
}

func TestDetectPlatform_X(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://x.com/y", PlatformX},
		{"https://twitter.com/y", PlatformX},
		{"https://www.Twitter.com/someone", PlatformX},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			platform, ok := DetectPlatform(tt.url)
			require.True(t, ok)
			assert.Equal(t, tt.expected, platform)
		})
	}
}

func TestDetectPlatform_Unknown(t *testing.T) {
	for _, url := range []string{"https://example.com", "https://facebook.com/page", ""} {
		t.Run(url, func(t *testing.T) {
			_, ok := DetectPlatform(url)
			assert.False(t, ok)
		})
	}
}

func TestPlatformDisplayName(t *testing.T) {
	assert.Equal(t, "LinkedIn", PlatformLinkedIn.DisplayName())
	assert.Equal(t, "X", PlatformX.DisplayName())
}

func testScreenshots(n int) []Screenshot {
	shots := make([]Screenshot, 0, n)
	for i := 0; i < n; i++ {
		shots = append(shots, Screenshot{ID: uuid.New(), FileName: "proof.png"})
	}
	return shots
}

func TestNewActivity_DetectsPlatform(t *testing.T) {
	activity, err := NewActivity("https://linkedin.com/in/jane", testScreenshots(1), "posted an article", time.Now())
	require.NoError(t, err)
	assert.Equal(t, PlatformLinkedIn, activity.Platform)
	assert.Equal(t, "posted an article", activity.Notes)
}

func TestNewActivity_UnknownPlatform(t *testing.T) {
	_, err := NewActivity("https://example.com/profile", testScreenshots(1), "", time.Now())
	assert.Error(t, err)
}

func TestActivityValidate_ScreenshotBounds(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		wantErr bool
	}{
		{"zero screenshots", 0, true},
		{"one screenshot", 1, false},
		{"five screenshots", 5, false},
		{"six screenshots", 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			activity := &PlatformActivity{
				Platform:    PlatformX,
				ProfileURL:  "https://x.com/jane",
				Screenshots: testScreenshots(tt.count),
				Timestamp:   time.Now(),
			}
			err := activity.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestActivityValidate_PlatformMismatch(t *testing.T) {
	activity := &PlatformActivity{
		Platform:    PlatformLinkedIn,
		ProfileURL:  "https://x.com/jane",
		Screenshots: testScreenshots(1),
		Timestamp:   time.Now(),
	}
	assert.Error(t, activity.Validate())
}
