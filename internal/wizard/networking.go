package wizard

import (
	"fmt"
	"strings"
)

// NetworkingType identifies the shape of a networking activity entry.
type NetworkingType string

const (
	// NetworkingColdOutreach is reaching out to people the user has never met
	NetworkingColdOutreach NetworkingType = "coldOutreach"
	// NetworkingReconnected is reconnecting with existing contacts
	NetworkingReconnected NetworkingType = "reconnectedWithSomeone"
	// NetworkingAttendedEvent is attending a networking event
	NetworkingAttendedEvent NetworkingType = "attendedNetworkingEvent"
	// NetworkingInformationalInterview is holding an informational interview
	NetworkingInformationalInterview NetworkingType = "informationalInterview"
)

// NetworkingActivity represents one networking activity entry. The populated
// fields depend on Type; Validate enforces the per-variant required fields.
type NetworkingActivity struct {
	Type NetworkingType `json:"networkingType"`

	// Cold outreach
	Whom         []string `json:"whom,omitempty"`
	Channels     []string `json:"channels,omitempty"`
	OtherChannel string   `json:"otherChannel,omitempty"`
	ExampleOnHow string   `json:"exampleOnHow,omitempty"`

	// Reconnected with someone
	Contacts []string `json:"contacts,omitempty"`

	// Attended networking event
	Event string `json:"event,omitempty"`

	// Informational interview
	Contact string `json:"contact,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// Validate checks the required fields for the activity's variant.
func (a *NetworkingActivity) Validate() error {
	switch a.Type {
	case NetworkingColdOutreach:
		if len(a.Whom) == 0 {
			return fmt.Errorf("cold outreach requires at least one person reached out to")
		}
		if len(a.Channels) == 0 && strings.TrimSpace(a.OtherChannel) == "" {
			return fmt.Errorf("cold outreach requires a channel or an other-channel description")
		}
		if strings.TrimSpace(a.ExampleOnHow) == "" {
			return fmt.Errorf("cold outreach requires an example of how you reached out")
		}
	case NetworkingReconnected:
		if len(a.Contacts) == 0 {
			return fmt.Errorf("reconnecting requires at least one contact")
		}
	case NetworkingAttendedEvent:
		if strings.TrimSpace(a.Event) == "" {
			return fmt.Errorf("attending an event requires an event name")
		}
	case NetworkingInformationalInterview:
		if strings.TrimSpace(a.Contact) == "" {
			return fmt.Errorf("an informational interview requires a contact")
		}
	default:
		return fmt.Errorf("unknown networking type: %q", a.Type)
	}
	return nil
}
