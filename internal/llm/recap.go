package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/career-wizard/internal/wizard"
)

// Recap generates a short encouraging recap of a submitted career update.
// Callers treat this as best-effort: a failure is surfaced but should never
// affect the submitted update itself.
func Recap(ctx context.Context, client Client, data wizard.Data) (string, error) {
	prompt := BuildRecapPrompt(data)
	text, err := client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate recap: %w", err)
	}
	return text, nil
}

// BuildRecapPrompt renders the recap prompt from the wizard aggregate.
func BuildRecapPrompt(data wizard.Data) string {
	var sb strings.Builder
	sb.WriteString("Write a two-sentence, encouraging recap of this week's job search activity. ")
	sb.WriteString("Plain text only, no lists.\n\nActivity:\n")

	if data.AppliedToJobs {
		sb.WriteString("- Applied to jobs")
		if count, ok := data.AppliedToJobsData["applicationsSubmitted"]; ok {
			fmt.Fprintf(&sb, " (%v applications)", count)
		}
		sb.WriteString("\n")
	}
	if data.ApplicationMaterials {
		sb.WriteString("- Updated resume/LinkedIn materials\n")
	}
	for _, activity := range data.NetworkingData {
		switch {
		case activity.Event != "":
			fmt.Fprintf(&sb, "- Attended networking event: %s\n", activity.Event)
		case len(activity.Whom) > 0:
			fmt.Fprintf(&sb, "- Cold outreach to %d people\n", len(activity.Whom))
		case len(activity.Contacts) > 0:
			fmt.Fprintf(&sb, "- Reconnected with %d contacts\n", len(activity.Contacts))
		case activity.Contact != "":
			fmt.Fprintf(&sb, "- Informational interview with %s\n", activity.Contact)
		}
	}
	for platform, entries := range data.BrandBuildingData {
		fmt.Fprintf(&sb, "- %d brand-building activities on %s\n", len(entries), platform.DisplayName())
	}
	if data.Notes != "" {
		fmt.Fprintf(&sb, "\nNotes from the job seeker:\n%s\n", data.Notes)
	}

	return sb.String()
}
