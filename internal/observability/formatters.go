// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-wizard/internal/wizard"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// stepLabels maps step identifiers to their display names.
var stepLabels = map[wizard.Step]string{
	wizard.StepActivitySelection:    "Select activities",
	wizard.StepAppliedToJobs:        "Applied to jobs",
	wizard.StepApplicationMaterials: "Application materials",
	wizard.StepNetworking:           "Networking",
	wizard.StepBrandBuilding:        "Brand building",
}

// PrintStepList outputs the derived step list with the current position marked.
func (p *Printer) PrintStepList(snapshot wizard.Snapshot) {
	var sb strings.Builder
	for i, step := range snapshot.Steps {
		marker := " "
		if i == snapshot.CurrentStep {
			marker = ">"
		}
		fmt.Fprintf(&sb, "%s Step %d of %d: %s\n", marker, i+1, len(snapshot.Steps), stepLabels[step])
	}
	p.printBox("Wizard steps", strings.TrimRight(sb.String(), "\n"))
}

// PrintSelection outputs a summary of the selected activities.
func (p *Printer) PrintSelection(data wizard.Data) {
	var selected []string
	if data.AppliedToJobs {
		selected = append(selected, "applied to jobs")
	}
	if data.ApplicationMaterials {
		selected = append(selected, "application materials")
	}
	if data.Networking {
		selected = append(selected, "networking")
	}
	if data.BrandBuilding {
		selected = append(selected, "brand building")
	}

	content := "none (notes only)"
	if len(selected) > 0 {
		content = strings.Join(selected, ", ")
	}
	p.printBox("Selected activities", content)
}

// PrintSubmitResult outputs the created update's identifiers.
func (p *Printer) PrintSubmitResult(result *wizard.Result) {
	if result == nil {
		return
	}
	content := fmt.Sprintf("Update:  %s\nNode:    %s", result.UpdateID, result.NodeID)
	p.printBox("Update submitted", content)
}

// PrintRecap outputs the generated recap text.
func (p *Printer) PrintRecap(recap string) {
	if recap == "" {
		return
	}
	p.printBox("Recap", wrapText(recap, boxWidth-4))
}

// wrapText wraps text at the given width on word boundaries.
func wrapText(text string, width int) string {
	var sb strings.Builder
	line := 0
	for _, word := range strings.Fields(text) {
		if line > 0 && line+len(word)+1 > width {
			sb.WriteString("\n")
			line = 0
		} else if line > 0 {
			sb.WriteString(" ")
			line++
		}
		sb.WriteString(word)
		line += len(word)
	}
	return sb.String()
}
