package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/career-wizard/internal/wizard"
)

func TestPrintStepList_MarksCurrentStep(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintStepList(wizard.Snapshot{
		CurrentStep: 1,
		Steps:       []wizard.Step{wizard.StepActivitySelection, wizard.StepAppliedToJobs},
	})

	out := buf.String()
	assert.Contains(t, out, "Step 1 of 2: Select activities")
	assert.Contains(t, out, "> Step 2 of 2: Applied to jobs")
}

func TestPrintSelection(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintSelection(wizard.Data{AppliedToJobs: true, Networking: true})
	assert.Contains(t, buf.String(), "applied to jobs, networking")

	buf.Reset()
	printer.PrintSelection(wizard.Data{Notes: "just notes"})
	assert.Contains(t, buf.String(), "none (notes only)")
}

func TestPrintSubmitResult(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	result := &wizard.Result{UpdateID: uuid.New(), NodeID: uuid.New()}
	printer.PrintSubmitResult(result)

	out := buf.String()
	assert.Contains(t, out, "Update submitted")
	assert.Contains(t, out, result.UpdateID.String())

	buf.Reset()
	printer.PrintSubmitResult(nil)
	assert.Empty(t, buf.String())
}

func TestWrapText(t *testing.T) {
	wrapped := wrapText(strings.Repeat("word ", 30), 20)
	for _, line := range strings.Split(wrapped, "\n") {
		assert.LessOrEqual(t, len(line), 20)
	}
}
