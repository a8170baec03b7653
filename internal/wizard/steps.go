package wizard

// Step identifies one wizard step. Steps are a tagged enum resolved through a
// single derivation function, never an interface hierarchy.
type Step string

const (
	// StepActivitySelection is the fixed first step
	StepActivitySelection Step = "activity-selection"
	// StepAppliedToJobs collects job application activity
	StepAppliedToJobs Step = "applied-to-jobs"
	// StepApplicationMaterials collects resume/LinkedIn material updates
	StepApplicationMaterials Step = "application-materials"
	// StepNetworking collects networking activities
	StepNetworking Step = "networking"
	// StepBrandBuilding collects brand-building activities
	StepBrandBuilding Step = "brand-building"
)

// DeriveSteps computes the ordered step list for the current aggregate.
// The list always starts with activity selection; the remaining steps follow
// in canonical order filtered by the selected flags. The step-count display
// ("Step 2 of 3") depends on this exact ordering.
func DeriveSteps(d Data) []Step {
	steps := []Step{StepActivitySelection}
	if d.AppliedToJobs {
		steps = append(steps, StepAppliedToJobs)
	}
	if d.ApplicationMaterials {
		steps = append(steps, StepApplicationMaterials)
	}
	if d.Networking {
		steps = append(steps, StepNetworking)
	}
	if d.BrandBuilding {
		steps = append(steps, StepBrandBuilding)
	}
	return steps
}

// clampStep clamps an index into the valid range for the given step list.
func clampStep(index int, steps []Step) int {
	if index < 0 {
		return 0
	}
	if index > len(steps)-1 {
		return len(steps) - 1
	}
	return index
}
