// Package wizard implements the career update wizard: step sequencing over the
// selected activities, accumulation of per-step data into one aggregate, and
// the submission merge protocol against the hierarchy service.
package wizard

import (
	"github.com/jonathan/career-wizard/internal/brand"
)

// Data is the wizard's evolving aggregate. It is created empty when a session
// starts, mutated by each step's patch, and discarded after submit or cancel.
// A payload slot is populated only while its activity flag is true.
type Data struct {
	AppliedToJobs        bool   `json:"appliedToJobs"`
	ApplicationMaterials bool   `json:"applicationMaterials"`
	Networking           bool   `json:"networking"`
	BrandBuilding        bool   `json:"brandBuilding"`
	Notes                string `json:"notes"`

	AppliedToJobsData        map[string]any                              `json:"appliedToJobsData,omitempty"`
	ApplicationMaterialsData map[string]any                              `json:"applicationMaterialsData,omitempty"`
	NetworkingData           []NetworkingActivity                        `json:"networkingData,omitempty"`
	BrandBuildingData        map[brand.Platform][]brand.PlatformActivity `json:"brandBuildingData,omitempty"`
}

// Patch is a partial update produced by one step. Nil fields are absent;
// present fields overwrite the aggregate (shallow merge).
type Patch struct {
	AppliedToJobs        *bool   `json:"appliedToJobs,omitempty"`
	ApplicationMaterials *bool   `json:"applicationMaterials,omitempty"`
	Networking           *bool   `json:"networking,omitempty"`
	BrandBuilding        *bool   `json:"brandBuilding,omitempty"`
	Notes                *string `json:"notes,omitempty"`

	AppliedToJobsData        map[string]any                              `json:"appliedToJobsData,omitempty"`
	ApplicationMaterialsData map[string]any                              `json:"applicationMaterialsData,omitempty"`
	NetworkingData           []NetworkingActivity                        `json:"networkingData,omitempty"`
	BrandBuildingData        map[brand.Platform][]brand.PlatformActivity `json:"brandBuildingData,omitempty"`
}

// Apply merges a patch into the aggregate and re-establishes the slot
// invariant: a payload slot is cleared as soon as its flag goes false, so a
// step toggled off via Back cannot leave stale data behind.
func (d *Data) Apply(p Patch) {
	if p.AppliedToJobs != nil {
		d.AppliedToJobs = *p.AppliedToJobs
	}
	if p.ApplicationMaterials != nil {
		d.ApplicationMaterials = *p.ApplicationMaterials
	}
	if p.Networking != nil {
		d.Networking = *p.Networking
	}
	if p.BrandBuilding != nil {
		d.BrandBuilding = *p.BrandBuilding
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	if p.AppliedToJobsData != nil {
		d.AppliedToJobsData = p.AppliedToJobsData
	}
	if p.ApplicationMaterialsData != nil {
		d.ApplicationMaterialsData = p.ApplicationMaterialsData
	}
	if p.NetworkingData != nil {
		d.NetworkingData = p.NetworkingData
	}
	if p.BrandBuildingData != nil {
		d.BrandBuildingData = p.BrandBuildingData
	}

	if !d.AppliedToJobs {
		d.AppliedToJobsData = nil
	}
	if !d.ApplicationMaterials {
		d.ApplicationMaterialsData = nil
	}
	if !d.Networking {
		d.NetworkingData = nil
	}
	if !d.BrandBuilding {
		d.BrandBuildingData = nil
	}
}

// HasSelection reports whether the activity-selection step can continue:
// at least one activity flag set, or non-empty notes.
func (d *Data) HasSelection() bool {
	return d.AppliedToJobs || d.ApplicationMaterials || d.Networking || d.BrandBuilding || d.Notes != ""
}
