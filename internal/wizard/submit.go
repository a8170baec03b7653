package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jonathan/career-wizard/internal/hierarchy"
)

// Node metadata keys for the merged activity arrays.
const (
	metaKeyNetworking    = "networkingData"
	metaKeyBrandBuilding = "brandBuildingData"
	metaKeyActivities    = "activities"
)

// submit runs the two-phase submission protocol:
//
//  1. Read-modify-write the node's metadata, appending the session's
//     networking and brand-building activities onto the arrays already stored
//     there. This phase is best-effort: a failure is logged and must not
//     block phase 2.
//  2. Create the update record carrying only the scalar flags and the scalar
//     fields from the applied/materials payloads. The activity arrays live on
//     the node, never on the update record.
func (c *Controller) submit(ctx context.Context, data Data) (*Result, error) {
	if err := c.mergeNodeActivities(ctx, data); err != nil {
		log.Printf("node activity merge failed for %s (continuing with update creation): %v", c.nodeID, err)
	}

	record, err := c.updates.CreateUpdate(ctx, c.nodeID, hierarchy.CreateUpdateInput{
		Notes: data.Notes,
		Meta:  BuildUpdateMeta(data),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create update record: %w", err)
	}

	return &Result{UpdateID: record.ID, NodeID: c.nodeID}, nil
}

// mergeNodeActivities fetches the node and writes back its metadata with the
// session's activity arrays appended. No-op when the session collected none.
func (c *Controller) mergeNodeActivities(ctx context.Context, data Data) error {
	if len(data.NetworkingData) == 0 && len(data.BrandBuildingData) == 0 {
		return nil
	}

	node, err := c.nodes.GetNode(ctx, c.nodeID)
	if err != nil {
		return fmt.Errorf("failed to fetch node: %w", err)
	}

	merged := MergeNodeMeta(node.Meta, data)
	if _, err := c.nodes.UpdateNode(ctx, c.nodeID, merged); err != nil {
		return fmt.Errorf("failed to write merged node meta: %w", err)
	}
	return nil
}

// MergeNodeMeta returns a copy of the node metadata with the wizard's
// networking activities appended under networkingData.activities keyed by
// networking type, and brand-building activities appended under
// brandBuildingData.activities keyed by platform. Existing entries are always
// kept; the merge appends, never replaces.
func MergeNodeMeta(meta map[string]any, data Data) map[string]any {
	merged := make(map[string]any, len(meta)+2)
	for k, v := range meta {
		merged[k] = v
	}

	if len(data.NetworkingData) > 0 {
		activities := activityMap(merged, metaKeyNetworking)
		for _, a := range data.NetworkingData {
			key := string(a.Type)
			activities[key] = append(asSlice(activities[key]), toDocument(a))
		}
	}

	if len(data.BrandBuildingData) > 0 {
		activities := activityMap(merged, metaKeyBrandBuilding)
		for platform, entries := range data.BrandBuildingData {
			key := string(platform)
			existing := asSlice(activities[key])
			for _, a := range entries {
				existing = append(existing, toDocument(a))
			}
			activities[key] = existing
		}
	}

	return merged
}

// BuildUpdateMeta builds the flat scalar meta object for the update record:
// the four activity flags plus scalar fields spread in from the applied-to-jobs
// and application-materials payloads. Array- and object-valued fields are
// excluded; those belong on the node.
func BuildUpdateMeta(data Data) map[string]any {
	meta := map[string]any{
		"appliedToJobs":        data.AppliedToJobs,
		"applicationMaterials": data.ApplicationMaterials,
		"networked":            data.Networking,
		"brandBuilding":        data.BrandBuilding,
	}
	spreadScalars(meta, data.AppliedToJobsData)
	spreadScalars(meta, data.ApplicationMaterialsData)
	return meta
}

// spreadScalars copies scalar-valued keys from src into dst.
func spreadScalars(dst, src map[string]any) {
	for k, v := range src {
		switch v.(type) {
		case map[string]any, []any:
			continue
		default:
			dst[k] = v
		}
	}
}

// activityMap returns the activities map under meta[key], creating the nested
// structure when absent. Values fetched over JSON arrive as map[string]any.
func activityMap(meta map[string]any, key string) map[string]any {
	section, ok := meta[key].(map[string]any)
	if !ok {
		section = make(map[string]any)
	} else {
		clone := make(map[string]any, len(section))
		for k, v := range section {
			clone[k] = v
		}
		section = clone
	}
	meta[key] = section

	activities, ok := section[metaKeyActivities].(map[string]any)
	if !ok {
		activities = make(map[string]any)
	} else {
		clone := make(map[string]any, len(activities))
		for k, v := range activities {
			clone[k] = v
		}
		activities = clone
	}
	section[metaKeyActivities] = activities
	return activities
}

// asSlice coerces a metadata value into an appendable []any.
func asSlice(v any) []any {
	if v == nil {
		return nil
	}
	if s, ok := v.([]any); ok {
		return s
	}
	return []any{v}
}

// toDocument converts a typed activity into the map form stored in node
// metadata, so merged arrays stay homogeneous with what the backend returns.
func toDocument(v any) any {
	encoded, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var doc map[string]any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return v
	}
	return doc
}
