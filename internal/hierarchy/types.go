// Package hierarchy defines the timeline-node and update-record contract the
// wizard consumes, plus an HTTP client implementation of it.
package hierarchy

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NodeTypeCareerTransition is the node type the wizard records updates against.
const NodeTypeCareerTransition = "career_transition"

// Node represents a timeline node with free-form metadata.
type Node struct {
	ID        uuid.UUID      `json:"id"`
	Type      string         `json:"type"`
	ParentID  *uuid.UUID     `json:"parent_id,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CreateNodeInput represents input for creating a node.
type CreateNodeInput struct {
	Type     string         `json:"type"`
	ParentID *uuid.UUID     `json:"parent_id,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// UpdateRecord represents a persisted career activity update.
type UpdateRecord struct {
	ID        uuid.UUID      `json:"id"`
	NodeID    uuid.UUID      `json:"node_id"`
	Notes     string         `json:"notes"`
	Meta      map[string]any `json:"meta,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// CreateUpdateInput represents input for creating an update record.
type CreateUpdateInput struct {
	Notes string         `json:"notes"`
	Meta  map[string]any `json:"meta,omitempty"`
}

// NodeAPI is the node CRUD surface of the hierarchy service.
type NodeAPI interface {
	GetNode(ctx context.Context, id uuid.UUID) (*Node, error)
	UpdateNode(ctx context.Context, id uuid.UUID, meta map[string]any) (*Node, error)
	CreateNode(ctx context.Context, input CreateNodeInput) (*Node, error)
	DeleteNode(ctx context.Context, id uuid.UUID) error
	ListNodes(ctx context.Context) ([]Node, error)
}

// UpdatesAPI creates update records against a node.
type UpdatesAPI interface {
	CreateUpdate(ctx context.Context, nodeID uuid.UUID, input CreateUpdateInput) (*UpdateRecord, error)
}
