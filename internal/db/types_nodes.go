package db

import (
	"time"

	"github.com/google/uuid"
)

// NodeTypeCareerTransition is the node type career updates attach to.
const NodeTypeCareerTransition = "career_transition"

// Node represents a stored timeline node
type Node struct {
	ID        uuid.UUID      `json:"id"`
	Type      string         `json:"type"`
	ParentID  *uuid.UUID     `json:"parent_id,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NodeInput represents input for creating a node
type NodeInput struct {
	Type     string
	ParentID *uuid.UUID
	Meta     map[string]any
}

// ListNodesOptions provides filters for listing nodes
type ListNodesOptions struct {
	Type     *string
	ParentID *uuid.UUID
}
