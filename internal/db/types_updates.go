package db

import (
	"time"

	"github.com/google/uuid"
)

// UpdateRecord represents a stored career activity update
type UpdateRecord struct {
	ID        uuid.UUID      `json:"id"`
	NodeID    uuid.UUID      `json:"node_id"`
	Notes     string         `json:"notes"`
	Meta      map[string]any `json:"meta,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// UpdateInput represents input for creating an update record
type UpdateInput struct {
	Notes string
	Meta  map[string]any
}
