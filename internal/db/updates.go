package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateUpdate inserts an update record against a node.
func (db *DB) CreateUpdate(ctx context.Context, nodeID uuid.UUID, input UpdateInput) (*UpdateRecord, error) {
	meta := input.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal update meta: %w", err)
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO updates (node_id, notes, meta)
		 VALUES ($1, $2, $3)
		 RETURNING id, node_id, notes, meta, created_at`,
		nodeID, input.Notes, metaJSON,
	)
	return scanUpdate(row)
}

// GetUpdateByID retrieves an update record by ID. Returns nil when not found.
func (db *DB) GetUpdateByID(ctx context.Context, id uuid.UUID) (*UpdateRecord, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, node_id, notes, meta, created_at FROM updates WHERE id = $1`,
		id,
	)
	record, err := scanUpdate(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return record, err
}

// ListUpdatesByNode lists a node's update records, newest first.
func (db *DB) ListUpdatesByNode(ctx context.Context, nodeID uuid.UUID) ([]UpdateRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, node_id, notes, meta, created_at FROM updates
		 WHERE node_id = $1 ORDER BY created_at DESC`,
		nodeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list updates: %w", err)
	}
	defer rows.Close()

	var records []UpdateRecord
	for rows.Next() {
		record, err := scanUpdate(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func scanUpdate(row pgx.Row) (*UpdateRecord, error) {
	var record UpdateRecord
	var metaJSON []byte
	err := row.Scan(&record.ID, &record.NodeID, &record.Notes, &metaJSON, &record.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan update: %w", err)
	}
	if len(metaJSON) > 0 {
		if err := json.Unmarshal(metaJSON, &record.Meta); err != nil {
			return nil, fmt.Errorf("failed to decode update meta: %w", err)
		}
	}
	return &record, nil
}
