package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateNode inserts a new node and returns the stored row.
func (db *DB) CreateNode(ctx context.Context, input NodeInput) (*Node, error) {
	meta := input.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal node meta: %w", err)
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO nodes (type, parent_id, meta)
		 VALUES ($1, $2, $3)
		 RETURNING id, type, parent_id, meta, created_at, updated_at`,
		input.Type, input.ParentID, metaJSON,
	)
	return scanNode(row)
}

// GetNodeByID retrieves a node by ID. Returns nil when not found.
func (db *DB) GetNodeByID(ctx context.Context, id uuid.UUID) (*Node, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, type, parent_id, meta, created_at, updated_at FROM nodes WHERE id = $1`,
		id,
	)
	node, err := scanNode(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return node, err
}

// UpdateNodeMeta replaces a node's metadata document. Last writer wins; there
// is no version check on the row.
func (db *DB) UpdateNodeMeta(ctx context.Context, id uuid.UUID, meta map[string]any) (*Node, error) {
	if meta == nil {
		meta = map[string]any{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal node meta: %w", err)
	}

	row := db.pool.QueryRow(ctx,
		`UPDATE nodes SET meta = $1, updated_at = NOW()
		 WHERE id = $2
		 RETURNING id, type, parent_id, meta, created_at, updated_at`,
		metaJSON, id,
	)
	node, err := scanNode(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return node, err
}

// DeleteNode deletes a node by ID. Returns false when no row matched.
func (db *DB) DeleteNode(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM nodes WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete node: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListNodes lists nodes with optional type and parent filters.
func (db *DB) ListNodes(ctx context.Context, opts ListNodesOptions) ([]Node, error) {
	query := `SELECT id, type, parent_id, meta, created_at, updated_at FROM nodes WHERE 1=1`
	args := []any{}
	argNum := 1

	if opts.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argNum)
		args = append(args, *opts.Type)
		argNum++
	}
	if opts.ParentID != nil {
		query += fmt.Sprintf(" AND parent_id = $%d", argNum)
		args = append(args, *opts.ParentID)
		argNum++
	}
	query += " ORDER BY created_at"

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	defer rows.Close()

	var nodes []Node
	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, *node)
	}
	return nodes, rows.Err()
}

// scanNode scans one node row, decoding the JSONB meta column.
func scanNode(row pgx.Row) (*Node, error) {
	var node Node
	var metaJSON []byte
	err := row.Scan(&node.ID, &node.Type, &node.ParentID, &metaJSON, &node.CreatedAt, &node.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan node: %w", err)
	}
	if len(metaJSON) > 0 {
		if err := json.Unmarshal(metaJSON, &node.Meta); err != nil {
			return nil, fmt.Errorf("failed to decode node meta: %w", err)
		}
	}
	return &node, nil
}
