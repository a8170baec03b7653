package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveScreenshot stores a screenshot for a node and returns its metadata.
func (db *DB) SaveScreenshot(ctx context.Context, nodeID uuid.UUID, input ScreenshotInput) (*Screenshot, error) {
	contentType := input.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO screenshots (node_id, user_id, file_name, content_type, size_bytes, content)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, node_id, user_id, file_name, content_type, size_bytes, created_at`,
		nodeID, input.UserID, input.FileName, contentType, int64(len(input.Content)), input.Content,
	)
	return scanScreenshot(row)
}

// GetScreenshotContent retrieves a screenshot's content and content type.
// Returns nil content when not found.
func (db *DB) GetScreenshotContent(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	var content []byte
	var contentType string
	err := db.pool.QueryRow(ctx,
		`SELECT content, content_type FROM screenshots WHERE id = $1`,
		id,
	).Scan(&content, &contentType)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to get screenshot: %w", err)
	}
	return content, contentType, nil
}

// ListScreenshotsByNode lists screenshot metadata for a node.
func (db *DB) ListScreenshotsByNode(ctx context.Context, nodeID uuid.UUID) ([]Screenshot, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, node_id, user_id, file_name, content_type, size_bytes, created_at
		 FROM screenshots WHERE node_id = $1 ORDER BY created_at`,
		nodeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list screenshots: %w", err)
	}
	defer rows.Close()

	var shots []Screenshot
	for rows.Next() {
		shot, err := scanScreenshot(rows)
		if err != nil {
			return nil, err
		}
		shots = append(shots, *shot)
	}
	return shots, rows.Err()
}

// GetStorageUsage returns the total screenshot bytes stored for a user.
func (db *DB) GetStorageUsage(ctx context.Context, userID uuid.UUID) (*StorageUsage, error) {
	usage := &StorageUsage{QuotaBytes: DefaultStorageQuotaBytes}
	err := db.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(size_bytes), 0), COUNT(*) FROM screenshots WHERE user_id = $1`,
		userID,
	).Scan(&usage.UsedBytes, &usage.Count)
	if err != nil {
		return nil, fmt.Errorf("failed to get storage usage: %w", err)
	}
	return usage, nil
}

func scanScreenshot(row pgx.Row) (*Screenshot, error) {
	var shot Screenshot
	err := row.Scan(&shot.ID, &shot.NodeID, &shot.UserID, &shot.FileName, &shot.ContentType, &shot.SizeBytes, &shot.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan screenshot: %w", err)
	}
	return &shot, nil
}
