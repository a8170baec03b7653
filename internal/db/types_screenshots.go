package db

import (
	"time"

	"github.com/google/uuid"
)

// DefaultStorageQuotaBytes is the per-user screenshot storage quota (25 MB).
const DefaultStorageQuotaBytes int64 = 25 << 20

// Screenshot represents a stored screenshot row (metadata only; content is
// fetched separately).
type Screenshot struct {
	ID          uuid.UUID  `json:"id"`
	NodeID      uuid.UUID  `json:"node_id"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	FileName    string     `json:"file_name"`
	ContentType string     `json:"content_type"`
	SizeBytes   int64      `json:"size_bytes"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ScreenshotInput represents input for storing a screenshot
type ScreenshotInput struct {
	UserID      *uuid.UUID
	FileName    string
	ContentType string
	Content     []byte
}

// StorageUsage summarizes a user's screenshot storage consumption.
type StorageUsage struct {
	UsedBytes  int64 `json:"used_bytes"`
	QuotaBytes int64 `json:"quota_bytes"`
	Count      int   `json:"count"`
}
