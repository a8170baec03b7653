package hierarchy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-wizard/internal/brand"
)

// maxConcurrentUploads bounds parallel screenshot uploads per call.
const maxConcurrentUploads = 3

// UploadScreenshot uploads a single screenshot file for a node and returns the
// stored screenshot metadata.
func (c *Client) UploadScreenshot(ctx context.Context, nodeID uuid.UUID, path string) (*brand.Screenshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read screenshot %s: %w", path, err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}

	urlPath := "/nodes/" + nodeID.String() + "/screenshots"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+urlPath, &buf)
	if err != nil {
		return nil, &Error{Method: http.MethodPost, Path: urlPath, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Method: http.MethodPost, Path: urlPath, Message: "upload failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			Method:     http.MethodPost,
			Path:       urlPath,
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
		}
	}

	// The endpoint accepts batches, so the response wraps a list even for a
	// single file. Stored rows use snake_case field names.
	var uploaded struct {
		Screenshots []struct {
			ID          uuid.UUID `json:"id"`
			FileName    string    `json:"file_name"`
			ContentType string    `json:"content_type"`
			SizeBytes   int64     `json:"size_bytes"`
		} `json:"screenshots"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&uploaded); err != nil {
		return nil, &Error{Method: http.MethodPost, Path: urlPath, Message: "failed to decode response", Cause: err}
	}
	if len(uploaded.Screenshots) != 1 {
		return nil, &Error{Method: http.MethodPost, Path: urlPath, Message: "unexpected screenshot count in response"}
	}

	row := uploaded.Screenshots[0]
	return &brand.Screenshot{
		ID:          row.ID,
		FileName:    row.FileName,
		ContentType: row.ContentType,
		SizeBytes:   row.SizeBytes,
	}, nil
}

// UploadScreenshots uploads multiple screenshot files concurrently.
// Results preserve the input order. The whole batch fails if any upload fails.
func (c *Client) UploadScreenshots(ctx context.Context, nodeID uuid.UUID, paths []string) ([]brand.Screenshot, error) {
	if len(paths) > brand.MaxScreenshots {
		return nil, fmt.Errorf("too many screenshots: %d (max %d)", len(paths), brand.MaxScreenshots)
	}

	shots := make([]brand.Screenshot, len(paths))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentUploads)
	for i, path := range paths {
		g.Go(func() error {
			shot, err := c.UploadScreenshot(gctx, nodeID, path)
			if err != nil {
				return err
			}
			mu.Lock()
			shots[i] = *shot
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return shots, nil
}
