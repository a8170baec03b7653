package hierarchy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Error represents an error returned by the hierarchy service.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("hierarchy error for %s %s: %s: %v", e.Method, e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("hierarchy error for %s %s: %s", e.Method, e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client is an HTTP client for the hierarchy and updates REST API.
// It implements NodeAPI and UpdatesAPI.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// ClientOptions configures the client.
type ClientOptions struct {
	Timeout time.Duration
	Token   string // optional bearer token
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string, opts *ClientOptions) *Client {
	timeout := DefaultTimeout
	token := ""
	if opts != nil {
		if opts.Timeout > 0 {
			timeout = opts.Timeout
		}
		token = opts.Token
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetNode retrieves a node by ID.
func (c *Client) GetNode(ctx context.Context, id uuid.UUID) (*Node, error) {
	var node Node
	if err := c.do(ctx, http.MethodGet, "/nodes/"+id.String(), nil, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// UpdateNode replaces a node's metadata.
func (c *Client) UpdateNode(ctx context.Context, id uuid.UUID, meta map[string]any) (*Node, error) {
	var node Node
	body := map[string]any{"meta": meta}
	if err := c.do(ctx, http.MethodPut, "/nodes/"+id.String(), body, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// CreateNode creates a new node.
func (c *Client) CreateNode(ctx context.Context, input CreateNodeInput) (*Node, error) {
	var node Node
	if err := c.do(ctx, http.MethodPost, "/nodes", input, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// DeleteNode deletes a node by ID.
func (c *Client) DeleteNode(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/nodes/"+id.String(), nil, nil)
}

// ListNodes lists all nodes.
func (c *Client) ListNodes(ctx context.Context) ([]Node, error) {
	var resp struct {
		Nodes []Node `json:"nodes"`
	}
	if err := c.do(ctx, http.MethodGet, "/nodes", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Nodes, nil
}

// CreateUpdate creates an update record against a node.
func (c *Client) CreateUpdate(ctx context.Context, nodeID uuid.UUID, input CreateUpdateInput) (*UpdateRecord, error) {
	var record UpdateRecord
	if err := c.do(ctx, http.MethodPost, "/nodes/"+nodeID.String()+"/updates", input, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// do performs a JSON request against the API and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &Error{Method: method, Path: path, Message: "failed to encode request body", Cause: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Method: method, Path: path, Message: "failed to create request", Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Method: method, Path: path, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Method: method, Path: path, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// readErrorMessage extracts the error field from an API error response body.
func readErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return "request failed"
	}
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return strings.TrimSpace(string(data))
}
