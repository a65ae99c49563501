package indexes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultEndpoint = "https://firestore.googleapis.com"

// RemoteAPIError is a non-2xx response from the Admin API.
type RemoteAPIError struct {
	StatusCode int
	Message    string
	RawPayload []byte
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("admin api: status %d: %s", e.StatusCode, e.Message)
}

// Conflict reports whether the error means the index already exists,
// either through a 409 status or an "already exists" message.
func (e *RemoteAPIError) Conflict() bool {
	if e.StatusCode == http.StatusConflict {
		return true
	}
	return strings.Contains(strings.ToLower(string(e.RawPayload)), "already exists")
}

// BestMessage returns the most specific message available: the structured
// error extracted from the payload, falling back to the raw error string.
func (e *RemoteAPIError) BestMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error()
}

// AdminClient talks to the Firestore Admin REST API. Credentials
// resolution is the caller's concern: the client is constructed
// explicitly with a bearer token and passed in, never built from
// process-wide state.
type AdminClient struct {
	httpClient *http.Client
	endpoint   string
	projectID  string
	databaseID string
	token      string
}

// AdminClientOption configures an AdminClient.
type AdminClientOption func(*AdminClient)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) AdminClientOption {
	return func(a *AdminClient) {
		a.httpClient = c
	}
}

// WithEndpoint overrides the API endpoint (used against emulators and in
// tests).
func WithEndpoint(endpoint string) AdminClientOption {
	return func(a *AdminClient) {
		a.endpoint = strings.TrimRight(endpoint, "/")
	}
}

// WithDatabase selects a database other than "(default)".
func WithDatabase(databaseID string) AdminClientOption {
	return func(a *AdminClient) {
		a.databaseID = databaseID
	}
}

// WithToken sets the bearer token attached to each request.
func WithToken(token string) AdminClientOption {
	return func(a *AdminClient) {
		a.token = token
	}
}

// NewAdminClient creates a client for one project.
func NewAdminClient(projectID string, options ...AdminClientOption) *AdminClient {
	client := &AdminClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   defaultEndpoint,
		projectID:  projectID,
		databaseID: "(default)",
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// Parent is the collection-group parent path index resources live under.
func (c *AdminClient) Parent() string {
	return fmt.Sprintf("projects/%s/databases/%s/collectionGroups", c.projectID, c.databaseID)
}

// CreateIndex submits one composite-index creation request. A 2xx
// response yields the long-running operation handle; anything else is a
// *RemoteAPIError carrying the status code, the structured message when
// the payload has one, and the raw payload.
func (c *AdminClient) CreateIndex(ctx context.Context, collectionGroup string, payload Payload) (*OperationHandle, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode index payload: %w", err)
	}

	url := fmt.Sprintf("%s/v1/%s/%s/indexes", c.endpoint, c.Parent(), collectionGroup)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit index request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteAPIError{
			StatusCode: resp.StatusCode,
			Message:    extractErrorMessage(respBody),
			RawPayload: respBody,
		}
	}

	var op OperationHandle
	if err := json.Unmarshal(respBody, &op); err != nil {
		return nil, fmt.Errorf("decode operation: %w", err)
	}
	return &op, nil
}

// extractErrorMessage pulls the structured message out of a Google error
// payload: {"error": {"message": ..., "details": [...]}}. Returns "" when
// the payload has no such shape; callers fall back to the raw string.
func extractErrorMessage(payload []byte) string {
	var parsed struct {
		Error struct {
			Message string        `json:"message"`
			Details []interface{} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return ""
	}
	msg := parsed.Error.Message
	if msg != "" && len(parsed.Error.Details) > 0 {
		if details, err := json.Marshal(parsed.Error.Details); err == nil {
			msg += " Details: " + string(details)
		}
	}
	return msg
}
