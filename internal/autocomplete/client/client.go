package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/vslstudio/vsl-backend/internal/autocomplete/domain"
	"github.com/vslstudio/vsl-backend/internal/metrics"
)

// DefaultPath is where the completion endpoint is mounted.
const DefaultPath = "/api/autocomplete"

// CompletionClient calls the completion endpoint on behalf of a coordinator.
// There is no client-side timeout; a hung call is ended by cancelling ctx.
type CompletionClient struct {
	endpoint string
	http     *http.Client
}

// NewCompletionClient creates a client for baseURL. An empty path selects
// DefaultPath.
func NewCompletionClient(baseURL, path string) *CompletionClient {
	if path == "" {
		path = DefaultPath
	}
	return &CompletionClient{
		endpoint: strings.TrimRight(baseURL, "/") + path,
		http:     &http.Client{},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *CompletionClient) WithHTTPClient(h *http.Client) *CompletionClient {
	c.http = h
	return c
}

// Complete posts fragment and returns the suggestion.
func (c *CompletionClient) Complete(ctx context.Context, fragment string) (string, error) {
	suggestion, err := c.complete(ctx, fragment)
	if ctx.Err() == nil {
		metrics.RecordClientCall(err)
	}
	return suggestion, err
}

func (c *CompletionClient) complete(ctx context.Context, fragment string) (string, error) {
	body, err := json.Marshal(domain.CompletionRequest{Prompt: fragment})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", domain.ErrCompletionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", domain.ErrCompletionFailed, resp.StatusCode)
	}

	var out domain.CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrCompletionFailed, err)
	}
	return out.Suggestion, nil
}
