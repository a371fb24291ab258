// Package client provides an HTTP client for the skillmorph server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/skillmorph/assistant-go/internal/metrics"
	"github.com/skillmorph/assistant-go/internal/models"
)

// Client talks to a running skillmorph server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new server client.
// If baseURL is empty, uses SKILLMORPH_SERVER_URL env var or defaults to localhost:8080.
// Timeout can be configured via SKILLMORPH_CLIENT_TIMEOUT env var (default 2m, agent
// runs can take several LLM round-trips).
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("SKILLMORPH_SERVER_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	timeout := 2 * time.Minute
	if t := os.Getenv("SKILLMORPH_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type queryRequest struct {
	Query    string           `json:"query"`
	Messages []models.Message `json:"messages,omitempty"`
}

type queryResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Query sends one conversational question to the server and returns the answer.
func (c *Client) Query(ctx context.Context, query string, history []models.Message) (string, error) {
	body, err := json.Marshal(queryRequest{Query: query, Messages: history})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/query", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp queryResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		if resp.Error != "" {
			return "", fmt.Errorf("server error: %s", resp.Error)
		}
		return "", fmt.Errorf("server reported failure")
	}
	return resp.Response, nil
}

// Stats fetches the server's runtime metrics snapshot.
func (c *Client) Stats(ctx context.Context) (metrics.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats", nil)
	if err != nil {
		return metrics.Snapshot{}, fmt.Errorf("create request: %w", err)
	}

	var snap metrics.Snapshot
	if err := c.do(req, &snap); err != nil {
		return metrics.Snapshot{}, err
	}
	return snap, nil
}

// Healthy reports whether the server and its database are reachable.
func (c *Client) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	var status struct {
		Status string `json:"status"`
	}
	if err := c.do(req, &status); err != nil {
		return err
	}
	if status.Status != "ok" {
		return fmt.Errorf("server status: %s", status.Status)
	}
	return nil
}

func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}
