// Package client provides the public Go SDK for the recommendation engine.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the public SDK client for the recommendation engine.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// sessionID carries server-assigned session identity across calls so
	// repeated queries keep walking the catalog instead of repeating.
	sessionID string
}

// ClientConfig holds client configuration.
type ClientConfig struct {
	BaseURL string
	// SessionID resumes an existing server session. Empty starts fresh.
	SessionID string
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
	Timeout    time.Duration
}

// NewClient creates a new recommendation engine client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8086"
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		sessionID:  cfg.SessionID,
	}, nil
}

// SessionID returns the session identifier assigned by the server, empty
// until the first successful Query.
func (c *Client) SessionID() string {
	return c.sessionID
}

// QueryResponse represents a recommendation response.
type QueryResponse struct {
	SessionID string `json:"sessionId"`
	Domain    string `json:"domain"`
	Guidance  string `json:"guidance,omitempty"`
	Note      string `json:"note,omitempty"`
	Similar   bool   `json:"similar"`
	Items     []Item `json:"items"`
	Formatted string `json:"formatted"`
}

// Item represents a single recommended item.
type Item struct {
	Title       string  `json:"title"`
	Genre       string  `json:"genre,omitempty"`
	Mood        string  `json:"mood,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Artist      string  `json:"artist,omitempty"`
	Album       string  `json:"album,omitempty"`
	Author      string  `json:"author,omitempty"`
	Cuisine     string  `json:"cuisine,omitempty"`
	Description string  `json:"description,omitempty"`
	Similarity  float64 `json:"similarityScore"`
}

// Domain describes one servable recommendation domain.
type Domain struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Items       int    `json:"items"`
}

// APIError is returned when the server answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s (%s)", e.StatusCode, e.Message, e.Detail)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Query asks the engine for recommendations. The session assigned by the
// server is remembered on the client and reused on subsequent calls.
func (c *Client) Query(ctx context.Context, query string) (*QueryResponse, error) {
	if query == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	payload, err := json.Marshal(map[string]string{
		"sessionId": c.sessionID,
		"query":     query,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	var resp QueryResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/recommendations", payload, &resp); err != nil {
		return nil, err
	}
	c.sessionID = resp.SessionID
	return &resp, nil
}

// Domains lists the domains the engine can serve.
func (c *Client) Domains(ctx context.Context) ([]Domain, error) {
	var resp struct {
		Domains []Domain `json:"domains"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/domains", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Domains, nil
}

// Health reports whether the server answers its health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, out interface{}) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Message != "" {
			apiErr.Message = body.Message
		} else if body.Error != "" {
			apiErr.Message = body.Error
		}
		apiErr.Detail = body.Detail
	}
	return apiErr
}
