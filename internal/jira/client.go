package jira

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

// Client handles Jira API interactions.
type Client struct {
	BaseURL    string
	Username   string
	APIToken   string
	HTTPClient *http.Client
}

// Response captures the outcome of a single API call: the HTTP status code
// and the decoded JSON body. Body is nil for empty responses (e.g. a 204
// from the update endpoint).
type Response struct {
	StatusCode int
	Body       interface{}
}

// NewClient creates a new Jira client. Any trailing slash on baseURL is
// stripped so request paths can be joined with plain concatenation.
func NewClient(baseURL, username, apiToken string) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Username: username,
		APIToken: apiToken,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetJSON issues a GET request against path (relative to the base URL).
func (c *Client) GetJSON(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// PostJSON issues a POST request with payload serialized as the JSON body.
func (c *Client) PostJSON(ctx context.Context, path string, payload interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, payload)
}

// PutJSON issues a PUT request with payload serialized as the JSON body.
func (c *Client) PutJSON(ctx context.Context, path string, payload interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, payload)
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) (*Response, error) {
	url := c.BaseURL + path

	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		reader = bytes.NewBuffer(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.Username, c.APIToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	out := &Response{StatusCode: resp.StatusCode}
	if len(bytes.TrimSpace(raw)) > 0 {
		var parsed interface{}
		if err := json.Unmarshal(raw, &parsed); err != nil {
			// Error pages from proxies are not always JSON; keep the raw
			// text so it still ends up in the failure message.
			out.Body = string(raw)
		} else {
			out.Body = parsed
		}
	}

	return out, nil
}
