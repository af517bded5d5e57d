// Package connection provides connection management for metermesh-cli.
package connection

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single scrape request.
const DefaultTimeout = 30 * time.Second

// HTTPClient provides HTTP communication with an exposition endpoint.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a new HTTP client for the given endpoint.
func NewHTTPClient(endpoint string) *HTTPClient {
	// Ensure baseURL has http:// prefix
	baseURL := endpoint
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}

	return &HTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// Get performs a GET request against the endpoint.
func (c *HTTPClient) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "metermesh-cli/1.0")
	return c.client.Do(req)
}

// Scrape fetches the exposition text from the endpoint's metrics path.
func (c *HTTPClient) Scrape(ctx context.Context) (string, error) {
	resp, err := c.Get(ctx, "/metrics")
	if err != nil {
		return "", fmt.Errorf("scrape %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read exposition body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("scrape failed with status %d", resp.StatusCode)
	}

	return string(body), nil
}

// BaseURL returns the base URL of the client.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}
