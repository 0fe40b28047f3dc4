// Package upstream fetches rendered pages from the content platform.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotFound is returned when the platform has no page at the path.
var ErrNotFound = errors.New("page not found")

// StatusError is a non-success response from the platform.
type StatusError struct {
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch page %s: status %d: %s", e.Path, e.Status, e.Body)
}

// Client communicates with the content platform over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	maxBytes   int64
	httpClient *http.Client
	backoff    func(attempt int) time.Duration
}

func NewClient(baseURL, apiKey string, maxBytes int64) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		maxBytes: maxBytes,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		backoff: Backoff,
	}
}

// FetchPage returns the rendered HTML of the page at path, retrying
// transient failures.
func (c *Client) FetchPage(ctx context.Context, path string) ([]byte, error) {
	var lastErr error
	for attempt := range MaxRetries {
		page, err := c.fetch(ctx, path)
		if err == nil {
			return page, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return nil, err
		}
		if attempt == MaxRetries-1 {
			break
		}
		select {
		case <-time.After(c.backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("fetch page %s: giving up after %d attempts: %w", path, MaxRetries, lastErr)
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+strings.TrimLeft(path, "/"), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "text/html")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &transportError{err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &StatusError{Path: path, Status: resp.StatusCode, Body: string(respBody)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, &transportError{err: err}
	}
	if int64(len(body)) > c.maxBytes {
		return nil, fmt.Errorf("fetch page %s: exceeds max size (%d bytes)", path, c.maxBytes)
	}
	return body, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

type transportError struct {
	err error
}

func (e *transportError) Error() string { return "fetch page: " + e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }
