package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrUnavailable indicates the daemon API could not be reached.
var ErrUnavailable = errors.New("daemon API unavailable")

// Client talks to a running hometunesd instance. The CLI uses it for status
// and history queries.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient builds a client for the given bind address ("host:port" or a
// full URL).
func NewClient(bind string) (*Client, error) {
	bind = strings.TrimSpace(bind)
	if bind == "" {
		return nil, fmt.Errorf("empty bind address")
	}
	if !strings.Contains(bind, "://") {
		bind = "http://" + bind
	}
	base, err := url.Parse(bind)
	if err != nil {
		return nil, fmt.Errorf("parse bind address: %w", err)
	}
	base.Path = ""
	base.RawQuery = ""
	base.Fragment = ""

	return &Client{
		base: base,
		http: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Health performs a connection test against GET /health.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var payload HealthResponse
	if err := c.getJSON(ctx, "/health", nil, &payload); err != nil {
		return HealthResponse{}, err
	}
	return payload, nil
}

// History fetches the most recent downloads from GET /api/history.
func (c *Client) History(ctx context.Context, limit int) (HistoryResponse, error) {
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	var payload HistoryResponse
	if err := c.getJSON(ctx, "/api/history", values, &payload); err != nil {
		return HistoryResponse{}, err
	}
	return payload, nil
}

func (c *Client) getJSON(ctx context.Context, path string, values url.Values, out any) error {
	endpoint := *c.base
	endpoint.Path = path
	if values != nil {
		endpoint.RawQuery = values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("daemon returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
