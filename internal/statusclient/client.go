// Package statusclient is the typed client the widget and admin console use
// to reach the console proxy.
package statusclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"netshield/internal/models"
)

const (
	statusRoute  = "/api/status"
	devicesRoute = "/api/getDevices"
	apiKeyHeader = "X-API-Key"
)

// HTTPError reports a non-success response from the console.
type HTTPError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s failed: %d (%s)", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s failed: %d", e.Op, e.StatusCode)
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithAPIKey sends key on device lookups.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// Client fetches device data from the console. Responses are never cached.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a client for the console rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// FetchStatus returns the current device status list.
func (c *Client) FetchStatus(ctx context.Context) ([]models.DeviceStatus, error) {
	var devices []models.DeviceStatus
	if err := c.getJSON(ctx, "Status fetch", c.baseURL+statusRoute, &devices); err != nil {
		return nil, err
	}
	if devices == nil {
		devices = []models.DeviceStatus{}
	}
	return devices, nil
}

// FetchDevices returns the devices the backend knows for one network.
func (c *Client) FetchDevices(ctx context.Context, ssid string) ([]models.DeviceStatus, error) {
	target := c.baseURL + devicesRoute + "?ssid=" + url.QueryEscape(ssid)

	var resp models.DevicesResponse
	if err := c.getJSON(ctx, "Device fetch", target, &resp); err != nil {
		return nil, err
	}
	if resp.Devices == nil {
		return []models.DeviceStatus{}, nil
	}
	return resp.Devices, nil
}

func (c *Client) getJSON(ctx context.Context, op, target string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", strings.ToLower(op), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s response: %w", strings.ToLower(op), err)
	}
	return nil
}

func errorMessage(body io.Reader) string {
	var payload models.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(body, 64<<10)).Decode(&payload); err != nil {
		return ""
	}
	return payload.Error
}
