// Package gateway talks to the backend that owns device telemetry.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"netshield/internal/models"
)

const (
	statusPath  = "/status"
	devicesPath = "/api/admin/links/devices"

	defaultTimeout = 10 * time.Second
	maxDrainBytes  = 64 << 10
)

// ErrSSIDRequired is returned for a device lookup without a network id.
var ErrSSIDRequired = errors.New("SSID is required")

// StatusError means the backend answered with a non-success status code.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned http %d", e.Code)
}

// UnreachableError means the request never produced a usable response.
type UnreachableError struct {
	Err error
}

func (e *UnreachableError) Error() string {
	return "backend unreachable: " + e.Err.Error()
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}

// Client performs single, non-retried calls against the backend.
type Client struct {
	baseURL string
	client  *http.Client
}

// New configures a client for the backend rooted at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Transport: transport, Timeout: timeout},
	}
}

// NewWithHTTPClient uses the supplied http.Client as is.
func NewWithHTTPClient(baseURL string, client *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

// BaseURL reports the backend root this client forwards to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Status fetches the raw device status list from the backend.
func (c *Client) Status(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, c.baseURL+statusPath)
}

// Devices fetches the raw device list for one network from the backend.
func (c *Client) Devices(ctx context.Context, ssid string) (json.RawMessage, error) {
	if ssid == "" {
		return nil, ErrSSIDRequired
	}
	target := fmt.Sprintf("%s%s?ssid=%s", c.baseURL, devicesPath, url.QueryEscape(ssid))
	return c.get(ctx, target)
}

// StatusDevices fetches and decodes the device status list.
func (c *Client) StatusDevices(ctx context.Context) ([]models.DeviceStatus, error) {
	raw, err := c.Status(ctx)
	if err != nil {
		return nil, err
	}
	var devices []models.DeviceStatus
	if err := json.Unmarshal(raw, &devices); err != nil {
		return nil, &UnreachableError{Err: fmt.Errorf("decode status: %w", err)}
	}
	return devices, nil
}

func (c *Client) get(ctx context.Context, target string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &UnreachableError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UnreachableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	// Success bodies are forwarded whole; the request timeout bounds them.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnreachableError{Err: fmt.Errorf("read body: %w", err)}
	}
	if !json.Valid(body) {
		return nil, &UnreachableError{Err: errors.New("backend returned invalid json")}
	}
	return body, nil
}
