// Package backend talks to the restaurant backend's REST API, which owns
// foods, tables, bookings, orders, bills and sessions.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoActiveSession is returned when the backend refuses an order because the
// cashier has no open till session.
var ErrNoActiveSession = errors.New("no active session found, please start a session first")

// ErrUnavailable wraps transport failures and unreadable replies.
var ErrUnavailable = errors.New("backend unavailable")

// APIError is a non-2xx reply from the backend.
type APIError struct {
	StatusCode     int
	Message        string
	RequireSession bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// Is lets callers match session failures with errors.Is(err, ErrNoActiveSession).
func (e *APIError) Is(target error) bool {
	return target == ErrNoActiveSession && e.RequireSession
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientWithHTTP is used by tests to point at an httptest server.
func NewClientWithHTTP(baseURL, token string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w: %w", method, path, ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w: %w", method, path, ErrUnavailable, err)
	}
	return nil
}

func parseAPIError(status int, raw []byte) error {
	var body struct {
		Message        string `json:"message"`
		Error          string `json:"error"`
		RequireSession bool   `json:"requireSession"`
	}
	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
		apiErr.RequireSession = body.RequireSession
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	// Older backend builds only say so in the message.
	if strings.Contains(strings.ToLower(apiErr.Message), "session") {
		apiErr.RequireSession = true
	}
	return apiErr
}
