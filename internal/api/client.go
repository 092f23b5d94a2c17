// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

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

	"github.com/jeranaias/customchat-tui/internal/session"
)

// Configuration constants for the backend client.
const (
	// DefaultTimeout bounds ordinary API requests.
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 4 * 1024 * 1024 // 4MB
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// One shared transport for all backend requests.
var sharedTransport = &http.Transport{
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
	TLSHandshakeTimeout: 10 * time.Second,
}

// Sentinel errors for common backend failures.
var (
	// ErrUnauthorized indicates the session was rejected (401). The
	// client has already forced a logout by the time this surfaces.
	ErrUnauthorized = errors.New("session expired or invalid")

	// ErrForbidden indicates the user is authenticated but lacks
	// permission (403). It does not invalidate the session.
	ErrForbidden = errors.New("permission denied")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrServer indicates a 5xx backend failure.
	ErrServer = errors.New("server error")
)

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the customchat backend. A nil session manager is valid
// and simply means no request carries credentials.
type Client struct {
	baseURL string
	session *session.Manager

	// http bounds ordinary requests with a client-level timeout.
	http *http.Client

	// chatHTTP has no client-level timeout: a chat turn legitimately
	// runs for as long as reply generation takes, bounded only by the
	// caller's context.
	chatHTTP *http.Client
}

// New creates a client for the backend at baseURL. timeout bounds ordinary
// (non-chat) requests; zero means DefaultTimeout.
func New(baseURL string, timeout time.Duration, sess *session.Manager) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: sess,
		http: &http.Client{
			Transport: sharedTransport,
			Timeout:   timeout,
		},
		chatHTTP: &http.Client{
			Transport: sharedTransport,
		},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// ERROR TYPE
// =============================================================================

// Error is a backend rejection with the human-readable detail message the
// backend sent, if any.
type Error struct {
	Status int
	Detail string
}

// Error formats the rejection for logs; UI code prefers Detail directly.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// Unwrap maps the status to the sentinel taxonomy so callers can use
// errors.Is without caring about exact codes.
func (e *Error) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return ErrForbidden
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status >= 500:
		return ErrServer
	default:
		return nil
	}
}

// Detail extracts the backend's user-facing message from err, falling back
// to a generic line for transport-level failures. Transport errors are not
// echoed verbatim: they can embed full request URLs.
func Detail(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	if errors.Is(err, ErrUnauthorized) {
		return "Your session has expired. Please log in again."
	}
	return "Could not reach the server. Please try again."
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// do performs a JSON request against path and decodes a 2xx response into
// out (which may be nil). Any stored bearer token is attached; a 401
// response forces a logout before the error is returned, so the session
// broadcast fires exactly as if the user had logged out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.doWith(ctx, c.http, method, path, body, out)
}

func (c *Client) doWith(ctx context.Context, httpClient *http.Client, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Detail: detailFromBody(data)}
		if resp.StatusCode == http.StatusUnauthorized && c.session != nil {
			// The broadcast must fire before the caller sees the
			// error, so every view re-derives its identity copy.
			_ = c.session.Logout()
		}
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// detailFromBody pulls the backend's {"detail": "..."} message out of an
// error body. Anything undecodable degrades to empty.
func detailFromBody(data []byte) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Detail
}

// query formats URL query parameters, dropping empty values.
func query(params map[string]string) string {
	values := url.Values{}
	for k, v := range params {
		if v != "" {
			values.Set(k, v)
		}
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// =============================================================================
// TIMESTAMP
// =============================================================================

// timestampLayouts covers the backend's datetime encodings: FastAPI emits
// naive ISO 8601 (no zone), with or without fractional seconds, and plain
// dates for birth dates.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp is a time.Time that tolerates the backend's timestamp formats.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON accepts any of the known backend layouts; null and empty
// strings decode to the zero Timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

// MarshalJSON encodes as RFC 3339.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}
