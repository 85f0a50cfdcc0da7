// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package dataservice is the client-side data access layer for the bridge.
// It wraps every bridge action, fills configuration defaults, mirrors
// known-good reads into a local fallback cache, and keeps serving cached or
// default data when the bridge is unreachable.
package dataservice

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

// DefaultTimeout bounds a single bridge call.
const DefaultTimeout = 15 * time.Second

// Sentinel errors matched against *APIError with errors.Is.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrMalformed    = errors.New("malformed bridge response")
)

// APIError is a failure reported by the bridge, either through a non-2xx
// status or an "error" field in a 2xx body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Is maps the HTTP status onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrConflict:
		return e.Status == http.StatusConflict
	}
	return false
}

// Client sends actions to a single bridge endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	token    func() string
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

// WithTokenSource supplies the bearer token sent with every call.
// An empty token sends no Authorization header.
func WithTokenSource(fn func() string) ClientOption {
	return func(c *Client) { c.token = fn }
}

// NewClient creates a client for the bridge at endpoint, e.g.
// "https://datcloude.com/api.php".
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call runs one bridge action. body is JSON-encoded when non-nil and the
// response is decoded into out when out is non-nil.
func (c *Client) Call(ctx context.Context, action, method string, query url.Values, body, out any) error {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return fmt.Errorf("parse bridge endpoint: %w", err)
	}
	q := u.Query()
	for key, vals := range query {
		for _, v := range vals {
			q.Add(key, v)
		}
	}
	q.Set("action", action)
	u.RawQuery = q.Encode()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s marshal: %w", action, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("%s request: %w", action, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s http: %w", action, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s read body: %w", action, err)
	}

	msg := errorField(respBody)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if msg == "" {
			msg = "API Error: " + http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if msg != "" {
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%s: %w: %v", action, ErrMalformed, err)
	}
	return nil
}

// errorField extracts a non-empty "error" string from a JSON object body.
func errorField(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ""
	}
	var env struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return ""
	}
	return strings.TrimSpace(env.Error)
}
