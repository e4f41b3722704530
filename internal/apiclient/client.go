// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package apiclient talks to the remote content backend. Every operation is a
// POST with a multipart/form-data body to a fixed endpoint under the base URL,
// answered with a JSON envelope.
package apiclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// UserAgent is sent with every backend request.
const UserAgent = "folio-admin/1.0"

// MaxResponseLen caps how much of a response body is read (8MB).
const MaxResponseLen = 8 << 20

// Poster issues one backend call. Stores depend on this interface so tests
// can substitute a fake backend.
type Poster interface {
	Post(ctx context.Context, endpoint Endpoint, form *Form) (Envelope, error)
}

// Client is the HTTP implementation of Poster.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a per-request timeout. Zero means no timeout: a hung
// request stays pending until the backend answers.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Post sends form to endpoint and decodes the JSON envelope. The envelope is
// returned whatever its success signal says; callers decide with OK(). Any
// failure to reach the backend or to decode its answer wraps ErrNetwork.
func (c *Client) Post(ctx context.Context, endpoint Endpoint, form *Form) (Envelope, error) {
	body, contentType := form.Stream()
	defer func() { _ = body.Close() }()

	url := c.baseURL + string(endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrNetwork, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed", "endpoint", endpoint, "error", err)
		return nil, fmt.Errorf("%w: %s: %v", ErrNetwork, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseLen))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s response: %v", ErrNetwork, endpoint, err)
	}

	env, err := decodeEnvelope(raw)
	if err != nil {
		c.logger.Warn("backend returned non-JSON body",
			"endpoint", endpoint,
			"status_code", resp.StatusCode,
			"error", err)
		return nil, fmt.Errorf("%w: decoding %s response: %v", ErrNetwork, endpoint, err)
	}

	c.logger.Debug("backend request",
		"endpoint", endpoint,
		"status_code", resp.StatusCode,
		"ok", env.OK(),
		"duration", time.Since(start))

	return env, nil
}
