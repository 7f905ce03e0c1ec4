// Package contents talks to the GitHub repository contents API.
package contents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/go-github/v72/github"
)

// Requester issues a single REST call and returns the status and raw body.
// Statuses of 400 and above come back as go-github errors; see StatusOf.
type Requester interface {
	Request(ctx context.Context, method, path string, body any) (*Response, error)
}

// Response is a successful API response.
type Response struct {
	Status int
	Data   json.RawMessage
}

// Client implements Requester on a go-github client.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
}

var _ Requester = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client on gh, pointing it at baseURL (e.g. the runner's
// GITHUB_API_URL). An empty baseURL keeps gh's endpoint. gh is modified.
func New(gh *github.Client, baseURL string, opts ...Option) (*Client, error) {
	if baseURL != "" {
		u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parsing API URL %q: %w", baseURL, err)
		}
		gh.BaseURL = u
	}

	c := &Client{
		gh:     gh,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Request sends method to path, relative to the API root. A non-nil body is
// sent as JSON. Transport and API errors are returned as go-github gives them.
func (c *Client) Request(ctx context.Context, method, path string, body any) (*Response, error) {
	req, err := c.gh.NewRequest(method, strings.TrimPrefix(path, "/"), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	var data json.RawMessage
	resp, err := c.gh.Do(ctx, req, &data)
	if resp != nil {
		c.logger.Debug("api request", "method", method, "url", req.URL.String(), "status", resp.StatusCode)
	}
	if err != nil {
		return nil, err
	}

	return &Response{Status: resp.StatusCode, Data: data}, nil
}
