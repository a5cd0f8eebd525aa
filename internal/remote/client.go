// Package remote fetches the Zephyr daily version index.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/zephyr-testing/reportverify/internal/log"
)

// DefaultIndexURL lists every upstream version that has a published daily build.
const DefaultIndexURL = "https://testing.zephyrproject.org/daily_tests/versions.json"

// VersionIndex answers whether a version is on the daily list.
type VersionIndex interface {
	VersionExists(ctx context.Context, version string) (bool, error)
}

// HTTPClient is the minimal HTTP client the fetcher needs, so tests can swap it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Client.
type Option func(*Client)

// WithIndexURL overrides the versions endpoint.
func WithIndexURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.indexURL = url
		}
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(h HTTPClient) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// Client implements VersionIndex over HTTP. Every call performs a fresh GET;
// there is no caching, retry or client-side timeout.
type Client struct {
	indexURL   string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewClient creates a version index client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		indexURL:   DefaultIndexURL,
		httpClient: http.DefaultClient,
		log:        log.WithComponent("remote"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IndexURL returns the endpoint the client fetches.
func (c *Client) IndexURL() string {
	return c.indexURL
}

// FetchIndex downloads and decodes the version index.
func (c *Client) FetchIndex(ctx context.Context) (Index, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.indexURL, nil)
	if err != nil {
		return nil, fmt.Errorf("remote: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote: request failed: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str(log.FieldURL, c.indexURL).
		Int(log.FieldStatus, resp.StatusCode).
		Msg("version index fetched")

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("remote: read body: %w", err)
	}

	idx, err := ParseIndex(body)
	if err != nil {
		return nil, err
	}

	records, legacy := idx.Counts()
	c.log.Debug().
		Int(log.FieldEntries, len(idx)).
		Int("records", records).
		Int("legacy", legacy).
		Msg("version index decoded")

	return idx, nil
}

// VersionExists reports whether version is on the daily list.
func (c *Client) VersionExists(ctx context.Context, version string) (bool, error) {
	idx, err := c.FetchIndex(ctx)
	if err != nil {
		return false, err
	}
	return idx.Contains(version), nil
}

// StatusError is returned when the endpoint answers with a non-200 status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote: unexpected status %d", e.StatusCode)
}
