package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/five82/racesearch/internal/fetch"
	"github.com/five82/racesearch/internal/results"
)

// RaceResultsPath is the path segment of the race results resource.
const RaceResultsPath = "race-results"

const defaultUserAgent = "racesearch/0.1"

// Searcher defines the interface for searching race results.
// This interface is implemented by *Client and can be used for testing.
type Searcher interface {
	RaceResultsURL() string
	SearchRaceResults(ctx context.Context, resource, query string) ([]results.AthleteRaceResult, error)
}

// Ensure Client implements Searcher at compile time.
var _ Searcher = (*Client)(nil)

// Client talks to the race results HTTP API.
type Client struct {
	baseURL *url.URL
	http    fetch.Doer
	retry   fetch.Options
}

// Option customizes a Client.
type Option func(*Client)

// WithRetry overrides the retry policy.
func WithRetry(opts fetch.Options) Option {
	return func(c *Client) {
		logger := c.retry.Logger
		c.retry = opts
		if c.retry.Logger == nil {
			c.retry.Logger = logger
		}
		if c.retry.UserAgent == "" {
			c.retry.UserAgent = defaultUserAgent
		}
	}
}

// WithHTTPClient replaces the HTTP transport.
func WithHTTPClient(doer fetch.Doer) Option {
	return func(c *Client) {
		if doer != nil {
			c.http = doer
		}
	}
}

// WithLogger sets the logger used for retry records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.retry.Logger = logger
		}
	}
}

// NewClient builds a Client for the API origin apiURL, e.g.
// "https://results.example.com" or "localhost:3001". A path prefix such as
// "https://example.com/api" is kept; query and fragment are dropped.
func NewClient(apiURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	retry := fetch.DefaultOptions()
	retry.UserAgent = defaultUserAgent
	c := &Client{
		baseURL: base,
		http:    &http.Client{},
		retry:   retry,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API origin.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// RaceResultsURL returns the race results resource URL.
func (c *Client) RaceResultsURL() string {
	return c.baseURL.String() + "/" + RaceResultsPath
}

// SearchRaceResults runs one retried search against resource.
func (c *Client) SearchRaceResults(ctx context.Context, resource, query string) ([]results.AthleteRaceResult, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	out, err := fetch.WithRetry[[]results.AthleteRaceResult](ctx, c.http, resource, query, c.retry)
	if err != nil {
		return nil, fmt.Errorf("search race results %q: %w", query, err)
	}
	if out == nil {
		out = []results.AthleteRaceResult{}
	}
	return out, nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		return nil, fmt.Errorf("api url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", apiURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
