/*
Package posthog is a minimal client for the PostHog REST API, covering the
session recording playlist endpoint.

API Reference: https://posthog.com/docs/api/session-recording-playlists
*/
package posthog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Tsahi-Elkayam/replaylist/pkg/filters"
	"github.com/Tsahi-Elkayam/replaylist/pkg/models"
	"github.com/Tsahi-Elkayam/replaylist/pkg/types"
)

// DefaultHost is the PostHog US cloud
const DefaultHost = "us.posthog.com"

const requestTimeout = 30 * time.Second

// Client talks to one PostHog instance with a personal API key
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL points the client at a full base URL instead of https://<host>
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for https://<host>
func NewClient(host, apiKey string, opts ...Option) *Client {
	if host == "" {
		host = DefaultHost
	}

	c := &Client{
		baseURL: "https://" + strings.TrimSuffix(host, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the scheme and host requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PlaylistURL returns the browser URL of a playlist
func (c *Client) PlaylistURL(projectID, shortID string) string {
	return fmt.Sprintf("%s/project/%s/replay/playlists/%s", c.baseURL, url.PathEscape(projectID), url.PathEscape(shortID))
}

// NewPlaylistPayload builds the create request body for the given options
func NewPlaylistPayload(opts *types.CreateOptions) models.PlaylistPayload {
	dateFrom := opts.DateFrom
	if dateFrom == "" {
		dateFrom = models.DefaultDateFrom
	}

	return models.PlaylistPayload{
		Name:        opts.Name,
		Description: opts.Description,
		Type:        models.PlaylistTypeFilters,
		Filters: models.PlaylistFilters{
			Order:              models.OrderStartTime,
			DateFrom:           dateFrom,
			Duration:           models.ActiveSecondsFilter(),
			FilterGroup:        filters.BuildFilterGroup(opts.Filters()),
			OrderDirection:     models.DirectionDesc,
			FilterTestAccounts: opts.FilterTestAccounts,
		},
	}
}

// CreatePlaylist creates a session recording playlist in the project.
// The returned result has its URL filled in.
func (c *Client) CreatePlaylist(ctx context.Context, projectID string, payload models.PlaylistPayload) (*models.PlaylistResult, error) {
	if c.apiKey == "" || projectID == "" {
		return nil, ErrMissingCredentials
	}

	endpoint := fmt.Sprintf("/api/projects/%s/session_recording_playlists/", url.PathEscape(projectID))

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode playlist payload: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("posthog create playlist request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read posthog response (status %d): %w", resp.StatusCode, err)
	}

	c.logger.WithFields(logrus.Fields{
		"status": resp.StatusCode,
		"bytes":  len(respBody),
	}).Debug("PostHog responded")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewAPIError("create playlist", resp.StatusCode, string(respBody))
	}

	var result models.PlaylistResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode posthog playlist: %w", err)
	}
	result.URL = c.PlaylistURL(projectID, result.ShortID)

	return &result, nil
}

// RequestIDHeader carries a per-request ID that also appears in debug logs
const RequestIDHeader = "X-Request-ID"

// doRequest sends an authenticated JSON request
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	c.logger.WithFields(logrus.Fields{
		"method":     method,
		"url":        req.URL.String(),
		"request_id": requestID,
	}).Debug("Sending PostHog request")

	return c.httpClient.Do(req)
}
