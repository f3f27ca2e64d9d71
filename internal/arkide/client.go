// Package arkide is a client for the ArkIDE project API.
package arkide

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	verrors "github.com/p-blackswan/arkide-viewer/internal/errors"
	"github.com/p-blackswan/arkide-viewer/internal/requestid"
	"github.com/p-blackswan/arkide-viewer/internal/retry"
)

const (
	projectPath = "/api/v1/projects/getproject"

	// RequestTypeMetadata selects the JSON metadata document.
	RequestTypeMetadata = "metadata"
	// RequestTypeThumbnail selects the project thumbnail image.
	RequestTypeThumbnail = "thumbnail"

	// Larger metadata bodies fail with a decode error naming the limit.
	maxMetadataBytes = 4 << 20
)

// HTTPClient abstracts HTTP calls for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Observer receives the response class ("2xx", "4xx", "5xx", "error") and
// duration of every metadata request.
type Observer func(status string, elapsed time.Duration)

// Client wraps the ArkIDE project API.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	retry      retry.Config
	observe    Observer
	logger     zerolog.Logger
}

// NewClient creates a new ArkIDE API client.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		retry:      retry.DefaultConfig(),
		logger:     logger.With().Str("component", "arkide").Logger(),
	}
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(hc HTTPClient) {
	c.httpClient = hc
}

// SetRetry configures retries of transient metadata failures.
func (c *Client) SetRetry(cfg retry.Config) {
	if cfg.OnRetry == nil {
		cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
			c.logger.Warn().Err(err).Int("attempt", attempt).Dur("delay", delay).Msg("retrying metadata request")
		}
	}
	c.retry = cfg
}

// SetObserver installs a hook for request timing.
func (c *Client) SetObserver(fn Observer) {
	c.observe = fn
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ProjectURL builds the getproject URL for a project ID and request type.
func (c *Client) ProjectURL(projectID, requestType string) string {
	q := url.Values{}
	q.Set("projectID", projectID)
	q.Set("requestType", requestType)
	return c.baseURL + projectPath + "?" + q.Encode()
}

// MetadataURL returns the metadata URL for a project.
func (c *Client) MetadataURL(projectID string) string {
	return c.ProjectURL(projectID, RequestTypeMetadata)
}

// ThumbnailURL returns the thumbnail URL for a project. It is never fetched here.
func (c *Client) ThumbnailURL(projectID string) string {
	return c.ProjectURL(projectID, RequestTypeThumbnail)
}

// GetMetadata fetches and decodes a project's metadata.
func (c *Client) GetMetadata(ctx context.Context, projectID string) (*ProjectMetadata, error) {
	var meta *ProjectMetadata
	err := retry.Do(ctx, c.retry, func(ctx context.Context) error {
		var err error
		meta, err = c.getMetadata(ctx, projectID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return meta, nil
}

func (c *Client) getMetadata(ctx context.Context, projectID string) (*ProjectMetadata, error) {
	resp, err := c.do(ctx, http.MethodGet, c.MetadataURL(projectID))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMetadataBytes+1))
	if err != nil {
		return nil, &verrors.TransportError{Err: fmt.Errorf("reading metadata: %w", err)}
	}
	if len(body) > maxMetadataBytes {
		return nil, fmt.Errorf("%w: metadata response exceeds %d bytes", verrors.ErrInvalidJSON, maxMetadataBytes)
	}

	// json.Unmarshal rejects anything after the first value.
	var meta ProjectMetadata
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrInvalidJSON, err)
	}
	return &meta, nil
}

// Ping checks that the API host answers. Any response below 500 counts as up.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &verrors.TransportError{Err: err}
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return verrors.NewAPIError("arkide", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return nil
}

// do executes a request and converts transport failures and non-2xx statuses
// into typed errors. On success the caller owns resp.Body.
func (c *Client) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestid.Header, requestid.FromContext(ctx))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record("error", start)
		c.logger.Debug().Err(err).Str("url", rawURL).Msg("metadata request failed")
		return nil, &verrors.TransportError{Err: err}
	}
	c.record(statusClass(resp.StatusCode), start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		resp.Body.Close()
		return nil, verrors.NewAPIError("arkide", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return resp, nil
}

func (c *Client) record(status string, start time.Time) {
	if c.observe != nil {
		c.observe(status, time.Since(start))
	}
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
