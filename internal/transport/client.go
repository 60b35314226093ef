// Package transport provides the HTTP client used for calls to external
// matching services. Every request carries the herbarium user agent and
// a hard timeout; JSON decoding and status handling live here so the
// service clients stay small.
package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/openherb/herbarium/pkg/constants"
	"github.com/openherb/herbarium/pkg/errors"
)

// maxResponseBytes bounds response bodies; matching endpoints return
// small JSON payloads.
const maxResponseBytes = 1 << 20

// Client is a thin wrapper over http.Client for external lookups.
type Client struct {
	http      *http.Client
	userAgent string
}

// New creates a transport client with the given per-request timeout.
// A non-positive timeout falls back to the default match timeout.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = constants.MatchTimeout
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: constants.UserAgent,
	}
}

// Get performs a GET request with the standard headers applied.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	return c.http.Do(req)
}

// GetJSON performs a GET request and decodes the JSON response into v.
// Non-2xx responses become APIErrors attributed to the given service.
func (c *Client) GetJSON(ctx context.Context, service, url string, v any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return &errors.APIError{
			Service:  service,
			Endpoint: url,
			Message:  "request failed",
			Err:      err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &errors.APIError{
			Service:    service,
			Endpoint:   url,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.WrapAPI(service, resp.StatusCode, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errors.WrapParse("json", url, err)
	}
	return nil
}
