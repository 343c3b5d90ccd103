package echonest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// RequestOption customizes a single request.
type RequestOption func(*requestConfig)

type requestConfig struct {
	header http.Header
}

// WithHeader sets an extra HTTP header on the request.
func WithHeader(key, value string) RequestOption {
	return func(rc *requestConfig) {
		rc.header.Set(key, value)
	}
}

// Get performs a GET request against path and returns the decoded envelope.
//
// The api_key and format parameters are always set by the client; every
// other entry in params is sent as-is, with multi-valued entries encoded
// as repeated keys (bucket=description&bucket=urls).
//
// Errors:
//   - *TransportError if the HTTP client fails
//   - *Error if the envelope status code is non-zero
//   - *HTTPError if the server returns a non-2xx status without an envelope
func (r *Resource) Get(ctx context.Context, path string, params url.Values, opts ...RequestOption) (*Envelope, error) {
	return r.client.get(ctx, path, params, opts...)
}

// get issues one GET request and validates the envelope. It never retries.
func (c *Client) get(ctx context.Context, path string, params url.Values, opts ...RequestOption) (*Envelope, error) {
	rc := requestConfig{header: make(http.Header)}
	for _, opt := range opts {
		opt(&rc)
	}

	endpoint := c.endpoint(path, params)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("echonest: failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range rc.header {
		req.Header[k] = v
	}

	c.logDebugf("echonest: GET %s", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Path: path, Err: err}
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, &TransportError{Path: path, Err: err}
	}

	var env Envelope
	decodeErr := json.Unmarshal(body, &env)
	if decodeErr == nil && env.Response.Fields == nil {
		decodeErr = errors.New("missing response object")
	}

	// EchoNest reports API failures with a 4xx status and an envelope,
	// so the envelope takes precedence over the HTTP status.
	if decodeErr == nil && env.Response.Status.Code != ErrCodeSuccess {
		c.logDebugf("echonest: %s failed with status %d", path, env.Response.Status.Code)
		return nil, &Error{
			Code:    env.Response.Status.Code,
			Message: env.Response.Status.Message,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("echonest: failed to parse JSON response: %w", decodeErr)
	}

	c.logDebugf("echonest: %s succeeded", path)
	return &env, nil
}

// endpoint builds the full request URL for path and params.
func (c *Client) endpoint(path string, params url.Values) string {
	query := make(url.Values, len(params)+2)
	for k, v := range params {
		if len(v) == 0 {
			continue
		}
		query[k] = append([]string(nil), v...)
	}
	query.Set("api_key", c.apiKey)
	query.Set("format", responseFormat)

	return c.baseURL + strings.TrimPrefix(path, "/") + "?" + query.Encode()
}
