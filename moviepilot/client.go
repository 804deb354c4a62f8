package moviepilot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds each outbound HTTP call unless overridden
const DefaultTimeout = 30 * time.Second

// Client represents a MoviePilot API client. It maintains a JWT bearer
// token transparently: the first authenticated request logs in, and a
// 401/403 response invalidates the token and retries once through a
// fresh login.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	logger     zerolog.Logger

	mu    sync.RWMutex
	token string
}

// NewClient creates a new MoviePilot client
func NewClient(baseURL, username, password string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: moviepilot URL is required", ErrInvalidConfig)
	}
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: moviepilot username and password are required", ErrInvalidConfig)
	}

	// Ensure baseURL doesn't have trailing slash
	baseURL = strings.TrimRight(baseURL, "/")

	client := &Client{
		baseURL:  baseURL,
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close releases the pooled transport connections held by the client.
// In-flight requests are unaffected.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// request describes one logical API call. It is constructed per call and
// carried through the bounded auth retry.
type request struct {
	method   string
	endpoint string
	query    url.Values
	jsonBody any
	formBody url.Values
	noAuth   bool
	retries  int
}

// RequestOption customizes a single Request call
type RequestOption func(*request)

// WithQuery sets query parameters for the request
func WithQuery(query url.Values) RequestOption {
	return func(r *request) {
		r.query = query
	}
}

// WithJSONBody sets a JSON request body
func WithJSONBody(body any) RequestOption {
	return func(r *request) {
		r.jsonBody = body
	}
}

// WithFormBody sets a form-encoded request body
func WithFormBody(form url.Values) RequestOption {
	return func(r *request) {
		r.formBody = form
	}
}

// WithoutAuth skips the Authorization header for this request
func WithoutAuth() RequestOption {
	return func(r *request) {
		r.noAuth = true
	}
}

// WithRetries overrides the number of automatic re-authentication
// retries (default 1)
func WithRetries(n int) RequestOption {
	return func(r *request) {
		r.retries = n
	}
}

// Request performs one logical API call with automatic authentication.
//
// The returned bytes are the raw response body: nil for a 204 or empty
// body, JSON for JSON responses. A successful response that is not valid
// JSON is returned as-is with a warning logged. A 401/403 response
// invalidates the held token and the call is retried once through a
// fresh login; exhausted retries surface as *AuthError. Every other
// failure surfaces as *APIError with its kind and HTTP status.
func (c *Client) Request(ctx context.Context, method, endpoint string, opts ...RequestOption) ([]byte, error) {
	req := request{
		method:   method,
		endpoint: endpoint,
		retries:  1,
	}
	for _, opt := range opts {
		opt(&req)
	}
	return c.do(ctx, req)
}

// do executes the request descriptor, classifying every outcome
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("method", req.method).
		Str("endpoint", req.endpoint).
		Msg("Making MoviePilot API request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", req.endpoint).Msg("Request failed")
		return nil, &APIError{Kind: KindNetwork, Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Message: fmt.Sprintf("failed to read response body: %v", err)}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if resp.StatusCode == http.StatusNoContent || len(body) == 0 {
			return nil, nil
		}
		if !json.Valid(body) {
			c.logger.Warn().
				Str("method", req.method).
				Str("endpoint", req.endpoint).
				Msg("Non-JSON response received, returning raw body")
		}
		return body, nil

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.Invalidate()
		if req.retries > 0 {
			req.retries--
			c.logger.Info().
				Int("status", resp.StatusCode).
				Str("endpoint", req.endpoint).
				Msg("Token rejected, re-authenticating and retrying")
			return c.do(ctx, req)
		}
		return nil, &AuthError{
			StatusCode: resp.StatusCode,
			Message:    "token expired or invalid and retries exhausted",
		}

	default:
		detail := errorDetail(body)
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("method", req.method).
			Str("endpoint", req.endpoint).
			Str("detail", detail).
			Msg("API request failed")
		return nil, &APIError{
			Kind:       KindAPI,
			StatusCode: resp.StatusCode,
			Message:    detail,
			Body:       string(body),
		}
	}
}

// buildRequest assembles the http.Request, including the bearer header
// (which may trigger a login)
func (c *Client) buildRequest(ctx context.Context, req request) (*http.Request, error) {
	requestURL := c.baseURL + req.endpoint
	if len(req.query) > 0 {
		requestURL += "?" + req.query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case req.jsonBody != nil:
		buf, err := json.Marshal(req.jsonBody)
		if err != nil {
			return nil, &APIError{Kind: KindUnexpected, Message: fmt.Sprintf("failed to encode request body: %v", err)}
		}
		body = bytes.NewReader(buf)
		contentType = "application/json"
	case req.formBody != nil:
		body = strings.NewReader(req.formBody.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, requestURL, body)
	if err != nil {
		return nil, &APIError{Kind: KindUnexpected, Message: fmt.Sprintf("failed to create request: %v", err)}
	}

	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if !req.noAuth {
		auth, err := c.authHeader(ctx)
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Authorization", auth)
	}

	return httpReq, nil
}

// getJSON performs a GET request and unmarshals the JSON response into out
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	body, err := c.Request(ctx, http.MethodGet, endpoint, WithQuery(query))
	if err != nil {
		return err
	}
	if body == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// errorDetail extracts a human-readable message from an error body,
// preferring the JSON "detail" field MoviePilot uses
func errorDetail(body []byte) string {
	if len(body) == 0 {
		return "unknown error"
	}
	var parsed struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if len(parsed.Detail) > 0 {
			var s string
			if err := json.Unmarshal(parsed.Detail, &s); err == nil {
				return s
			}
			return string(parsed.Detail)
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return string(body)
}
