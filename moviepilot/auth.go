package moviepilot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// LoginEndpoint is the MoviePilot identity endpoint
const LoginEndpoint = "/api/v1/login/access-token"

// tokenResponse is the login endpoint's success payload
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserName    string `json:"user_name"`
	SuperUser   bool   `json:"super_user"`
	Avatar      string `json:"avatar"`
}

// Login authenticates against MoviePilot and stores the returned token,
// replacing any token already held. Most callers never need this: the
// first authenticated request logs in lazily.
func (c *Client) Login(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.login(ctx)
}

// login performs the form-encoded credential exchange. The caller must
// hold the write lock. Every failure mode is wrapped into *AuthError.
func (c *Client) login(ctx context.Context) error {
	form := url.Values{
		"username": {c.username},
		"password": {c.password},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+LoginEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return &AuthError{Message: fmt.Sprintf("failed to create login request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	c.logger.Info().Str("url", c.baseURL+LoginEndpoint).Msg("Logging in to MoviePilot")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Msg("Network error during login")
		return &AuthError{Message: fmt.Sprintf("network error during login: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &AuthError{Message: fmt.Sprintf("failed to read login response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := errorDetail(body)
		c.logger.Error().Int("status", resp.StatusCode).Str("detail", detail).Msg("Login failed")
		return &AuthError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("login failed: %s", detail),
		}
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return &AuthError{Message: fmt.Sprintf("failed to parse login response: %v", err)}
	}
	if token.AccessToken == "" {
		return &AuthError{Message: "login successful but no access token received"}
	}

	c.token = token.AccessToken
	c.logger.Info().Str("user", token.UserName).Msg("Login successful, token obtained")
	return nil
}

// authHeader returns the Authorization header value, logging in first if
// no token is held. Concurrent callers racing on first use are resolved
// by a double-checked write lock: exactly one login is issued and every
// caller observes its outcome.
func (c *Client) authHeader(ctx context.Context) (string, error) {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	if token == "" {
		c.mu.Lock()
		if c.token == "" {
			c.logger.Debug().Msg("No token held, performing login")
			if err := c.login(ctx); err != nil {
				c.mu.Unlock()
				return "", err
			}
		}
		token = c.token
		c.mu.Unlock()
	}

	return "Bearer " + token, nil
}

// Invalidate clears the held token so the next authenticated request
// logs in again. Calling it with no token held is a no-op.
func (c *Client) Invalidate() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}
