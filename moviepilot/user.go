package moviepilot

import (
	"context"
	"fmt"
)

// CurrentUser retrieves the account the client is authenticated as
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.getJSON(ctx, "/api/v1/user/", nil, &user); err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return &user, nil
}

// TestConnection verifies connectivity and credentials by fetching the
// current user, logging in first if necessary.
func (c *Client) TestConnection(ctx context.Context) error {
	if _, err := c.CurrentUser(ctx); err != nil {
		return fmt.Errorf("failed to connect to MoviePilot: %w", err)
	}
	return nil
}
