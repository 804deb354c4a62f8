package moviepilot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// AddSubscribe creates a new media subscription. The subscription must
// carry at least one of TMDBID, DoubanID, or BangumiID.
func (c *Client) AddSubscribe(ctx context.Context, sub Subscribe) (*SubscribeResult, error) {
	if sub.Name == "" {
		return nil, fmt.Errorf("subscription name is required")
	}
	if sub.TMDBID == 0 && sub.DoubanID == "" && sub.BangumiID == 0 {
		return nil, fmt.Errorf("subscription requires at least one of tmdbid, doubanid, or bangumiid")
	}

	body, err := c.Request(ctx, http.MethodPost, "/api/v1/subscribe/", WithJSONBody(sub))
	if err != nil {
		return nil, fmt.Errorf("failed to add subscription: %w", err)
	}

	result, err := parseSubscribeResponse(body)
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("name", sub.Name).
		Bool("success", result.Success).
		Int64("subscribe_id", result.SubscribeID).
		Msg("Subscription request completed")

	return result, nil
}

// ListSubscribes retrieves all current subscriptions
func (c *Client) ListSubscribes(ctx context.Context) ([]Subscribe, error) {
	var subs []Subscribe
	if err := c.getJSON(ctx, "/api/v1/subscribe/", nil, &subs); err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	c.logger.Debug().Int("count", len(subs)).Msg("Retrieved subscriptions")
	return subs, nil
}

// DeleteSubscribe removes a subscription by its ID
func (c *Client) DeleteSubscribe(ctx context.Context, id int64) (*SubscribeResult, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid subscription ID: %d", id)
	}

	body, err := c.Request(ctx, http.MethodDelete, "/api/v1/subscribe/"+strconv.FormatInt(id, 10))
	if err != nil {
		return nil, fmt.Errorf("failed to delete subscription: %w", err)
	}

	return parseSubscribeResponse(body)
}

// parseSubscribeResponse decodes MoviePilot's success/message envelope
func parseSubscribeResponse(body []byte) (*SubscribeResult, error) {
	if body == nil {
		return &SubscribeResult{Success: true}, nil
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	result := &SubscribeResult{
		Success: resp.Success,
		Message: resp.Message,
	}
	if len(resp.Data) > 0 {
		var data struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(resp.Data, &data); err == nil {
			result.SubscribeID = data.ID
		}
	}

	return result, nil
}
