package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/s0up4200/moviepilot-mcp/moviepilot"
)

type addSubscribeToolInput struct {
	Name         string `json:"name" jsonschema:"Media name"`
	Year         string `json:"year,omitempty" jsonschema:"Release year"`
	Type         string `json:"type,omitempty" jsonschema:"Media type, e.g. 电影 or 电视剧"`
	TMDBID       int64  `json:"tmdbid,omitempty" jsonschema:"The Movie Database ID"`
	DoubanID     string `json:"doubanid,omitempty" jsonschema:"Douban ID"`
	BangumiID    int64  `json:"bangumiid,omitempty" jsonschema:"Bangumi ID"`
	Season       int    `json:"season,omitempty" jsonschema:"Season number for TV shows"`
	Keyword      string `json:"keyword,omitempty" jsonschema:"Search keyword override"`
	TotalEpisode int    `json:"total_episode,omitempty" jsonschema:"Total episode count"`
	StartEpisode int    `json:"start_episode,omitempty" jsonschema:"First episode to download"`
	BestVersion  int    `json:"best_version,omitempty" jsonschema:"Set 1 to keep seeking a better version"`
}

type addSubscribeToolOutput struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	SubscribeID int64  `json:"subscribe_id,omitempty"`
}

func (s *Server) handleAddSubscribeTool(ctx context.Context, _ *mcpsdk.CallToolRequest, input addSubscribeToolInput) (*mcpsdk.CallToolResult, addSubscribeToolOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, addSubscribeToolOutput{}, fmt.Errorf("name is required")
	}
	if input.TMDBID == 0 && strings.TrimSpace(input.DoubanID) == "" && input.BangumiID == 0 {
		return nil, addSubscribeToolOutput{}, fmt.Errorf("at least one of tmdbid, doubanid, or bangumiid is required")
	}

	result, err := s.client.AddSubscribe(ctx, moviepilot.Subscribe{
		Name:         strings.TrimSpace(input.Name),
		Year:         strings.TrimSpace(input.Year),
		Type:         strings.TrimSpace(input.Type),
		TMDBID:       input.TMDBID,
		DoubanID:     strings.TrimSpace(input.DoubanID),
		BangumiID:    input.BangumiID,
		Season:       input.Season,
		Keyword:      strings.TrimSpace(input.Keyword),
		TotalEpisode: input.TotalEpisode,
		StartEpisode: input.StartEpisode,
		BestVersion:  input.BestVersion,
	})
	if err != nil {
		return nil, addSubscribeToolOutput{}, toolError(err)
	}

	return nil, addSubscribeToolOutput{
		Success:     result.Success,
		Message:     result.Message,
		SubscribeID: result.SubscribeID,
	}, nil
}

type listSubscribesToolInput struct{}

type listSubscribesToolOutput struct {
	Subscribes []moviepilot.Subscribe `json:"subscribes"`
}

func (s *Server) handleListSubscribesTool(ctx context.Context, _ *mcpsdk.CallToolRequest, _ listSubscribesToolInput) (*mcpsdk.CallToolResult, listSubscribesToolOutput, error) {
	subs, err := s.client.ListSubscribes(ctx)
	if err != nil {
		return nil, listSubscribesToolOutput{}, toolError(err)
	}
	return nil, listSubscribesToolOutput{Subscribes: subs}, nil
}

type deleteSubscribeToolInput struct {
	ID int64 `json:"id" jsonschema:"Subscription ID to delete"`
}

type deleteSubscribeToolOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (s *Server) handleDeleteSubscribeTool(ctx context.Context, _ *mcpsdk.CallToolRequest, input deleteSubscribeToolInput) (*mcpsdk.CallToolResult, deleteSubscribeToolOutput, error) {
	if input.ID <= 0 {
		return nil, deleteSubscribeToolOutput{}, fmt.Errorf("id is required")
	}

	result, err := s.client.DeleteSubscribe(ctx, input.ID)
	if err != nil {
		return nil, deleteSubscribeToolOutput{}, toolError(err)
	}

	return nil, deleteSubscribeToolOutput{
		Success: result.Success,
		Message: result.Message,
	}, nil
}
