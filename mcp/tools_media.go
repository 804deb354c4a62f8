package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/s0up4200/moviepilot-mcp/moviepilot"
)

type searchToolInput struct {
	TypeName string `json:"type_name,omitempty" jsonschema:"Search type: media or person (default media)"`
	Name     string `json:"name" jsonschema:"Name to search for (fuzzy match)"`
	Page     int    `json:"page,omitempty" jsonschema:"Result page, starting at 1"`
}

type searchToolOutput struct {
	Results []moviepilot.MediaInfo `json:"results"`
}

func (s *Server) handleSearchTool(ctx context.Context, _ *mcpsdk.CallToolRequest, input searchToolInput) (*mcpsdk.CallToolResult, searchToolOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, searchToolOutput{}, fmt.Errorf("name is required")
	}

	typeName := strings.TrimSpace(input.TypeName)
	switch typeName {
	case "", moviepilot.MediaTypeMedia, moviepilot.MediaTypePerson:
	default:
		return nil, searchToolOutput{}, fmt.Errorf("type_name must be %q or %q", moviepilot.MediaTypeMedia, moviepilot.MediaTypePerson)
	}

	results, err := s.client.SearchMedia(ctx, name, typeName, input.Page)
	if err != nil {
		return nil, searchToolOutput{}, toolError(err)
	}

	return nil, searchToolOutput{Results: results}, nil
}

type mediaDetailsToolInput struct {
	IDType    string `json:"id_type" jsonschema:"ID type: tmdb or douban"`
	IDValue   string `json:"id_value" jsonschema:"ID value"`
	MediaType string `json:"media_type,omitempty" jsonschema:"Media type as MoviePilot names it, e.g. 电影 or 电视剧"`
	Title     string `json:"title,omitempty" jsonschema:"Media title to refine matching"`
	Year      int    `json:"year,omitempty" jsonschema:"Release year to refine matching"`
}

type mediaDetailsToolOutput struct {
	Media *moviepilot.MediaInfo `json:"media"`
}

func (s *Server) handleMediaDetailsTool(ctx context.Context, _ *mcpsdk.CallToolRequest, input mediaDetailsToolInput) (*mcpsdk.CallToolResult, mediaDetailsToolOutput, error) {
	idType := strings.TrimSpace(input.IDType)
	idValue := strings.TrimSpace(input.IDValue)
	if idValue == "" {
		return nil, mediaDetailsToolOutput{}, fmt.Errorf("id_value is required")
	}
	switch idType {
	case "tmdb", "douban":
	default:
		return nil, mediaDetailsToolOutput{}, fmt.Errorf("id_type must be tmdb or douban")
	}

	media, err := s.client.MediaDetails(ctx, idType+":"+idValue, strings.TrimSpace(input.MediaType), strings.TrimSpace(input.Title), input.Year)
	if err != nil {
		return nil, mediaDetailsToolOutput{}, toolError(err)
	}

	return nil, mediaDetailsToolOutput{Media: media}, nil
}

type seasonEpisodesToolInput struct {
	SourceID     string `json:"source_id" jsonschema:"Series ID in the data source (tmdbid)"`
	SeasonNumber int    `json:"season_number" jsonschema:"Season number"`
	Source       string `json:"source,omitempty" jsonschema:"Data source, only tmdb is supported"`
}

type seasonEpisodesToolOutput struct {
	Episodes []moviepilot.EpisodeInfo `json:"episodes"`
}

func (s *Server) handleSeasonEpisodesTool(ctx context.Context, _ *mcpsdk.CallToolRequest, input seasonEpisodesToolInput) (*mcpsdk.CallToolResult, seasonEpisodesToolOutput, error) {
	sourceID := strings.TrimSpace(input.SourceID)
	if sourceID == "" {
		return nil, seasonEpisodesToolOutput{}, fmt.Errorf("source_id is required")
	}
	// TODO: support the douban source once MoviePilot exposes per-season
	// douban episode data.
	if source := strings.TrimSpace(input.Source); source != "" && source != "tmdb" {
		return nil, seasonEpisodesToolOutput{}, fmt.Errorf("unsupported source: %s", source)
	}
	if input.SeasonNumber < 0 {
		return nil, seasonEpisodesToolOutput{}, fmt.Errorf("season_number must not be negative")
	}

	episodes, err := s.client.SeasonEpisodes(ctx, sourceID, input.SeasonNumber)
	if err != nil {
		return nil, seasonEpisodesToolOutput{}, toolError(err)
	}

	return nil, seasonEpisodesToolOutput{Episodes: episodes}, nil
}
