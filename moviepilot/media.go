package moviepilot

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"
)

// SearchMedia searches MoviePilot for media or persons by name.
// mediaType is MediaTypeMedia or MediaTypePerson; page starts at 1.
func (c *Client) SearchMedia(ctx context.Context, query, mediaType string, page int) ([]MediaInfo, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	if mediaType == "" {
		mediaType = MediaTypeMedia
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("title", query)
	params.Set("type", mediaType)
	params.Set("page", strconv.Itoa(page))

	var results []MediaInfo
	if err := c.getJSON(ctx, "/api/v1/media/search", params, &results); err != nil {
		return nil, fmt.Errorf("failed to search media: %w", err)
	}

	c.logger.Debug().
		Str("query", query).
		Str("type", mediaType).
		Int("count", len(results)).
		Msg("Retrieved media search results")

	return results, nil
}

// MediaDetails recognizes a single media item by its source-prefixed ID,
// e.g. "tmdb:550" or "douban:1292052". typeName is the media type as
// MoviePilot names it; title and year refine matching and may be empty.
func (c *Client) MediaDetails(ctx context.Context, mediaID, typeName, title string, year int) (*MediaInfo, error) {
	if mediaID == "" {
		return nil, fmt.Errorf("media ID is required")
	}

	params := url.Values{}
	if typeName != "" {
		params.Set("type_name", typeName)
	}
	if title != "" {
		params.Set("title", title)
	}
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}

	var media MediaInfo
	if err := c.getJSON(ctx, "/api/v1/media/"+url.PathEscape(mediaID), params, &media); err != nil {
		return nil, fmt.Errorf("failed to get media details: %w", err)
	}

	return &media, nil
}

// SeasonEpisodes retrieves the episode list for one season of a TMDB
// series.
func (c *Client) SeasonEpisodes(ctx context.Context, tmdbID string, season int) ([]EpisodeInfo, error) {
	if tmdbID == "" {
		return nil, fmt.Errorf("tmdb ID is required")
	}
	if season < 0 {
		return nil, fmt.Errorf("invalid season number: %d", season)
	}

	endpoint := fmt.Sprintf("/api/v1/tmdb/%s/%d", url.PathEscape(tmdbID), season)

	var episodes []EpisodeInfo
	if err := c.getJSON(ctx, endpoint, nil, &episodes); err != nil {
		return nil, fmt.Errorf("failed to get season episodes: %w", err)
	}

	c.logger.Debug().
		Str("tmdb_id", tmdbID).
		Int("season", season).
		Int("episodes", len(episodes)).
		Msg("Retrieved season episodes")

	return episodes, nil
}

// SeasonsOverview fetches episode lists for multiple seasons
// concurrently and returns them keyed by season number.
func (c *Client) SeasonsOverview(ctx context.Context, tmdbID string, seasons []int) (map[int][]EpisodeInfo, error) {
	if len(seasons) == 0 {
		return nil, nil
	}

	overview := make(map[int][]EpisodeInfo, len(seasons))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(5)

	for _, season := range seasons {
		g.Go(func() error {
			episodes, err := c.SeasonEpisodes(ctx, tmdbID, season)
			if err != nil {
				return err
			}
			mu.Lock()
			overview[season] = episodes
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return overview, nil
}
