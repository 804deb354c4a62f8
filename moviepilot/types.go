package moviepilot

import "encoding/json"

// MediaType values accepted by the search endpoint
const (
	MediaTypeMedia  = "media"
	MediaTypePerson = "person"
)

// MediaInfo represents a recognized movie, TV show, or person
type MediaInfo struct {
	Source       string  `json:"source,omitempty"`
	Type         string  `json:"type,omitempty"`
	Title        string  `json:"title,omitempty"`
	EnTitle      string  `json:"en_title,omitempty"`
	Year         string  `json:"year,omitempty"`
	Season       *int    `json:"season,omitempty"`
	TMDBID       int64   `json:"tmdb_id,omitempty"`
	IMDBID       string  `json:"imdb_id,omitempty"`
	TVDBID       int64   `json:"tvdb_id,omitempty"`
	DoubanID     string  `json:"douban_id,omitempty"`
	BangumiID    int64   `json:"bangumi_id,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	DetailLink   string  `json:"detail_link,omitempty"`
}

// EpisodeInfo represents one episode of a TV season
type EpisodeInfo struct {
	Title         string  `json:"title,omitempty"`
	Name          string  `json:"name,omitempty"`
	Overview      string  `json:"overview,omitempty"`
	SeasonNumber  int     `json:"season_number,omitempty"`
	EpisodeNumber int     `json:"episode_number,omitempty"`
	AirDate       string  `json:"air_date,omitempty"`
	Runtime       int     `json:"runtime,omitempty"`
	VoteAverage   float64 `json:"vote_average,omitempty"`
	StillPath     string  `json:"still_path,omitempty"`
}

// Subscribe represents a media subscription. At least one of TMDBID,
// DoubanID, or BangumiID must be set when adding.
type Subscribe struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name"`
	Year         string `json:"year,omitempty"`
	Type         string `json:"type,omitempty"`
	TMDBID       int64  `json:"tmdbid,omitempty"`
	DoubanID     string `json:"doubanid,omitempty"`
	BangumiID    int64  `json:"bangumiid,omitempty"`
	Season       int    `json:"season,omitempty"`
	Keyword      string `json:"keyword,omitempty"`
	Quality      string `json:"quality,omitempty"`
	Resolution   string `json:"resolution,omitempty"`
	Effect       string `json:"effect,omitempty"`
	TotalEpisode int    `json:"total_episode,omitempty"`
	StartEpisode int    `json:"start_episode,omitempty"`
	BestVersion  int    `json:"best_version,omitempty"`
	Username     string `json:"username,omitempty"`
	State        string `json:"state,omitempty"`
}

// User represents a MoviePilot user account
type User struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
	Avatar      string `json:"avatar,omitempty"`
}

// apiResponse is MoviePilot's generic success/message envelope used by
// mutating endpoints
type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// SubscribeResult reports the outcome of a subscription mutation
type SubscribeResult struct {
	Success     bool
	Message     string
	SubscribeID int64
}
