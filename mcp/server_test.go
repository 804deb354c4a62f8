package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/moviepilot-mcp/moviepilot"
)

// newBackend starts a fake MoviePilot and returns a server wired to it
func newBackend(t *testing.T, handle http.HandlerFunc) *Server {
	t.Helper()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == moviepilot.LoginEndpoint {
			json.NewEncoder(w).Encode(map[string]any{"access_token": "test-token"})
			return
		}
		handle(w, r)
	}))
	t.Cleanup(backend.Close)

	client, err := moviepilot.NewClient(backend.URL, "admin", "secret", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(client.Close)

	srv, err := NewServer(client, Config{Transport: TransportStdio}, zerolog.Nop())
	require.NoError(t, err)
	return srv
}

func TestNewServerValidation(t *testing.T) {
	client, err := moviepilot.NewClient("http://localhost:3000", "admin", "secret", zerolog.Nop())
	require.NoError(t, err)
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		client  *moviepilot.Client
		cfg     Config
		wantErr string
	}{
		{
			name:   "stdio transport",
			client: client,
			cfg:    Config{Transport: TransportStdio},
		},
		{
			name:   "http transport",
			client: client,
			cfg:    Config{Transport: TransportHTTP, Listen: "127.0.0.1:0", APIKey: "key"},
		},
		{
			name:    "nil client",
			cfg:     Config{Transport: TransportStdio},
			wantErr: "client is required",
		},
		{
			name:    "http without listen",
			client:  client,
			cfg:     Config{Transport: TransportHTTP, APIKey: "key"},
			wantErr: "listen address is required",
		},
		{
			name:    "http without api key",
			client:  client,
			cfg:     Config{Transport: TransportHTTP, Listen: "127.0.0.1:0"},
			wantErr: "API key is required",
		},
		{
			name:    "unknown transport",
			client:  client,
			cfg:     Config{Transport: "sse"},
			wantErr: "unknown transport",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, err := NewServer(tt.client, tt.cfg, logger)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, srv)
		})
	}
}

func TestRequireAPIKey(t *testing.T) {
	srv := &Server{
		cfg:    Config{APIKey: "expected-key"},
		logger: zerolog.Nop(),
	}

	handler := srv.requireAPIKey(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		key        string
		wantStatus int
	}{
		{name: "valid key", key: "expected-key", wantStatus: http.StatusOK},
		{name: "wrong key", key: "wrong", wantStatus: http.StatusUnauthorized},
		{name: "missing key", key: "", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
			if tt.key != "" {
				req.Header.Set(APIKeyHeader, tt.key)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), "detail")
			}
		})
	}
}

func TestSearchTool(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/media/search", r.URL.Path)
		assert.Equal(t, "Dune", r.URL.Query().Get("title"))
		json.NewEncoder(w).Encode([]moviepilot.MediaInfo{{Title: "Dune", TMDBID: 438631}})
	})

	_, out, err := srv.handleSearchTool(context.Background(), nil, searchToolInput{Name: "Dune"})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "Dune", out.Results[0].Title)
}

func TestSearchToolValidation(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no backend request expected")
	})

	_, _, err := srv.handleSearchTool(context.Background(), nil, searchToolInput{})
	require.Error(t, err)

	_, _, err = srv.handleSearchTool(context.Background(), nil, searchToolInput{Name: "x", TypeName: "book"})
	require.Error(t, err)
}

func TestMediaDetailsTool(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/media/tmdb:438631", r.URL.Path)
		json.NewEncoder(w).Encode(moviepilot.MediaInfo{Title: "Dune", TMDBID: 438631})
	})

	_, out, err := srv.handleMediaDetailsTool(context.Background(), nil, mediaDetailsToolInput{
		IDType:  "tmdb",
		IDValue: "438631",
	})
	require.NoError(t, err)
	require.NotNil(t, out.Media)
	assert.Equal(t, "Dune", out.Media.Title)
}

func TestMediaDetailsToolValidation(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no backend request expected")
	})

	_, _, err := srv.handleMediaDetailsTool(context.Background(), nil, mediaDetailsToolInput{IDType: "tmdb"})
	require.Error(t, err)

	_, _, err = srv.handleMediaDetailsTool(context.Background(), nil, mediaDetailsToolInput{IDType: "imdb", IDValue: "tt0000001"})
	require.Error(t, err)
}

func TestSeasonEpisodesTool(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/tmdb/1399/1", r.URL.Path)
		json.NewEncoder(w).Encode([]moviepilot.EpisodeInfo{{EpisodeNumber: 1, Name: "Winter Is Coming"}})
	})

	_, out, err := srv.handleSeasonEpisodesTool(context.Background(), nil, seasonEpisodesToolInput{
		SourceID:     "1399",
		SeasonNumber: 1,
	})
	require.NoError(t, err)
	require.Len(t, out.Episodes, 1)

	_, _, err = srv.handleSeasonEpisodesTool(context.Background(), nil, seasonEpisodesToolInput{
		SourceID: "1399",
		Source:   "douban",
	})
	require.Error(t, err)
}

func TestAddSubscribeTool(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "订阅成功",
			"data":    map[string]any{"id": 7},
		})
	})

	_, out, err := srv.handleAddSubscribeTool(context.Background(), nil, addSubscribeToolInput{
		Name:   "Dune: Part Two",
		TMDBID: 693134,
	})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, int64(7), out.SubscribeID)
}

func TestAddSubscribeToolValidation(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no backend request expected")
	})

	_, _, err := srv.handleAddSubscribeTool(context.Background(), nil, addSubscribeToolInput{TMDBID: 1})
	require.Error(t, err)

	_, _, err = srv.handleAddSubscribeTool(context.Background(), nil, addSubscribeToolInput{Name: "Dune"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one of")
}

func TestListAndDeleteSubscribeTools(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode([]moviepilot.Subscribe{{ID: 7, Name: "Dune"}})
		case http.MethodDelete:
			assert.Equal(t, "/api/v1/subscribe/7", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{"success": true})
		}
	})

	_, listOut, err := srv.handleListSubscribesTool(context.Background(), nil, listSubscribesToolInput{})
	require.NoError(t, err)
	require.Len(t, listOut.Subscribes, 1)

	_, delOut, err := srv.handleDeleteSubscribeTool(context.Background(), nil, deleteSubscribeToolInput{ID: 7})
	require.NoError(t, err)
	assert.True(t, delOut.Success)

	_, _, err = srv.handleDeleteSubscribeTool(context.Background(), nil, deleteSubscribeToolInput{})
	require.Error(t, err)
}

// Auth failures surface as readable tool errors, not raw client errors.
func TestToolErrorClassification(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail":"bad credentials"}`)
	}))
	t.Cleanup(backend.Close)

	client, err := moviepilot.NewClient(backend.URL, "admin", "secret", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(client.Close)

	srv, err := NewServer(client, Config{Transport: TransportStdio}, zerolog.Nop())
	require.NoError(t, err)

	_, _, err = srv.handleListSubscribesTool(context.Background(), nil, listSubscribesToolInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
}
