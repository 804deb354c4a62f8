package mcp

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/s0up4200/moviepilot-mcp/moviepilot"
)

// Transport values accepted by Config
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// APIKeyHeader carries the client credential on the HTTP transport
const APIKeyHeader = "X-API-Key"

const serverName = "MoviePilot MCP Server"

// Config controls how the MCP server is exposed
type Config struct {
	Transport string
	Listen    string
	APIKey    string
	Version   string
}

// Server exposes MoviePilot media tools over MCP
type Server struct {
	client *moviepilot.Client
	cfg    Config
	logger zerolog.Logger
	mcpSrv *mcpsdk.Server
}

// NewServer creates the MCP server and registers the tool surface
func NewServer(client *moviepilot.Client, cfg Config, logger zerolog.Logger) (*Server, error) {
	if client == nil {
		return nil, fmt.Errorf("moviepilot client is required")
	}
	switch cfg.Transport {
	case TransportStdio:
	case TransportHTTP:
		if cfg.Listen == "" {
			return nil, fmt.Errorf("listen address is required for the http transport")
		}
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("API key is required for the http transport")
		}
	default:
		return nil, fmt.Errorf("unknown transport: %s", cfg.Transport)
	}

	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		client: client,
		cfg:    cfg,
		logger: logger,
	}

	s.mcpSrv = mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    serverName,
		Version: version,
	}, &mcpsdk.ServerOptions{
		Instructions: "Tools for managing a MoviePilot media library: search movies, " +
			"TV shows and persons, look up details and season episodes, and manage " +
			"media subscriptions.",
	})
	s.registerTools()

	return s, nil
}

// Run serves MCP until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	switch s.cfg.Transport {
	case TransportStdio:
		s.logger.Info().Msg("Serving MCP on stdio")
		return s.mcpSrv.Run(ctx, &mcpsdk.StdioTransport{})
	case TransportHTTP:
		return s.runHTTP(ctx)
	default:
		return fmt.Errorf("unknown transport: %s", s.cfg.Transport)
	}
}

// runHTTP serves the streamable HTTP transport behind API-key auth
func (s *Server) runHTTP(ctx context.Context) error {
	streamable := mcpsdk.NewStreamableHTTPHandler(func(_ *http.Request) *mcpsdk.Server {
		return s.mcpSrv
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", s.requireAPIKey(streamable))

	httpServer := &http.Server{
		Addr:    s.cfg.Listen,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("listen", s.cfg.Listen).Msg("Serving MCP over HTTP")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// requireAPIKey rejects requests without a matching X-API-Key header
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(APIKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(s.cfg.APIKey)) != 1 {
			s.logger.Warn().Str("remote", r.RemoteAddr).Msg("Rejected request with missing or invalid API key")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprintf(w, `{"detail":"missing or invalid API key, provide a valid key in the %s header"}`, APIKeyHeader)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpSrv, &mcpsdk.Tool{
		Name: "search_media_or_person",
		Description: "Search for movies, TV shows, or persons by name. " +
			"Returns a list of matches with their TMDB/Douban/Bangumi identifiers.",
	}, s.handleSearchTool)
	mcpsdk.AddTool(s.mcpSrv, &mcpsdk.Tool{
		Name: "get_media_details",
		Description: "Get detailed information about a movie or TV show by its " +
			"TMDB or Douban ID.",
	}, s.handleMediaDetailsTool)
	mcpsdk.AddTool(s.mcpSrv, &mcpsdk.Tool{
		Name:        "get_season_episodes",
		Description: "Get the episode list for one season of a TV series.",
	}, s.handleSeasonEpisodesTool)
	mcpsdk.AddTool(s.mcpSrv, &mcpsdk.Tool{
		Name: "add_subscribe",
		Description: "Add a new media subscription. The subscription needs at " +
			"least one of tmdbid, doubanid, or bangumiid.",
	}, s.handleAddSubscribeTool)
	mcpsdk.AddTool(s.mcpSrv, &mcpsdk.Tool{
		Name:        "list_subscribes",
		Description: "List all current media subscriptions.",
	}, s.handleListSubscribesTool)
	mcpsdk.AddTool(s.mcpSrv, &mcpsdk.Tool{
		Name:        "delete_subscribe",
		Description: "Delete a media subscription by its ID.",
	}, s.handleDeleteSubscribeTool)
}

// toolError keeps the auth/api distinction visible in tool results
func toolError(err error) error {
	var authErr *moviepilot.AuthError
	if errors.As(err, &authErr) {
		return fmt.Errorf("moviepilot authentication failed: %s", authErr.Message)
	}
	return err
}
