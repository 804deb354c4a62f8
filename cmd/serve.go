package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/s0up4200/moviepilot-mcp/mcp"
)

var (
	transportFlag string
	listenFlag    string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Run the MCP server, exposing MoviePilot tools to MCP clients.

The stdio transport (default) is meant for direct integration with an MCP
client that spawns this process. The http transport serves streamable HTTP
on the configured listen address, protected by an X-API-Key header.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&transportFlag, "transport", "", "transport to serve on (stdio or http)")
	serveCmd.Flags().StringVar(&listenFlag, "listen", "", "listen address for the http transport")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Command-line overrides
	if cmd.Flags().Changed("transport") {
		cfg.Server.Transport = transportFlag
	}
	if cmd.Flags().Changed("listen") {
		cfg.Server.Listen = listenFlag
	}

	server, err := mcp.NewServer(client, mcp.Config{
		Transport: cfg.Server.Transport,
		Listen:    cfg.Server.Listen,
		APIKey:    cfg.Server.APIKey,
		Version:   version,
	}, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer client.Close()

	logger.Info().
		Str("transport", cfg.Server.Transport).
		Str("moviepilot", cfg.MoviePilot.URL).
		Msg("Starting MoviePilot MCP server")

	return server.Run(ctx)
}
