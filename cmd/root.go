package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/moviepilot-mcp/config"
	"github.com/s0up4200/moviepilot-mcp/moviepilot"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *moviepilot.Client

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "moviepilot-mcp",
	Short: "MCP server exposing MoviePilot media management tools",
	Long: `moviepilot-mcp bridges a MoviePilot instance to MCP clients.

It maintains an authenticated session against the MoviePilot API (automatic
JWT login and refresh) and exposes media search, details, season episodes,
and subscription management as MCP tools over stdio or HTTP.`,
	PersistentPreRunE: initializeApp,
}

// SetVersion records build information for the version command and the
// self-updater
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, bt)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(updateCmd)
}

// initializeApp initializes the configuration and the MoviePilot client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create MoviePilot client; login happens lazily on first use
	client, err = moviepilot.NewClient(
		cfg.MoviePilot.URL,
		cfg.MoviePilot.Username,
		cfg.MoviePilot.Password,
		logger,
		moviepilot.WithTimeout(cfg.MoviePilot.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create MoviePilot client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Logs go to stderr: stdout belongs to the MCP stdio transport
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to MoviePilot",
	Long:  `Test the connection and credentials against your MoviePilot instance.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to MoviePilot at %s...\n", cfg.MoviePilot.URL)

	ctx := context.Background()
	defer client.Close()

	user, err := client.CurrentUser(ctx)
	if err != nil {
		return err
	}

	fmt.Println("✓ Connection successful!")
	fmt.Printf("\nAuthenticated as:\n")
	fmt.Printf("- User: %s\n", user.Name)
	if user.Email != "" {
		fmt.Printf("- Email: %s\n", user.Email)
	}
	fmt.Printf("- Superuser: %s\n", boolToStatus(user.IsSuperuser))

	subs, err := client.ListSubscribes(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to list subscriptions")
		return nil
	}
	fmt.Printf("\nMoviePilot Statistics:\n")
	fmt.Printf("- Active subscriptions: %d\n", len(subs))

	return nil
}

func boolToStatus(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
