package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Load loads the configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".moviepilot-mcp"))
		}

		// Check /etc
		v.AddConfigPath("/etc/moviepilot-mcp/")
	}

	// Credentials may come from the environment instead of the file
	v.SetEnvPrefix("MOVIEPILOT")
	v.AutomaticEnv()
	bindEnv(v)

	// Read config file; a missing file is fine when env provides everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// MoviePilot defaults
	v.SetDefault("moviepilot.url", "http://localhost:3000")
	v.SetDefault("moviepilot.timeout", 30*time.Second)

	// Server defaults
	v.SetDefault("server.transport", "stdio")
	v.SetDefault("server.listen", "127.0.0.1:3111")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// bindEnv maps MOVIEPILOT_* environment variables onto config keys
func bindEnv(v *viper.Viper) {
	v.BindEnv("moviepilot.url", "MOVIEPILOT_URL", "MOVIEPILOT_BASE_URL")
	v.BindEnv("moviepilot.username", "MOVIEPILOT_USERNAME")
	v.BindEnv("moviepilot.password", "MOVIEPILOT_PASSWORD")
	v.BindEnv("server.api_key", "MOVIEPILOT_MCP_API_KEY")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.MoviePilot.URL == "" {
		return fmt.Errorf("moviepilot.url is required")
	}

	if cfg.MoviePilot.Username == "" || cfg.MoviePilot.Password == "" {
		return fmt.Errorf("moviepilot.username and moviepilot.password are required for automatic login")
	}

	if cfg.MoviePilot.Timeout < 0 {
		return fmt.Errorf("moviepilot.timeout must not be negative")
	}

	// Validate server transport
	switch cfg.Server.Transport {
	case "stdio":
	case "http":
		if cfg.Server.Listen == "" {
			return fmt.Errorf("server.listen is required for the http transport")
		}
		if cfg.Server.APIKey == "" {
			return fmt.Errorf("server.api_key is required for the http transport")
		}
	default:
		return fmt.Errorf("invalid server.transport: %s (must be 'stdio' or 'http')", cfg.Server.Transport)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
