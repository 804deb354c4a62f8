package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	MoviePilot MoviePilotConfig `mapstructure:"moviepilot"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// MoviePilotConfig holds MoviePilot connection details and credentials
type MoviePilotConfig struct {
	URL      string        `mapstructure:"url"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// ServerConfig controls how the MCP server is exposed
type ServerConfig struct {
	Transport string `mapstructure:"transport"`
	Listen    string `mapstructure:"listen"`
	APIKey    string `mapstructure:"api_key"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
