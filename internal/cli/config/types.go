// Package config provides configuration management for the doltctl CLI.
//
// Configuration is layered: built-in defaults, then an optional
// doltctl.yaml file, then DOLTCTL_* environment variables, then
// command-line flags. Later layers override earlier ones.
package config

// DatabaseConfig holds the connection settings for the Dolt SQL server.
type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	TLS      bool   `koanf:"tls"`
}

// UIConfig holds configuration for the admin UI server.
type UIConfig struct {
	Host          string `koanf:"host"`
	Port          int    `koanf:"port"`
	AutoOpen      bool   `koanf:"auto_open"`
	Watch         bool   `koanf:"watch"`
	SessionSecret string `koanf:"session_secret"`
}

// DefaultUIConfig returns a UIConfig with default values.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Host:     "127.0.0.1",
		Port:     8765,
		AutoOpen: true,
		Watch:    true,
	}
}

// GetUIConfig returns the UI config with defaults applied for any unset values.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return DefaultUIConfig()
	}
	ui := c.UI
	if ui.Host == "" {
		ui.Host = "127.0.0.1"
	}
	if ui.Port == 0 {
		ui.Port = 8765
	}
	return ui
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Config holds all CLI configuration options.
type Config struct {
	Database     DatabaseConfig `koanf:"database"`
	Remote       string         `koanf:"remote"`
	Branch       string         `koanf:"branch"`
	Author       string         `koanf:"author"`
	Verbose      bool           `koanf:"verbose"`
	OutputFormat string         `koanf:"output"`
	UI           *UIConfig      `koanf:"ui"`
	Log          LogConfig      `koanf:"log"`
}

// Default configuration values.
const (
	DefaultHost      = "127.0.0.1"
	DefaultPort      = 3306
	DefaultUser      = "root"
	DefaultRemote    = "origin"
	DefaultAuthor    = "doltctl <doltctl@localhost>"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
