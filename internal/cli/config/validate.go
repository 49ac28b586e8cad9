package config

import (
	"fmt"
)

// validOutputModes lists the accepted values for the output setting.
var validOutputModes = map[string]bool{
	"auto":     true,
	"text":     true,
	"markdown": true,
	"json":     true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.OutputFormat != "" && !validOutputModes[c.OutputFormat] {
		return fmt.Errorf("invalid output mode: %s\nHint: Valid modes are auto, text, markdown, json", c.OutputFormat)
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d\nHint: Ports must be between 1 and 65535", c.Database.Port)
	}

	if c.UI != nil && c.UI.Port != 0 && (c.UI.Port < 1 || c.UI.Port > 65535) {
		return fmt.Errorf("invalid ui port: %d\nHint: Ports must be between 1 and 65535", c.UI.Port)
	}

	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s\nHint: Valid formats are text, json", c.Log.Format)
	}

	return nil
}

// ValidateDatabase checks that enough connection settings are present to
// reach a Dolt SQL server. Commands that talk to the server call this;
// commands like init and version do not.
func (c *Config) ValidateDatabase() error {
	if c.Database.Name == "" {
		return fmt.Errorf("no database selected\nHint: Set database.name in doltctl.yaml or pass --database")
	}
	return nil
}
