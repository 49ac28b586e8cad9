package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
// This key is shared with root.go via both using the same type.
type loggerKey struct{}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config // Stores the loaded config for access by commands
)

// configFileNames are the file names probed in the working directory when
// no explicit --config path is given.
var configFileNames = []string{"doltctl.yaml", "doltctl.yml"}

// findConfigFile finds the config file to use.
// Priority: explicit path > doltctl.yaml > doltctl.yml
// An explicitly given path must exist; a discovered one may be absent, in
// which case defaults, environment variables and flags still apply.
func findConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}

	return "", nil
}

// ResetConfig clears the loaded configuration state.
// This is primarily useful for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// envTransform maps a DOLTCTL_* environment variable to a config key.
// The first segment selects a section when it names one, so
// DOLTCTL_DATABASE_HOST becomes database.host and DOLTCTL_UI_SESSION_SECRET
// becomes ui.session_secret. Everything else maps to a top-level key.
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "DOLTCTL_"))
	for _, section := range []string{"database", "ui", "log"} {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + rest
		}
	}
	return key
}

// LoadConfig loads configuration from defaults, an optional config file,
// environment variables and command-line flags, in increasing precedence.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	ResetConfig()

	// Layer 1: built-in defaults.
	defaults := map[string]interface{}{
		"database.host": DefaultHost,
		"database.port": DefaultPort,
		"database.user": DefaultUser,
		"remote":        DefaultRemote,
		"author":        DefaultAuthor,
		"output":        DefaultOutput,
		"log.level":     DefaultLogLevel,
		"log.format":    DefaultLogFormat,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (if present).
	path, err := findConfigFile(cfgFile)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		configFileUsed = path
	}

	// Layer 3: environment variables.
	if err := k.Load(env.Provider("DOLTCTL_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Layer 4: command-line flags. Only flags the user actually set
	// override the lower layers.
	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			switch key {
			case "host":
				key = "database.host"
			case "port":
				key = "database.port"
			case "user":
				key = "database.user"
			case "database":
				key = "database.name"
			case "tls":
				key = "database.tls"
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Expand ${VAR} references in values that commonly hold secrets.
	cfg.Database.Host = expandEnvVars(cfg.Database.Host)
	cfg.Database.User = expandEnvVars(cfg.Database.User)
	cfg.Database.Password = expandEnvVars(cfg.Database.Password)
	if cfg.UI != nil {
		cfg.UI.SessionSecret = expandEnvVars(cfg.UI.SessionSecret)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	currentConfig = &cfg
	return &cfg, nil
}

// envVarPattern matches ${VAR} style references in config values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} references with the value of the
// environment variable VAR. Unset variables are left as-is.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

// GetConfigFileUsed returns the path of the config file that was loaded,
// or an empty string if none was.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration, or nil if
// LoadConfig has not been called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key under which the logger is stored.
func LoggerKey() any {
	return loggerKey{}
}

// GetLogger retrieves the logger from the context. If no logger is stored,
// a discard logger is returned so callers can log unconditionally.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// NewLogger builds a slog.Logger from the log settings, writing to w.
func NewLogger(cfg LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.Format) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
