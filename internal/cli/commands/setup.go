package commands

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strconv"

	"github.com/leapstack-labs/doltctl/internal/cli/config"
	"github.com/leapstack-labs/doltctl/internal/cli/output"
	"github.com/leapstack-labs/doltctl/internal/dolt"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Repo     *dolt.Repo
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with a live server connection.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	if err := cfg.ValidateDatabase(); err != nil {
		return nil, nil, err
	}

	db, err := openDatabase(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	cleanup := func() {
		_ = db.Close()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Repo:     dolt.New(db, logger),
		Renderer: r,
	}, cleanup, nil
}

// NewCommandContextWithoutRepo creates a CommandContext without a server
// connection. Useful for commands that don't need database access.
func NewCommandContextWithoutRepo(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	port := config.DefaultPort
	if v := os.Getenv("DOLTCTL_DATABASE_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		}
	}

	return &config.Config{
		Database: config.DatabaseConfig{
			Host:     getEnvOrDefault("DOLTCTL_DATABASE_HOST", config.DefaultHost),
			Port:     port,
			User:     getEnvOrDefault("DOLTCTL_DATABASE_USER", config.DefaultUser),
			Password: os.Getenv("DOLTCTL_DATABASE_PASSWORD"),
			Name:     os.Getenv("DOLTCTL_DATABASE_NAME"),
		},
		Remote:       getEnvOrDefault("DOLTCTL_REMOTE", config.DefaultRemote),
		Branch:       os.Getenv("DOLTCTL_BRANCH"),
		Author:       getEnvOrDefault("DOLTCTL_AUTHOR", config.DefaultAuthor),
		Verbose:      os.Getenv("DOLTCTL_VERBOSE") == "true",
		OutputFormat: os.Getenv("DOLTCTL_OUTPUT"),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// openDatabase dials the configured Dolt SQL server and returns a pooled
// connection handle.
func openDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	return dolt.Open(ctx, dolt.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Database: cfg.Database.Name,
		TLS:      cfg.Database.TLS,
	}, logger)
}

// resolveBranch returns the branch to operate on: the configured branch if
// set, otherwise the server's active branch.
func resolveBranch(ctx context.Context, repo *dolt.Repo, cfg *config.Config) (string, error) {
	if cfg.Branch != "" {
		return cfg.Branch, nil
	}
	return repo.CurrentBranch(ctx)
}
