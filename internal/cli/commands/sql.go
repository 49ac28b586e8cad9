package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/doltctl/internal/dolt"
	"github.com/spf13/cobra"
)

// SQLOptions holds options for the sql command.
type SQLOptions struct {
	Format string
	Input  string
}

// NewSQLCommand creates the sql command.
func NewSQLCommand() *cobra.Command {
	opts := &SQLOptions{}

	cmd := &cobra.Command{
		Use:   "sql [SQL]",
		Short: "Run SQL against the database",
		Long: `Execute a SQL statement against the Dolt SQL server.

Statements that return rows are rendered in the chosen format; other
statements report the number of affected rows. Dolt procedures such as
CALL DOLT_CHECKOUT(...) work as well.

When invoked without arguments on a terminal, enters interactive REPL mode.`,
		Example: `  # Execute SQL directly
  doltctl sql "SELECT * FROM users LIMIT 10"

  # Pipe a statement
  echo "SELECT count(*) FROM orders" | doltctl sql

  # Read SQL from a file, output JSON
  doltctl sql --input report.sql --format json

  # Interactive mode
  doltctl sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSQL(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "table", "Output format: table, json, csv, md")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	// Subcommands
	cmd.AddCommand(newSQLTablesCommand(opts))
	cmd.AddCommand(newSQLSchemaCommand(opts))

	return cmd
}

func runSQL(cmd *cobra.Command, args []string, opts *SQLOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	// Determine SQL source
	var stmt string

	switch {
	case len(args) > 0:
		stmt = strings.Join(args, " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		stmt = string(content)
	case !isTerminal(os.Stdin):
		// Read from stdin (piped input)
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		stmt = string(content)
	default:
		// No input, TTY detected - enter REPL mode
		return runSQLREPL(cmd, cmdCtx, opts)
	}

	stmt = strings.TrimSuffix(strings.TrimSpace(stmt), ";")
	return executeAndRenderSQL(cmd.Context(), cmd, cmdCtx.Repo, stmt, opts.Format)
}

// executeAndRenderSQL runs one statement and renders its result.
func executeAndRenderSQL(ctx context.Context, cmd *cobra.Command, repo *dolt.Repo, stmt, format string) error {
	rs, err := repo.Query(ctx, stmt)
	if err != nil {
		return err
	}
	return renderResultSet(cmd.OutOrStdout(), rs, format)
}

// newSQLTablesCommand creates the tables subcommand.
func newSQLTablesCommand(opts *SQLOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List tables in the database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			return executeAndRenderSQL(cmd.Context(), cmd, cmdCtx.Repo, "SHOW TABLES", opts.Format)
		},
	}
}

// newSQLSchemaCommand creates the schema subcommand.
func newSQLSchemaCommand(opts *SQLOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema TABLE",
		Short: "Show the schema of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			return executeAndRenderSQL(cmd.Context(), cmd, cmdCtx.Repo, fmt.Sprintf("DESCRIBE %s", args[0]), opts.Format)
		},
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
