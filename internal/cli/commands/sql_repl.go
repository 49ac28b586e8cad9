package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/doltctl/internal/dolt"
	"github.com/spf13/cobra"
)

func runSQLREPL(cmd *cobra.Command, cmdCtx *CommandContext, opts *SQLOptions) error {
	ctx := cmd.Context()
	repo := cmdCtx.Repo

	// History lives next to the user's other shell histories
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".doltctl_history")
	}

	// Get table names for completion
	completer := newTableCompleter(ctx, repo)

	// Configure readline
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "doltctl> ",
		HistoryFile:     historyFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	// Print welcome message
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "doltctl SQL REPL (database: %s)\n", cmdCtx.Cfg.Database.Name)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	// REPL loop
	var multiLineBuffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			multiLineBuffer.Reset()
			rl.SetPrompt("doltctl> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Handle dot-commands
		if strings.HasPrefix(line, ".") {
			if handled := handleDotCommand(ctx, cmd, repo, line, opts.Format); handled {
				if line == ".quit" || line == ".exit" {
					break
				}
				continue
			}
		}

		// Accumulate multi-line SQL until semicolon
		multiLineBuffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			multiLineBuffer.WriteString(" ")
			rl.SetPrompt("    ...> ")
			continue
		}
		rl.SetPrompt("doltctl> ")

		// Execute query
		stmt := strings.TrimSuffix(multiLineBuffer.String(), ";")
		multiLineBuffer.Reset()

		if err := executeAndRenderSQL(ctx, cmd, repo, stmt, opts.Format); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}

func handleDotCommand(ctx context.Context, cmd *cobra.Command, repo *dolt.Repo, line, format string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(cmd.OutOrStdout())
		return true

	case ".tables":
		if err := executeAndRenderSQL(ctx, cmd, repo, "SHOW TABLES", format); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return true

	case ".schema":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .schema <table>")
			return true
		}
		if err := executeAndRenderSQL(ctx, cmd, repo, fmt.Sprintf("DESCRIBE %s", parts[1]), format); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return true

	case ".status":
		printREPLStatus(ctx, cmd, repo)
		return true

	case ".log":
		printREPLLog(ctx, cmd, repo)
		return true

	case ".clear":
		fmt.Print("\033[H\033[2J")
		return true

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
		return true
	}
}

// printREPLStatus shows a one-line working set summary.
func printREPLStatus(ctx context.Context, cmd *cobra.Command, repo *dolt.Repo) {
	branch, err := repo.CurrentBranch(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}
	entries, err := repo.Status(ctx, true)
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	staged, unstaged := 0, 0
	for _, e := range entries {
		if e.Staged {
			staged++
		} else {
			unstaged++
		}
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "On branch %s: %d staged, %d unstaged\n", branch, staged, unstaged)
}

// printREPLLog shows the last few commits.
func printREPLLog(ctx context.Context, cmd *cobra.Command, repo *dolt.Repo) {
	commits, err := repo.Log(ctx, 5)
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}
	for _, c := range commits {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", c.ShortHash(), firstLine(c.Message))
	}
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .tables         List tables in the database
  .schema <name>  Show the schema of a table
  .status         Show a working set summary
  .log            Show recent commits
  .clear          Clear the screen
  .quit / .exit   Exit the REPL

Tips:
  - SQL statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completion works for table names
`
	_, _ = fmt.Fprintln(w, help)
}

// newTableCompleter creates a readline completer for table names.
func newTableCompleter(ctx context.Context, repo *dolt.Repo) *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface

	// Get all table names
	if rs, err := repo.Query(ctx, "SHOW TABLES"); err == nil {
		for _, row := range rs.Rows {
			if len(row) > 0 && row[0] != nil {
				if name, ok := row[0].(string); ok {
					items = append(items, readline.PcItem(name))
				}
			}
		}
	}

	// Add dot-commands
	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".tables"),
		readline.PcItem(".schema"),
		readline.PcItem(".status"),
		readline.PcItem(".log"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)

	return readline.NewPrefixCompleter(items...)
}
