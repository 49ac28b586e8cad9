package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// DiffOptions holds options for the diff command.
type DiffOptions struct {
	From    string
	To      string
	Summary bool
	Format  string
}

// NewDiffCommand creates the diff command.
func NewDiffCommand() *cobra.Command {
	opts := &DiffOptions{}

	cmd := &cobra.Command{
		Use:   "diff [TABLE]",
		Short: "Show changes between revisions",
		Long: `Show changes between two revisions.

Without a table, a per-table summary of added, modified and removed rows
is shown. With a table, the row-level diff of that table is shown.

Revisions can be commit hashes, branch names, or the special names HEAD
and WORKING.`,
		Example: `  # Summarize uncommitted changes across all tables
  doltctl diff

  # Row-level diff of the users table
  doltctl diff users

  # Diff between two commits
  doltctl diff --from aaaa1111 --to bbbb2222 users

  # Diff as CSV
  doltctl diff users --format csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := ""
			if len(args) > 0 {
				table = args[0]
			}
			return runDiff(cmd, opts, table)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "HEAD", "Revision to diff from")
	cmd.Flags().StringVar(&opts.To, "to", "WORKING", "Revision to diff to")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "Show a per-table summary instead of row-level changes")
	cmd.Flags().StringVar(&opts.Format, "format", "", "Result format: table, json, csv, md")

	return cmd
}

func runDiff(cmd *cobra.Command, opts *DiffOptions, table string) error {
	if opts.Summary && table != "" {
		return fmt.Errorf("cannot combine --summary with a table\nHint: Run 'doltctl diff %s' for the row-level diff", table)
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	repo := cmdCtx.Repo
	r := cmdCtx.Renderer

	if table == "" {
		summary, err := repo.DiffSummary(ctx, opts.From, opts.To)
		if err != nil {
			return err
		}
		return renderResultSet(r.Out(), summary, resolveFormat(r, opts.Format))
	}

	diff, err := repo.Diff(ctx, opts.From, opts.To, table)
	if err != nil {
		return err
	}
	return renderResultSet(r.Out(), diff, resolveFormat(r, opts.Format))
}
