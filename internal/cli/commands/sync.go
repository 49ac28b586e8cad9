package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/leapstack-labs/doltctl/internal/cli/output"
	"github.com/spf13/cobra"
)

// SyncOptions holds options for the sync command.
type SyncOptions struct {
	Tables     []string
	Author     string
	AllowEmpty bool
	Force      bool
	NoPush     bool
}

// NewSyncCommand creates the sync command.
func NewSyncCommand() *cobra.Command {
	opts := &SyncOptions{}

	cmd := &cobra.Command{
		Use:   "sync [MESSAGE]",
		Short: "Stage, commit and push in one step",
		Long: `Stage working set changes, commit them, and push the result to the
configured remote.

By default all changed tables are staged. Use --tables to sync a subset;
tables that fail to stage are skipped with a warning so one bad table
does not block the rest. When the working set is clean the command
reports "Nothing to commit." and skips the push.`,
		Example: `  # Commit and push everything with a generated message
  doltctl sync

  # Commit with a message
  doltctl sync "Load March inventory"

  # Sync only two tables, without pushing
  doltctl sync --tables users,orders --no-push

  # Record a checkpoint commit even when clean
  doltctl sync "Nightly checkpoint" --allow-empty`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := ""
			if len(args) > 0 {
				message = args[0]
			}
			return runSync(cmd, opts, message)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Tables, "tables", nil, "Only sync these tables (comma separated)")
	cmd.Flags().StringVar(&opts.Author, "author", "", `Commit author as "Name <email>"`)
	cmd.Flags().BoolVar(&opts.AllowEmpty, "allow-empty", false, "Commit even when no tables changed")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Force push, overwriting the remote branch")
	cmd.Flags().BoolVar(&opts.NoPush, "no-push", false, "Commit without pushing")

	return cmd
}

// SyncOutput is the JSON representation of a sync run.
type SyncOutput struct {
	Committed bool   `json:"committed"`
	Hash      string `json:"hash,omitempty"`
	NoOp      bool   `json:"no_op"`
	Pushed    bool   `json:"pushed"`
	Remote    string `json:"remote,omitempty"`
	Branch    string `json:"branch,omitempty"`
	Message   string `json:"message"`
}

func runSync(cmd *cobra.Command, opts *SyncOptions, message string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	return executeSync(cmd.Context(), cmdCtx, opts, message)
}

// executeSync runs the stage, commit, push sequence. Split from runSync so
// tests can drive it against a mocked connection.
func executeSync(ctx context.Context, cmdCtx *CommandContext, opts *SyncOptions, message string) error {
	repo := cmdCtx.Repo
	r := cmdCtx.Renderer
	cfg := cmdCtx.Cfg

	if message == "" {
		message = "Sync at " + time.Now().UTC().Format(time.RFC3339)
	}
	author := opts.Author
	if author == "" {
		author = cfg.Author
	}

	// Stage. A failing table is reported and skipped so the rest of the
	// sync still goes through.
	if len(opts.Tables) > 0 {
		for _, t := range opts.Tables {
			if err := repo.Stage(ctx, t); err != nil {
				cmdCtx.Logger.Warn("failed to stage table", "table", t, "error", err)
				r.Warning(fmt.Sprintf("Skipping %s: %v", t, err))
			}
		}
	} else {
		if err := repo.Stage(ctx, "."); err != nil {
			return err
		}
	}

	// Commit
	result, err := repo.Commit(ctx, message, author, opts.AllowEmpty)
	if err != nil {
		return err
	}

	if result.NoOp {
		if r.EffectiveMode() == output.ModeJSON {
			return r.JSON(SyncOutput{NoOp: true, Message: "Nothing to commit."})
		}
		r.Println("Nothing to commit.")
		return nil
	}

	if r.EffectiveMode() == output.ModeText {
		r.Success(fmt.Sprintf("Committed %s: %s", shortHash(result.Hash), firstLine(message)))
	}

	if opts.NoPush {
		switch r.EffectiveMode() {
		case output.ModeJSON:
			return r.JSON(SyncOutput{Committed: true, Hash: result.Hash, Message: message})
		case output.ModeMarkdown:
			return syncMarkdown(r, result.Hash, message, "", "", "")
		default:
			r.Muted("Push skipped (--no-push)")
			return nil
		}
	}

	// Push
	branch, err := resolveBranch(ctx, repo, cfg)
	if err != nil {
		return err
	}

	var spinner *output.Spinner
	if r.EffectiveMode() == output.ModeText {
		spinner = r.NewSpinner("Pushing " + branch + " to " + cfg.Remote + "...")
		spinner.Start()
	}

	pushMsg, err := repo.Push(ctx, cfg.Remote, branch, opts.Force, "")
	if err != nil {
		if spinner != nil {
			spinner.Fail("Push failed")
		}
		return err
	}
	if spinner != nil {
		spinner.Success(pushMsg)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(SyncOutput{
			Committed: true,
			Hash:      result.Hash,
			Pushed:    true,
			Remote:    cfg.Remote,
			Branch:    branch,
			Message:   message,
		})
	case output.ModeMarkdown:
		return syncMarkdown(r, result.Hash, message, cfg.Remote, branch, pushMsg)
	default:
		return nil
	}
}

// syncMarkdown outputs a sync summary in markdown format.
func syncMarkdown(r *output.Renderer, hash, message, remote, branch, pushMsg string) error {
	r.Println(output.FormatHeader(1, "Sync"))
	r.Println("")
	r.Println(output.FormatKeyValue("Commit", hash))
	r.Println(output.FormatKeyValue("Message", firstLine(message)))
	if pushMsg != "" {
		r.Println(output.FormatKeyValue("Pushed", fmt.Sprintf("%s -> %s", branch, remote)))
	} else {
		r.Println(output.FormatKeyValue("Pushed", "no"))
	}
	return nil
}
