package commands

import (
	"github.com/leapstack-labs/doltctl/internal/cli/output"
	"github.com/spf13/cobra"
)

// PushOptions holds options for the push command.
type PushOptions struct {
	Force bool
	User  string
}

// NewPushCommand creates the push command.
func NewPushCommand() *cobra.Command {
	opts := &PushOptions{}

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push local commits to a remote",
		Long: `Push the local branch head to the configured remote.

Authenticated remotes such as DoltHub need remote API credentials. Pass
--user or set DOLT_REMOTE_USER, and set DOLT_REMOTE_PASSWORD on the
server environment.`,
		Example: `  # Push the active branch to origin
  doltctl push

  # Force push a specific branch
  doltctl push --branch feature --force

  # Push with a remote API user
  doltctl push --user ci-bot`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPush(cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Force push, overwriting the remote branch")
	cmd.Flags().StringVar(&opts.User, "user", "", "Remote API user (default: $DOLT_REMOTE_USER)")

	return cmd
}

// PushOutput is the JSON representation of a push result.
type PushOutput struct {
	Remote  string `json:"remote"`
	Branch  string `json:"branch"`
	Forced  bool   `json:"forced"`
	Message string `json:"message"`
}

func runPush(cmd *cobra.Command, opts *PushOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	repo := cmdCtx.Repo
	r := cmdCtx.Renderer

	branch, err := resolveBranch(ctx, repo, cmdCtx.Cfg)
	if err != nil {
		return err
	}

	// Show spinner for TTY mode
	var spinner *output.Spinner
	if r.EffectiveMode() == output.ModeText {
		spinner = r.NewSpinner("Pushing " + branch + " to " + cmdCtx.Cfg.Remote + "...")
		spinner.Start()
	}

	msg, err := repo.Push(ctx, cmdCtx.Cfg.Remote, branch, opts.Force, opts.User)
	if err != nil {
		if spinner != nil {
			spinner.Fail("Push failed")
		}
		return err
	}

	if spinner != nil {
		spinner.Success(msg)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(PushOutput{
			Remote:  cmdCtx.Cfg.Remote,
			Branch:  branch,
			Forced:  opts.Force,
			Message: msg,
		})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Push"))
		r.Println("")
		r.Println(msg)
		return nil
	default:
		// Spinner already reported success on TTY; nothing more to print.
		if spinner == nil {
			r.Success(msg)
		}
		return nil
	}
}
