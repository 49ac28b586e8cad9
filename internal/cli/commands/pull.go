package commands

import (
	"fmt"

	"github.com/leapstack-labs/doltctl/internal/cli/output"
	"github.com/spf13/cobra"
)

// PullOptions holds options for the pull command.
type PullOptions struct {
	FetchOnly bool
}

// NewPullCommand creates the pull command.
func NewPullCommand() *cobra.Command {
	opts := &PullOptions{}

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Pull changes from a remote",
		Long: `Fetch and merge changes from the configured remote into the active
branch. With --fetch-only, remote tracking refs are updated but nothing
is merged.

Merge conflicts do not abort the command; the number of conflicting
tables is reported so they can be resolved through SQL.`,
		Example: `  # Pull the active branch from origin
  doltctl pull

  # Update tracking refs without merging
  doltctl pull --fetch-only

  # Pull a specific branch from a specific remote
  doltctl pull --remote upstream --branch main`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPull(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.FetchOnly, "fetch-only", false, "Fetch remote refs without merging")

	return cmd
}

// PullOutput is the JSON representation of a pull result.
type PullOutput struct {
	Remote      string `json:"remote"`
	Branch      string `json:"branch,omitempty"`
	FastForward bool   `json:"fast_forward"`
	Conflicts   int    `json:"conflicts"`
	Message     string `json:"message"`
	LatestHash  string `json:"latest_hash,omitempty"`
}

func runPull(cmd *cobra.Command, opts *PullOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	repo := cmdCtx.Repo
	r := cmdCtx.Renderer
	remote := cmdCtx.Cfg.Remote

	if opts.FetchOnly {
		msg, err := repo.Fetch(ctx, remote)
		if err != nil {
			return err
		}
		if r.EffectiveMode() == output.ModeJSON {
			return r.JSON(PullOutput{Remote: remote, Message: msg})
		}
		r.Success(msg)
		return nil
	}

	// Show spinner for TTY mode
	var spinner *output.Spinner
	if r.EffectiveMode() == output.ModeText {
		spinner = r.NewSpinner("Pulling from " + remote + "...")
		spinner.Start()
	}

	result, err := repo.Pull(ctx, remote, cmdCtx.Cfg.Branch)
	if err != nil {
		if spinner != nil {
			spinner.Fail("Pull failed")
		}
		return err
	}

	if spinner != nil {
		if result.Conflicts > 0 {
			spinner.Fail(result.Message)
		} else {
			spinner.Success(result.Message)
		}
	}

	// The head may have moved; show where it is now.
	var latestHash string
	if commits, err := repo.Log(ctx, 1); err == nil && len(commits) > 0 {
		latestHash = commits[0].Hash
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(PullOutput{
			Remote:      remote,
			Branch:      cmdCtx.Cfg.Branch,
			FastForward: result.FastForward,
			Conflicts:   result.Conflicts,
			Message:     result.Message,
			LatestHash:  latestHash,
		})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Pull"))
		r.Println("")
		r.Println(result.Message)
		if latestHash != "" {
			r.Println("")
			r.Println(output.FormatKeyValue("HEAD", latestHash))
		}
		return nil
	default:
		if result.Conflicts > 0 {
			r.Warning(fmt.Sprintf("Resolve the %d conflicted tables before committing", result.Conflicts))
		}
		if latestHash != "" {
			r.Muted("HEAD is now at " + shortHash(latestHash))
		}
		return nil
	}
}
