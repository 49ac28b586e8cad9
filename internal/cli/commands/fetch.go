package commands

import (
	"github.com/leapstack-labs/doltctl/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewFetchCommand creates the fetch command.
func NewFetchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch refs from a remote",
		Long:  `Update remote tracking refs from the configured remote without merging.`,
		Example: `  # Fetch from origin
  doltctl fetch

  # Fetch from a specific remote
  doltctl fetch --remote upstream`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd)
		},
	}

	return cmd
}

// FetchOutput is the JSON representation of a fetch result.
type FetchOutput struct {
	Remote  string `json:"remote"`
	Message string `json:"message"`
}

func runFetch(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	remote := cmdCtx.Cfg.Remote
	msg, err := cmdCtx.Repo.Fetch(cmd.Context(), remote)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(FetchOutput{Remote: remote, Message: msg})
	}
	r.Success(msg)
	return nil
}
