package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display doltctl version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "doltctl v%s\n", version)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Dolt version control over SQL")
			if gitCommit != "unknown" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Built %s from %s\n", buildDate, gitCommit)
			}
		},
	}
}
