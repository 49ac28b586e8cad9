package commands

import (
	"fmt"

	"github.com/leapstack-labs/doltctl/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewRemoteCommand creates the remote command and its subcommands.
func NewRemoteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Manage remotes",
		Long: `List the remotes configured on the database, or add a new one.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List remotes
  doltctl remote

  # Add a DoltHub remote
  doltctl remote add origin https://doltremoteapi.dolthub.com/acme/inventory`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRemoteList(cmd)
		},
	}

	cmd.AddCommand(newRemoteAddCommand())

	return cmd
}

func newRemoteAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME URL",
		Short: "Add a remote",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemoteAdd(cmd, args[0], args[1])
		},
	}
}

// RemotesOutput is the JSON representation of the remote list.
type RemotesOutput struct {
	Remotes []RemoteJSON `json:"remotes"`
}

// RemoteJSON describes one remote.
type RemoteJSON struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func runRemoteList(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	remotes, err := cmdCtx.Repo.Remotes(cmd.Context())
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		out := RemotesOutput{Remotes: make([]RemoteJSON, 0, len(remotes))}
		for _, rem := range remotes {
			out.Remotes = append(out.Remotes, RemoteJSON{Name: rem.Name, URL: rem.URL})
		}
		return r.JSON(out)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("Remotes (%d)", len(remotes))))
		r.Println("")
		if len(remotes) == 0 {
			r.Println("No remotes configured.")
			return nil
		}
		for _, rem := range remotes {
			r.Println(output.FormatKeyValue(rem.Name, rem.URL))
		}
		return nil
	default:
		if len(remotes) == 0 {
			r.Muted("No remotes configured")
			r.Muted(`(use "doltctl remote add NAME URL" to add one)`)
			return nil
		}
		styles := r.Styles()
		for _, rem := range remotes {
			r.Printf("%s  %s\n", styles.Bold.Render(fmt.Sprintf("%-12s", rem.Name)), rem.URL)
		}
		return nil
	}
}

func runRemoteAdd(cmd *cobra.Command, name, url string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := cmdCtx.Repo.AddRemote(cmd.Context(), name, url); err != nil {
		return err
	}

	cmdCtx.Renderer.Success(fmt.Sprintf("Added remote %s (%s)", name, url))
	return nil
}
