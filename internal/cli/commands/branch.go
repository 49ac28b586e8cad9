package commands

import (
	"fmt"
	"time"

	"github.com/leapstack-labs/doltctl/internal/cli/output"
	"github.com/leapstack-labs/doltctl/internal/dolt"
	"github.com/spf13/cobra"
)

// NewBranchCommand creates the branch command.
func NewBranchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branch",
		Short: "List branches",
		Long: `List all branches known to the server. The active branch is marked
with an asterisk.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List branches
  doltctl branch

  # Branches as JSON
  doltctl branch --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBranch(cmd)
		},
	}

	return cmd
}

// BranchesOutput is the JSON representation of the branch list.
type BranchesOutput struct {
	Current  string       `json:"current"`
	Branches []BranchJSON `json:"branches"`
}

// BranchJSON describes one branch.
type BranchJSON struct {
	Name          string `json:"name"`
	Hash          string `json:"hash"`
	Current       bool   `json:"current"`
	LatestMessage string `json:"latest_message"`
	LatestDate    string `json:"latest_date"`
}

func runBranch(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	current, err := cmdCtx.Repo.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	branches, err := cmdCtx.Repo.Branches(ctx)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		out := BranchesOutput{Current: current, Branches: make([]BranchJSON, 0, len(branches))}
		for _, b := range branches {
			out.Branches = append(out.Branches, BranchJSON{
				Name:          b.Name,
				Hash:          b.Hash,
				Current:       b.Name == current,
				LatestMessage: b.LatestMessage,
				LatestDate:    b.LatestCommitDate.Format(time.RFC3339),
			})
		}
		return r.JSON(out)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("Branches (%d)", len(branches))))
		r.Println("")
		for _, b := range branches {
			marker := ""
			if b.Name == current {
				marker = " (current)"
			}
			r.Printf("- **%s**%s %s %s\n", b.Name, marker, shortHash(b.Hash), firstLine(b.LatestMessage))
		}
		return nil
	default:
		return branchText(r, current, branches)
	}
}

// branchText outputs branches in styled text format.
func branchText(r *output.Renderer, current string, branches []dolt.BranchInfo) error {
	styles := r.Styles()
	for _, b := range branches {
		line := fmt.Sprintf("%-20s %s  %s", b.Name, shortHash(b.Hash), firstLine(b.LatestMessage))
		if b.Name == current {
			r.Printf("* %s\n", styles.Success.Render(line))
		} else {
			r.Printf("  %s\n", line)
		}
	}
	return nil
}

// shortHash abbreviates a commit hash for display.
func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
