package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/leapstack-labs/doltctl/internal/cli/output"
	"github.com/leapstack-labs/doltctl/internal/dolt"
	"github.com/spf13/cobra"
)

// StatusOptions holds options for the status command.
type StatusOptions struct {
	All bool
	Log int
}

// NewStatusCommand creates the status command.
func NewStatusCommand() *cobra.Command {
	opts := &StatusOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the working set status",
		Long: `Show which tables have staged or unstaged changes in the working set.

Tables matching a dolt_ignore pattern are hidden unless --all is given;
the active ignore patterns are listed either way. With --log N the last
N commits are appended.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # Show the working set status
  doltctl status

  # Include tables matching dolt_ignore patterns
  doltctl status --all

  # Append the five most recent commits
  doltctl status --log 5

  # Status as JSON
  doltctl status --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "Include tables matching dolt_ignore patterns")
	cmd.Flags().IntVar(&opts.Log, "log", 0, "Append the last N commits")

	return cmd
}

// StatusOutput is the JSON representation of the working set status.
type StatusOutput struct {
	Branch   string        `json:"branch"`
	Clean    bool          `json:"clean"`
	Staged   []TableChange `json:"staged"`
	Unstaged []TableChange `json:"unstaged"`
	Ignored  []string      `json:"ignored_patterns,omitempty"`
	Commits  []CommitJSON  `json:"recent_commits,omitempty"`
}

// TableChange describes one changed table.
type TableChange struct {
	Table  string `json:"table"`
	Status string `json:"status"`
}

// statusView carries everything the status renderers show.
type statusView struct {
	Branch   string
	Staged   []dolt.StatusEntry
	Unstaged []dolt.StatusEntry
	Ignored  []string
	Commits  []dolt.CommitInfo
}

func runStatus(cmd *cobra.Command, opts *StatusOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	repo := cmdCtx.Repo
	r := cmdCtx.Renderer

	branch, err := repo.CurrentBranch(ctx)
	if err != nil {
		return err
	}

	entries, err := repo.Status(ctx, !opts.All)
	if err != nil {
		return err
	}

	v := statusView{Branch: branch}
	for _, e := range entries {
		if e.Staged {
			v.Staged = append(v.Staged, e)
		} else {
			v.Unstaged = append(v.Unstaged, e)
		}
	}

	v.Ignored, err = repo.IgnoredTables(ctx)
	if err != nil {
		return err
	}

	if opts.Log > 0 {
		v.Commits, err = repo.Log(ctx, opts.Log)
		if err != nil {
			return err
		}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return statusJSON(r, v)
	case output.ModeMarkdown:
		return statusMarkdown(r, v)
	default:
		return statusText(r, v)
	}
}

// statusText outputs the working set in styled text format.
func statusText(r *output.Renderer, v statusView) error {
	styles := r.Styles()
	r.Printf("On branch %s\n", styles.Bold.Render(v.Branch))

	clean := len(v.Staged) == 0 && len(v.Unstaged) == 0
	if clean {
		r.Println("")
		r.Muted("Working set clean, nothing to commit")
	}

	if len(v.Staged) > 0 {
		r.Println("")
		r.Println("Changes staged for commit:")
		for _, e := range v.Staged {
			r.Printf("  %s %s (%s)\n", styles.StatusSuccess.String(), e.TableName, e.Status)
		}
	}

	if len(v.Unstaged) > 0 {
		r.Println("")
		r.Println("Changes not staged for commit:")
		for _, e := range v.Unstaged {
			r.Printf("    %s (%s)\n", e.TableName, e.Status)
		}
	}

	if len(v.Ignored) > 0 {
		r.Println("")
		r.Muted("Ignored patterns: " + strings.Join(v.Ignored, ", "))
	}

	if len(v.Commits) > 0 {
		r.Println("")
		r.Printf("Recent commits (last %d):\n", len(v.Commits))
		for _, c := range v.Commits {
			r.Printf("  %s %s - %s\n",
				styles.Warning.Render(c.ShortHash()), c.Date.Format("2006-01-02 15:04"), firstLine(c.Message))
		}
	}

	if !clean {
		r.Println("")
		r.Muted(`(use "doltctl sync" to stage, commit and push everything)`)
	}

	return nil
}

// statusMarkdown outputs the working set in markdown format.
func statusMarkdown(r *output.Renderer, v statusView) error {
	r.Println(output.FormatHeader(1, "Status"))
	r.Println("")
	r.Println(output.FormatKeyValue("Branch", v.Branch))
	r.Println(output.FormatKeyValue("Staged", fmt.Sprintf("%d", len(v.Staged))))
	r.Println(output.FormatKeyValue("Unstaged", fmt.Sprintf("%d", len(v.Unstaged))))
	if len(v.Ignored) > 0 {
		r.Println(output.FormatKeyValue("Ignored patterns", strings.Join(v.Ignored, ", ")))
	}

	if len(v.Staged) == 0 && len(v.Unstaged) == 0 {
		r.Println("")
		r.Println("Working set clean, nothing to commit.")
	}

	if len(v.Staged) > 0 {
		r.Println("")
		r.Println(output.FormatHeader(2, "Staged tables"))
		for _, e := range v.Staged {
			r.Printf("- %s (%s)\n", e.TableName, e.Status)
		}
	}

	if len(v.Unstaged) > 0 {
		r.Println("")
		r.Println(output.FormatHeader(2, "Unstaged tables"))
		for _, e := range v.Unstaged {
			r.Printf("- %s (%s)\n", e.TableName, e.Status)
		}
	}

	if len(v.Commits) > 0 {
		r.Println("")
		r.Println(output.FormatHeader(2, "Recent commits"))
		for _, c := range v.Commits {
			r.Printf("- **%s** %s (%s, %s)\n",
				c.ShortHash(), firstLine(c.Message), c.Committer, c.Date.Format("2006-01-02"))
		}
	}

	return nil
}

// statusJSON outputs the working set in JSON format.
func statusJSON(r *output.Renderer, v statusView) error {
	out := StatusOutput{
		Branch:   v.Branch,
		Clean:    len(v.Staged) == 0 && len(v.Unstaged) == 0,
		Staged:   make([]TableChange, 0, len(v.Staged)),
		Unstaged: make([]TableChange, 0, len(v.Unstaged)),
		Ignored:  v.Ignored,
	}
	for _, e := range v.Staged {
		out.Staged = append(out.Staged, TableChange{Table: e.TableName, Status: e.Status})
	}
	for _, e := range v.Unstaged {
		out.Unstaged = append(out.Unstaged, TableChange{Table: e.TableName, Status: e.Status})
	}
	for _, c := range v.Commits {
		out.Commits = append(out.Commits, CommitJSON{
			Hash:      c.Hash,
			ShortHash: c.ShortHash(),
			Committer: c.Committer,
			Email:     c.Email,
			Date:      c.Date.Format(time.RFC3339),
			Message:   c.Message,
		})
	}
	return r.JSON(out)
}
