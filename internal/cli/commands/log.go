package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/leapstack-labs/doltctl/internal/cli/output"
	"github.com/leapstack-labs/doltctl/internal/dolt"
	"github.com/spf13/cobra"
)

// LogOptions holds options for the log command.
type LogOptions struct {
	Limit int
}

// NewLogCommand creates the log command.
func NewLogCommand() *cobra.Command {
	opts := &LogOptions{}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the commit history",
		Long: `Show the commit history of the active branch, newest first.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # Show the last 10 commits
  doltctl log

  # Show the last 3 commits
  doltctl log -n 3

  # Commit history as JSON
  doltctl log --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLog(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "Number of commits to show")

	return cmd
}

// LogOutput is the JSON representation of the commit history.
type LogOutput struct {
	Commits []CommitJSON `json:"commits"`
}

// CommitJSON describes one commit.
type CommitJSON struct {
	Hash      string `json:"hash"`
	ShortHash string `json:"short_hash"`
	Committer string `json:"committer"`
	Email     string `json:"email"`
	Date      string `json:"date"`
	Message   string `json:"message"`
}

func runLog(cmd *cobra.Command, opts *LogOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	commits, err := cmdCtx.Repo.Log(cmd.Context(), opts.Limit)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return logJSON(r, commits)
	case output.ModeMarkdown:
		return logMarkdown(r, commits)
	default:
		return logText(r, commits)
	}
}

// logText outputs commits in styled text format.
func logText(r *output.Renderer, commits []dolt.CommitInfo) error {
	if len(commits) == 0 {
		r.Muted("No commits yet")
		return nil
	}

	styles := r.Styles()
	for i, c := range commits {
		if i > 0 {
			r.Println("")
		}
		r.Printf("commit %s\n", styles.Warning.Render(c.Hash))
		r.Printf("Author: %s <%s>\n", c.Committer, c.Email)
		r.Printf("Date:   %s\n", c.Date.Format(time.RFC1123))
		r.Println("")
		for _, line := range strings.Split(strings.TrimRight(c.Message, "\n"), "\n") {
			r.Printf("    %s\n", line)
		}
	}

	return nil
}

// logMarkdown outputs commits in markdown format.
func logMarkdown(r *output.Renderer, commits []dolt.CommitInfo) error {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Commit Log (%d commits)", len(commits))))
	r.Println("")

	if len(commits) == 0 {
		r.Println("No commits yet.")
		return nil
	}

	for _, c := range commits {
		r.Printf("- **%s** %s (%s, %s)\n",
			c.ShortHash(), firstLine(c.Message), c.Committer, c.Date.Format("2006-01-02"))
	}

	return nil
}

// logJSON outputs commits in JSON format.
func logJSON(r *output.Renderer, commits []dolt.CommitInfo) error {
	out := LogOutput{Commits: make([]CommitJSON, 0, len(commits))}
	for _, c := range commits {
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

// firstLine returns the first line of a commit message.
func firstLine(msg string) string {
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return msg[:i]
	}
	return msg
}
