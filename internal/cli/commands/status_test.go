package commands

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/doltctl/internal/cli/testutil"
	"github.com/leapstack-labs/doltctl/internal/dolt"
)

func TestStatusText_Clean(t *testing.T) {
	tr := testutil.NewTestRendererText()

	err := statusText(tr.Renderer, statusView{Branch: "main"})
	require.NoError(t, err)

	out := tr.Output()
	assert.Contains(t, out, "On branch")
	assert.Contains(t, out, "main")
	assert.Contains(t, out, "Working set clean, nothing to commit")
}

func TestStatusText_Changes(t *testing.T) {
	tr := testutil.NewTestRendererText()

	v := statusView{
		Branch: "main",
		Staged: []dolt.StatusEntry{
			{TableName: "users", Staged: true, Status: "modified"},
		},
		Unstaged: []dolt.StatusEntry{
			{TableName: "orders", Staged: false, Status: "new table"},
		},
	}

	err := statusText(tr.Renderer, v)
	require.NoError(t, err)

	out := tr.Output()
	assert.Contains(t, out, "Changes staged for commit:")
	assert.Contains(t, out, "users (modified)")
	assert.Contains(t, out, "Changes not staged for commit:")
	assert.Contains(t, out, "orders (new table)")
	assert.Contains(t, out, `use "doltctl sync"`)
	assert.NotContains(t, out, "Working set clean")
}

func TestStatusText_IgnoredPatterns(t *testing.T) {
	tr := testutil.NewTestRendererText()

	v := statusView{
		Branch:  "main",
		Ignored: []string{"tmp_%", "django_session"},
	}

	err := statusText(tr.Renderer, v)
	require.NoError(t, err)

	out := tr.Output()
	assert.Contains(t, out, "Working set clean")
	assert.Contains(t, out, "Ignored patterns: tmp_%, django_session")
}

func TestStatusText_RecentCommits(t *testing.T) {
	tr := testutil.NewTestRendererText()

	v := statusView{
		Branch: "main",
		Commits: []dolt.CommitInfo{
			{
				Hash:      "abcdef1234567890",
				Committer: "alice",
				Date:      time.Date(2026, 3, 1, 15, 4, 0, 0, time.UTC),
				Message:   "Load March inventory\n\nDetails.",
			},
			{
				Hash:      "0123456789abcdef",
				Committer: "bob",
				Date:      time.Date(2026, 2, 28, 9, 30, 0, 0, time.UTC),
				Message:   "Initial load",
			},
		},
	}

	err := statusText(tr.Renderer, v)
	require.NoError(t, err)

	out := tr.Output()
	assert.Contains(t, out, "Recent commits (last 2):")
	assert.Contains(t, out, "abcdef12")
	assert.NotContains(t, out, "abcdef1234567890", "commit hashes should be abbreviated to 8 chars")
	assert.Contains(t, out, "Load March inventory")
	assert.NotContains(t, out, "Details.", "only the first message line should show")
	assert.Contains(t, out, "01234567")
}

func TestStatusMarkdown(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()

	v := statusView{
		Branch: "feature",
		Staged: []dolt.StatusEntry{
			{TableName: "users", Staged: true, Status: "modified"},
			{TableName: "events", Staged: true, Status: "new table"},
		},
		Ignored: []string{"tmp_%"},
		Commits: []dolt.CommitInfo{
			{Hash: "abcdef1234567890", Committer: "alice", Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Message: "Load March inventory"},
		},
	}

	err := statusMarkdown(tr.Renderer, v)
	require.NoError(t, err)

	out := tr.Output()
	assert.Contains(t, out, "# Status")
	assert.Contains(t, out, "- **Branch**: feature")
	assert.Contains(t, out, "- **Staged**: 2")
	assert.Contains(t, out, "- **Unstaged**: 0")
	assert.Contains(t, out, "- **Ignored patterns**: tmp_%")
	assert.Contains(t, out, "## Staged tables")
	assert.Contains(t, out, "- users (modified)")
	assert.NotContains(t, out, "## Unstaged tables")
	assert.Contains(t, out, "## Recent commits")
	assert.Contains(t, out, "**abcdef12** Load March inventory")

	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
}

func TestStatusMarkdown_Clean(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()

	err := statusMarkdown(tr.Renderer, statusView{Branch: "main"})
	require.NoError(t, err)

	out := tr.Output()
	assert.Contains(t, out, "Working set clean, nothing to commit.")
}

func TestStatusJSON(t *testing.T) {
	tr := testutil.NewTestRendererJSON()

	v := statusView{
		Branch: "main",
		Staged: []dolt.StatusEntry{
			{TableName: "users", Staged: true, Status: "modified"},
		},
		Unstaged: []dolt.StatusEntry{
			{TableName: "orders", Staged: false, Status: "deleted"},
		},
		Ignored: []string{"tmp_%"},
		Commits: []dolt.CommitInfo{
			{Hash: "abcdef1234567890", Committer: "alice", Email: "a@b", Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Message: "Load"},
		},
	}

	err := statusJSON(tr.Renderer, v)
	require.NoError(t, err)

	var out StatusOutput
	require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &out))

	assert.Equal(t, "main", out.Branch)
	assert.False(t, out.Clean)
	require.Len(t, out.Staged, 1)
	assert.Equal(t, "users", out.Staged[0].Table)
	assert.Equal(t, "modified", out.Staged[0].Status)
	require.Len(t, out.Unstaged, 1)
	assert.Equal(t, "orders", out.Unstaged[0].Table)
	assert.Equal(t, []string{"tmp_%"}, out.Ignored)
	require.Len(t, out.Commits, 1)
	assert.Equal(t, "abcdef12", out.Commits[0].ShortHash)
}

func TestStatusJSON_Clean(t *testing.T) {
	tr := testutil.NewTestRendererJSON()

	err := statusJSON(tr.Renderer, statusView{Branch: "main"})
	require.NoError(t, err)

	var out StatusOutput
	require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &out))

	assert.True(t, out.Clean)
	assert.Empty(t, out.Staged)
	assert.Empty(t, out.Unstaged)
	assert.Empty(t, out.Commits)
}
