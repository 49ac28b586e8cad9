package views

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tableChange struct {
	TableName string
	Staged    bool
	Status    string
}

type branchRow struct {
	Name             string
	Hash             string
	LatestCommitter  string
	LatestMessage    string
	LatestCommitDate time.Time
	Current          bool
}

func TestRender_Overview(t *testing.T) {
	data := struct {
		Branch      string
		Database    string
		RemoteCount int
		WorkingSet  []tableChange
		Branches    []branchRow
	}{
		Branch:      "main",
		Database:    "orders",
		RemoteCount: 1,
		WorkingSet: []tableChange{
			{TableName: "users", Staged: true, Status: "modified"},
			{TableName: "events", Staged: false, Status: "new table"},
		},
		Branches: []branchRow{
			{Name: "main", Hash: "abcdef1234567890", LatestCommitter: "ana", LatestMessage: "first\nbody", Current: true},
			{Name: "feature", Hash: "1234567890abcdef", LatestCommitter: "bo"},
		},
	}

	var buf bytes.Buffer
	err := Render(&buf, "overview", Page{
		Title:    "Overview",
		Active:   "overview",
		Database: "orders",
		Data:     data,
	})
	require.NoError(t, err)

	body := buf.String()
	assert.Contains(t, body, "<!doctype html>")
	assert.Contains(t, body, "<title>Overview - doltctl</title>")
	assert.Contains(t, body, `id="repo-status"`)
	assert.Contains(t, body, "<code>users</code>")
	assert.Contains(t, body, "badge-staged")
	assert.Contains(t, body, "abcdef12")
	assert.NotContains(t, body, "abcdef1234567890", "hashes should be abbreviated")
	assert.Contains(t, body, "first")
	assert.NotContains(t, body, "body</td>", "commit messages should collapse to their first line")
	assert.Contains(t, body, `@get('/updates')`)
}

func TestRender_Overview_CleanWorkingSet(t *testing.T) {
	data := struct {
		Branch      string
		Database    string
		RemoteCount int
		WorkingSet  []tableChange
		Branches    []branchRow
	}{Branch: "main", Database: "orders"}

	var buf bytes.Buffer
	err := Render(&buf, "overview", Page{Title: "Overview", Active: "overview", Data: data})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Working set clean, nothing to commit.")
}

func TestRender_History(t *testing.T) {
	data := struct {
		Commits []struct {
			Hash      string
			Committer string
			Date      time.Time
			Message   string
		}
	}{
		Commits: []struct {
			Hash      string
			Committer string
			Date      time.Time
			Message   string
		}{
			{Hash: "deadbeefcafe0123", Committer: "ana", Date: time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC), Message: "seed tables"},
		},
	}

	var buf bytes.Buffer
	err := Render(&buf, "history", Page{Title: "History", Active: "history", Data: data})
	require.NoError(t, err)

	body := buf.String()
	assert.Contains(t, body, "deadbeef")
	assert.Contains(t, body, "seed tables")
	assert.Contains(t, body, "2025-06-01 10:30")
}

func TestRender_Remotes(t *testing.T) {
	data := struct {
		Remotes []struct{ Name, URL string }
	}{
		Remotes: []struct{ Name, URL string }{
			{Name: "origin", URL: "https://doltremoteapi.dolthub.com/acme/orders"},
		},
	}

	var buf bytes.Buffer
	err := Render(&buf, "remotes", Page{Title: "Remotes", Active: "remotes", Data: data})
	require.NoError(t, err)

	body := buf.String()
	assert.Contains(t, body, "<code>origin</code>")
	assert.Contains(t, body, `action="/remotes/pull"`)
	assert.Contains(t, body, `name="fetch_only"`)
}

func TestRender_Flash(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, "history", Page{
		Title:  "History",
		Active: "history",
		Flash:  &Flash{Kind: "error", Text: "merge conflict in 2 tables"},
		Data:   struct{ Commits []struct{} }{},
	})
	require.NoError(t, err)

	body := buf.String()
	assert.Contains(t, body, "flash-error")
	assert.Contains(t, body, "merge conflict in 2 tables")
}

func TestRender_DevReloadProbe(t *testing.T) {
	data := struct{ Commits []struct{} }{}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "history", Page{Title: "History", Dev: true, Data: data}))
	assert.Contains(t, buf.String(), `@get('/reload')`)

	buf.Reset()
	require.NoError(t, Render(&buf, "history", Page{Title: "History", Data: data}))
	assert.NotContains(t, buf.String(), `@get('/reload')`)
}

func TestRender_UnknownPage(t *testing.T) {
	err := Render(&bytes.Buffer{}, "nope", Page{})
	assert.ErrorContains(t, err, "unknown page")
}

func TestFragment_RepoStatus(t *testing.T) {
	data := struct {
		Branch      string
		Database    string
		RemoteCount int
		WorkingSet  []tableChange
		Branches    []branchRow
	}{
		WorkingSet: []tableChange{{TableName: "users", Staged: true, Status: "modified"}},
	}

	frag, err := Fragment("overview", "repo-status", data)
	require.NoError(t, err)

	assert.Contains(t, frag, `id="repo-status"`)
	assert.Contains(t, frag, "<code>users</code>")
	assert.NotContains(t, frag, "<!doctype html>", "fragment should not include the layout")
}
