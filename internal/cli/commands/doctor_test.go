package commands

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/doltctl/internal/cli/config"
	"github.com/leapstack-labs/doltctl/internal/cli/testutil"
)

func TestDoctorScore(t *testing.T) {
	tests := []struct {
		name     string
		checks   []HealthCheck
		expected int
	}{
		{
			name:     "no checks returns 100",
			checks:   nil,
			expected: 100,
		},
		{
			name: "all passing returns 100",
			checks: []HealthCheck{
				{Name: "server reachable", Status: "pass"},
				{Name: "sql login", Status: "pass"},
			},
			expected: 100,
		},
		{
			name: "warnings reduce score",
			checks: []HealthCheck{
				{Name: "server reachable", Status: "pass"},
				{Name: "remotes", Status: "warn"},
			},
			expected: 90,
		},
		{
			name: "errors reduce score more",
			checks: []HealthCheck{
				{Name: "server reachable", Status: "error"},
			},
			expected: 75,
		},
		{
			name: "score does not go below zero",
			checks: []HealthCheck{
				{Name: "database selected", Status: "error"},
				{Name: "server reachable", Status: "error"},
				{Name: "sql login", Status: "error"},
				{Name: "dolt system tables", Status: "error"},
				{Name: "remotes", Status: "error"},
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &DoctorOutput{HealthChecks: tt.checks}
			out.finish()
			assert.Equal(t, tt.expected, out.Score)
		})
	}
}

func TestDoctorRecommendations(t *testing.T) {
	out := &DoctorOutput{
		HealthChecks: []HealthCheck{
			{Name: "server reachable", Status: "error"},
			{Name: "remotes", Status: "warn"},
		},
	}
	out.finish()

	// Only errors produce recommendations; warns just lower the score.
	require.Len(t, out.Recommendations, 1)
	assert.Contains(t, out.Recommendations[0], "dolt sql-server")
}

func TestRecommendationFor(t *testing.T) {
	tests := []struct {
		checkName string
		expected  bool // whether a recommendation is returned
	}{
		{"database selected", true},
		{"server reachable", true},
		{"sql login", true},
		{"dolt system tables", true},
		{"remotes", true},
		{"working set", false},
		{"unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.checkName, func(t *testing.T) {
			rec := recommendationFor(tt.checkName)
			if tt.expected {
				assert.NotEmpty(t, rec, "expected recommendation for %s", tt.checkName)
			} else {
				assert.Empty(t, rec, "expected no recommendation for %s", tt.checkName)
			}
		})
	}
}

func TestBuildDoctorOutput_NoDatabaseSelected(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	cmdCtx := &CommandContext{
		Cfg: &config.Config{
			Database: config.DatabaseConfig{Host: "127.0.0.1", Port: 3306},
		},
		Logger: config.GetLogger(context.Background()),
	}

	out := buildDoctorOutput(cmd, cmdCtx)

	// The run stops before any connectivity checks.
	var names []string
	for _, c := range out.HealthChecks {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "database selected")
	assert.NotContains(t, names, "server reachable")

	var dbCheck HealthCheck
	for _, c := range out.HealthChecks {
		if c.Name == "database selected" {
			dbCheck = c
		}
	}
	assert.Equal(t, "error", dbCheck.Status)
	assert.Less(t, out.Score, 100)
	require.NotEmpty(t, out.Recommendations)
	assert.Contains(t, out.Recommendations[0], "--database")
}

func testDoctorOutput() *DoctorOutput {
	out := &DoctorOutput{
		Summary: ServerSummary{
			Host:     "127.0.0.1",
			Port:     3306,
			Database: "inventory",
			Branch:   "main",
			Remotes:  1,
		},
		HealthChecks: []HealthCheck{
			{Name: "config file", Group: "configuration", Status: "pass", Details: []string{"doltctl.yaml"}},
			{Name: "server reachable", Group: "connectivity", Status: "pass", Details: []string{"127.0.0.1:3306"}},
			{Name: "remotes", Group: "versioning", Status: "error", Details: []string{"no remotes configured"}},
		},
	}
	out.finish()
	return out
}

func TestRenderDoctorText(t *testing.T) {
	tr := testutil.NewTestRendererText()

	err := renderDoctorText(tr.Renderer, testDoctorOutput())
	require.NoError(t, err)

	out := tr.Output()
	assert.Contains(t, out, "doltctl Health Report")
	assert.Contains(t, out, "127.0.0.1:3306")
	assert.Contains(t, out, "inventory")
	assert.Contains(t, out, "Configuration")
	assert.Contains(t, out, "Connectivity")
	assert.Contains(t, out, "server reachable")
	assert.Contains(t, out, "Health Score:")
	assert.Contains(t, out, "75/100")
	assert.Contains(t, out, "1. Add a remote")
}

func TestRenderDoctorMarkdown(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()

	err := renderDoctorMarkdown(tr.Renderer, testDoctorOutput())
	require.NoError(t, err)

	out := tr.Output()
	assert.Contains(t, out, "# doltctl Health Report")
	assert.Contains(t, out, "## Server")
	assert.Contains(t, out, "- **Branch**: main")
	assert.Contains(t, out, "- **[PASS]** server reachable")
	assert.Contains(t, out, "- **[ERROR]** remotes")
	assert.Contains(t, out, "**75/100**")
	assert.Contains(t, out, "## Recommendations")

	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
}
