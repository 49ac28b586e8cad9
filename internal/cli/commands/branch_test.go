package commands

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/doltctl/internal/cli/testutil"
	"github.com/leapstack-labs/doltctl/internal/dolt"
)

func TestBranchText(t *testing.T) {
	tr := testutil.NewTestRendererText()

	branches := []dolt.BranchInfo{
		{
			Name:             "main",
			Hash:             "abcdef1234567890",
			LatestCommitDate: time.Date(2025, 6, 2, 9, 15, 0, 0, time.UTC),
			LatestMessage:    "Adjust inventory counts",
		},
		{
			Name:             "feature",
			Hash:             "1234567890abcdef",
			LatestCommitDate: time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
			LatestMessage:    "Start price experiment\n\nDetails inside.",
		},
	}

	err := branchText(tr.Renderer, "main", branches)
	require.NoError(t, err)

	out := tr.Output()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)

	// Active branch carries the asterisk marker.
	assert.True(t, strings.HasPrefix(lines[0], "* "), "active branch line should start with *: %q", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  "), "other branches are indented: %q", lines[1])

	assert.Contains(t, out, "abcdef12")
	assert.Contains(t, out, "feature")
	// Subject line only.
	assert.Contains(t, out, "Start price experiment")
	assert.NotContains(t, out, "Details inside")
}

func TestShortHash(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"abcdef1234567890", "abcdef12"},
		{"abc123", "abc123"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, shortHash(tt.input))
	}
}
