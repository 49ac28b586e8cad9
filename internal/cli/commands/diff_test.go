package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDiff_SummaryWithTableRejected(t *testing.T) {
	cmd := &cobra.Command{}
	opts := &DiffOptions{Summary: true}

	err := runDiff(cmd, opts, "users")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot combine --summary with a table")
	assert.Contains(t, err.Error(), "doltctl diff users")
}
