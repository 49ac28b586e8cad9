package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name     string
		setupDir func(t *testing.T, dir string) // setup before running
		force    bool
		wantErr  bool
	}{
		{
			name:    "init empty directory",
			wantErr: false,
		},
		{
			name: "init existing config without force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "doltctl.yaml"), []byte("existing"), 0600)
			},
			wantErr: true,
		},
		{
			name: "init existing config with force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "doltctl.yaml"), []byte("existing"), 0600)
			},
			force:   true,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()

			// Run setup if provided
			if tt.setupDir != nil {
				tt.setupDir(t, tmpDir)
			}

			cmd := NewInitCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			args := []string{tmpDir}
			if tt.force {
				args = append(args, "--force")
			}
			cmd.SetArgs(args)

			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			_, err = os.Stat(filepath.Join(tmpDir, "doltctl.yaml"))
			assert.False(t, os.IsNotExist(err), "expected doltctl.yaml to exist")
		})
	}
}

func TestInitCreatesMissingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "new-project")

	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{target})

	require.NoError(t, cmd.Execute())

	_, err := os.Stat(filepath.Join(target, "doltctl.yaml"))
	assert.NoError(t, err)
}

func TestInitCommandMetadata(t *testing.T) {
	cmd := NewInitCommand()

	assert.Equal(t, "init [directory]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("force"), "--force flag should exist")
}

func TestInitCreatesValidConfig(t *testing.T) {
	tmpDir := t.TempDir()

	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{tmpDir})

	require.NoError(t, cmd.Execute())

	// Read and verify config content
	content, err := os.ReadFile(filepath.Join(tmpDir, "doltctl.yaml"))
	require.NoError(t, err, "failed to read doltctl.yaml")

	expectedContents := []string{
		"database:",
		"host: 127.0.0.1",
		"port: 3306",
		"remote: origin",
		"ui:",
		"output: auto",
	}

	for _, expected := range expectedContents {
		assert.Contains(t, string(content), expected, "config should contain %q", expected)
	}
}
