package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		buildDate string
		gitCommit string
		wantOut   []string
		notOut    []string
	}{
		{
			name:      "default version",
			version:   "0.1.0",
			buildDate: "unknown",
			gitCommit: "unknown",
			wantOut:   []string{"doltctl v0.1.0", "Dolt version control over SQL"},
			notOut:    []string{"Built"},
		},
		{
			name:      "release build",
			version:   "1.2.3",
			buildDate: "2026-08-01",
			gitCommit: "abc1234",
			wantOut:   []string{"doltctl v1.2.3", "Built 2026-08-01 from abc1234"},
		},
		{
			name:      "dev version",
			version:   "dev",
			buildDate: "unknown",
			gitCommit: "unknown",
			wantOut:   []string{"doltctl vdev"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewVersionCommand(tt.version, tt.buildDate, tt.gitCommit)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)

			if err := cmd.Execute(); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			output := buf.String()
			for _, want := range tt.wantOut {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
			for _, not := range tt.notOut {
				if strings.Contains(output, not) {
					t.Errorf("output should not contain %q, got: %s", not, output)
				}
			}
		})
	}
}

func TestVersionCommandMetadata(t *testing.T) {
	cmd := NewVersionCommand("test", "unknown", "unknown")

	if cmd.Use != "version" {
		t.Errorf("Use = %q, want %q", cmd.Use, "version")
	}

	if cmd.Short == "" {
		t.Error("Short should not be empty")
	}

	if cmd.Long == "" {
		t.Error("Long should not be empty")
	}
}
