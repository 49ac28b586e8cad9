package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/doltctl/internal/cli/output"
	"github.com/spf13/cobra"
)

// starterConfig is the doltctl.yaml written by init.
const starterConfig = `# doltctl configuration
# Values can reference environment variables as ${VAR}.

database:
  host: 127.0.0.1
  port: 3306
  user: root
  # password: ${DOLT_PASSWORD}
  name: mydb
  # tls: true

# Version control defaults
remote: origin
# branch: main
author: "doltctl <doltctl@localhost>"

# Admin UI (doltctl ui)
ui:
  host: 127.0.0.1
  port: 8765
  # session_secret: ${DOLTCTL_SESSION_SECRET}

log:
  level: info
  format: text

# Output: auto, text, markdown, json
output: auto
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a starter configuration file",
		Long: `Write a starter doltctl.yaml with the connection and versioning
settings doltctl needs, ready to edit.

Credentials are referenced as ${VAR} environment expansions rather than
stored in the file.`,
		Example: `  # Initialize in current directory
  doltctl init

  # Initialize in a new directory
  doltctl init my-project

  # Force overwrite existing config
  doltctl init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			// Create renderer
			cfg := getConfig()
			mode := output.Mode(cfg.OutputFormat)
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	// Create directory if specified and doesn't exist
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Check if config already exists
	configPath := filepath.Join(dir, "doltctl.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("doltctl.yaml already exists. Use --force to overwrite")
	}

	if err := os.WriteFile(configPath, []byte(starterConfig), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	r.StatusLine("doltctl.yaml", "success", "")
	r.Println("")
	r.Success("doltctl configured!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Edit doltctl.yaml with your server and database")
	r.Println("  2. Run 'doltctl doctor' to verify the connection")
	r.Println("  3. Run 'doltctl status' to see the working set")
	r.Println("  4. Run 'doltctl sync' to commit and push changes")

	return nil
}
