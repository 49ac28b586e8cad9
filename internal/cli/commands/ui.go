package commands

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/doltctl/internal/cli/config"
	"github.com/leapstack-labs/doltctl/internal/ui"
)

// UIOptions holds options for the ui command.
type UIOptions struct {
	Host  string
	Port  int
	Open  bool
	Watch bool
}

// NewUICommand creates the ui command.
func NewUICommand() *cobra.Command {
	opts := &UIOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the web admin for the connected database",
		Long: `Start a local web server with an admin view of the connected database.

The admin shows:
- Current branch and working set, updated live
- Commit history
- Configured remotes, with a pull form`,
		Example: `  # Start the admin on the default port
  doltctl ui

  # Custom port, no browser
  doltctl ui --port 9000 --open=false`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Host, "host", "", "Host to serve on (default: 127.0.0.1)")
	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.Open, "open", true, "Open the browser automatically")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Poll the server for outside changes")

	return cmd
}

func runUI(cmd *cobra.Command, opts *UIOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := cmdCtx.Cfg
	uiCfg := cfg.GetUIConfig()

	// CLI flags override config file
	host := uiCfg.Host
	if opts.Host != "" {
		host = opts.Host
	}

	port := uiCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	autoOpen := uiCfg.AutoOpen
	if cmd.Flags().Changed("open") {
		autoOpen = opts.Open
	}

	watch := uiCfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	serverCfg := ui.Config{
		Repo:          cmdCtx.Repo,
		Database:      cfg.Database.Name,
		Host:          host,
		Port:          port,
		Watch:         watch,
		SessionSecret: sessionSecret(uiCfg),
		Logger:        cmdCtx.Logger,
	}

	server := ui.NewServer(serverCfg)

	url := fmt.Sprintf("http://%s:%d", host, port)
	if autoOpen {
		go openBrowser(url)
	}

	r := cmdCtx.Renderer
	r.Printf("Serving admin UI for %s on %s\n", cfg.Database.Name, url)
	r.Muted("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx)
}

// sessionSecret resolves the cookie signing secret: config, then
// environment, then a fixed development fallback.
func sessionSecret(uiCfg *config.UIConfig) string {
	if uiCfg.SessionSecret != "" {
		return uiCfg.SessionSecret
	}
	if secret := os.Getenv("DOLTCTL_SESSION_SECRET"); secret != "" {
		return secret
	}
	return "doltctl-dev-secret-change-in-production" //nolint:gosec
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
