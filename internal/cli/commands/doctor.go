package commands

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/doltctl/internal/cli/config"
	"github.com/leapstack-labs/doltctl/internal/cli/output"
	"github.com/leapstack-labs/doltctl/internal/dolt"
	"github.com/spf13/cobra"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format: text, json
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run a connection and repository health check",
		Long: `Check that doltctl can reach the Dolt SQL server and that the
database is ready for version control operations.

The doctor command verifies, in order:
- Configuration (config file, database selection)
- Connectivity (TCP reach, SQL login, Dolt system tables)
- Versioning (remotes, credentials, working set)

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Run health check
  doltctl doctor

  # Output as JSON
  doltctl doctor --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Summary         ServerSummary `json:"summary"`
	HealthChecks    []HealthCheck `json:"health_checks"`
	Score           int           `json:"score"`
	Recommendations []string      `json:"recommendations"`
}

// ServerSummary contains connection-level facts.
type ServerSummary struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	Branch   string `json:"branch,omitempty"`
	Remotes  int    `json:"remotes"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name    string   `json:"name"`
	Group   string   `json:"group"`
	Status  string   `json:"status"` // "pass", "warn", "error"
	Details []string `json:"details,omitempty"`
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cmdCtx := NewCommandContextWithoutRepo(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	doctorOutput := buildDoctorOutput(cmd, cmdCtx)

	// Render based on mode
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(doctorOutput)
	case output.ModeMarkdown:
		return renderDoctorMarkdown(r, doctorOutput)
	default:
		return renderDoctorText(r, doctorOutput)
	}
}

func buildDoctorOutput(cmd *cobra.Command, cmdCtx *CommandContext) *DoctorOutput {
	cfg := cmdCtx.Cfg
	ctx := cmd.Context()

	out := &DoctorOutput{
		Summary: ServerSummary{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			Database: cfg.Database.Name,
		},
	}
	check := func(name, group, status string, details ...string) {
		out.HealthChecks = append(out.HealthChecks, HealthCheck{
			Name:    name,
			Group:   group,
			Status:  status,
			Details: details,
		})
	}

	// Configuration checks
	if path := config.GetConfigFileUsed(); path != "" {
		check("config file", "configuration", "pass", path)
	} else {
		check("config file", "configuration", "warn", "no doltctl.yaml found, using defaults")
	}

	if cfg.Database.Name != "" {
		check("database selected", "configuration", "pass", cfg.Database.Name)
	} else {
		check("database selected", "configuration", "error", "set database.name in doltctl.yaml or pass --database")
		out.finish()
		return out
	}

	// Connectivity checks
	addr := net.JoinHostPort(cfg.Database.Host, fmt.Sprintf("%d", cfg.Database.Port))
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		check("server reachable", "connectivity", "error", fmt.Sprintf("cannot reach %s: %v", addr, err),
			"start one with 'dolt sql-server' in the database directory")
		out.finish()
		return out
	}
	_ = conn.Close()
	check("server reachable", "connectivity", "pass", addr)

	db, err := openDatabase(ctx, cfg, cmdCtx.Logger)
	if err != nil {
		check("sql login", "connectivity", "error", err.Error())
		out.finish()
		return out
	}
	defer func() { _ = db.Close() }()
	check("sql login", "connectivity", "pass", fmt.Sprintf("connected as %s", cfg.Database.User))

	repo := dolt.New(db, cmdCtx.Logger)
	branch, err := repo.CurrentBranch(ctx)
	if err != nil {
		check("dolt system tables", "connectivity", "error",
			fmt.Sprintf("active_branch() failed: %v", err),
			"the server does not look like a dolt sql-server")
		out.finish()
		return out
	}
	out.Summary.Branch = branch
	check("dolt system tables", "connectivity", "pass", "active branch "+branch)

	// Versioning checks
	remotes, err := repo.Remotes(ctx)
	switch {
	case err != nil:
		check("remotes", "versioning", "error", err.Error())
	case len(remotes) == 0:
		check("remotes", "versioning", "warn", "no remotes configured, push and pull will fail")
	default:
		names := make([]string, 0, len(remotes))
		for _, rem := range remotes {
			names = append(names, rem.Name)
		}
		out.Summary.Remotes = len(remotes)
		check("remotes", "versioning", "pass", strings.Join(names, ", "))
	}

	if os.Getenv("DOLT_REMOTE_USER") != "" && os.Getenv("DOLT_REMOTE_PASSWORD") != "" {
		check("remote credentials", "versioning", "pass", "DOLT_REMOTE_USER and DOLT_REMOTE_PASSWORD are set")
	} else {
		check("remote credentials", "versioning", "warn",
			"DOLT_REMOTE_USER / DOLT_REMOTE_PASSWORD not set",
			"authenticated remotes such as DoltHub will reject pushes")
	}

	if entries, err := repo.Status(ctx, true); err == nil {
		if len(entries) == 0 {
			check("working set", "versioning", "pass", "clean")
		} else {
			check("working set", "versioning", "warn", fmt.Sprintf("%d uncommitted table changes", len(entries)))
		}
	} else {
		check("working set", "versioning", "error", err.Error())
	}

	out.finish()
	return out
}

// finish computes the score and recommendations from the collected checks.
func (out *DoctorOutput) finish() {
	score := 100
	for _, c := range out.HealthChecks {
		switch c.Status {
		case "error":
			score -= 25
			if rec := recommendationFor(c.Name); rec != "" {
				out.Recommendations = append(out.Recommendations, rec)
			}
		case "warn":
			score -= 10
		}
	}
	if score < 0 {
		score = 0
	}
	out.Score = score
}

func recommendationFor(checkName string) string {
	switch checkName {
	case "database selected":
		return "Set database.name in doltctl.yaml or pass --database"
	case "server reachable":
		return "Start a server with 'dolt sql-server' and check host/port settings"
	case "sql login":
		return "Check database.user and database.password in doltctl.yaml"
	case "dolt system tables":
		return "Point doltctl at a dolt sql-server, not a vanilla MySQL server"
	case "remotes":
		return "Add a remote with 'doltctl remote add origin URL'"
	default:
		return ""
	}
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) error {
	styles := r.Styles()

	// Header
	r.Println("")
	r.Println(styles.Header1.Render("doltctl Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	// Server Summary
	r.Println(styles.Header2.Render("Server"))
	r.Printf("   Host: %s:%d | Database: %s\n", out.Summary.Host, out.Summary.Port, out.Summary.Database)
	if out.Summary.Branch != "" {
		r.Printf("   Branch: %s | Remotes: %d\n", out.Summary.Branch, out.Summary.Remotes)
	}
	r.Println("")

	// Health Checks grouped by category
	r.Println(styles.Header2.Render("Health Checks"))
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + titleCaser.String(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		icon := styles.StatusSuccess.String()
		switch check.Status {
		case "warn":
			icon = styles.Warning.Render("!")
		case "error":
			icon = styles.StatusFailed.String()
		}

		r.Printf("   %s %s\n", icon, check.Name)
		for _, detail := range check.Details {
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	// Health Score
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")

	// Recommendations
	if len(out.Recommendations) > 0 {
		r.Println(styles.Header2.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) error {
	r.Println("# doltctl Health Report")
	r.Println("")

	// Server Summary
	r.Println("## Server")
	r.Println("")
	r.Printf("- **Host**: %s:%d\n", out.Summary.Host, out.Summary.Port)
	r.Printf("- **Database**: %s\n", out.Summary.Database)
	if out.Summary.Branch != "" {
		r.Printf("- **Branch**: %s\n", out.Summary.Branch)
		r.Printf("- **Remotes**: %d\n", out.Summary.Remotes)
	}
	r.Println("")

	// Health Checks
	r.Println("## Health Checks")
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println("### " + titleCaser.String(currentGroup))
			r.Println("")
		}

		status := "PASS"
		switch check.Status {
		case "warn":
			status = "WARN"
		case "error":
			status = "ERROR"
		}

		r.Printf("- **[%s]** %s\n", status, check.Name)
		for _, detail := range check.Details {
			r.Printf("  - %s\n", detail)
		}
	}
	r.Println("")

	// Health Score
	r.Println("## Health Score")
	r.Println("")
	r.Printf("**%d/100**\n", out.Score)
	r.Println("")

	// Recommendations
	if len(out.Recommendations) > 0 {
		r.Println("## Recommendations")
		r.Println("")
		for _, rec := range out.Recommendations {
			r.Printf("- %s\n", rec)
		}
		r.Println("")
	}

	return nil
}
