package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/doltctl/internal/cli/output"
	"github.com/leapstack-labs/doltctl/internal/dolt"
)

// resolveFormat picks the result set format: an explicit --format wins,
// otherwise the renderer's effective output mode decides.
func resolveFormat(r *output.Renderer, explicit string) string {
	if explicit != "" {
		return explicit
	}
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return "json"
	case output.ModeMarkdown:
		return "md"
	default:
		return "table"
	}
}

// renderResultSet writes a result set to w in the given format.
// Formats: table (default), json, csv, md/markdown.
func renderResultSet(w io.Writer, rs *dolt.ResultSet, format string) error {
	switch format {
	case "json":
		return renderRowsJSON(w, rs)
	case "csv":
		return renderRowsCSV(w, rs)
	case "md", "markdown":
		return renderRowsMarkdown(w, rs)
	default:
		return renderRowsTable(w, rs)
	}
}

func renderRowsTable(w io.Writer, rs *dolt.ResultSet) error {
	if len(rs.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	// Header
	headerRow := make(table.Row, len(rs.Columns))
	for i, col := range rs.Columns {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	// Rows
	for _, row := range rs.Rows {
		cells := make(table.Row, len(row))
		for i, v := range row {
			cells[i] = formatValue(v)
		}
		t.AppendRow(cells)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(rs.Rows))
	return nil
}

func renderRowsJSON(w io.Writer, rs *dolt.ResultSet) error {
	results := make([]map[string]any, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		m := make(map[string]any, len(rs.Columns))
		for i, col := range rs.Columns {
			if i < len(row) {
				m[col] = row[i]
			}
		}
		results = append(results, m)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func renderRowsCSV(w io.Writer, rs *dolt.ResultSet) error {
	// Header
	_, _ = fmt.Fprintln(w, strings.Join(rs.Columns, ","))

	// Rows
	for _, row := range rs.Rows {
		values := make([]string, len(row))
		for i, v := range row {
			values[i] = escapeCSV(formatValue(v))
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func renderRowsMarkdown(w io.Writer, rs *dolt.ResultSet) error {
	if len(rs.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	// Header
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(rs.Columns, " | "))
	// Separator
	seps := make([]string, len(rs.Columns))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	// Rows
	for _, row := range rs.Rows {
		values := make([]string, len(row))
		for i, v := range row {
			values[i] = formatValue(v)
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}
	return nil
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
