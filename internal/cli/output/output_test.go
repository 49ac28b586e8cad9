package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferRenderer(isTTY bool, mode Mode) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		isTTY bool
		want  Mode
	}{
		{"auto on terminal", ModeAuto, true, ModeText},
		{"auto piped", ModeAuto, false, ModeMarkdown},
		{"empty mode defaults to auto", "", false, ModeMarkdown},
		{"explicit json", ModeJSON, true, ModeJSON},
		{"explicit markdown", ModeMarkdown, true, ModeMarkdown},
		{"explicit text piped", ModeText, false, ModeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newBufferRenderer(tt.isTTY, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestJSON(t *testing.T) {
	r, out, _ := newBufferRenderer(false, ModeJSON)
	require.NoError(t, r.JSON(map[string]int{"commits": 3}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, 3, decoded["commits"])
}

func TestSuccessAndWarningStreams(t *testing.T) {
	r, out, errOut := newBufferRenderer(false, ModeText)

	r.Success("pushed")
	r.Warning("remote slow")

	assert.Contains(t, out.String(), "pushed")
	assert.NotContains(t, out.String(), "remote slow")
	assert.Contains(t, errOut.String(), "remote slow")
}

func TestStatusLine(t *testing.T) {
	r, out, _ := newBufferRenderer(false, ModeText)

	r.StatusLine("server reachable", "success", "")
	r.StatusLine("remote configured", "failed", "no remotes")
	r.StatusLine("optional check", "skipped", "")

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "✓ server reachable")
	assert.Contains(t, lines[1], "✗ remote configured")
	assert.Contains(t, lines[1], "no remotes")
	assert.Contains(t, lines[2], "- optional check")
}

func TestHeaderByMode(t *testing.T) {
	t.Run("markdown mode emits hashes", func(t *testing.T) {
		r, out, _ := newBufferRenderer(false, ModeMarkdown)
		r.Header(2, "Remotes")
		assert.Equal(t, "## Remotes\n", out.String())
	})

	t.Run("text mode emits the bare heading", func(t *testing.T) {
		r, out, _ := newBufferRenderer(false, ModeText)
		r.Header(1, "Status")
		assert.Contains(t, out.String(), "Status")
		assert.NotContains(t, out.String(), "#")
	})
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(1, "Title"))
	assert.Equal(t, "## Sub", FormatHeader(2, "Sub"))
	assert.Equal(t, "# Clamped", FormatHeader(0, "Clamped"))
	assert.Equal(t, "- **Remote**: origin", FormatKeyValue("Remote", "origin"))
	assert.Equal(t, "```sql\nSELECT 1\n```", FormatCodeBlock("sql", "SELECT 1"))
}

func TestPlainStylesHaveNoANSI(t *testing.T) {
	r, out, _ := newBufferRenderer(false, ModeMarkdown)
	r.Println(r.Styles().Error.Render("failed"))
	r.Println(r.Styles().Muted.Render("detail"))

	assert.NotContains(t, out.String(), "\x1b[")
}
