// Package output renders CLI results as styled text, markdown, or JSON,
// adapting automatically to whether stdout is a terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Mode selects the output format. ModeAuto resolves per TTY detection.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeJSON     Mode = "json"
	ModeMarkdown Mode = "markdown"
)

// Renderer writes command output in the selected mode. Normal output goes
// to out; warnings go to errOut so piped output stays clean.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles *Styles
}

// NewRenderer builds a renderer, detecting TTY state from out.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return NewRendererWithTTY(out, errOut, isTTY, mode)
}

// NewRendererWithTTY builds a renderer with an explicit TTY state. Tests use
// it to pin down mode resolution.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	r := &Renderer{out: out, errOut: errOut, mode: mode, isTTY: isTTY}
	if r.EffectiveMode() == ModeText && isTTY {
		r.styles = DefaultStyles()
	} else {
		r.styles = PlainStyles()
	}
	return r
}

// EffectiveMode resolves ModeAuto: text on a terminal, markdown when piped.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Styles returns the style set matching the effective mode.
func (r *Renderer) Styles() *Styles { return r.styles }

// Out returns the destination for normal output.
func (r *Renderer) Out() io.Writer { return r.out }

// Println writes a line to the output stream.
func (r *Renderer) Println(args ...any) {
	_, _ = fmt.Fprintln(r.out, args...)
}

// Printf writes formatted output to the output stream.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Success prints a checkmarked confirmation line.
func (r *Renderer) Success(msg string) {
	_, _ = fmt.Fprintf(r.out, "%s %s\n", r.styles.StatusSuccess.String(), msg)
}

// Warning prints a highlighted notice to the error stream.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintf(r.errOut, "%s %s\n", r.styles.Warning.Render("!"), msg)
}

// Muted prints a line of de-emphasized text.
func (r *Renderer) Muted(msg string) {
	_, _ = fmt.Fprintln(r.out, r.styles.Muted.Render(msg))
}

// Header prints a section heading appropriate for the effective mode.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeText {
		style := r.styles.Header2
		if level <= 1 {
			style = r.styles.Header1
		}
		r.Println(style.Render(text))
		return
	}
	r.Println(FormatHeader(level, text))
}

// StatusLine prints one aligned check/result row.
func (r *Renderer) StatusLine(name, status, detail string) {
	var icon string
	switch status {
	case "success", "ok", "pass":
		icon = r.styles.StatusSuccess.String()
	case "failed", "error":
		icon = r.styles.StatusFailed.String()
	case "warn", "warning":
		icon = r.styles.Warning.Render("!")
	default:
		icon = r.styles.Muted.Render("-")
	}
	if detail != "" {
		r.Printf("%s %s %s\n", icon, name, r.styles.Muted.Render(detail))
		return
	}
	r.Printf("%s %s\n", icon, name)
}

// FormatHeader returns a markdown heading line.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a markdown list line for one key/value pair.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s**: %s", key, value)
}

// FormatCodeBlock fences source text as a markdown code block.
func FormatCodeBlock(lang, code string) string {
	return "```" + lang + "\n" + code + "\n```"
}
