// Package views renders the admin pages from a shared HTML layout.
//
// Templates are compiled once at init. Each page supplies a "content"
// block; SSE handlers re-render named blocks for patching into the live
// page.
package views

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"
)

// Flash is a one-shot banner shown on the next page load after a
// redirect, carried in the session cookie.
type Flash struct {
	Kind string // "success" or "error"
	Text string
}

// Page is the envelope every template renders from. Data holds the
// page-specific view model.
type Page struct {
	Title    string
	Active   string // nav highlight: "overview", "history" or "remotes"
	Database string
	Dev      bool
	Flash    *Flash
	Data     any
}

var funcs = template.FuncMap{
	"shortHash": shortHash,
	"firstLine": firstLine,
	"when":      when,
}

var pages = map[string]*template.Template{}

func init() {
	layout := template.Must(template.New("layout").Funcs(funcs).Parse(layoutHTML))
	for name, src := range map[string]string{
		"overview": overviewHTML,
		"history":  historyHTML,
		"remotes":  remotesHTML,
	} {
		clone := template.Must(layout.Clone())
		pages[name] = template.Must(clone.Parse(src))
	}
}

// Render writes the named page wrapped in the shared layout. The page is
// rendered to a buffer first so a template error cannot leave a half
// written response behind.
func Render(w io.Writer, name string, page Page) error {
	t, ok := pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, page); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Fragment renders one named block of a page to a string for SSE patching.
func Fragment(page, block string, data any) (string, error) {
	t, ok := pages[page]
	if !ok {
		return "", fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, block, data); err != nil {
		return "", fmt.Errorf("render %s/%s: %w", page, block, err)
	}
	return buf.String(), nil
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func when(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
