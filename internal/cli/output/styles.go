package output

import "github.com/charmbracelet/lipgloss"

// Styles bundles the lipgloss styles used across CLI text output.
type Styles struct {
	Header1       lipgloss.Style
	Header2       lipgloss.Style
	Bold          lipgloss.Style
	Muted         lipgloss.Style
	Success       lipgloss.Style
	Warning       lipgloss.Style
	Error         lipgloss.Style
	Info          lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
}

// DefaultStyles returns the colored style set used on a terminal.
func DefaultStyles() *Styles {
	return &Styles{
		Header1:       lipgloss.NewStyle().Bold(true).Underline(true),
		Header2:       lipgloss.NewStyle().Bold(true),
		Bold:          lipgloss.NewStyle().Bold(true),
		Muted:         lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "244", Dark: "241"}),
		Success:       lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "42"}),
		Warning:       lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "3", Dark: "214"}),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "196"}),
		Info:          lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "39"}),
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "42"}).SetString("✓"),
		StatusFailed:  lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "196"}).SetString("✗"),
	}
}

// PlainStyles returns an uncolored style set for piped or structured output.
// Status icons keep their glyphs so aligned listings stay readable.
func PlainStyles() *Styles {
	return &Styles{
		Header1:       lipgloss.NewStyle(),
		Header2:       lipgloss.NewStyle(),
		Bold:          lipgloss.NewStyle(),
		Muted:         lipgloss.NewStyle(),
		Success:       lipgloss.NewStyle(),
		Warning:       lipgloss.NewStyle(),
		Error:         lipgloss.NewStyle(),
		Info:          lipgloss.NewStyle(),
		StatusSuccess: lipgloss.NewStyle().SetString("✓"),
		StatusFailed:  lipgloss.NewStyle().SetString("✗"),
	}
}
