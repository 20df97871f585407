package tui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // titles, tags
	ColorHighlight = "205" // selection, keys
	ColorDanger    = "196" // errors
	ColorMuted     = "241" // attributes, hints
	ColorText      = "252"
	ColorAlert     = "214"
)

// Styles contains the shared style definitions.
var Styles = struct {
	Title    lipgloss.Style
	Tag      lipgloss.Style
	Attr     lipgloss.Style
	Key      lipgloss.Style
	Text     lipgloss.Style
	Handler  lipgloss.Style
	Hint     lipgloss.Style
	Alert    lipgloss.Style
	Error    lipgloss.Style
	Box      lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Tag: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Attr: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Key: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)),
	Text: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Handler: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Alert: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAlert)).
		Bold(true),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)).
		Bold(true),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
}
