// Package style holds the colors and glyphs shared by log and summary output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Accent = lipgloss.Color("#F97316")
	Muted  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
)

// Success renders s in the success color.
func Success(s string) string {
	return lipgloss.NewStyle().Foreground(Green).Render(s)
}

// Highlight renders s bold in the accent color.
func Highlight(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(Accent).Render(s)
}
