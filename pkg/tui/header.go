package tui

import (
	"github.com/charmbracelet/lipgloss"
)

const logo = "◖ LUMI BAR ◗"

// renderHeader puts the view title on the left and the logo on the right.
// A dirty editor adds a marker after the title.
func renderHeader(width int, title string, dirty bool) string {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorFocus)).
		Bold(true)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorFocus)).
		Bold(true)

	left := titleStyle.Render(title)
	if dirty {
		left += DirtyStyle.Render(" *")
	}
	logoRendered := logoStyle.Render(logo)

	gap := width - 2 - lipgloss.Width(left) - lipgloss.Width(logoRendered)
	if gap < 1 {
		gap = 1
	}

	return ContentPaddingStyle.Render(lipgloss.JoinHorizontal(
		lipgloss.Top,
		left,
		lipgloss.NewStyle().Width(gap).Render(""),
		logoRendered,
	))
}
