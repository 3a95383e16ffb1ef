package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorVeryDim  = "242"
	ColorFocus    = "205"
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorDanger   = "196"
	ColorSuccess  = "28"
	ColorStatusBg = "62"
	ColorStatusFg = "230"
)

// Common styles
var (
	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorActive))

	InactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorInactive))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(ColorSelected)).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	FocusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorFocus))

	CommentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorVeryDim)).
			Italic(true)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorWarning))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning))

	DirtyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			Bold(true)

	ContentPaddingStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				PaddingRight(1)

	StatusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(ColorStatusBg)).
			Foreground(lipgloss.Color(ColorStatusFg)).
			Padding(0, 1)
)

// renderPaneHeading draws "TITLE ::::" across width, as every pane does
func renderPaneHeading(title string, width int, active bool) string {
	color := ColorInactive
	if active {
		color = ColorActive
	}
	remaining := width - lipgloss.Width(title) - 3
	if remaining < 0 {
		remaining = 0
	}
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
	colonStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	return ContentPaddingStyle.Render(headerStyle.Render(title) + " " + colonStyle.Render(strings.Repeat(":", remaining)))
}

// formatHelpText joins help items and wraps them to width
func formatHelpText(items []string, width int) string {
	text := strings.Join(items, " • ")
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// renderHelpPane is the bordered, right-aligned help box at the bottom of a view
func renderHelpPane(items []string, width int) string {
	if width < 10 {
		width = 10
	}
	help := lipgloss.NewStyle().
		Width(width - 8).
		Align(lipgloss.Right).
		Render(formatHelpText(items, width-8))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorInactive)).
		Width(width-4).
		Padding(0, 1)
	return ContentPaddingStyle.Render(box.Render(help))
}
