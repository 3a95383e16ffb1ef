package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lumi/lumi-bar/pkg/bar"
	"github.com/lumi/lumi-bar/pkg/models"
)

// PreviewModel draws the bar as it would look with the in-memory list
type PreviewModel struct {
	resolvers bar.Resolvers
	buttons   []bar.RuntimeButton
	err       error
	width     int
	refreshes int
}

// NewPreviewModel creates an empty preview
func NewPreviewModel(r bar.Resolvers) *PreviewModel {
	return &PreviewModel{resolvers: r}
}

// Refresh rebuilds the runtime buttons from cfg
func (p *PreviewModel) Refresh(cfg *models.Config) {
	p.buttons, p.err = bar.Build(cfg, p.resolvers)
	p.refreshes++
}

// Buttons returns the last built buttons
func (p *PreviewModel) Buttons() []bar.RuntimeButton {
	return p.buttons
}

// Err returns the color problems of the last build
func (p *PreviewModel) Err() error {
	return p.err
}

// Refreshes counts rebuilds
func (p *PreviewModel) Refreshes() int {
	return p.refreshes
}

// SetWidth sets the width the bar wraps at
func (p *PreviewModel) SetWidth(width int) {
	p.width = width
}

// View renders the bar. selectedID is underlined and its hover and pressed
// colors are shown below.
func (p *PreviewModel) View(selectedID string) string {
	if len(p.buttons) == 0 {
		return CommentStyle.Render("  (no enabled buttons)")
	}

	var rows []string
	var row []string
	rowWidth := 0
	var selected *bar.RuntimeButton

	for i := range p.buttons {
		b := &p.buttons[i]
		isSelected := b.ID == selectedID
		if isSelected {
			selected = b
		}
		cell := renderBarButton(*b, isSelected)
		w := lipgloss.Width(cell) + 1
		if p.width > 0 && rowWidth > 0 && rowWidth+w > p.width {
			rows = append(rows, strings.Join(row, " "))
			row, rowWidth = nil, 0
		}
		row = append(row, cell)
		rowWidth += w
	}
	rows = append(rows, strings.Join(row, " "))

	var s strings.Builder
	s.WriteString(strings.Join(rows, "\n\n"))

	if selected != nil {
		s.WriteString("\n\n")
		s.WriteString(NormalStyle.Render("hover "))
		s.WriteString(swatch(selected.Hover))
		s.WriteString(NormalStyle.Render("  pressed "))
		s.WriteString(swatch(selected.Pressed))
	}

	if p.err != nil {
		s.WriteString("\n\n")
		lines := strings.Split(p.err.Error(), "\n")
		limit := lipgloss.NewStyle().MaxWidth(max(p.width, 20))
		for _, line := range lines {
			s.WriteString(limit.Render(WarningStyle.Render("! " + line)))
			s.WriteString("\n")
		}
	}

	return s.String()
}

func renderBarButton(b bar.RuntimeButton, selected bool) string {
	text := b.Label
	if text == "" {
		text = b.Name
	}
	if !b.Icon.IsZero() {
		text = strings.TrimSpace(b.Icon.Glyph + " " + text)
	}

	style := lipgloss.NewStyle().
		Background(lipgloss.Color(b.Fill.Hex())).
		Foreground(contrastColor(b.Fill)).
		Padding(0, 1)
	if selected {
		style = style.Bold(true).Underline(true)
	}
	return style.Render(text)
}

func swatch(c colorful.Color) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(contrastColor(c)).
		Render(" " + c.Hex() + " ")
}

// contrastColor picks black or white text for background c
func contrastColor(c colorful.Color) lipgloss.Color {
	l, _, _ := c.Lab()
	if l > 0.6 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#FFFFFF")
}
