package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumi/lumi-bar/pkg/guard"
)

// ConfirmationType defines the visual style of the confirmation
type ConfirmationType int

const (
	ConfirmTypeInline ConfirmationType = iota // Simple inline message
	ConfirmTypeDialog                         // Full dialog with border
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Title       string
	Message     string
	Warning     string // shown in orange
	Destructive bool   // Yes is red, No is green
	Type        ConfirmationType
	Width       int
	// ThreeWay asks save / discard / cancel instead of yes / no
	ThreeWay bool
}

// ConfirmationModel handles confirmation prompts
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
	onResolve func(guard.Resolution) tea.Cmd
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates a yes / no confirmation
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	config.ThreeWay = false
	m.active = true
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel
	m.onResolve = nil
}

// ShowInline is a yes / no question on a single line
func (m *ConfirmationModel) ShowInline(message string, destructive bool, onConfirm, onCancel func() tea.Cmd) {
	m.Show(ConfirmationConfig{
		Message:     message,
		Destructive: destructive,
		Type:        ConfirmTypeInline,
	}, onConfirm, onCancel)
}

// ShowUnsaved asks what to do with unsaved changes before leaving a view
func (m *ConfirmationModel) ShowUnsaved(title, message string, width int, onResolve func(guard.Resolution) tea.Cmd) {
	m.active = true
	m.config = ConfirmationConfig{
		Title:    title,
		Message:  message,
		Warning:  "Save them, discard them, or stay here?",
		Type:     ConfirmTypeDialog,
		Width:    width,
		ThreeWay: true,
	}
	m.onConfirm = nil
	m.onCancel = nil
	m.onResolve = onResolve
}

// Hide deactivates the confirmation
func (m *ConfirmationModel) Hide() {
	m.active = false
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events for the confirmation. Other keys are swallowed
// while it is active.
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}
	if m.config.ThreeWay {
		return m.updateThreeWay(msg)
	}

	switch msg.String() {
	case "y", "Y":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
	case "n", "N", "esc":
		m.active = false
		if m.onCancel != nil {
			return m.onCancel()
		}
	}
	return nil
}

func (m *ConfirmationModel) updateThreeWay(msg tea.KeyMsg) tea.Cmd {
	var r guard.Resolution
	switch msg.String() {
	case "s", "S", "ctrl+s":
		r = guard.Save
	case "d", "D":
		r = guard.Discard
	case "c", "C", "esc":
		r = guard.Cancel
	default:
		return nil
	}

	m.active = false
	if m.onResolve != nil {
		return m.onResolve(r)
	}
	return nil
}

// View renders the confirmation based on its type
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}
	if m.config.Type == ConfirmTypeDialog {
		return m.renderDialog()
	}
	return m.renderInline()
}

func (m *ConfirmationModel) renderInline() string {
	return fmt.Sprintf("%s %s", m.config.Message, m.options())
}

func (m *ConfirmationModel) renderDialog() string {
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorActive)).
		Padding(1, 2)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorWarning))

	width := m.config.Width
	if width <= 0 {
		width = 60
	}
	center := lipgloss.NewStyle().Width(width - 8).Align(lipgloss.Center)

	var b strings.Builder
	if m.config.Title != "" {
		b.WriteString(center.Render(headerStyle.Render(m.config.Title)))
		b.WriteString("\n\n")
	}
	if m.config.Message != "" {
		b.WriteString(center.Render(m.config.Message))
		b.WriteString("\n")
	}
	if m.config.Warning != "" {
		b.WriteString("\n")
		b.WriteString(center.Render(WarningStyle.Render(m.config.Warning)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(center.Render(m.options()))

	return borderStyle.Width(width - 4).Render(b.String())
}

func (m *ConfirmationModel) options() string {
	if m.config.ThreeWay {
		return formatResolveOptions()
	}
	return formatConfirmOptions(m.config.Destructive)
}

func formatConfirmOptions(destructive bool) string {
	yes := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorSuccess))
	no := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorDanger))
	if destructive {
		yes, no = no, yes
	}
	return "[" + yes.Render("y") + "/" + no.Render("n") + "]"
}

func formatResolveOptions() string {
	save := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorSuccess))
	discard := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorDanger))
	cancel := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorNormal))
	return save.Render("[s]ave") + "  " + discard.Render("[d]iscard") + "  " + cancel.Render("[c]ancel")
}
