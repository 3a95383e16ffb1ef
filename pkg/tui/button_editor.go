package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumi/lumi-bar/pkg/bar"
	"github.com/lumi/lumi-bar/pkg/editor"
	"github.com/lumi/lumi-bar/pkg/models"
)

type editorFocus int

const (
	focusList editorFocus = iota
	focusFields
)

var fieldLabels = map[string]string{
	models.FieldName:         "Name:",
	models.FieldLabel:        "Label:",
	models.FieldIconKey:      "Icon:",
	models.FieldActionID:     "Action:",
	models.FieldFillColor:    "Fill Color:",
	models.FieldHoverColor:   "Hover Color:",
	models.FieldPressedColor: "Pressed Color:",
	models.FieldEnabled:      "Enabled:",
}

var fieldComments = map[string]string{
	models.FieldName:     "# Shown in the list and as a fallback label",
	models.FieldIconKey:  "# tdesign_add, tdesign_houses_2, tdesign_setting_1_filled, ...",
	models.FieldActionID: "# What the button does when pressed",
}

// ButtonEditorModel is the list of buttons plus a form for the selected one
type ButtonEditorModel struct {
	editor *editor.Editor

	fields     []string
	inputs     map[string]*textinput.Model
	focus      editorFocus
	fieldIndex int

	listViewport  viewport.Model
	removeConfirm *ConfirmationModel

	width  int
	height int
}

// NewButtonEditorModel creates the editor view for e
func NewButtonEditorModel(e *editor.Editor) *ButtonEditorModel {
	m := &ButtonEditorModel{
		editor:        e,
		fields:        models.EditableFields,
		inputs:        make(map[string]*textinput.Model),
		listViewport:  viewport.New(30, 10),
		removeConfirm: NewConfirmation(),
	}

	for _, field := range m.fields {
		if field == models.FieldEnabled {
			continue
		}
		in := textinput.New()
		in.CharLimit = 100
		in.Width = 30
		switch field {
		case models.FieldFillColor, models.FieldHoverColor, models.FieldPressedColor:
			in.Placeholder = "#RRGGBB"
			in.CharLimit = 9
			in.Width = 10
		case models.FieldIconKey:
			in.Placeholder = models.DefaultIconKey
		}
		m.inputs[field] = &in
	}

	m.Sync()
	return m
}

// SetSize sets the area the editor draws in
func (m *ButtonEditorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.listViewport.Width = m.listWidth() - 4
	m.listViewport.Height = max(height-4, 3)
}

// Capturing reports whether keys go to a text field or the remove prompt
func (m *ButtonEditorModel) Capturing() bool {
	return m.focus == focusFields || m.removeConfirm.Active()
}

// FocusList returns keyboard focus to the button list
func (m *ButtonEditorModel) FocusList() {
	m.focus = focusList
	m.updateFocus()
}

// Sync loads the form from the selected button. It is not an edit.
func (m *ButtonEditorModel) Sync() {
	b := m.editor.Selected()
	for field, in := range m.inputs {
		if b == nil {
			in.SetValue("")
			continue
		}
		in.SetValue(b.Definition().FieldValue(field))
		in.CursorEnd()
	}
	if b == nil {
		m.focus = focusList
	}
	m.updateFocus()
}

func (m *ButtonEditorModel) currentField() string {
	return m.fields[m.fieldIndex]
}

func (m *ButtonEditorModel) updateFocus() {
	for _, in := range m.inputs {
		in.Blur()
	}
	if m.focus != focusFields {
		return
	}
	if in, ok := m.inputs[m.currentField()]; ok {
		in.Focus()
	}
}

// Update handles a key for the buttons view
func (m *ButtonEditorModel) Update(msg tea.KeyMsg) tea.Cmd {
	if m.removeConfirm.Active() {
		return m.removeConfirm.Update(msg)
	}

	if msg.String() == "ctrl+s" {
		return m.save()
	}

	if m.focus == focusFields {
		return m.updateFields(msg)
	}
	return m.updateList(msg)
}

func (m *ButtonEditorModel) updateList(msg tea.KeyMsg) tea.Cmd {
	e := m.editor

	switch msg.String() {
	case "up", "k":
		if i := e.SelectedIndex(); i > 0 {
			e.SelectIndex(i - 1)
			m.Sync()
		}

	case "down", "j":
		if i := e.SelectedIndex(); i >= 0 && i < e.Len()-1 {
			e.SelectIndex(i + 1)
			m.Sync()
		} else if i < 0 && e.Len() > 0 {
			e.SelectIndex(0)
			m.Sync()
		}

	case "K":
		if e.CanMoveUp() {
			e.MoveUp()
		}

	case "J":
		if e.CanMoveDown() {
			e.MoveDown()
		}

	case "a":
		b := e.Add()
		m.Sync()
		return statusCmd(fmt.Sprintf("Added %s", b.Definition().DisplayName()))

	case "d", "delete":
		if !e.CanRemove() {
			return nil
		}
		name := e.Selected().Definition().DisplayName()
		m.removeConfirm.ShowInline(fmt.Sprintf("Remove %q?", name), true,
			func() tea.Cmd {
				e.Remove()
				m.Sync()
				return statusCmd(fmt.Sprintf("Removed %s", name))
			},
			nil,
		)

	case " ", "space":
		if b := e.Selected(); b != nil {
			b.SetEnabled(!b.Enabled())
		}

	case "enter", "tab":
		if e.Selected() != nil {
			m.focus = focusFields
			m.updateFocus()
		}
	}
	return nil
}

func (m *ButtonEditorModel) updateFields(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.FocusList()
		return nil

	case "up", "shift+tab":
		m.fieldIndex--
		if m.fieldIndex < 0 {
			m.fieldIndex = len(m.fields) - 1
		}
		m.updateFocus()
		return nil

	case "down", "tab", "enter":
		m.fieldIndex = (m.fieldIndex + 1) % len(m.fields)
		m.updateFocus()
		return nil
	}

	b := m.editor.Selected()
	if b == nil {
		m.FocusList()
		return nil
	}

	field := m.currentField()
	if field == models.FieldEnabled {
		if s := msg.String(); s == " " || s == "space" {
			b.SetEnabled(!b.Enabled())
		}
		return nil
	}

	in := m.inputs[field]
	prev := in.Value()
	updated, cmd := in.Update(msg)
	*in = updated
	if in.Value() != prev {
		if err := b.SetField(field, in.Value()); err != nil {
			return tea.Batch(cmd, statusCmd(err.Error()))
		}
	}
	return cmd
}

func (m *ButtonEditorModel) save() tea.Cmd {
	if err := m.editor.Save(); err != nil {
		return statusCmd(fmt.Sprintf("Failed to save: %v", err))
	}
	return statusCmd("✓ Buttons saved")
}

func (m *ButtonEditorModel) listWidth() int {
	w := m.width / 3
	if w < 24 {
		w = 24
	}
	return w
}

// View renders the list and the form side by side
func (m *ButtonEditorModel) View() string {
	leftWidth := m.listWidth()
	rightWidth := max(m.width-leftWidth, 30)
	height := max(m.height, 6)

	left := m.renderList(leftWidth, height)
	right := m.renderForm(rightWidth, height)
	panes := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	if m.removeConfirm.Active() {
		return panes + "\n" + ContentPaddingStyle.Render(m.removeConfirm.View())
	}
	return panes
}

func (m *ButtonEditorModel) renderList(width, height int) string {
	e := m.editor
	selected := e.SelectedIndex()

	var lines []string
	for i, b := range e.Buttons() {
		def := b.Definition()
		check := "[✓]"
		if !def.Enabled {
			check = "[ ]"
		}
		line := fmt.Sprintf("%d. %s %s", i+1, check, def.DisplayName())
		if b.IsDirty() {
			line += "*"
		}
		line = lipgloss.NewStyle().MaxWidth(width - 6).Render(line)
		if i == selected {
			lines = append(lines, SelectedStyle.Render("▸ "+line))
		} else {
			lines = append(lines, NormalStyle.Render("  "+line))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, CommentStyle.Render("  No buttons. Press a to add one."))
	}

	m.listViewport.SetContent(strings.Join(lines, "\n"))
	if selected >= 0 {
		if selected < m.listViewport.YOffset {
			m.listViewport.SetYOffset(selected)
		} else if selected >= m.listViewport.YOffset+m.listViewport.Height {
			m.listViewport.SetYOffset(selected - m.listViewport.Height + 1)
		}
	}

	border := InactiveBorderStyle
	if m.focus == focusList {
		border = ActiveBorderStyle
	}

	content := renderPaneHeading("BUTTONS", width-4, m.focus == focusList) + "\n\n" +
		ContentPaddingStyle.Render(m.listViewport.View())
	return border.Width(width - 2).Height(height - 2).Render(content)
}

func (m *ButtonEditorModel) renderForm(width, height int) string {
	labelStyle := lipgloss.NewStyle().
		Width(16).
		Foreground(lipgloss.Color(ColorNormal))

	var s strings.Builder
	s.WriteString(renderPaneHeading("EDIT BUTTON", width-4, m.focus == focusFields))
	s.WriteString("\n\n")

	b := m.editor.Selected()
	if b == nil {
		s.WriteString(CommentStyle.Render("  Select a button to edit it."))
	} else {
		for i, field := range m.fields {
			var value string
			if field == models.FieldEnabled {
				value = "[ ]"
				if b.Enabled() {
					value = "[✓]"
				}
			} else {
				value = m.inputs[field].View()
			}

			line := labelStyle.Render(fieldLabels[field]) + " " + value
			if hint := fieldHint(field, b); hint != "" {
				line += " " + WarningStyle.Render(hint)
			}
			if m.focus == focusFields && i == m.fieldIndex {
				s.WriteString(FocusedStyle.Render("▸ " + line))
			} else {
				s.WriteString(NormalStyle.Render("  " + line))
			}
			s.WriteString("\n")
			if c, ok := fieldComments[field]; ok && m.focus == focusFields && i == m.fieldIndex {
				s.WriteString(CommentStyle.Render("  " + c))
				s.WriteString("\n")
			}
		}
		s.WriteString("\n")
		s.WriteString(CommentStyle.Render("  id " + b.ID()))
	}

	border := InactiveBorderStyle
	if m.focus == focusFields {
		border = ActiveBorderStyle
	}
	return border.Width(width - 2).Height(height - 2).Render(s.String())
}

// fieldHint flags a color the bar would replace with the fallback
func fieldHint(field string, b *editor.Button) string {
	var value string
	switch field {
	case models.FieldFillColor:
		value = b.FillColor()
	case models.FieldHoverColor:
		value = b.HoverColor()
	case models.FieldPressedColor:
		value = b.PressedColor()
	default:
		return ""
	}
	if _, err := (bar.HexColors{}).Resolve(value); err != nil {
		return "invalid color"
	}
	return ""
}

// HelpItems lists the keys for the current focus
func (m *ButtonEditorModel) HelpItems() []string {
	if m.removeConfirm.Active() {
		return []string{"y remove", "n keep"}
	}
	if m.focus == focusFields {
		return []string{
			"tab/shift+tab navigate",
			"↑↓ navigate",
			"space toggle",
			"^s save",
			"esc back to list",
		}
	}
	return []string{
		"↑↓ select",
		"J/K move button",
		"a add",
		"d remove",
		"space enable/disable",
		"enter edit",
		"^s save",
		"esc home",
		"q quit",
	}
}
