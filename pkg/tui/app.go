// Package tui is the bubbletea front end: a home view with the bar preview
// and a buttons view that edits the list. Leaving the buttons view with
// unsaved changes asks to save, discard or stay.
package tui

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumi/lumi-bar/pkg/bar"
	"github.com/lumi/lumi-bar/pkg/editor"
	"github.com/lumi/lumi-bar/pkg/guard"
	"github.com/lumi/lumi-bar/pkg/signals"
)

// Views of the application
const (
	HomeView    guard.View = "home"
	ButtonsView guard.View = "buttons"
)

const statusDuration = 3 * time.Second

// Messages delivered to the app
type (
	// StatusMsg shows a message in the status bar for a few seconds
	StatusMsg string
	// PreviewMsg is a Preview event from the hub
	PreviewMsg struct{}
	// CommittedMsg is a Committed event from the hub
	CommittedMsg struct{}
	// ExternalChangeMsg reports that the file changed on disk
	ExternalChangeMsg struct{}

	clearStatusMsg struct{ seq int }
)

// Sender is the part of tea.Program that receives messages from outside
type Sender interface {
	Send(msg tea.Msg)
}

// Connect forwards hub events to s until the returned func is called. Each
// event is sent from its own goroutine: Committed fires inside Update, and
// Program.Send blocks until Update returns.
func Connect(hub *signals.Hub, s Sender) (disconnect func()) {
	if hub == nil {
		return func() {}
	}
	preview := hub.Preview.Subscribe(func() { go s.Send(PreviewMsg{}) })
	committed := hub.Committed.Subscribe(func() { go s.Send(CommittedMsg{}) })
	return func() {
		preview.Unsubscribe()
		committed.Unsubscribe()
	}
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg(text)
	}
}

// App is the root model
type App struct {
	editor *editor.Editor
	guard  *guard.Guard
	logger *slog.Logger

	buttons *ButtonEditorModel
	preview *PreviewModel
	confirm *ConfirmationModel

	width     int
	height    int
	statusMsg string
	statusSeq int
}

// Option configures an App
type Option func(*App)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithResolvers sets how the preview resolves icons, actions and colors
func WithResolvers(r bar.Resolvers) Option {
	return func(a *App) {
		a.preview = NewPreviewModel(r)
	}
}

// NewApp creates the root model around e, starting at the home view
func NewApp(e *editor.Editor, opts ...Option) *App {
	a := &App{
		editor:  e,
		logger:  slog.Default(),
		preview: NewPreviewModel(bar.Resolvers{}),
		confirm: NewConfirmation(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("component", "tui")

	a.buttons = NewButtonEditorModel(e)
	a.guard = guard.New(e, ButtonsView, HomeView, guard.WithLogger(a.logger))
	a.guard.OnNavigate(a.navigated)
	a.preview.Refresh(e.Config())
	return a
}

// Guard returns the navigation guard
func (a *App) Guard() *guard.Guard {
	return a.guard
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.preview.SetWidth(msg.Width - 8)

	case StatusMsg:
		a.statusMsg = string(msg)
		a.statusSeq++
		seq := a.statusSeq
		return a, tea.Tick(statusDuration, func(time.Time) tea.Msg {
			return clearStatusMsg{seq: seq}
		})

	case clearStatusMsg:
		if msg.seq == a.statusSeq {
			a.statusMsg = ""
		}

	case PreviewMsg, CommittedMsg:
		a.preview.Refresh(a.editor.Config())

	case ExternalChangeMsg:
		return a, a.externalChange()

	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.confirm.Active() {
		return a.confirm.Update(msg)
	}
	if msg.Type == tea.KeyCtrlC {
		return a.request(guard.Exit)
	}

	if a.guard.Current() == ButtonsView {
		if a.buttons.Capturing() {
			return a.buttons.Update(msg)
		}
		switch msg.String() {
		case "esc":
			return a.request(HomeView)
		case "q":
			return a.request(guard.Exit)
		}
		return a.buttons.Update(msg)
	}

	switch msg.String() {
	case "b", "enter":
		return a.request(ButtonsView)
	case "q", "esc":
		return a.request(guard.Exit)
	}
	return nil
}

// request asks the guard for target and prompts when changes are unsaved
func (a *App) request(target guard.View) tea.Cmd {
	var d guard.Decision
	if target == guard.Exit {
		d = a.guard.RequestClose()
	} else {
		d = a.guard.Request(target)
	}

	switch d {
	case guard.Proceed:
		return a.afterNavigate()
	case guard.Pending:
		width := min(max(a.width-4, 40), 70)
		a.confirm.ShowUnsaved("UNSAVED CHANGES", "You have unsaved button changes.", width, a.resolve)
	}
	return nil
}

func (a *App) resolve(r guard.Resolution) tea.Cmd {
	d, err := a.guard.Resolve(r)
	if err != nil {
		return statusCmd(fmt.Sprintf("Failed to save: %v", err))
	}
	if d != guard.Proceed {
		return nil
	}
	if r == guard.Save {
		return tea.Batch(statusCmd("✓ Buttons saved"), a.afterNavigate())
	}
	return a.afterNavigate()
}

func (a *App) afterNavigate() tea.Cmd {
	if a.guard.Closed() {
		return tea.Quit
	}
	return nil
}

// navigated runs inside the editor's suppression scope
func (a *App) navigated(from, to guard.View) {
	a.buttons.FocusList()
	if to == ButtonsView && a.editor.Selected() == nil && a.editor.Len() > 0 {
		a.editor.SelectIndex(0)
	}
	a.buttons.Sync()
	a.preview.Refresh(a.editor.Config())
}

// externalChange reloads a clean editor. Unsaved edits are kept and the next
// save overwrites the file.
func (a *App) externalChange() tea.Cmd {
	if a.editor.IsDirty() {
		a.logger.Warn("config changed on disk while editing")
		return statusCmd("Configuration changed on disk; saving will overwrite it")
	}

	before := a.editor.Config()
	var selectedID string
	if b := a.editor.Selected(); b != nil {
		selectedID = b.ID()
	}

	a.editor.Reload()
	if selectedID != "" {
		a.editor.SelectID(selectedID)
	}
	a.buttons.Sync()
	a.preview.Refresh(a.editor.Config())

	if reflect.DeepEqual(before, a.editor.Config()) {
		return nil
	}
	return statusCmd("Reloaded configuration changed on disk")
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	title := "HOME"
	if a.guard.Current() == ButtonsView {
		title = "MANAGE BUTTONS"
	}

	var s strings.Builder
	s.WriteString(renderHeader(a.width, title, a.editor.IsDirty()))
	s.WriteString("\n\n")

	if a.confirm.Active() {
		s.WriteString(ContentPaddingStyle.Render(a.confirm.View()))
		return s.String()
	}

	previewPane := a.renderPreview()
	help := renderHelpPane(a.helpItems(), a.width)

	if a.guard.Current() == ButtonsView {
		used := lipgloss.Height(s.String()) + lipgloss.Height(previewPane) + lipgloss.Height(help) + 1
		a.buttons.SetSize(a.width-2, max(a.height-used, 6))
		s.WriteString(ContentPaddingStyle.Render(a.buttons.View()))
		s.WriteString("\n")
	} else {
		s.WriteString(a.renderHome())
		s.WriteString("\n\n")
	}
	s.WriteString(previewPane)
	s.WriteString("\n")
	s.WriteString(help)

	content := s.String()
	if a.statusMsg != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, StatusStyle.Render(a.statusMsg))
	}
	return content
}

func (a *App) renderPreview() string {
	content := renderPaneHeading("BAR PREVIEW", a.width-8, a.guard.Current() == HomeView) + "\n\n" +
		ContentPaddingStyle.Render(a.preview.View(a.selectedID()))

	border := InactiveBorderStyle
	if a.guard.Current() == HomeView {
		border = ActiveBorderStyle
	}
	return ContentPaddingStyle.Render(border.Width(a.width - 4).Render(content))
}

func (a *App) renderHome() string {
	total := a.editor.Len()
	enabled := len(a.editor.Config().Active())
	text := fmt.Sprintf("%d of %d button(s) enabled. Press b to manage buttons.", enabled, total)
	return ContentPaddingStyle.Render(NormalStyle.Render(text))
}

func (a *App) selectedID() string {
	if a.guard.Current() != ButtonsView {
		return ""
	}
	if b := a.editor.Selected(); b != nil {
		return b.ID()
	}
	return ""
}

func (a *App) helpItems() []string {
	if a.guard.Current() == ButtonsView {
		return a.buttons.HelpItems()
	}
	return []string{"b manage buttons", "q quit"}
}
