package tui

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumi/lumi-bar/pkg/editor"
	"github.com/lumi/lumi-bar/pkg/guard"
	"github.com/lumi/lumi-bar/pkg/models"
	"github.com/lumi/lumi-bar/pkg/signals"
)

type memStore struct {
	cfg     *models.Config
	saves   int
	saveErr error
}

func (s *memStore) LoadOrCreateDefault() *models.Config {
	if s.cfg == nil {
		s.cfg = models.DefaultConfig()
	}
	return s.cfg.Clone()
}

func (s *memStore) Save(cfg *models.Config) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.cfg = cfg.Clone()
	return nil
}

func newTestApp(t *testing.T) (*App, *memStore) {
	t.Helper()
	st := &memStore{}
	app := NewApp(editor.New(st, nil))
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return app, st
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(a *App, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = a.Update(key(k))
	}
	return cmd
}

// messages runs cmd and flattens batches. Only use it on commands that do
// not sleep.
func messages(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, messages(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func hasQuit(cmd tea.Cmd) bool {
	for _, msg := range messages(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func statusOf(cmd tea.Cmd) string {
	for _, msg := range messages(cmd) {
		if s, ok := msg.(StatusMsg); ok {
			return string(s)
		}
	}
	return ""
}

func TestAppCleanNavigation(t *testing.T) {
	app, _ := newTestApp(t)
	require.Equal(t, HomeView, app.Guard().Current())

	press(app, "b")
	assert.Equal(t, ButtonsView, app.Guard().Current())
	assert.NotNil(t, app.editor.Selected(), "entering the buttons view selects a button")

	press(app, "esc")
	assert.Equal(t, HomeView, app.Guard().Current())
	assert.False(t, app.confirm.Active())
}

func TestAppSelectionIsNotAnEdit(t *testing.T) {
	app, _ := newTestApp(t)
	press(app, "b", "down", "up", "down")

	assert.Equal(t, 1, app.editor.SelectedIndex())
	assert.False(t, app.editor.IsDirty())

	press(app, "esc")
	assert.Equal(t, HomeView, app.Guard().Current())
}

func TestAppLeavingDirtyView(t *testing.T) {
	tests := []struct {
		name       string
		resolve    string
		wantView   guard.View
		wantDirty  bool
		wantLen    int
		wantSaves  int
		wantStatus string
	}{
		{
			name:      "cancel stays with edits",
			resolve:   "c",
			wantView:  ButtonsView,
			wantDirty: true,
			wantLen:   3,
		},
		{
			name:      "esc cancels",
			resolve:   "esc",
			wantView:  ButtonsView,
			wantDirty: true,
			wantLen:   3,
		},
		{
			name:      "discard restores the saved list",
			resolve:   "d",
			wantView:  HomeView,
			wantDirty: false,
			wantLen:   2,
		},
		{
			name:       "save persists and leaves",
			resolve:    "s",
			wantView:   HomeView,
			wantDirty:  false,
			wantLen:    3,
			wantSaves:  1,
			wantStatus: "✓ Buttons saved",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, st := newTestApp(t)
			press(app, "b", "a")
			require.True(t, app.editor.IsDirty())

			press(app, "esc")
			require.True(t, app.confirm.Active(), "leaving with edits must prompt")
			assert.Equal(t, ButtonsView, app.Guard().Current())
			assert.Contains(t, app.View(), "UNSAVED CHANGES")

			cmd := press(app, tt.resolve)

			assert.False(t, app.confirm.Active())
			assert.Equal(t, tt.wantView, app.Guard().Current())
			assert.Equal(t, tt.wantDirty, app.editor.IsDirty())
			assert.Equal(t, tt.wantLen, app.editor.Len())
			assert.Equal(t, tt.wantSaves, st.saves)
			if tt.wantStatus != "" {
				assert.Equal(t, tt.wantStatus, statusOf(cmd))
			}
		})
	}
}

func TestAppSaveFailureKeepsView(t *testing.T) {
	app, st := newTestApp(t)
	st.saveErr = errors.New("disk full")

	press(app, "b", "a", "esc")
	cmd := press(app, "s")

	assert.Equal(t, ButtonsView, app.Guard().Current())
	assert.True(t, app.editor.IsDirty())
	assert.Contains(t, statusOf(cmd), "disk full")
}

func TestAppQuit(t *testing.T) {
	t.Run("clean quits", func(t *testing.T) {
		app, _ := newTestApp(t)
		assert.True(t, hasQuit(press(app, "q")))
		assert.True(t, app.Guard().Closed())
	})

	t.Run("dirty asks first", func(t *testing.T) {
		app, st := newTestApp(t)
		press(app, "b", "J")
		require.True(t, app.editor.IsDirty())

		cmd := press(app, "ctrl+c")
		assert.False(t, hasQuit(cmd))
		assert.True(t, app.confirm.Active())

		cmd = press(app, "d")
		assert.True(t, hasQuit(cmd))
		assert.Zero(t, st.saves)
	})

	t.Run("cancel keeps running", func(t *testing.T) {
		app, _ := newTestApp(t)
		press(app, "b", "a", "q")
		cmd := press(app, "c")
		assert.False(t, hasQuit(cmd))
		assert.False(t, app.Guard().Closed())
	})
}

func TestAppFieldEditing(t *testing.T) {
	app, _ := newTestApp(t)
	press(app, "b", "enter")
	require.True(t, app.buttons.Capturing())

	press(app, "X", "q")
	b := app.editor.Selected()
	assert.Equal(t, "Lumi HubXq", b.Name(), "q is typed, not quit")
	assert.True(t, b.IsDirty())
	assert.False(t, app.Guard().Closed())

	press(app, "esc")
	assert.False(t, app.buttons.Capturing())
	assert.Equal(t, ButtonsView, app.Guard().Current(), "esc in the form only leaves the form")

	cmd := press(app, "ctrl+s")
	assert.Equal(t, "✓ Buttons saved", statusOf(cmd))
	assert.False(t, app.editor.IsDirty())
}

func TestAppToggleEnabled(t *testing.T) {
	app, _ := newTestApp(t)
	press(app, "b", " ")

	assert.False(t, app.editor.Selected().Enabled())
	assert.True(t, app.editor.IsDirty())
}

func TestAppReorder(t *testing.T) {
	app, _ := newTestApp(t)
	press(app, "b")
	first := app.editor.Selected().ID()

	press(app, "J")
	assert.Equal(t, 1, app.editor.SelectedIndex())
	assert.Equal(t, first, app.editor.At(1).ID())
	for i, b := range app.editor.Buttons() {
		assert.Equal(t, i, b.Order())
	}

	press(app, "K")
	assert.Equal(t, first, app.editor.At(0).ID())
}

func TestAppRemoveAsks(t *testing.T) {
	app, _ := newTestApp(t)
	press(app, "b", "d")
	require.True(t, app.buttons.Capturing())
	assert.Equal(t, 2, app.editor.Len())

	press(app, "n")
	assert.Equal(t, 2, app.editor.Len())

	cmd := press(app, "d", "y")
	assert.Equal(t, 1, app.editor.Len())
	assert.Contains(t, statusOf(cmd), "Removed")
	assert.True(t, app.editor.IsDirty())
}

func TestAppExternalChange(t *testing.T) {
	t.Run("clean reloads", func(t *testing.T) {
		app, st := newTestApp(t)
		press(app, "b", "down")
		selected := app.editor.Selected().ID()

		cfg := st.LoadOrCreateDefault()
		cfg.Buttons = append(cfg.Buttons, models.NewButtonDefinition(2))
		st.cfg = cfg

		_, cmd := app.Update(ExternalChangeMsg{})
		assert.Equal(t, 3, app.editor.Len())
		assert.Equal(t, selected, app.editor.Selected().ID())
		assert.False(t, app.editor.IsDirty())
		assert.Contains(t, statusOf(cmd), "Reloaded")
	})

	t.Run("own save is quiet", func(t *testing.T) {
		app, _ := newTestApp(t)
		_, cmd := app.Update(ExternalChangeMsg{})
		assert.Nil(t, cmd)
	})

	t.Run("dirty keeps edits", func(t *testing.T) {
		app, st := newTestApp(t)
		press(app, "b", "a")
		st.cfg = &models.Config{}

		_, cmd := app.Update(ExternalChangeMsg{})
		assert.Equal(t, 3, app.editor.Len())
		assert.True(t, app.editor.IsDirty())
		assert.Contains(t, statusOf(cmd), "overwrite")
	})
}

func TestAppPreviewRefresh(t *testing.T) {
	app, _ := newTestApp(t)
	before := app.preview.Refreshes()

	press(app, "b", "enter")
	press(app, "!")
	app.Update(PreviewMsg{})

	assert.Greater(t, app.preview.Refreshes(), before)
	require.NotEmpty(t, app.preview.Buttons())
	assert.Equal(t, "Lumi Hub!", app.preview.Buttons()[0].Name)
	assert.Contains(t, app.View(), "BAR PREVIEW")
}

func TestAppStatusMessages(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(StatusMsg("hello"))
	assert.Equal(t, "hello", app.statusMsg)
	assert.NotNil(t, cmd)

	app.Update(StatusMsg("newer"))
	app.Update(clearStatusMsg{seq: app.statusSeq - 1})
	assert.Equal(t, "newer", app.statusMsg, "a stale clear does not hide a newer message")

	app.Update(clearStatusMsg{seq: app.statusSeq})
	assert.Empty(t, app.statusMsg)
}

func TestAppViews(t *testing.T) {
	app, _ := newTestApp(t)
	assert.Contains(t, app.View(), "HOME")
	assert.Contains(t, app.View(), "b manage buttons")

	press(app, "b", "a")
	view := app.View()
	assert.Contains(t, view, "MANAGE BUTTONS")
	assert.Contains(t, view, "EDIT BUTTON")
	assert.Contains(t, view, models.DefaultButtonName)
}

func TestAppLoadingView(t *testing.T) {
	app := NewApp(editor.New(&memStore{}, nil))
	assert.Equal(t, "Loading...", app.View())
}

type chanSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (s *chanSender) Send(msg tea.Msg) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
}

func (s *chanSender) count(want tea.Msg) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.msgs {
		if m == want {
			n++
		}
	}
	return n
}

func TestConnect(t *testing.T) {
	hub := signals.NewHub(signals.WithPreviewDelay(10 * time.Millisecond))
	defer hub.Close()
	s := &chanSender{}

	disconnect := Connect(hub, s)

	hub.NotifyPreview()
	hub.NotifyPreview()
	hub.NotifyCommitted()

	require.Eventually(t, func() bool {
		return s.count(PreviewMsg{}) == 1 && s.count(CommittedMsg{}) == 1
	}, time.Second, 5*time.Millisecond)

	disconnect()
	assert.Zero(t, hub.Preview.Subscribers())
	assert.Zero(t, hub.Committed.Subscribers())
}

func TestConnectNilHub(t *testing.T) {
	disconnect := Connect(nil, &chanSender{})
	assert.NotPanics(t, disconnect)
}

func TestConfirmationThreeWay(t *testing.T) {
	tests := []struct {
		key  string
		want guard.Resolution
	}{
		{"s", guard.Save},
		{"ctrl+s", guard.Save},
		{"d", guard.Discard},
		{"c", guard.Cancel},
		{"esc", guard.Cancel},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c := NewConfirmation()
			var got guard.Resolution = -1
			c.ShowUnsaved("T", "M", 60, func(r guard.Resolution) tea.Cmd {
				got = r
				return nil
			})

			c.Update(key("x"))
			assert.True(t, c.Active(), "other keys are ignored")

			c.Update(key(tt.key))
			assert.False(t, c.Active())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfirmationYesNo(t *testing.T) {
	c := NewConfirmation()
	confirmed := false
	c.ShowInline("Remove?", true, func() tea.Cmd {
		confirmed = true
		return nil
	}, nil)

	assert.True(t, strings.HasPrefix(c.View(), "Remove?"))
	c.Update(key("n"))
	assert.False(t, c.Active())
	assert.False(t, confirmed)

	c.ShowInline("Remove?", true, func() tea.Cmd {
		confirmed = true
		return nil
	}, nil)
	c.Update(key("y"))
	assert.True(t, confirmed)
}
