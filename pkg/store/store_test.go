package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumi/lumi-bar/pkg/models"
	"github.com/lumi/lumi-bar/pkg/signals"
)

func newTestStore(t *testing.T) (*Store, *signals.Hub, *int) {
	t.Helper()
	hub := signals.NewHub()
	t.Cleanup(hub.Close)

	commits := new(int)
	hub.Committed.Subscribe(func() { *commits++ })

	path := filepath.Join(t.TempDir(), AppDirName, ConfigFileName)
	return New(path, hub), hub, commits
}

func TestLoadOrCreateDefault_MissingFile(t *testing.T) {
	s, _, commits := newTestStore(t)

	cfg := s.LoadOrCreateDefault()

	require.Len(t, cfg.Buttons, 2)
	assert.Equal(t, "Lumi Hub", cfg.Buttons[0].Name)
	assert.Equal(t, "open_hub", cfg.Buttons[0].ActionID)
	assert.Equal(t, "Buttons verwalten", cfg.Buttons[1].Name)
	assert.Equal(t, "open_lumibar_button_management", cfg.Buttons[1].ActionID)

	require.True(t, s.Exists(), "default config must be written")
	assert.Equal(t, 1, *commits)

	onDisk, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, onDisk)
}

func TestLoadOrCreateDefault_CorruptFileIsNotOverwritten(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "buttons: [unterminated"},
		{"wrong shape", "buttons: 42"},
		{"empty file", ""},
		{"empty list", "buttons: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, commits := newTestStore(t)
			require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0755))
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.content), 0644))

			cfg := s.LoadOrCreateDefault()

			assert.Equal(t, models.DefaultConfig(), cfg)
			assert.Equal(t, 0, *commits, "fallback must not persist")

			data, err := os.ReadFile(s.Path())
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(data))
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	s, _, _ := newTestStore(t)

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0755))
	require.NoError(t, os.WriteFile(s.Path(), []byte(":\n  - ["), 0644))
	_, err = s.Load()
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr), "got %v", err)
	assert.Equal(t, s.Path(), parseErr.Path)

	require.NoError(t, os.WriteFile(s.Path(), []byte("buttons: []\n"), 0644))
	_, err = s.Load()
	assert.ErrorIs(t, err, ErrEmptyConfig)
}

func TestSave_RoundTrip(t *testing.T) {
	s, _, commits := newTestStore(t)

	cfg := &models.Config{Buttons: []models.ButtonDefinition{
		{ID: "b", Name: "Second", Label: "2", IconKey: "k", ActionID: "a2", FillColor: "#000000", Enabled: false, Order: 7},
		{ID: "a", Name: "First", Label: "1", IconKey: "k", ActionID: "a1", FillColor: "#FFFFFF", Enabled: true, Order: 3},
	}}

	require.NoError(t, s.Save(cfg))
	assert.Equal(t, 1, *commits)

	// Save normalizes in place
	assert.Equal(t, "a", cfg.Buttons[0].ID)
	assert.Equal(t, 0, cfg.Buttons[0].Order)
	assert.Equal(t, 1, cfg.Buttons[1].Order)

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_NormalizesOrder(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0755))
	content := `buttons:
  - id: x
    order: 9
  - id: y
    order: 2
  - id: z
    order: 2
`
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0644))

	cfg, err := s.Load()
	require.NoError(t, err)

	ids := []string{cfg.Buttons[0].ID, cfg.Buttons[1].ID, cfg.Buttons[2].ID}
	assert.Equal(t, []string{"y", "z", "x"}, ids)
	for i, b := range cfg.Buttons {
		assert.Equal(t, i, b.Order)
	}
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	s, _, _ := newTestStore(t)

	require.NoError(t, s.Save(models.DefaultConfig()))
	require.NoError(t, s.Save(models.DefaultConfig()))

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ConfigFileName, entries[0].Name())
}

func TestSave_FailureKeepsTargetAndSkipsCommit(t *testing.T) {
	s, _, commits := newTestStore(t)

	// A directory in place of the file makes the final rename fail
	require.NoError(t, os.MkdirAll(s.Path(), 0755))

	err := s.Save(models.DefaultConfig())
	require.Error(t, err)
	assert.Equal(t, 0, *commits)

	info, statErr := os.Stat(s.Path())
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())

	entries, _ := os.ReadDir(filepath.Dir(s.Path()))
	assert.Len(t, entries, 1, "temp file must be removed")
}

func TestLoad_MissingIDAndEnabledGetDefaults(t *testing.T) {
	s, _, commits := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0755))
	content := "buttons: [{name: A, order: 0}, {name: B, order: 1}, {id: c, name: C, enabled: false, order: 2}]\n"
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0644))

	cfg := s.LoadOrCreateDefault()
	require.Len(t, cfg.Buttons, 3)

	a, b, c := cfg.Buttons[0], cfg.Buttons[1], cfg.Buttons[2]
	assert.True(t, a.Enabled)
	assert.True(t, b.Enabled)
	assert.False(t, c.Enabled, "explicit false is kept")
	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "c", c.ID)
	assert.Len(t, cfg.Active(), 2)

	onDisk, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, content, string(onDisk), "load must not rewrite the file")
	assert.Zero(t, *commits)

	require.NoError(t, s.Save(cfg))
	reloaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, a.ID, reloaded.Buttons[0].ID)
	assert.Equal(t, b.ID, reloaded.Buttons[1].ID)
}

func TestWatch_IgnoresOwnSaves(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.Save(models.DefaultConfig()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 4)
	go s.Watch(ctx, 20*time.Millisecond, func() { changed <- struct{}{} })
	time.Sleep(100 * time.Millisecond)

	cfg := models.DefaultConfig()
	cfg.Buttons[0].Label = "mine"
	require.NoError(t, s.Save(cfg))

	select {
	case <-changed:
		t.Fatal("own save reported as an external change")
	case <-time.After(300 * time.Millisecond):
	}

	other := New(s.Path(), nil)
	cfg.Buttons[0].Label = "theirs"
	require.NoError(t, other.Save(cfg))

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not report the external save")
	}
}

func TestSave_Nil(t *testing.T) {
	s, _, _ := newTestStore(t)
	assert.Error(t, s.Save(nil))
}

func TestWatch_ReportsExternalWrites(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.Save(models.DefaultConfig()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, 20*time.Millisecond, func() { changed <- struct{}{} })
	}()

	// Give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	other := New(s.Path(), nil)
	cfg := models.DefaultConfig()
	cfg.Buttons[0].Label = "external"
	require.NoError(t, other.Save(cfg))

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not report the external save")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
