package guard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumi/lumi-bar/pkg/editor"
	"github.com/lumi/lumi-bar/pkg/models"
)

const (
	home    View = "home"
	buttons View = "buttons"
	about   View = "about"
)

type fakeDirtier struct {
	dirty      bool
	saves      int
	reloads    int
	saveErr    error
	suppressed int
}

func (f *fakeDirtier) IsDirty() bool { return f.dirty }

func (f *fakeDirtier) Save() error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.dirty = false
	return nil
}

func (f *fakeDirtier) Reload() {
	f.reloads++
	f.dirty = false
}

func (f *fakeDirtier) Suppress() func() {
	f.suppressed++
	return func() { f.suppressed-- }
}

func TestRequest_SameViewIsNoop(t *testing.T) {
	d := &fakeDirtier{dirty: true}
	g := New(d, buttons, buttons)

	assert.Equal(t, Stay, g.Request(buttons))
	_, pending := g.Pending()
	assert.False(t, pending)
	assert.Equal(t, 0, d.saves+d.reloads)
}

func TestRequest_CleanProceeds(t *testing.T) {
	g := New(&fakeDirtier{}, buttons, buttons)

	assert.Equal(t, Proceed, g.Request(home))
	assert.Equal(t, home, g.Current())
}

func TestRequest_UnguardedViewProceedsEvenWhenDirty(t *testing.T) {
	g := New(&fakeDirtier{dirty: true}, buttons, home)

	assert.Equal(t, Proceed, g.Request(about))
	assert.Equal(t, about, g.Current())
	assert.Equal(t, Proceed, g.Request(buttons))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		resolution  Resolution
		want        Decision
		wantView    View
		wantSaves   int
		wantReloads int
		wantDirty   bool
	}{
		{"cancel keeps view and edits", Cancel, Cancelled, buttons, 0, 0, true},
		{"save persists then proceeds", Save, Proceed, home, 1, 0, false},
		{"discard reloads then proceeds", Discard, Proceed, home, 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &fakeDirtier{dirty: true}
			g := New(d, buttons, buttons)

			require.Equal(t, Pending, g.Request(home))
			assert.Equal(t, buttons, g.Current(), "pending does not move")
			target, ok := g.Pending()
			require.True(t, ok)
			assert.Equal(t, home, target)

			got, err := g.Resolve(tt.resolution)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantView, g.Current())
			assert.Equal(t, tt.wantSaves, d.saves)
			assert.Equal(t, tt.wantReloads, d.reloads)
			assert.Equal(t, tt.wantDirty, d.IsDirty())

			_, ok = g.Pending()
			assert.False(t, ok)
		})
	}
}

func TestResolve_SaveFailureStays(t *testing.T) {
	boom := errors.New("read-only")
	d := &fakeDirtier{dirty: true, saveErr: boom}
	g := New(d, buttons, buttons)

	require.Equal(t, Pending, g.Request(home))
	got, err := g.Resolve(Save)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Stay, got)
	assert.Equal(t, buttons, g.Current())
	assert.True(t, d.IsDirty())
}

func TestResolve_WithoutPending(t *testing.T) {
	g := New(&fakeDirtier{}, buttons, buttons)

	_, err := g.Resolve(Save)
	assert.ErrorIs(t, err, ErrNothingPending)
}

func TestRequestClose(t *testing.T) {
	d := &fakeDirtier{dirty: true}
	g := New(d, buttons, buttons)

	require.Equal(t, Pending, g.RequestClose())
	assert.False(t, g.Closed())

	got, err := g.Resolve(Cancel)
	require.NoError(t, err)
	assert.Equal(t, Cancelled, got)
	assert.False(t, g.Closed())

	require.Equal(t, Pending, g.RequestClose())
	_, err = g.Resolve(Discard)
	require.NoError(t, err)
	assert.True(t, g.Closed())
}

func TestNavigate_UsesPrompter(t *testing.T) {
	d := &fakeDirtier{dirty: true}
	g := New(d, buttons, buttons)

	var asked []View
	prompt := PromptFunc(func(from, to View) Resolution {
		asked = append(asked, from, to)
		return Save
	})

	got, err := g.Navigate(home, prompt)
	require.NoError(t, err)
	assert.Equal(t, Proceed, got)
	assert.Equal(t, []View{buttons, home}, asked)

	// Clean now, so no prompt
	got, err = g.Navigate(buttons, prompt)
	require.NoError(t, err)
	assert.Equal(t, Proceed, got)
	assert.Len(t, asked, 2)
}

func TestOnNavigate_RunsSuppressed(t *testing.T) {
	d := &fakeDirtier{}
	g := New(d, buttons, home)

	var during int
	var moves [][2]View
	g.OnNavigate(func(from, to View) {
		during = d.suppressed
		moves = append(moves, [2]View{from, to})
	})

	g.Request(buttons)
	assert.Equal(t, 1, during)
	assert.Equal(t, 0, d.suppressed, "scope released")
	assert.Equal(t, [][2]View{{home, buttons}}, moves)
}

type memStore struct{ cfg *models.Config }

func (m *memStore) LoadOrCreateDefault() *models.Config {
	if m.cfg == nil {
		m.cfg = models.DefaultConfig()
	}
	return m.cfg.Clone()
}

func (m *memStore) Save(cfg *models.Config) error {
	m.cfg = cfg.Clone()
	return nil
}

func TestGuard_WithEditor(t *testing.T) {
	t.Run("member edit alone blocks navigation", func(t *testing.T) {
		e := editor.New(&memStore{}, nil)
		g := New(e, buttons, buttons)

		e.At(1).SetLabel("edited")
		assert.Equal(t, Pending, g.Request(home))
	})

	t.Run("discard restores stored values", func(t *testing.T) {
		e := editor.New(&memStore{}, nil)
		g := New(e, buttons, buttons)

		e.Add()
		require.Equal(t, Pending, g.Request(home))
		_, err := g.Resolve(Discard)
		require.NoError(t, err)
		assert.Equal(t, 2, e.Len())
		assert.False(t, e.IsDirty())
	})

	t.Run("selection replay on navigation is not an edit", func(t *testing.T) {
		e := editor.New(&memStore{}, nil)
		g := New(e, buttons, home)
		g.OnNavigate(func(_, to View) {
			if to == buttons {
				e.SelectIndex(1)
			}
		})

		assert.Equal(t, Proceed, g.Request(buttons))
		assert.Equal(t, 1, e.SelectedIndex())
		assert.False(t, e.IsDirty())
	})
}
