// Package editor owns the in-memory button list while it is being edited.
//
// An Editor is driven from a single goroutine. Structural operations keep
// Order equal to the list index, mark the collection dirty and schedule a
// Preview; Save hands a normalized snapshot to the store and marks everything
// clean; Reload replaces the list from the store without counting as an edit.
package editor

import (
	"fmt"
	"log/slog"

	"github.com/lumi/lumi-bar/pkg/models"
	"github.com/lumi/lumi-bar/pkg/signals"
	"github.com/lumi/lumi-bar/pkg/tracking"
)

// Store is the persistence the editor needs
type Store interface {
	LoadOrCreateDefault() *models.Config
	Save(cfg *models.Config) error
}

// Editor is the editing session for one button list
type Editor struct {
	store  Store
	hub    *signals.Hub
	logger *slog.Logger

	group    *tracking.Group
	buttons  []*Button
	selected *Button
}

// Option configures an Editor
type Option func(*Editor)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New loads the list from store and returns a clean editor with the first
// button selected. hub may be nil.
func New(store Store, hub *signals.Hub, opts ...Option) *Editor {
	e := &Editor{
		store:  store,
		hub:    hub,
		logger: slog.Default(),
		group:  tracking.NewGroup(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "editor")

	e.populate(store.LoadOrCreateDefault())
	return e
}

// Buttons returns the list in display order. The slice is a copy; the
// buttons are live.
func (e *Editor) Buttons() []*Button {
	out := make([]*Button, len(e.buttons))
	copy(out, e.buttons)
	return out
}

// Len returns the number of buttons
func (e *Editor) Len() int {
	return len(e.buttons)
}

// At returns the button at index i, or nil
func (e *Editor) At(i int) *Button {
	if i < 0 || i >= len(e.buttons) {
		return nil
	}
	return e.buttons[i]
}

// IndexOf returns the position of b, or -1
func (e *Editor) IndexOf(b *Button) int {
	if b == nil {
		return -1
	}
	for i, candidate := range e.buttons {
		if candidate == b {
			return i
		}
	}
	return -1
}

// Find returns the button with the given ID
func (e *Editor) Find(id string) (*Button, bool) {
	for _, b := range e.buttons {
		if b.ID() == id {
			return b, true
		}
	}
	return nil, false
}

// Selected returns the selected button, or nil
func (e *Editor) Selected() *Button {
	return e.selected
}

// SelectedIndex returns the index of the selection, or -1
func (e *Editor) SelectedIndex() int {
	return e.IndexOf(e.selected)
}

// Select changes the selection. Selection is never an edit. A button that is
// not in the list is rejected; nil clears the selection.
func (e *Editor) Select(b *Button) bool {
	if b != nil && e.IndexOf(b) < 0 {
		return false
	}
	release := e.group.Suppress()
	defer release()

	e.selected = b
	return true
}

// SelectIndex selects the button at index i
func (e *Editor) SelectIndex(i int) bool {
	b := e.At(i)
	if b == nil {
		return false
	}
	return e.Select(b)
}

// SelectID selects the button with the given ID
func (e *Editor) SelectID(id string) bool {
	b, ok := e.Find(id)
	if !ok {
		return false
	}
	return e.Select(b)
}

// Add appends a new default button, selects it and returns it
func (e *Editor) Add() *Button {
	b := newButton(models.NewButtonDefinition(len(e.buttons)))
	e.attach(b)
	e.buttons = append(e.buttons, b)

	e.normalize()
	e.Select(b)
	e.structuralChange("add", b)
	return b
}

// Remove deletes the selected button and selects the one now at the same
// index, else the last one, else nothing. Without a selection it does nothing.
func (e *Editor) Remove() {
	if e.selected == nil {
		return
	}
	idx := e.IndexOf(e.selected)
	if idx < 0 {
		e.Select(nil)
		return
	}

	removed := e.selected
	e.buttons = append(e.buttons[:idx], e.buttons[idx+1:]...)
	e.detach(removed)
	e.normalize()

	switch {
	case len(e.buttons) == 0:
		e.Select(nil)
	case idx < len(e.buttons):
		e.Select(e.buttons[idx])
	default:
		e.Select(e.buttons[len(e.buttons)-1])
	}

	e.structuralChange("remove", removed)
}

// CanRemove reports whether Remove would act
func (e *Editor) CanRemove() bool {
	return e.selected != nil
}

// CanMoveUp reports whether MoveUp would act
func (e *Editor) CanMoveUp() bool {
	return e.canMove(-1)
}

// CanMoveDown reports whether MoveDown would act
func (e *Editor) CanMoveDown() bool {
	return e.canMove(+1)
}

// MoveUp swaps the selection with its predecessor
func (e *Editor) MoveUp() {
	e.move(-1)
}

// MoveDown swaps the selection with its successor
func (e *Editor) MoveDown() {
	e.move(+1)
}

func (e *Editor) canMove(delta int) bool {
	idx := e.IndexOf(e.selected)
	if idx < 0 {
		return false
	}
	target := idx + delta
	return target >= 0 && target < len(e.buttons)
}

func (e *Editor) move(delta int) {
	if !e.canMove(delta) {
		return
	}
	idx := e.IndexOf(e.selected)
	target := idx + delta
	e.buttons[idx], e.buttons[target] = e.buttons[target], e.buttons[idx]

	e.normalize()
	e.structuralChange("move", e.selected)
}

// Save writes the current list through the store and, on success, marks the
// list and every button clean. On failure nothing is cleared.
func (e *Editor) Save() error {
	e.normalize()

	if err := e.store.Save(e.Config()); err != nil {
		e.logger.Error("save failed", "error", err)
		return fmt.Errorf("failed to save buttons: %w", err)
	}

	e.AcceptChanges()
	e.logger.Info("buttons saved", "count", len(e.buttons))
	return nil
}

// Reload discards in-memory edits and rebuilds the list from the store. The
// selection moves to the first button.
func (e *Editor) Reload() {
	e.populate(e.store.LoadOrCreateDefault())
	e.hub.NotifyPreview()
	e.logger.Info("buttons reloaded", "count", len(e.buttons))
}

// IsDirty reports whether the list or any button changed since the last
// load or save
func (e *Editor) IsDirty() bool {
	return e.group.IsDirty()
}

// AcceptChanges marks the list and every button clean
func (e *Editor) AcceptChanges() {
	e.group.AcceptChanges()
}

// Suppress opens a scope in which neither the list nor its buttons become
// dirty. Value-changed notifications still fire.
func (e *Editor) Suppress() (release func()) {
	return e.group.Suppress()
}

// OnDirtyChanged subscribes to transitions of the aggregated dirty state
func (e *Editor) OnDirtyChanged(fn func(dirty bool)) (unsubscribe func()) {
	return e.group.OnDirtyChanged(fn)
}

// Config returns a snapshot of the in-memory list with Order set to the index.
// Preview consumers derive their view from this, not from disk.
func (e *Editor) Config() *models.Config {
	cfg := &models.Config{Buttons: make([]models.ButtonDefinition, len(e.buttons))}
	for i, b := range e.buttons {
		def := b.Definition()
		def.Order = i
		cfg.Buttons[i] = def
	}
	return cfg
}

func (e *Editor) populate(cfg *models.Config) {
	release := e.group.Suppress()
	defer release()

	for _, b := range e.buttons {
		e.detach(b)
	}

	cfg = cfg.Clone()
	cfg.NormalizeOrder()

	e.buttons = make([]*Button, 0, len(cfg.Buttons))
	for _, def := range cfg.Buttons {
		b := newButton(def)
		e.attach(b)
		e.buttons = append(e.buttons, b)
	}
	e.normalize()

	e.selected = nil
	if len(e.buttons) > 0 {
		e.selected = e.buttons[0]
	}

	e.group.AcceptChanges()
}

func (e *Editor) attach(b *Button) {
	b.hub = e.hub
	e.group.Attach(b.tracker)
}

func (e *Editor) detach(b *Button) {
	e.group.Detach(b.tracker)
	b.hub = nil
}

// normalize sets Order to the index of every button
func (e *Editor) normalize() {
	for i, b := range e.buttons {
		b.setOrder(i)
	}
}

func (e *Editor) structuralChange(op string, b *Button) {
	e.group.MarkDirty()
	e.hub.NotifyPreview()
	e.logger.Debug("buttons changed", "op", op, "id", b.ID(), "count", len(e.buttons))
}
