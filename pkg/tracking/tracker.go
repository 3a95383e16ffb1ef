// Package tracking answers "has anything changed since the last clean point".
//
// A Tracker holds one dirty flag and two kinds of listeners: value-changed
// listeners, which see every effective change, and dirty listeners, which see
// transitions of the flag. A Suppressor shared between trackers hides changes
// from the dirty flag while still delivering value-changed notifications.
package tracking

import (
	"sync"
	"sync/atomic"
)

// Suppressor is a reentrant suppression counter. While its depth is above zero
// trackers bound to it do not raise their dirty flag.
type Suppressor struct {
	depth atomic.Int32
}

// Suppress opens a suppression scope. The returned release func closes it and
// is safe to call more than once; use it with defer so the scope closes on
// every exit path.
func (s *Suppressor) Suppress() (release func()) {
	s.depth.Add(1)
	var once sync.Once
	return func() {
		once.Do(func() { s.depth.Add(-1) })
	}
}

// Suppressed reports whether any scope is open
func (s *Suppressor) Suppressed() bool {
	return s.depth.Load() > 0
}

// Depth returns the number of open scopes
func (s *Suppressor) Depth() int {
	return int(s.depth.Load())
}

// Tracker is the dirty state of one entity or collection
type Tracker struct {
	mu         sync.Mutex
	dirty      bool
	suppressor *Suppressor

	changed listeners[func(field string)]
	dirtied listeners[func(dirty bool)]
}

// NewTracker creates a clean tracker bound to s. A nil suppressor gets a
// private one.
func NewTracker(s *Suppressor) *Tracker {
	if s == nil {
		s = &Suppressor{}
	}
	return &Tracker{suppressor: s}
}

// Bind switches the suppressor, used when an entity joins a collection so the
// collection's scopes cover it.
func (t *Tracker) Bind(s *Suppressor) {
	if s == nil {
		s = &Suppressor{}
	}
	t.mu.Lock()
	t.suppressor = s
	t.mu.Unlock()
}

// Suppressor returns the bound suppressor
func (t *Tracker) Suppressor() *Suppressor {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.suppressor
}

// Suppress opens a scope on the bound suppressor
func (t *Tracker) Suppress() (release func()) {
	return t.Suppressor().Suppress()
}

// IsDirty reports the flag
func (t *Tracker) IsDirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dirty
}

// MarkDirty raises the flag unless suppressed
func (t *Tracker) MarkDirty() {
	if t.Suppressor().Suppressed() {
		return
	}
	t.setDirty(true)
}

// Changed reports an effective change of field: value-changed listeners always
// run, then the flag is raised unless suppressed.
func (t *Tracker) Changed(field string) {
	for _, fn := range t.changed.snapshot() {
		fn(field)
	}
	t.MarkDirty()
}

// AcceptChanges clears the flag
func (t *Tracker) AcceptChanges() {
	t.setDirty(false)
}

func (t *Tracker) setDirty(dirty bool) {
	t.mu.Lock()
	if t.dirty == dirty {
		t.mu.Unlock()
		return
	}
	t.dirty = dirty
	t.mu.Unlock()

	for _, fn := range t.dirtied.snapshot() {
		fn(dirty)
	}
}

// OnChanged subscribes to value-changed notifications
func (t *Tracker) OnChanged(fn func(field string)) (unsubscribe func()) {
	return t.changed.add(fn)
}

// OnDirtyChanged subscribes to transitions of the dirty flag
func (t *Tracker) OnDirtyChanged(fn func(dirty bool)) (unsubscribe func()) {
	return t.dirtied.add(fn)
}

// ObserverCount returns the number of attached listeners of both kinds
func (t *Tracker) ObserverCount() int {
	return t.changed.len() + t.dirtied.len()
}

// Set assigns value to *field when it differs and reports the change.
// It returns whether anything changed.
func Set[T comparable](t *Tracker, field *T, value T, name string) bool {
	if *field == value {
		return false
	}
	*field = value
	t.Changed(name)
	return true
}
