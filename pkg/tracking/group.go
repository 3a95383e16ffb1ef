package tracking

import "sync"

// Group is the dirty state of a collection: its own flag, raised by structural
// changes, ORed with the flags of its members. Members share the group's
// suppressor while attached.
type Group struct {
	suppressor *Suppressor
	own        *Tracker

	mu      sync.Mutex
	members map[*Tracker]func()
	last    bool

	dirtied listeners[func(dirty bool)]
}

// NewGroup creates a clean, empty group
func NewGroup() *Group {
	s := &Suppressor{}
	g := &Group{
		suppressor: s,
		own:        NewTracker(s),
		members:    make(map[*Tracker]func()),
	}
	g.own.OnDirtyChanged(func(bool) { g.refresh() })
	return g
}

// Suppressor returns the suppressor shared with attached members
func (g *Group) Suppressor() *Suppressor {
	return g.suppressor
}

// Suppress opens a scope covering the group and every attached member
func (g *Group) Suppress() (release func()) {
	return g.suppressor.Suppress()
}

// Attach adds a member and subscribes to its dirty transitions
func (g *Group) Attach(t *Tracker) {
	g.mu.Lock()
	if _, ok := g.members[t]; ok {
		g.mu.Unlock()
		return
	}
	t.Bind(g.suppressor)
	g.members[t] = t.OnDirtyChanged(func(bool) { g.refresh() })
	g.mu.Unlock()

	g.refresh()
}

// Detach removes a member, drops the group's subscription on it and gives it
// a private suppressor again
func (g *Group) Detach(t *Tracker) {
	g.mu.Lock()
	unsubscribe, ok := g.members[t]
	if ok {
		delete(g.members, t)
	}
	g.mu.Unlock()

	if !ok {
		return
	}
	unsubscribe()
	t.Bind(nil)
	g.refresh()
}

// Len returns the number of attached members
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.members)
}

// MarkDirty raises the group's own flag unless suppressed
func (g *Group) MarkDirty() {
	g.own.MarkDirty()
}

// OwnDirty reports only the group's own flag
func (g *Group) OwnDirty() bool {
	return g.own.IsDirty()
}

// IsDirty reports the own flag ORed with every member
func (g *Group) IsDirty() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.computeLocked()
}

func (g *Group) computeLocked() bool {
	if g.own.IsDirty() {
		return true
	}
	for member := range g.members {
		if member.IsDirty() {
			return true
		}
	}
	return false
}

// AcceptChanges clears the own flag and every member's flag
func (g *Group) AcceptChanges() {
	g.mu.Lock()
	members := make([]*Tracker, 0, len(g.members))
	for member := range g.members {
		members = append(members, member)
	}
	g.mu.Unlock()

	for _, member := range members {
		member.AcceptChanges()
	}
	g.own.AcceptChanges()
}

// OnDirtyChanged subscribes to transitions of the aggregated state
func (g *Group) OnDirtyChanged(fn func(dirty bool)) (unsubscribe func()) {
	return g.dirtied.add(fn)
}

func (g *Group) refresh() {
	g.mu.Lock()
	now := g.computeLocked()
	changed := now != g.last
	g.last = now
	g.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range g.dirtied.snapshot() {
		fn(now)
	}
}
