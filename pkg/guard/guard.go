// Package guard protects a view holding unsaved edits from being left
// silently. Leaving the guarded view while it is dirty pauses the transition
// until the caller resolves it with Save, Discard or Cancel.
package guard

import (
	"errors"
	"fmt"
	"log/slog"
)

// View identifies a navigation target
type View string

// Exit is the reserved target used when the application is closing
const Exit View = "exit"

// Resolution answers an unsaved-changes prompt
type Resolution int

const (
	Save Resolution = iota
	Discard
	Cancel
)

func (r Resolution) String() string {
	switch r {
	case Save:
		return "save"
	case Discard:
		return "discard"
	case Cancel:
		return "cancel"
	default:
		return fmt.Sprintf("resolution(%d)", int(r))
	}
}

// Decision is the outcome of a navigation request
type Decision int

const (
	// Stay means the target is already active
	Stay Decision = iota
	// Proceed means the transition was applied
	Proceed
	// Pending means the guarded view is dirty and Resolve must be called
	Pending
	// Cancelled means the user kept the current view
	Cancelled
)

func (d Decision) String() string {
	switch d {
	case Stay:
		return "stay"
	case Proceed:
		return "proceed"
	case Pending:
		return "pending"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// ErrNothingPending is returned by Resolve without a pending transition
var ErrNothingPending = errors.New("no navigation pending")

// Dirtier is the state the guard protects
type Dirtier interface {
	IsDirty() bool
	Save() error
	Reload()
}

// suppressor is optionally implemented by a Dirtier. Navigation callbacks run
// inside its scope so that programmatic state changes are not seen as edits.
type suppressor interface {
	Suppress() (release func())
}

// Prompter asks the user how to resolve unsaved changes
type Prompter interface {
	Prompt(from, to View) Resolution
}

// PromptFunc adapts a function to Prompter
type PromptFunc func(from, to View) Resolution

func (f PromptFunc) Prompt(from, to View) Resolution { return f(from, to) }

// Guard tracks the active view. It is driven from one goroutine.
type Guard struct {
	dirtier Dirtier
	guarded View
	current View

	pending    View
	hasPending bool

	navigated []func(from, to View)
	logger    *slog.Logger
}

// Option configures a Guard
type Option func(*Guard)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(g *Guard) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a guard that protects the guarded view, starting at initial
func New(d Dirtier, guarded, initial View, opts ...Option) *Guard {
	g := &Guard{
		dirtier: d,
		guarded: guarded,
		current: initial,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "guard")
	return g
}

// Current returns the active view
func (g *Guard) Current() View {
	return g.current
}

// Guarded returns the protected view
func (g *Guard) Guarded() View {
	return g.guarded
}

// Pending returns the target awaiting resolution
func (g *Guard) Pending() (View, bool) {
	return g.pending, g.hasPending
}

// Closed reports whether an exit was approved
func (g *Guard) Closed() bool {
	return g.current == Exit
}

// OnNavigate registers a callback for applied transitions
func (g *Guard) OnNavigate(fn func(from, to View)) {
	g.navigated = append(g.navigated, fn)
}

// Request asks to move to target. A dirty guarded view makes the request
// Pending; a later request replaces the pending target.
func (g *Guard) Request(target View) Decision {
	if target == g.current {
		g.clearPending()
		return Stay
	}

	if g.current != g.guarded || !g.dirtier.IsDirty() {
		g.apply(target)
		return Proceed
	}

	g.pending = target
	g.hasPending = true
	g.logger.Debug("navigation pending", "from", g.current, "to", target)
	return Pending
}

// RequestClose runs the same protocol for closing the application
func (g *Guard) RequestClose() Decision {
	return g.Request(Exit)
}

// Resolve completes a pending transition. A failed save keeps the current
// view and returns the error.
func (g *Guard) Resolve(r Resolution) (Decision, error) {
	if !g.hasPending {
		return Stay, ErrNothingPending
	}
	target := g.pending
	g.clearPending()

	switch r {
	case Save:
		if err := g.dirtier.Save(); err != nil {
			g.logger.Warn("save before navigation failed", "to", target, "error", err)
			return Stay, err
		}
	case Discard:
		g.dirtier.Reload()
	case Cancel:
		g.logger.Debug("navigation cancelled", "to", target)
		return Cancelled, nil
	default:
		return Stay, fmt.Errorf("unknown resolution %v", r)
	}

	g.apply(target)
	return Proceed, nil
}

// Navigate requests target and, when pending, resolves it with p
func (g *Guard) Navigate(target View, p Prompter) (Decision, error) {
	d := g.Request(target)
	if d != Pending {
		return d, nil
	}
	return g.Resolve(p.Prompt(g.current, target))
}

func (g *Guard) clearPending() {
	g.pending = ""
	g.hasPending = false
}

func (g *Guard) apply(target View) {
	from := g.current
	g.current = target

	if s, ok := g.dirtier.(suppressor); ok {
		release := s.Suppress()
		defer release()
	}
	for _, fn := range g.navigated {
		fn(from, target)
	}
	g.logger.Debug("navigated", "from", from, "to", target)
}
