package bar

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Icon is a renderable glyph for an icon key. The zero Icon renders nothing.
type Icon struct {
	Key   string
	Glyph string
}

// IsZero reports whether the icon is the neutral fallback
func (i Icon) IsZero() bool {
	return i.Glyph == ""
}

// IconResolver maps an icon key to an Icon. Unknown keys give the zero Icon.
type IconResolver interface {
	Resolve(key string) Icon
}

// IconSet is a fixed key to glyph table
type IconSet map[string]string

// DefaultIcons covers the keys the built-in buttons use
func DefaultIcons() IconSet {
	return IconSet{
		"tdesign_add":              "+",
		"tdesign_houses_2":         "⌂",
		"tdesign_setting_1_filled": "⚙",
		"tdesign_poweroff":         "⏻",
	}
}

func (s IconSet) Resolve(key string) Icon {
	glyph, ok := s[strings.TrimSpace(key)]
	if !ok {
		return Icon{}
	}
	return Icon{Key: key, Glyph: glyph}
}

// Action is what a button runs when pressed
type Action func() error

func noop() error { return nil }

// ActionResolver maps an action ID to an Action. Unknown IDs give a no-op.
type ActionResolver interface {
	Resolve(id string) Action
}

// ActionRegistry is a concurrency-safe ActionResolver
type ActionRegistry struct {
	mu      sync.RWMutex
	actions map[string]Action
}

// NewActionRegistry creates an empty registry
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{actions: make(map[string]Action)}
}

// Register binds id to fn, replacing any earlier binding
func (r *ActionRegistry) Register(id string, fn Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[id] = fn
}

// Known reports whether id has a binding
func (r *ActionRegistry) Known(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.actions[id]
	return ok
}

func (r *ActionRegistry) Resolve(id string) Action {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if fn, ok := r.actions[id]; ok && fn != nil {
		return fn
	}
	return noop
}

// ColorError reports a color string that cannot be rendered
type ColorError struct {
	Value string
	Err   error
}

func (e *ColorError) Error() string {
	return fmt.Sprintf("invalid color %q: %v", e.Value, e.Err)
}

func (e *ColorError) Unwrap() error {
	return e.Err
}

// ColorResolver turns a stored color string into a color
type ColorResolver interface {
	Resolve(value string) (colorful.Color, error)
}

// HexColors accepts #rgb and #rrggbb, with or without the leading #
type HexColors struct{}

func (HexColors) Resolve(value string) (colorful.Color, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return colorful.Color{}, &ColorError{Value: value, Err: fmt.Errorf("empty")}
	}
	if !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return colorful.Color{}, &ColorError{Value: value, Err: err}
	}
	return c, nil
}
