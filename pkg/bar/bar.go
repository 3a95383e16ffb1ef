// Package bar projects a button configuration into the runtime buttons a bar
// shows. Icons, actions and colors come from pluggable resolvers.
package bar

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lumi/lumi-bar/pkg/models"
)

// Fallback is used for a color that failed to resolve
var Fallback = colorful.Color{R: 1, G: 1, B: 1}

// RuntimeButton is a resolved, enabled button
type RuntimeButton struct {
	ID      string
	Name    string
	Label   string
	Icon    Icon
	Fill    colorful.Color
	Hover   colorful.Color
	Pressed colorful.Color
	Action  Action
}

// Resolvers bundles the collaborators Build uses. Nil fields use defaults.
type Resolvers struct {
	Icons   IconResolver
	Actions ActionResolver
	Colors  ColorResolver
}

func (r Resolvers) withDefaults() Resolvers {
	if r.Icons == nil {
		r.Icons = DefaultIcons()
	}
	if r.Actions == nil {
		r.Actions = NewActionRegistry()
	}
	if r.Colors == nil {
		r.Colors = HexColors{}
	}
	return r
}

// Build returns the enabled buttons in order. Color failures do not drop a
// button: its color falls back and the failure is joined into the error.
func Build(cfg *models.Config, r Resolvers) ([]RuntimeButton, error) {
	if cfg == nil {
		return nil, nil
	}
	r = r.withDefaults()

	active := cfg.Active()
	out := make([]RuntimeButton, 0, len(active))
	var errs []error

	for _, def := range active {
		rb := RuntimeButton{
			ID:     def.ID,
			Name:   def.Name,
			Label:  def.Label,
			Icon:   r.Icons.Resolve(def.IconKey),
			Action: r.Actions.Resolve(def.ActionID),
		}

		slots := []struct {
			field string
			value string
			dst   *colorful.Color
		}{
			{models.FieldFillColor, def.FillColor, &rb.Fill},
			{models.FieldHoverColor, def.HoverColor, &rb.Hover},
			{models.FieldPressedColor, def.PressedColor, &rb.Pressed},
		}
		for _, slot := range slots {
			c, err := r.Colors.Resolve(slot.value)
			if err != nil {
				errs = append(errs, fmt.Errorf("button %s %s: %w", def.ID, slot.field, err))
				c = Fallback
			}
			*slot.dst = c
		}

		out = append(out, rb)
	}

	return out, errors.Join(errs...)
}
