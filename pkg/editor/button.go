package editor

import (
	"github.com/lumi/lumi-bar/pkg/models"
	"github.com/lumi/lumi-bar/pkg/signals"
	"github.com/lumi/lumi-bar/pkg/tracking"
)

// Button is an editable button definition. Setters ignore equal values; an
// effective change notifies value-changed listeners, raises the dirty flag
// (unless suppressed) and schedules a Preview.
type Button struct {
	def     models.ButtonDefinition
	tracker *tracking.Tracker
	hub     *signals.Hub
}

func newButton(def models.ButtonDefinition) *Button {
	return &Button{
		def:     def,
		tracker: tracking.NewTracker(nil),
	}
}

func (b *Button) ID() string { return b.def.ID }
func (b *Button) Name() string { return b.def.Name }
func (b *Button) Label() string { return b.def.Label }
func (b *Button) IconKey() string { return b.def.IconKey }
func (b *Button) ActionID() string { return b.def.ActionID }
func (b *Button) FillColor() string { return b.def.FillColor }
func (b *Button) HoverColor() string { return b.def.HoverColor }
func (b *Button) PressedColor() string { return b.def.PressedColor }
func (b *Button) Enabled() bool { return b.def.Enabled }
func (b *Button) Order() int { return b.def.Order }

// Definition returns a copy of the current values
func (b *Button) Definition() models.ButtonDefinition {
	return b.def
}

func (b *Button) SetName(v string) { b.setString(&b.def.Name, v, models.FieldName) }
func (b *Button) SetLabel(v string) { b.setString(&b.def.Label, v, models.FieldLabel) }
func (b *Button) SetIconKey(v string) { b.setString(&b.def.IconKey, v, models.FieldIconKey) }
func (b *Button) SetActionID(v string) { b.setString(&b.def.ActionID, v, models.FieldActionID) }
func (b *Button) SetFillColor(v string) { b.setString(&b.def.FillColor, v, models.FieldFillColor) }
func (b *Button) SetHoverColor(v string) { b.setString(&b.def.HoverColor, v, models.FieldHoverColor) }
func (b *Button) SetPressedColor(v string) { b.setString(&b.def.PressedColor, v, models.FieldPressedColor) }

func (b *Button) SetEnabled(v bool) {
	if tracking.Set(b.tracker, &b.def.Enabled, v, models.FieldEnabled) {
		b.hub.NotifyPreview()
	}
}

// SetField assigns a field by name, as used by the CLI and the form editor
func (b *Button) SetField(field, value string) error {
	name, err := models.NormalizeFieldName(field)
	if err != nil {
		return err
	}

	switch name {
	case models.FieldName:
		b.SetName(value)
	case models.FieldLabel:
		b.SetLabel(value)
	case models.FieldIconKey:
		b.SetIconKey(value)
	case models.FieldActionID:
		b.SetActionID(value)
	case models.FieldFillColor:
		b.SetFillColor(value)
	case models.FieldHoverColor:
		b.SetHoverColor(value)
	case models.FieldPressedColor:
		b.SetPressedColor(value)
	case models.FieldEnabled:
		enabled, err := models.ParseEnabled(value)
		if err != nil {
			return err
		}
		b.SetEnabled(enabled)
	}
	return nil
}

// IsDirty reports whether a field changed since the last clean point
func (b *Button) IsDirty() bool {
	return b.tracker.IsDirty()
}

// AcceptChanges marks the button clean
func (b *Button) AcceptChanges() {
	b.tracker.AcceptChanges()
}

// OnChanged subscribes to field changes, including suppressed ones
func (b *Button) OnChanged(fn func(field string)) (unsubscribe func()) {
	return b.tracker.OnChanged(fn)
}

func (b *Button) setString(field *string, v, name string) {
	if tracking.Set(b.tracker, field, v, name) {
		b.hub.NotifyPreview()
	}
}

// setOrder is bookkeeping done by normalization, not an edit
func (b *Button) setOrder(order int) {
	b.def.Order = order
}
