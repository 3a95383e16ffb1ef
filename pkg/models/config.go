package models

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Config is the persisted button list
type Config struct {
	Buttons []ButtonDefinition `yaml:"buttons" json:"buttons"`
}

// Fixed identifiers of the built-in buttons
const (
	HubButtonID        = "lumi-hub"
	ManageButtonsID    = "lumi-buttons"
	OpenHubAction      = "open_hub"
	ManageButtonAction = "open_lumibar_button_management"
)

// DefaultConfig returns the built-in configuration used when no usable file exists
func DefaultConfig() *Config {
	return &Config{
		Buttons: []ButtonDefinition{
			{
				ID:           HubButtonID,
				Name:         "Lumi Hub",
				Label:        "Hub",
				IconKey:      "tdesign_houses_2",
				ActionID:     OpenHubAction,
				FillColor:    "#3FAE6A",
				HoverColor:   "#52C47A",
				PressedColor: "#2F8E56",
				Enabled:      true,
				Order:        0,
			},
			{
				ID:           ManageButtonsID,
				Name:         "Buttons verwalten",
				Label:        "Buttons",
				IconKey:      "tdesign_setting_1_filled",
				ActionID:     ManageButtonAction,
				FillColor:    DefaultFillColor,
				HoverColor:   DefaultHoverColor,
				PressedColor: DefaultPressedColor,
				Enabled:      true,
				Order:        1,
			},
		},
	}
}

// NormalizeOrder sorts the buttons by their stored order (stable, so ties keep
// list position) and rewrites Order to match the index.
func (c *Config) NormalizeOrder() {
	sort.SliceStable(c.Buttons, func(i, j int) bool {
		return c.Buttons[i].Order < c.Buttons[j].Order
	})
	for i := range c.Buttons {
		c.Buttons[i].Order = i
	}
}

// Clone returns a deep copy
func (c *Config) Clone() *Config {
	out := &Config{Buttons: make([]ButtonDefinition, len(c.Buttons))}
	copy(out.Buttons, c.Buttons)
	return out
}

// Find returns the button with the given ID
func (c *Config) Find(id string) (ButtonDefinition, bool) {
	for _, b := range c.Buttons {
		if b.ID == id {
			return b, true
		}
	}
	return ButtonDefinition{}, false
}

// Active returns the enabled buttons in order
func (c *Config) Active() []ButtonDefinition {
	ordered := c.Clone()
	ordered.NormalizeOrder()

	var active []ButtonDefinition
	for _, b := range ordered.Buttons {
		if b.Enabled {
			active = append(active, b)
		}
	}
	return active
}

// Field names accepted by SetField
const (
	FieldName         = "name"
	FieldLabel        = "label"
	FieldIconKey      = "icon_key"
	FieldActionID     = "action_id"
	FieldFillColor    = "fill_color"
	FieldHoverColor   = "hover_color"
	FieldPressedColor = "pressed_color"
	FieldEnabled      = "enabled"
)

// EditableFields lists the user editable fields in display order
var EditableFields = []string{
	FieldName,
	FieldLabel,
	FieldIconKey,
	FieldActionID,
	FieldFillColor,
	FieldHoverColor,
	FieldPressedColor,
	FieldEnabled,
}

// ErrUnknownField is returned for a field name not in EditableFields
var ErrUnknownField = errors.New("unknown field")

// NormalizeFieldName accepts dashed and camel-ish variants ("icon-key", "iconkey")
func NormalizeFieldName(field string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(field))
	f = strings.ReplaceAll(f, "-", "_")
	for _, known := range EditableFields {
		if f == known || f == strings.ReplaceAll(known, "_", "") {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownField, field)
}

// FieldValue returns the string form of a field
func (b ButtonDefinition) FieldValue(field string) string {
	switch field {
	case FieldName:
		return b.Name
	case FieldLabel:
		return b.Label
	case FieldIconKey:
		return b.IconKey
	case FieldActionID:
		return b.ActionID
	case FieldFillColor:
		return b.FillColor
	case FieldHoverColor:
		return b.HoverColor
	case FieldPressedColor:
		return b.PressedColor
	case FieldEnabled:
		return strconv.FormatBool(b.Enabled)
	}
	return ""
}

// ParseEnabled parses the string form of the enabled flag
func ParseEnabled(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", value)
}
