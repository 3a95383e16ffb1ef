package models

import (
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Defaults applied to a freshly added button
const (
	DefaultButtonName   = "Neuer Button"
	DefaultIconKey      = "tdesign_add"
	DefaultFillColor    = "#3A7BD5"
	DefaultHoverColor   = "#4C8EE6"
	DefaultPressedColor = "#2E5FA8"
)

// ButtonDefinition is the persisted configuration of one launcher button
type ButtonDefinition struct {
	ID           string `yaml:"id" json:"id"`
	Name         string `yaml:"name" json:"name"`
	Label        string `yaml:"label" json:"label"`
	IconKey      string `yaml:"icon_key" json:"icon_key"`
	ActionID     string `yaml:"action_id" json:"action_id"`
	FillColor    string `yaml:"fill_color" json:"fill_color"`
	HoverColor   string `yaml:"hover_color" json:"hover_color"`
	PressedColor string `yaml:"pressed_color" json:"pressed_color"`
	Enabled      bool   `yaml:"enabled" json:"enabled"`
	Order        int    `yaml:"order" json:"order"`
}

// UnmarshalYAML treats a missing enabled key as true
func (b *ButtonDefinition) UnmarshalYAML(value *yaml.Node) error {
	type plain ButtonDefinition
	p := plain{Enabled: true}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*b = ButtonDefinition(p)
	return nil
}

// NewID returns a fresh opaque button identifier
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewButtonDefinition returns a button with a new ID and the built-in defaults.
// The order is provisional until the owning list is normalized.
func NewButtonDefinition(order int) ButtonDefinition {
	return ButtonDefinition{
		ID:           NewID(),
		Name:         DefaultButtonName,
		Label:        "",
		IconKey:      DefaultIconKey,
		ActionID:     "",
		FillColor:    DefaultFillColor,
		HoverColor:   DefaultHoverColor,
		PressedColor: DefaultPressedColor,
		Enabled:      true,
		Order:        order,
	}
}

// DisplayName prefers the label, then the name, then the ID
func (b ButtonDefinition) DisplayName() string {
	if b.Label != "" {
		return b.Label
	}
	if b.Name != "" {
		return b.Name
	}
	return b.ID
}
