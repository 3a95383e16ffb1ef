package models

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Buttons) != 2 {
		t.Fatalf("DefaultConfig() has %d buttons, want 2", len(cfg.Buttons))
	}

	hub, manage := cfg.Buttons[0], cfg.Buttons[1]
	if hub.ID != HubButtonID || hub.Name != "Lumi Hub" || hub.ActionID != "open_hub" || hub.Order != 0 {
		t.Errorf("unexpected hub button: %+v", hub)
	}
	if manage.ID != ManageButtonsID || manage.Name != "Buttons verwalten" ||
		manage.ActionID != "open_lumibar_button_management" || manage.Order != 1 {
		t.Errorf("unexpected manage button: %+v", manage)
	}

	// Each call returns an independent value
	cfg.Buttons[0].Name = "changed"
	if DefaultConfig().Buttons[0].Name != "Lumi Hub" {
		t.Error("DefaultConfig() shares state between calls")
	}
}

func TestNewButtonDefinition(t *testing.T) {
	a := NewButtonDefinition(3)
	b := NewButtonDefinition(3)

	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected unique non-empty IDs, got %q and %q", a.ID, b.ID)
	}
	if len(a.ID) != 32 {
		t.Errorf("ID length = %d, want 32", len(a.ID))
	}
	if a.Name != DefaultButtonName || a.IconKey != DefaultIconKey || !a.Enabled || a.Order != 3 {
		t.Errorf("unexpected defaults: %+v", a)
	}
}

func TestNormalizeOrder(t *testing.T) {
	tests := []struct {
		name   string
		orders []int
		want   []string
	}{
		{"empty", nil, nil},
		{"already normalized", []int{0, 1, 2}, []string{"a", "b", "c"}},
		{"gaps", []int{5, 10, 20}, []string{"a", "b", "c"}},
		{"reversed", []int{2, 1, 0}, []string{"c", "b", "a"}},
		{"duplicates keep list position", []int{1, 0, 1}, []string{"b", "a", "c"}},
		{"negative", []int{0, -4, 7}, []string{"b", "a", "c"}},
	}

	ids := []string{"a", "b", "c"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			for i, order := range tt.orders {
				cfg.Buttons = append(cfg.Buttons, ButtonDefinition{ID: ids[i], Order: order})
			}

			cfg.NormalizeOrder()

			for i, b := range cfg.Buttons {
				if b.Order != i {
					t.Errorf("Buttons[%d].Order = %d, want %d", i, b.Order, i)
				}
				if b.ID != tt.want[i] {
					t.Errorf("Buttons[%d].ID = %q, want %q", i, b.ID, tt.want[i])
				}
			}
		})
	}
}

func TestActive(t *testing.T) {
	cfg := &Config{Buttons: []ButtonDefinition{
		{ID: "x", Enabled: true, Order: 2},
		{ID: "y", Enabled: false, Order: 0},
		{ID: "z", Enabled: true, Order: 1},
	}}

	active := cfg.Active()
	if len(active) != 2 || active[0].ID != "z" || active[1].ID != "x" {
		t.Errorf("Active() = %+v, want z then x", active)
	}
	// Projection must not reorder the source
	if cfg.Buttons[0].ID != "x" {
		t.Error("Active() mutated the config")
	}
}

func TestNormalizeFieldName(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"name", FieldName, false},
		{"Label", FieldLabel, false},
		{"icon-key", FieldIconKey, false},
		{"iconkey", FieldIconKey, false},
		{"fill_color", FieldFillColor, false},
		{" enabled ", FieldEnabled, false},
		{"id", "", true},
		{"order", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeFieldName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeFieldName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownField) {
				t.Errorf("expected ErrUnknownField, got %v", err)
			}
			if got != tt.want {
				t.Errorf("NormalizeFieldName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseEnabled(t *testing.T) {
	for _, in := range []string{"true", "YES", "on", "1"} {
		if v, err := ParseEnabled(in); err != nil || !v {
			t.Errorf("ParseEnabled(%q) = %v, %v", in, v, err)
		}
	}
	for _, in := range []string{"false", "no", "OFF", "0"} {
		if v, err := ParseEnabled(in); err != nil || v {
			t.Errorf("ParseEnabled(%q) = %v, %v", in, v, err)
		}
	}
	if _, err := ParseEnabled("maybe"); err == nil {
		t.Error("ParseEnabled(maybe) should fail")
	}
}

func TestButtonDefinition_UnmarshalYAMLEnabledDefault(t *testing.T) {
	var cfg Config
	in := "buttons:\n  - {id: a}\n  - {id: b, enabled: false}\n  - {id: c, enabled: true}\n"
	if err := yaml.Unmarshal([]byte(in), &cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	want := []bool{true, false, true}
	for i, b := range cfg.Buttons {
		if b.Enabled != want[i] {
			t.Errorf("button %s enabled = %v, want %v", b.ID, b.Enabled, want[i])
		}
	}
}
