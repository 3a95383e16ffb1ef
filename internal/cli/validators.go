package cli

import (
	"fmt"
	"strings"

	"github.com/lumi/lumi-bar/pkg/bar"
	"github.com/lumi/lumi-bar/pkg/models"
)

// Direction is a move direction
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection validates a move direction
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Up, "u":
		return Up, nil
	case Down, "d":
		return Down, nil
	default:
		return "", fmt.Errorf("invalid direction: %s (must be: up or down)", s)
	}
}

// ValidateFieldValue checks a value before it reaches the editor. Colors are
// checked here so the CLI refuses what the bar could not render; the editor
// itself accepts any string.
func ValidateFieldValue(field, value string) (string, error) {
	name, err := models.NormalizeFieldName(field)
	if err != nil {
		return "", fmt.Errorf("%w (must be one of: %s)", err, strings.Join(models.EditableFields, ", "))
	}

	switch name {
	case models.FieldFillColor, models.FieldHoverColor, models.FieldPressedColor:
		if _, err := (bar.HexColors{}).Resolve(value); err != nil {
			return "", err
		}
	case models.FieldEnabled:
		if _, err := models.ParseEnabled(value); err != nil {
			return "", err
		}
	}

	return name, nil
}
