package search

import (
	"fmt"
	"strings"

	"github.com/lumi/lumi-bar/pkg/models"
)

// Match reports whether def satisfies the query. An empty query matches
// everything.
func (q *Query) Match(def models.ButtonDefinition) bool {
	if len(q.Conditions) == 0 {
		return true
	}

	result := q.Conditions[0].match(def)
	for i := 1; i < len(q.Conditions); i++ {
		next := q.Conditions[i].match(def)
		switch q.Logic[i-1] {
		case OperatorOR:
			result = result || next
		default:
			result = result && next
		}
	}
	return result
}

func (c Condition) match(def models.ButtonDefinition) bool {
	var ok bool
	switch c.Field {
	case FieldID:
		ok = strings.HasPrefix(strings.ToLower(def.ID), strings.ToLower(c.Value))
	case FieldName:
		ok = containsFold(def.Name, c.Value)
	case FieldLabel:
		ok = containsFold(def.Label, c.Value)
	case FieldIcon:
		ok = strings.EqualFold(def.IconKey, c.Value)
	case FieldAction:
		ok = strings.EqualFold(def.ActionID, c.Value)
	case FieldColor:
		ok = normalizeHex(def.FillColor) == c.Value ||
			normalizeHex(def.HoverColor) == c.Value ||
			normalizeHex(def.PressedColor) == c.Value
	case FieldEnabled:
		ok = fmt.Sprint(def.Enabled) == c.Value
	case FieldText:
		ok = containsFold(def.Name, c.Value) ||
			containsFold(def.Label, c.Value) ||
			containsFold(def.ID, c.Value)
	}

	if c.Negate {
		return !ok
	}
	return ok
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Filter returns the buttons matching query, keeping their order
func Filter(defs []models.ButtonDefinition, query string) ([]models.ButtonDefinition, error) {
	if strings.TrimSpace(query) == "" {
		return defs, nil
	}

	q, err := NewParser().Parse(query)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", query, err)
	}

	out := make([]models.ButtonDefinition, 0, len(defs))
	for _, def := range defs {
		if q.Match(def) {
			out = append(out, def)
		}
	}
	return out, nil
}
