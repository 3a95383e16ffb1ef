package search

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple tokens",
			input:    "name:hub enabled:true",
			expected: []string{"name:hub", "enabled:true"},
		},
		{
			name:     "quoted value",
			input:    `name:"lumi hub" icon:tdesign_add`,
			expected: []string{`name:"lumi hub"`, "icon:tdesign_add"},
		},
		{
			name:     "logical operators",
			input:    "action:open_hub OR  enabled:false",
			expected: []string{"action:open_hub", "OR", "enabled:false"},
		},
		{
			name:     "empty",
			input:    "   ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("tokenize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParse(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name       string
		query      string
		conditions []Condition
		logic      []Operator
	}{
		{
			name:       "bare word",
			query:      "hub",
			conditions: []Condition{{Field: FieldText, Operator: OperatorContains, Value: "hub"}},
		},
		{
			name:  "implicit AND",
			query: "name:hub enabled:yes",
			conditions: []Condition{
				{Field: FieldName, Operator: OperatorContains, Value: "hub"},
				{Field: FieldEnabled, Operator: OperatorEquals, Value: "true"},
			},
			logic: []Operator{OperatorAND},
		},
		{
			name:  "OR and NOT",
			query: `icon:tdesign_add or NOT label:"Hub"`,
			conditions: []Condition{
				{Field: FieldIcon, Operator: OperatorEquals, Value: "tdesign_add"},
				{Field: FieldLabel, Operator: OperatorContains, Value: "Hub", Negate: true},
			},
			logic: []Operator{OperatorOR},
		},
		{
			name:       "color is normalized",
			query:      "color:#3A7BD5",
			conditions: []Condition{{Field: FieldColor, Operator: OperatorEquals, Value: "3a7bd5"}},
		},
		{
			name:       "id prefix",
			query:      "id:lumi",
			conditions: []Condition{{Field: FieldID, Operator: OperatorPrefix, Value: "lumi"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := parser.Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.query, err)
			}
			if !reflect.DeepEqual(q.Conditions, tt.conditions) {
				t.Errorf("conditions = %+v, want %+v", q.Conditions, tt.conditions)
			}
			if !reflect.DeepEqual(q.Logic, tt.logic) {
				t.Errorf("logic = %v, want %v", q.Logic, tt.logic)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	parser := NewParser()

	for _, query := range []string{
		"AND name:hub",
		"name:hub OR",
		"name:hub NOT",
		"NOT NOT name:hub",
		"colour:red",
		"enabled:maybe",
		"name:hub AND OR label:x",
	} {
		t.Run(query, func(t *testing.T) {
			if _, err := parser.Parse(query); err == nil {
				t.Errorf("Parse(%q) should fail", query)
			}
		})
	}
}
