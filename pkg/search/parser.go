// Package search filters buttons with a small query language:
//
//	name:hub enabled:true
//	action:open_hub OR icon:tdesign_add
//	NOT enabled:false "lumi hub"
//
// Bare words match the name, label or ID. Conditions without an explicit
// operator are joined with AND and evaluated left to right.
package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lumi/lumi-bar/pkg/models"
)

// FieldType represents the field being searched
type FieldType string

const (
	FieldID      FieldType = "id"
	FieldName    FieldType = "name"
	FieldLabel   FieldType = "label"
	FieldIcon    FieldType = "icon"
	FieldAction  FieldType = "action"
	FieldColor   FieldType = "color"
	FieldEnabled FieldType = "enabled"
	FieldText    FieldType = "text"
)

// Operator represents a search operator
type Operator string

const (
	OperatorEquals   Operator = "="
	OperatorPrefix   Operator = "prefix"
	OperatorContains Operator = "contains"
	OperatorAND      Operator = "AND"
	OperatorOR       Operator = "OR"
)

// Condition represents a single search condition
type Condition struct {
	Field    FieldType
	Operator Operator
	Value    string
	Negate   bool
}

// Query represents a parsed search query
type Query struct {
	Conditions []Condition
	Logic      []Operator // between consecutive conditions
	Raw        string
}

// Parser handles parsing of search queries
type Parser struct {
	fieldPattern  *regexp.Regexp
	quotedPattern *regexp.Regexp
}

// NewParser creates a new search query parser
func NewParser() *Parser {
	return &Parser{
		fieldPattern:  regexp.MustCompile(`^(\w+):(.+)$`),
		quotedPattern: regexp.MustCompile(`^"([^"]*)"$`),
	}
}

// Parse parses a search query string into a Query
func (p *Parser) Parse(input string) (*Query, error) {
	query := &Query{Raw: input}

	tokens := p.tokenize(input)
	if err := p.parseTokens(tokens, query); err != nil {
		return nil, err
	}
	return query, nil
}

// tokenize splits on spaces outside double quotes
func (p *Parser) tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case (r == ' ' || r == '\t') && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}

func (p *Parser) parseTokens(tokens []string, query *Query) error {
	negateNext := false
	expectCondition := true

	for _, token := range tokens {
		switch strings.ToUpper(token) {
		case "AND", "OR":
			if expectCondition {
				return fmt.Errorf("unexpected operator %s", token)
			}
			query.Logic = append(query.Logic, Operator(strings.ToUpper(token)))
			expectCondition = true
			continue
		case "NOT":
			if negateNext {
				return fmt.Errorf("NOT NOT is not supported")
			}
			negateNext = true
			continue
		}

		cond, err := p.parseCondition(token)
		if err != nil {
			return err
		}
		cond.Negate = negateNext
		negateNext = false

		// Adjacent conditions are joined with AND
		if !expectCondition {
			query.Logic = append(query.Logic, OperatorAND)
		}
		query.Conditions = append(query.Conditions, cond)
		expectCondition = false
	}

	if negateNext {
		return fmt.Errorf("NOT operator requires a condition")
	}
	if len(query.Conditions) > 0 && expectCondition {
		return fmt.Errorf("operator %s requires a condition", query.Logic[len(query.Logic)-1])
	}
	return nil
}

func (p *Parser) parseCondition(token string) (Condition, error) {
	matches := p.fieldPattern.FindStringSubmatch(token)
	if len(matches) != 3 {
		return Condition{Field: FieldText, Operator: OperatorContains, Value: p.unquote(token)}, nil
	}

	field := strings.ToLower(matches[1])
	value := p.unquote(matches[2])

	switch field {
	case "id":
		return Condition{Field: FieldID, Operator: OperatorPrefix, Value: value}, nil
	case "name":
		return Condition{Field: FieldName, Operator: OperatorContains, Value: value}, nil
	case "label":
		return Condition{Field: FieldLabel, Operator: OperatorContains, Value: value}, nil
	case "icon":
		return Condition{Field: FieldIcon, Operator: OperatorEquals, Value: value}, nil
	case "action":
		return Condition{Field: FieldAction, Operator: OperatorEquals, Value: value}, nil
	case "color":
		return Condition{Field: FieldColor, Operator: OperatorEquals, Value: normalizeHex(value)}, nil
	case "enabled":
		enabled, err := models.ParseEnabled(value)
		if err != nil {
			return Condition{}, err
		}
		return Condition{Field: FieldEnabled, Operator: OperatorEquals, Value: fmt.Sprint(enabled)}, nil
	default:
		return Condition{}, fmt.Errorf("unknown field: %s", field)
	}
}

// unquote removes quotes from a string if present
func (p *Parser) unquote(s string) string {
	if matches := p.quotedPattern.FindStringSubmatch(s); len(matches) == 2 {
		return matches[1]
	}
	return s
}

func normalizeHex(s string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "#"))
}
