package queryir

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decode parses a query-builder JSON blob into a Rule.
//
// Returns (nil, nil) when the JSON is well-formed but is not shaped like a
// condition or an expression. Only malformed JSON is an error.
func Decode(data []byte) (Rule, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode query: %w", err)
	}
	return FromAny(raw), nil
}

// FromAny classifies an already-decoded tree (JSON or YAML) into a Rule.
//
// Classification order:
//  1. an object with a "rules" key is a Condition
//  2. an object with any of "field", "operator", "value" is an Expression
//  3. an object with only a "condition" key is an empty Condition
//  4. anything else is nil
//
// Child rules that classify as nil are dropped from their parent.
func FromAny(v any) Rule {
	switch val := v.(type) {
	case Rule:
		return val
	case map[any]any:
		return FromAny(stringKeys(val))
	case map[string]any:
		return ruleFromMap(val)
	default:
		return nil
	}
}

func ruleFromMap(m map[string]any) Rule {
	if raw, ok := m["rules"]; ok {
		cond := conditionHeader(m)
		items, _ := raw.([]any)
		for _, item := range items {
			if child := FromAny(item); child != nil {
				cond.Rules = append(cond.Rules, child)
			}
		}
		return cond
	}

	_, hasField := m["field"]
	_, hasOperator := m["operator"]
	_, hasValue := m["value"]
	if hasField || hasOperator || hasValue {
		return &Expression{
			Field:    stringOf(m["field"]),
			Operator: Operator(stringOf(m["operator"])),
			Value:    ValueOf(m["value"]),
		}
	}

	if _, ok := m["condition"]; ok {
		return conditionHeader(m)
	}
	return nil
}

func conditionHeader(m map[string]any) *Condition {
	return &Condition{
		Connective: Connective(stringOf(m["condition"])),
		Entity:     stringOf(m["entity"]),
	}
}

// stringOf returns s for strings and "" for nil. Other scalars keep their
// printed form so that a numeric field name still renders.
func stringOf(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// asMap normalises the two map shapes produced by JSON and YAML decoding.
func asMap(v any) (map[string]any, bool) {
	switch val := v.(type) {
	case map[string]any:
		return val, true
	case map[any]any:
		return stringKeys(val), true
	default:
		return nil, false
	}
}

func stringKeys(m map[any]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[fmt.Sprint(k)] = v
	}
	return out
}

// MarshalJSON encodes the condition in query-builder shape.
func (c *Condition) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionObject(c))
}

// UnmarshalJSON decodes a query-builder condition. A blob that is not shaped
// like a condition leaves c empty.
func (c *Condition) UnmarshalJSON(data []byte) error {
	rule, err := Decode(data)
	if err != nil {
		return err
	}
	*c = Condition{}
	if cond, ok := rule.(*Condition); ok {
		*c = *cond
	}
	return nil
}

// MarshalJSON encodes the expression in query-builder shape.
func (e *Expression) MarshalJSON() ([]byte, error) {
	return json.Marshal(expressionObject(e))
}

// UnmarshalJSON decodes a query-builder expression.
func (e *Expression) UnmarshalJSON(data []byte) error {
	rule, err := Decode(data)
	if err != nil {
		return err
	}
	expr, ok := rule.(*Expression)
	if !ok {
		return fmt.Errorf("decode expression: not an expression")
	}
	*e = *expr
	return nil
}

// ToAny converts a rule to its plain query-builder form (maps, slices and
// scalars), the inverse of FromAny.
func ToAny(rule Rule) any {
	switch r := rule.(type) {
	case *Condition:
		if r == nil {
			return nil
		}
		return conditionObject(r)
	case *Expression:
		if r == nil {
			return nil
		}
		return expressionObject(r)
	default:
		return nil
	}
}

func conditionObject(c *Condition) map[string]any {
	rules := make([]any, 0, len(c.Rules))
	for _, r := range c.Rules {
		if obj := ToAny(r); obj != nil {
			rules = append(rules, obj)
		}
	}
	obj := map[string]any{
		"condition": string(c.Connective),
		"rules":     rules,
	}
	if c.Entity != "" {
		obj["entity"] = c.Entity
	}
	return obj
}

func expressionObject(e *Expression) map[string]any {
	return map[string]any{
		"field":    e.Field,
		"operator": string(e.Operator),
		"value":    literal(e.Value),
	}
}
