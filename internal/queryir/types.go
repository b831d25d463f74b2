package queryir

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rule is a node of a query tree.
//
// This is a sealed interface - only *Expression and *Condition implement it.
type Rule interface {
	ruleNode() // Marker method - seals interface to this package
}

// Operator is a comparison operator offered by the query builder.
type Operator string

// Operators understood by the query builder.
const (
	OpEqual          Operator = "="
	OpNotEqual       Operator = "!="
	OpLessThan       Operator = "<"
	OpLessOrEqual    Operator = "<="
	OpGreaterThan    Operator = ">"
	OpGreaterOrEqual Operator = ">="
	OpContains       Operator = "contains"
	OpLike           Operator = "like"
	OpStartsWith     Operator = "startswith"
	OpEndsWith       Operator = "endswith"
	OpIn             Operator = "in"
	OpNotIn          Operator = "not in"
)

// KnownOperators returns every operator the query builder can emit, in the
// order the builder lists them.
func KnownOperators() []Operator {
	return []Operator{
		OpEqual, OpNotEqual,
		OpLessThan, OpLessOrEqual,
		OpGreaterThan, OpGreaterOrEqual,
		OpContains, OpLike, OpStartsWith, OpEndsWith,
		OpIn, OpNotIn,
	}
}

// Valid reports whether op is one of KnownOperators.
func (op Operator) Valid() bool {
	for _, known := range KnownOperators() {
		if op == known {
			return true
		}
	}
	return false
}

// Connective joins the rules of a Condition.
type Connective string

// Connectives understood by the query builder.
const (
	And Connective = "and"
	Or  Connective = "or"
)

// UnknownConnective is rendered in place of a connective that is neither
// "and" nor "or".
const UnknownConnective = "UNKNOWN_CONNECTIVE"

var lower = cases.Lower(language.Und)

// Keyword returns the lower-cased keyword used between sibling rules.
// "AND" and "Or" are accepted; anything else yields UnknownConnective.
func (c Connective) Keyword() string {
	switch Connective(lower.String(string(c))) {
	case And:
		return string(And)
	case Or:
		return string(Or)
	default:
		return UnknownConnective
	}
}

// Valid reports whether the connective maps to a known keyword.
func (c Connective) Valid() bool {
	return c.Keyword() != UnknownConnective
}

// Expression is a leaf rule: field, operator and value.
//
// An Expression carries no entity of its own. Qualification with an entity
// name comes from the Condition that directly contains it.
type Expression struct {
	Field    string
	Operator Operator
	Value    Value
}

func (*Expression) ruleNode() {}

// Condition is an interior rule joining its child rules with a connective.
//
// Entity, when set, qualifies the field names of the Condition's direct
// Expression children ("entity.field"). It is not inherited further down.
type Condition struct {
	Connective Connective
	Entity     string
	Rules      []Rule
}

func (*Condition) ruleNode() {}

// CanCreate reports whether the condition holds no rules yet, which the
// portal presents as "create query".
func (c *Condition) CanCreate() bool {
	return c == nil || len(c.Rules) == 0
}

// CanEdit reports whether the condition holds at least one rule, which the
// portal presents as "edit query". Exactly one of CanCreate and CanEdit is
// true for any condition.
func (c *Condition) CanEdit() bool {
	return !c.CanCreate()
}

// NewCondition builds a Condition from rules.
func NewCondition(connective Connective, rules ...Rule) *Condition {
	return &Condition{Connective: connective, Rules: rules}
}

// NewExpression builds an Expression, classifying v with ValueOf.
func NewExpression(field string, op Operator, v any) *Expression {
	return &Expression{Field: field, Operator: op, Value: ValueOf(v)}
}
