// Package meql renders query trees as MEQL, the indented boolean-query text
// shown next to a data specification and diffed against saved query text.
//
// Output uses "\r\n" line endings and one tab per nesting level. Consumers
// compare it byte for byte, so both are part of the format.
package meql

import (
	"strings"

	"github.com/roach88/dataspec/internal/queryir"
)

const (
	lineBreak = "\r\n"
	indent    = "\t"
)

// Compile renders a rule tree as MEQL.
//
// A Condition with rules renders as a parenthesised block; a Condition with
// no rules and a nil rule both render as "". A bare Expression renders on a
// single line without parentheses.
func Compile(rule queryir.Rule) string {
	switch r := rule.(type) {
	case *queryir.Condition:
		return compileCondition(r, 1)
	case *queryir.Expression:
		if r == nil {
			return ""
		}
		return compileExpression(r, "")
	default:
		return ""
	}
}

// CompileJSON decodes a query-builder JSON blob and renders it. Malformed
// JSON renders as "".
func CompileJSON(data []byte) string {
	rule, err := queryir.Decode(data)
	if err != nil {
		return ""
	}
	return Compile(rule)
}

// CompileAny renders an already-decoded query-builder tree.
func CompileAny(v any) string {
	return Compile(queryir.FromAny(v))
}

// compileCondition renders the rules of cond at the given depth. Nested
// conditions with nothing to render are skipped along with their connective.
func compileCondition(cond *queryir.Condition, depth int) string {
	if cond == nil {
		return ""
	}

	lines := make([]string, 0, len(cond.Rules))
	for _, rule := range cond.Rules {
		var line string
		switch r := rule.(type) {
		case *queryir.Condition:
			line = compileCondition(r, depth+1)
		case *queryir.Expression:
			if r != nil {
				line = compileExpression(r, cond.Entity)
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return ""
	}

	keyword := cond.Connective.Keyword()
	tabs := strings.Repeat(indent, depth)

	var b strings.Builder
	b.WriteString("(")
	for i, line := range lines {
		b.WriteString(lineBreak)
		b.WriteString(tabs)
		if i > 0 {
			b.WriteString(keyword)
			b.WriteString(" ")
		}
		b.WriteString(line)
	}
	b.WriteString(lineBreak)
	b.WriteString(strings.Repeat(indent, depth-1))
	b.WriteString(")")
	return b.String()
}

// compileExpression renders `"<entity>.<field>" <op> <value>`. The entity
// comes from the enclosing condition.
func compileExpression(expr *queryir.Expression, entity string) string {
	field := expr.Field
	if entity != "" {
		field = entity + "." + field
	}

	var b strings.Builder
	b.WriteString(`"`)
	b.WriteString(field)
	b.WriteString(`" `)
	b.WriteString(string(expr.Operator))
	b.WriteString(" ")
	b.WriteString(FormatValue(expr.Value))
	return b.String()
}
