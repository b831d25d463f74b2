package queryir

import (
	"fmt"
	"strings"
)

// ValidationResult reports problems found in a query tree.
//
// Warnings never block rendering: a tree with warnings still compiles, it
// just may not mean what the author intended.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings,omitempty"`
}

// Validate walks the tree and reports unknown operators, unknown
// connectives, empty field names and nil rules. Each warning is prefixed
// with the path of the offending rule ("rules[2].rules[0]").
func Validate(rule Rule) ValidationResult {
	issues := Inspect(rule)
	result := ValidationResult{Valid: len(issues) == 0}
	for _, issue := range issues {
		result.Warnings = append(result.Warnings, issue.String())
	}
	return result
}

// IssueKind classifies a problem found by Inspect.
type IssueKind int

const (
	IssueEmptyQuery IssueKind = iota + 1
	IssueNilRule
	IssueEmptyField
	IssueUnknownOperator
	IssueUnknownConnective
)

// Issue is one problem in a query tree.
type Issue struct {
	Path   string
	Kind   IssueKind
	Detail string
}

// Message describes the issue without its path.
func (i Issue) Message() string {
	switch i.Kind {
	case IssueEmptyQuery:
		return "query is not a condition or an expression"
	case IssueNilRule:
		return "nil rule"
	case IssueEmptyField:
		return "empty field name"
	case IssueUnknownOperator:
		return fmt.Sprintf("unknown operator %q", i.Detail)
	case IssueUnknownConnective:
		return fmt.Sprintf("unknown connective %q", i.Detail)
	default:
		return i.Detail
	}
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message()
	}
	return i.Path + ": " + i.Message()
}

// Inspect returns every issue in the tree in depth-first order.
//
// A connective is only checked when the condition has more than one rule,
// since it is never rendered otherwise.
func Inspect(rule Rule) []Issue {
	v := &inspector{}
	v.walk(rule, "")
	return v.issues
}

type inspector struct {
	issues []Issue
}

func (v *inspector) add(path string, kind IssueKind, detail string) {
	v.issues = append(v.issues, Issue{Path: path, Kind: kind, Detail: detail})
}

func (v *inspector) walk(rule Rule, path string) {
	switch r := rule.(type) {
	case nil:
		if path == "" {
			v.add(path, IssueEmptyQuery, "")
		} else {
			v.add(path, IssueNilRule, "")
		}
	case *Condition:
		if r == nil {
			v.add(path, IssueNilRule, "")
			return
		}
		if len(r.Rules) > 1 && !r.Connective.Valid() {
			v.add(path, IssueUnknownConnective, string(r.Connective))
		}
		for i, child := range r.Rules {
			childPath := fmt.Sprintf("rules[%d]", i)
			if path != "" {
				childPath = path + "." + childPath
			}
			v.walk(child, childPath)
		}
	case *Expression:
		if r == nil {
			v.add(path, IssueNilRule, "")
			return
		}
		if strings.TrimSpace(r.Field) == "" {
			v.add(path, IssueEmptyField, "")
		}
		if !r.Operator.Valid() {
			v.add(path, IssueUnknownOperator, string(r.Operator))
		}
	}
}
