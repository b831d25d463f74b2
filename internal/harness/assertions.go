package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/dataspec/internal/selection"
)

// AssertionError is returned when an assertion fails.
// It includes the selected elements to help debug the failure.
type AssertionError struct {
	Type     string   // Assertion type for categorization
	Expected string   // Human-readable expected outcome
	Actual   string   // Human-readable actual outcome
	Selected []string // Selected elements at the end of the flow
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	fmt.Fprintf(&buf, "  Selected elements: [%s]\n", strings.Join(e.Selected, ", "))

	return buf.String()
}

// assertSelected checks that every listed id has the wanted flag.
func assertSelected(tree *selection.Tree, state selection.State, assertion Assertion, want bool) error {
	var wrong []string
	for _, id := range assertion.IDs {
		if state.Selected(id) != want {
			wrong = append(wrong, id)
		}
	}
	if len(wrong) == 0 {
		return nil
	}

	return &AssertionError{
		Type:     assertion.Type,
		Expected: fmt.Sprintf("%s: %v", assertion.Type, assertion.IDs),
		Actual:   fmt.Sprintf("selected=%t for %v", !want, wrong),
		Selected: tree.SelectedElements(state),
	}
}

// assertWholeTree checks that the schema, every class and every element
// carry the wanted flag.
func assertWholeTree(tree *selection.Tree, state selection.State, assertion Assertion, want bool) error {
	s := tree.Summarize(state)

	ok := s.SchemaSelected && s.SelectedClasses == s.Classes && s.SelectedElements == s.Elements
	if !want {
		ok = !s.SchemaSelected && s.SelectedClasses == 0 && s.SelectedElements == 0
	}
	if ok {
		return nil
	}

	return &AssertionError{
		Type:     assertion.Type,
		Expected: fmt.Sprintf("schema, %d classes and %d elements with selected=%t", s.Classes, s.Elements, want),
		Actual: fmt.Sprintf("schema selected=%t, %d/%d classes and %d/%d elements selected",
			s.SchemaSelected, s.SelectedClasses, s.Classes, s.SelectedElements, s.Elements),
		Selected: tree.SelectedElements(state),
	}
}

// assertSelectedElements checks the exact list of selected elements.
func assertSelectedElements(tree *selection.Tree, state selection.State, assertion Assertion) error {
	got := tree.SelectedElements(state)
	if slices.Equal(got, assertion.IDs) {
		return nil
	}

	return &AssertionError{
		Type:     assertion.Type,
		Expected: fmt.Sprintf("selected elements %v", assertion.IDs),
		Actual:   fmt.Sprintf("selected elements %v", got),
		Selected: got,
	}
}

// EvaluateAssertions evaluates all assertions against the final state.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(tree *selection.Tree, state selection.State, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertSelected:
			err = assertSelected(tree, state, assertion, true)
		case AssertNotSelected:
			err = assertSelected(tree, state, assertion, false)
		case AssertAllSelected:
			err = assertWholeTree(tree, state, assertion, true)
		case AssertNoneSelected:
			err = assertWholeTree(tree, state, assertion, false)
		case AssertSelectedElements:
			err = assertSelectedElements(tree, state, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
