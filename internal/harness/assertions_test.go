package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dataspec/internal/selection"
)

func TestAssertSelected(t *testing.T) {
	tree := selection.NewTree(peopleSchema(t))
	state := selection.State{"e1": true, "c1": false}

	assert.NoError(t, assertSelected(tree, state, Assertion{Type: AssertSelected, IDs: []string{"e1"}}, true))
	assert.NoError(t, assertSelected(tree, state, Assertion{Type: AssertNotSelected, IDs: []string{"c1", "missing"}}, false))

	err := assertSelected(tree, state, Assertion{Type: AssertSelected, IDs: []string{"e1", "e2", "c1"}}, true)
	require.Error(t, err)

	var assertErr *AssertionError
	require.ErrorAs(t, err, &assertErr)
	assert.Equal(t, AssertSelected, assertErr.Type)
	assert.Equal(t, "selected=false for [e2 c1]", assertErr.Actual)
	assert.Equal(t, []string{"e1"}, assertErr.Selected)
}

func TestAssertWholeTree(t *testing.T) {
	tree := selection.NewTree(peopleSchema(t))
	all := tree.ToggleSchema(selection.State{}, true)
	none := tree.ToggleSchema(selection.State{}, false)
	partial := tree.ToggleElement(none, "e3", true)

	assert.NoError(t, assertWholeTree(tree, all, Assertion{Type: AssertAllSelected}, true))
	assert.NoError(t, assertWholeTree(tree, none, Assertion{Type: AssertNoneSelected}, false))
	assert.NoError(t, assertWholeTree(tree, selection.State{}, Assertion{Type: AssertNoneSelected}, false))

	assert.Error(t, assertWholeTree(tree, partial, Assertion{Type: AssertAllSelected}, true))
	assert.Error(t, assertWholeTree(tree, partial, Assertion{Type: AssertNoneSelected}, false))
	assert.Error(t, assertWholeTree(tree, all, Assertion{Type: AssertNoneSelected}, false))
}

func TestAssertSelectedElements(t *testing.T) {
	tree := selection.NewTree(peopleSchema(t))
	state := selection.State{"e3": true, "e1": true}

	assert.NoError(t, assertSelectedElements(tree, state, Assertion{IDs: []string{"e1", "e3"}}))
	assert.Error(t, assertSelectedElements(tree, state, Assertion{IDs: []string{"e3", "e1"}}), "order is tree order")
	assert.Error(t, assertSelectedElements(tree, state, Assertion{IDs: []string{"e1"}}))
	assert.NoError(t, assertSelectedElements(tree, selection.State{}, Assertion{}))
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{
		Type:     AssertSelected,
		Expected: "selected: [e2]",
		Actual:   "selected=false for [e2]",
		Selected: []string{"e1", "e3"},
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: selected\n")
	assert.Contains(t, msg, "  Expected: selected: [e2]\n")
	assert.Contains(t, msg, "  Actual: selected=false for [e2]\n")
	assert.Contains(t, msg, "  Selected elements: [e1, e3]\n")
}

func TestEvaluateAssertions(t *testing.T) {
	tree := selection.NewTree(peopleSchema(t))
	state := tree.ToggleClass(selection.State{}, "c1", true)

	errs := EvaluateAssertions(tree, state, []Assertion{
		{Type: AssertSelected, IDs: []string{"e1", "e2"}},
		{Type: AssertNotSelected, IDs: []string{"e3"}},
		{Type: AssertAllSelected},
		{Type: "bogus"},
	})
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "all_selected")
	assert.Contains(t, errs[1], `assertion[3]: unknown assertion type "bogus"`)
}
