package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dataspec/internal/catalogue"
)

// testSchema builds:
//
//	s
//	├── c1: e1, e2
//	├── c2: e3
//	└── c3: (no elements)
func testSchema() catalogue.DataSchema {
	return catalogue.DataSchema{
		Schema: catalogue.DataClass{ID: "s", Label: "Schema"},
		DataClasses: []catalogue.DataClassWithElements{
			{
				DataClass: catalogue.DataClass{ID: "c1", Label: "Class 1"},
				DataElements: []catalogue.DataElement{
					{ID: "e1", Label: "Element 1", DataClassID: "c1"},
					{ID: "e2", Label: "Element 2", DataClassID: "c1"},
				},
			},
			{
				DataClass: catalogue.DataClass{ID: "c2", Label: "Class 2"},
				DataElements: []catalogue.DataElement{
					{ID: "e3", Label: "Element 3", DataClassID: "c2"},
				},
			},
			{
				DataClass: catalogue.DataClass{ID: "c3", Label: "Class 3"},
			},
		},
	}
}

var allIDs = []string{"s", "c1", "c2", "c3", "e1", "e2", "e3"}

func assertAll(t *testing.T, state State, want bool) {
	t.Helper()
	for _, id := range allIDs {
		assert.Equal(t, want, state.Selected(id), "id %s", id)
	}
}

func TestSetElementSelected(t *testing.T) {
	tree := NewTree(testSchema())
	before := State{}

	after := tree.SetElementSelected(before, "e1", true)
	assert.True(t, after.Selected("e1"))
	assert.False(t, after.Selected("c1"), "containers are not recomputed")
	assert.Empty(t, before, "input state is not modified")
}

func TestSetElementSelectedUnknownIsNoop(t *testing.T) {
	tree := NewTree(testSchema())
	state := State{"e1": true}

	assert.Equal(t, state, tree.SetElementSelected(state, "missing", false))
	assert.Equal(t, state, tree.SetElementSelected(state, "c1", false), "class id is not an element")
}

func TestCascadeFromClass(t *testing.T) {
	tree := NewTree(testSchema())

	state := tree.CascadeFromClass(State{}, "c1", true)
	assert.True(t, state.Selected("c1"))
	assert.True(t, state.Selected("e1"))
	assert.True(t, state.Selected("e2"))
	assert.False(t, state.Selected("e3"), "other classes untouched")
	assert.False(t, state.Selected("s"), "schema untouched")

	// Unconditional overwrite: children are forced, not re-checked.
	mixed := State{"c1": true, "e1": true, "e2": false}
	state = tree.CascadeFromClass(mixed, "c1", false)
	assert.False(t, state.Selected("c1"))
	assert.False(t, state.Selected("e1"))
	assert.False(t, state.Selected("e2"))

	assert.Equal(t, mixed, tree.CascadeFromClass(mixed, "nope", true))
}

func TestCascadeFromSchema(t *testing.T) {
	tree := NewTree(testSchema())

	state := tree.CascadeFromSchema(State{}, true)
	for _, id := range []string{"c1", "c2", "c3", "e1", "e2", "e3"} {
		assert.True(t, state.Selected(id), "id %s", id)
	}
	assert.False(t, state.Selected("s"), "schema flag is left to the caller")
}

func TestReceiveParentSelection(t *testing.T) {
	tree := NewTree(testSchema())

	t.Run("schema overwrites and cascades", func(t *testing.T) {
		state := tree.ReceiveParentSelection(State{}, "s", FromParent(true))
		assertAll(t, state, true)
	})

	t.Run("class overwrites without consulting children", func(t *testing.T) {
		state := tree.ReceiveParentSelection(State{}, "c3", FromParent(false))
		assert.False(t, state.Selected("c3"), "not recomputed to vacuous true")
	})

	t.Run("element overwrites", func(t *testing.T) {
		state := tree.ReceiveParentSelection(State{}, "e3", FromParent(true))
		assert.True(t, state.Selected("e3"))
	})

	t.Run("child instigator ignored", func(t *testing.T) {
		before := State{"c1": false}
		assert.Equal(t, before, tree.ReceiveParentSelection(before, "c1", FromChild(true)))
	})

	t.Run("unknown container ignored", func(t *testing.T) {
		before := State{}
		assert.Equal(t, before, tree.ReceiveParentSelection(before, "zzz", FromParent(true)))
	})
}

func TestReceiveChildSelection(t *testing.T) {
	tree := NewTree(testSchema())

	t.Run("class recomputes from elements", func(t *testing.T) {
		state, up, ok := tree.ReceiveChildSelection(State{"e1": true}, "c1", FromChild(true))
		require.True(t, ok)
		assert.False(t, state.Selected("c1"))
		assert.Equal(t, FromChild(false), up)

		state, up, ok = tree.ReceiveChildSelection(State{"e1": true, "e2": true}, "c1", FromChild(true))
		require.True(t, ok)
		assert.True(t, state.Selected("c1"))
		assert.Equal(t, FromChild(true), up)
	})

	t.Run("recomputed value wins over the incoming flag", func(t *testing.T) {
		state, up, ok := tree.ReceiveChildSelection(State{"e3": true}, "c2", FromChild(false))
		require.True(t, ok)
		assert.True(t, state.Selected("c2"))
		assert.True(t, up.IsSelected)
	})

	t.Run("schema recomputes from class flags", func(t *testing.T) {
		state, _, ok := tree.ReceiveChildSelection(State{"c1": true, "c2": true, "c3": true}, "s", FromChild(true))
		require.True(t, ok)
		assert.True(t, state.Selected("s"))
	})

	t.Run("parent instigator ignored", func(t *testing.T) {
		before := State{"e1": true, "e2": true}
		state, _, ok := tree.ReceiveChildSelection(before, "c1", FromParent(true))
		assert.False(t, ok)
		assert.Equal(t, before, state)
	})

	t.Run("element is not a container", func(t *testing.T) {
		_, _, ok := tree.ReceiveChildSelection(State{}, "e1", FromChild(true))
		assert.False(t, ok)
	})
}

func TestToggleElementBubbles(t *testing.T) {
	tree := NewTree(testSchema())
	state := tree.Recompute(State{"e1": true, "e3": true})
	require.True(t, state.Selected("c3"), "empty class is vacuously selected")

	state = tree.ToggleElement(state, "e2", true)
	assert.True(t, state.Selected("c1"))
	assert.True(t, state.Selected("s"), "c1, c2 and c3 are all selected")

	state = tree.ToggleElement(state, "e3", false)
	assert.False(t, state.Selected("c2"))
	assert.False(t, state.Selected("s"))
	assert.True(t, state.Selected("c1"))
}

func TestToggleElementRoundTrip(t *testing.T) {
	tree := NewTree(testSchema())
	start := tree.Recompute(State{"e1": true, "e2": false, "e3": false})

	for _, id := range []string{"e1", "e2", "e3"} {
		t.Run(id, func(t *testing.T) {
			value := start.Selected(id)
			toggled := tree.ToggleElement(start, id, !value)
			back := tree.ToggleElement(toggled, id, value)
			assert.Equal(t, start, back)
		})
	}
}

func TestToggleClass(t *testing.T) {
	tree := NewTree(testSchema())
	state := tree.Recompute(State{"e3": true})

	state = tree.ToggleClass(state, "c1", true)
	assert.True(t, state.Selected("e1"))
	assert.True(t, state.Selected("e2"))
	assert.True(t, state.Selected("s"))

	state = tree.ToggleClass(state, "c1", false)
	assert.False(t, state.Selected("e1"))
	assert.False(t, state.Selected("s"))

	assert.Equal(t, state, tree.ToggleClass(state, "e1", true), "element id is not a class")
}

func TestToggleSchema(t *testing.T) {
	tree := NewTree(testSchema())

	state := tree.ToggleSchema(State{}, true)
	assertAll(t, state, true)

	state = tree.ToggleSchema(state, false)
	assertAll(t, state, false)
}

func TestCascadeThenRecomputeAgrees(t *testing.T) {
	// Without the empty class c3, so that false can hold everywhere.
	schema := testSchema()
	schema.DataClasses = schema.DataClasses[:2]
	tree := NewTree(schema)

	for _, value := range []bool{true, false} {
		cascaded := tree.ToggleSchema(State{}, value)
		recomputed := tree.Recompute(cascaded)
		for _, id := range []string{"s", "c1", "c2", "e1", "e2", "e3"} {
			assert.Equal(t, value, recomputed.Selected(id), "id %s", id)
		}
		assert.Equal(t, cascaded, recomputed, "no oscillation")
	}
}

func TestVacuousTruth(t *testing.T) {
	empty := catalogue.DataSchema{Schema: catalogue.DataClass{ID: "empty"}}
	tree := NewTree(empty)

	// A schema with no classes reports selected after recomputation,
	// even straight after being cascaded to false.
	state := tree.ToggleSchema(State{}, false)
	assert.False(t, state.Selected("empty"))
	assert.True(t, tree.Recompute(state).Selected("empty"))

	// Same for a class with no elements.
	full := NewTree(testSchema())
	state = full.CascadeFromClass(State{}, "c3", false)
	state, up, ok := full.ReceiveChildSelection(state, "c3", FromChild(false))
	require.True(t, ok)
	assert.True(t, state.Selected("c3"))
	assert.True(t, up.IsSelected)
}

func TestRecomputeKeepsElements(t *testing.T) {
	tree := NewTree(testSchema())
	state := State{"e1": true, "e2": true, "c2": true, "s": true}

	got := tree.Recompute(state)
	assert.True(t, got.Selected("e1"))
	assert.True(t, got.Selected("c1"))
	assert.False(t, got.Selected("c2"), "e3 is not selected")
	assert.True(t, got.Selected("c3"))
	assert.False(t, got.Selected("s"))
	assert.True(t, state.Selected("c2"), "input untouched")
}
