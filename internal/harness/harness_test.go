package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dataspec/internal/catalogue"
)

func boolPtr(b bool) *bool { return &b }

func peopleSchema(t *testing.T) catalogue.DataSchema {
	t.Helper()
	schema, err := catalogue.LoadSchemaFile(filepath.Join("testdata", "schemas", "people.json"))
	require.NoError(t, err)
	return schema
}

func TestRun_ScenarioFiles(t *testing.T) {
	files, err := FindScenarios(filepath.Join("testdata", "scenarios"), "")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			scenario, err := LoadScenario(file)
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Empty(t, result.Errors)
			assert.Len(t, result.Trace, len(scenario.Flow))
		})
	}
}

func TestRun_MissingSchema(t *testing.T) {
	_, err := Run(&Scenario{Name: "x", Schema: "/nonexistent/schema.json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")
}

func TestExecute_Trace(t *testing.T) {
	scenario := &Scenario{
		Name: "trace",
		Flow: []Step{
			{Toggle: ToggleElement, ID: "e1", Value: boolPtr(true)},
			{Toggle: ToggleElement, ID: "e2", Value: boolPtr(true)},
		},
		Assertions: []Assertion{{Type: AssertSelected, IDs: []string{"c1"}}},
	}

	result := Execute(scenario, peopleSchema(t), nil)
	require.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 2)

	first := result.Trace[0]
	assert.Equal(t, 0, first.Step)
	assert.Equal(t, []string{"e1"}, first.Selected)
	assert.Equal(t, 0, first.Summary.SelectedClasses)

	second := result.Trace[1]
	assert.Equal(t, []string{"e1", "e2"}, second.Selected)
	assert.Equal(t, 1, second.Summary.SelectedClasses)
	assert.False(t, second.Summary.SchemaSelected)

	assert.True(t, result.State.Selected("c1"))
	assert.False(t, result.State.Selected("s"))
}

func TestExecute_EmptySelectionTraceIsNotNil(t *testing.T) {
	scenario := &Scenario{
		Name:       "empty",
		Flow:       []Step{{Toggle: ToggleSchema, Value: boolPtr(false)}},
		Assertions: []Assertion{{Type: AssertNoneSelected}},
	}

	result := Execute(scenario, peopleSchema(t), nil)
	require.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 1)
	assert.NotNil(t, result.Trace[0].Selected)
	assert.Equal(t, "s", result.Trace[0].ID)
}

func TestExecute_WrongKinds(t *testing.T) {
	scenario := &Scenario{
		Name:    "wrong_kinds",
		Initial: []string{"c1"},
		Flow: []Step{
			{Toggle: ToggleElement, ID: "c1", Value: boolPtr(true)},
			{Toggle: ToggleClass, ID: "e1", Value: boolPtr(true)},
			{Toggle: ToggleSchema, ID: "c2", Value: boolPtr(true)},
			{Toggle: "model", ID: "m1", Value: boolPtr(true)},
		},
		Assertions: []Assertion{{Type: AssertNoneSelected}},
	}

	result := Execute(scenario, peopleSchema(t), nil)
	assert.False(t, result.Pass)
	assert.Empty(t, result.Trace, "rejected steps are not traced")
	require.Len(t, result.Errors, 5)
	assert.Contains(t, result.Errors[0], `initial[0]: "c1" is not an element`)
	assert.Contains(t, result.Errors[1], `flow[0]: "c1" is not an element`)
	assert.Contains(t, result.Errors[2], `flow[1]: "e1" is not a class`)
	assert.Contains(t, result.Errors[3], `flow[2]: "c2" is not the schema id`)
	assert.Contains(t, result.Errors[4], `flow[3]: unknown toggle "model"`)
}

func TestExecute_AssertionFailure(t *testing.T) {
	scenario := &Scenario{
		Name:       "fails",
		Flow:       []Step{{Toggle: ToggleClass, ID: "c2", Value: boolPtr(true)}},
		Assertions: []Assertion{{Type: AssertAllSelected}},
	}

	result := Execute(scenario, peopleSchema(t), nil)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Assertion failed: all_selected")
	assert.Contains(t, result.Errors[0], "1/2 classes")
}

// Selecting and then deselecting any single entity restores the starting
// selection when the tree starts fully consistent.
func TestExecute_ToggleRoundTrip(t *testing.T) {
	schema := peopleSchema(t)

	for _, tc := range []struct {
		toggle string
		id     string
	}{
		{ToggleElement, "e1"},
		{ToggleElement, "e3"},
		{ToggleClass, "c1"},
		{ToggleClass, "c2"},
		{ToggleSchema, ""},
	} {
		t.Run(tc.toggle+"/"+tc.id, func(t *testing.T) {
			scenario := &Scenario{
				Name: "round_trip",
				Flow: []Step{
					{Toggle: tc.toggle, ID: tc.id, Value: boolPtr(true)},
					{Toggle: tc.toggle, ID: tc.id, Value: boolPtr(false)},
				},
				Assertions: []Assertion{
					{Type: AssertNoneSelected},
					{Type: AssertSelectedElements},
				},
			}

			result := Execute(scenario, schema, nil)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}
