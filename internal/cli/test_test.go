package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTestsPass(t *testing.T) {
	scenariosDir := filepath.Join("testdata", "scenarios")

	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), scenariosDir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ select_class")
	assert.Contains(t, out, "✓ select_schema")
	assert.Contains(t, out, "Test Summary: 2 passed, 0 failed, 2 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestRunTestsJSON(t *testing.T) {
	scenariosDir := filepath.Join("testdata", "scenarios")

	out, err := execute(t, NewTestCommand(&RootOptions{Format: "json"}), scenariosDir)
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	data := dataMap(t, resp)
	assert.Equal(t, float64(2), data["passed"])

	scenarios := data["scenarios"].([]any)
	require.Len(t, scenarios, 2)
	first := scenarios[0].(map[string]any)
	assert.Equal(t, "select_class", first["name"])
	assert.Equal(t, "match", first["golden"])
	second := scenarios[1].(map[string]any)
	assert.Equal(t, "select_schema", second["name"])
	assert.Equal(t, "missing", second["golden"])
}

func TestRunTestsFilter(t *testing.T) {
	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), filepath.Join("testdata", "scenarios"), "--filter", "*_schema")
	require.NoError(t, err)
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.NotContains(t, out, "select_class")
}

func TestRunTestsNoScenarios(t *testing.T) {
	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "No scenarios found.\n", out)
}

func TestRunTestsMissingDir(t *testing.T) {
	_, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func scenarioDir(t *testing.T, scenario string) string {
	t.Helper()
	dir := t.TempDir()
	schema, err := os.ReadFile(peopleSchema)
	require.NoError(t, err)
	writeFile(t, dir, "schemas/people.json", string(schema))
	writeFile(t, dir, "scenarios/case.yaml", scenario)
	return filepath.Join(dir, "scenarios")
}

func TestRunTestsAssertionFailure(t *testing.T) {
	dir := scenarioDir(t, `
name: wrong
description: "Asserts an element the flow never touches"
schema: ../schemas/people.json
flow:
  - toggle: class
    id: c1
    value: true
assertions:
  - type: selected
    ids: [e3]
`)

	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong")
	assert.Contains(t, out, "Assertion failed: selected")
	assert.Contains(t, out, "Test Summary: 0 passed, 1 failed, 1 total")
}

func TestRunTestsFailureJSON(t *testing.T) {
	dir := scenarioDir(t, "name: [broken\n")

	out, err := execute(t, NewTestCommand(&RootOptions{Format: "json"}), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse(t, out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
}

func TestRunTestsUpdateAndMismatch(t *testing.T) {
	dir := scenarioDir(t, `
name: toggle_schema
description: "Selects the whole tree from the schema"
schema: ../schemas/people.json
flow:
  - toggle: schema
    value: true
assertions:
  - type: all_selected
`)

	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ toggle_schema (golden updated)")

	goldenPath := filepath.Join(dir, "golden", "case.golden")
	golden, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(golden), `"scenario_name":"toggle_schema"`)

	_, err = execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(goldenPath, []byte("{}"), 0644))
	out, err = execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Contains(t, out, "trace does not match golden file")
}
