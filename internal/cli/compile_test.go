package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dataspec/internal/compiler"
	"github.com/roach88/dataspec/internal/queryir"
)

func TestCompileText(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cohort.json", ageQuery)

	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "text"}), path)
	require.NoError(t, err)
	assert.Equal(t, ageMEQL+"\n", out)
}

func TestCompileJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cohort.json", ageQuery)

	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "json"}), path)
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	data := dataMap(t, resp)
	assert.Equal(t, ageMEQL, data["meql"])
	assert.Equal(t, false, data["can_create"])
	assert.Equal(t, true, data["can_edit"])
	assert.Len(t, data["hash"], 64)
}

func TestCompileEmptyCondition(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.json", `{"condition": "and", "rules": []}`)

	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "text"}), path)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = execute(t, NewCompileCommand(&RootOptions{Format: "json"}), path)
	require.NoError(t, err)
	data := dataMap(t, decodeResponse(t, out))
	assert.Equal(t, "", data["meql"])
	assert.Equal(t, true, data["can_create"])
	assert.Equal(t, false, data["can_edit"])
}

func TestCompileCUE(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cohort.cue", `
query: {
	condition: "and"
	rules: [{field: "Age", operator: "=", value: 30}]
}
`)

	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "text"}), path)
	require.NoError(t, err)
	assert.Equal(t, ageMEQL+"\n", out)
}

func TestCompileOutputToFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cohort.yaml", `
condition: and
rules:
  - field: Age
    operator: "="
    value: 30
`)
	outputFile := filepath.Join(dir, "cohort.meql")

	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "text"}), path, "--output", outputFile)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Wrote MEQL to")

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, ageMEQL, string(data))
}

func TestCompileMissingFile(t *testing.T) {
	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "json"}), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	resp := decodeResponse(t, out)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

func TestCompileMalformedJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.json", `{"condition": `)

	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "text"}), path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, compiler.ErrDecodeFailed)
}

func TestCompileRule(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		result, err := compileRule(nil)
		require.NoError(t, err)
		assert.Equal(t, CompileResult{CanCreate: true}, result)
	})

	t.Run("bare expression", func(t *testing.T) {
		expr := queryir.NewExpression("Age", queryir.OpEqual, queryir.Number(30))
		result, err := compileRule(expr)
		require.NoError(t, err)
		assert.True(t, result.CanEdit)
		assert.False(t, result.CanCreate)
		assert.Equal(t, queryir.MustHash(expr), result.Hash)
		assert.NotEmpty(t, result.MEQL)
	})
}
