package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dataspec/internal/compiler"
)

func TestValidateValid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cohort.json", ageQuery)

	out, err := execute(t, NewValidateCommand(&RootOptions{Format: "text"}), path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Query valid")
}

func TestValidateUnknownOperator(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cohort.json",
		`{"condition": "and", "rules": [{"field": "Age", "operator": "~~", "value": 30}]}`)

	out, err := execute(t, NewValidateCommand(&RootOptions{Format: "json"}), path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse(t, out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, compiler.ErrUnknownOperator, resp.Error.Code)

	data := dataMap(t, resp)
	assert.Equal(t, false, data["valid"])
	assert.Len(t, data["errors"], 1)
}

func TestValidateForeignShape(t *testing.T) {
	path := writeFile(t, t.TempDir(), "other.json", `{"something": "else"}`)

	out, err := execute(t, NewValidateCommand(&RootOptions{Format: "text"}), path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, compiler.ErrEmptyQuery)
}

func TestValidateUnsupportedFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "query.txt", "anything")

	out, err := execute(t, NewValidateCommand(&RootOptions{Format: "text"}), path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, compiler.ErrUnsupportedFormat)
}
