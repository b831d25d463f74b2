// Package compiler loads query definitions from files and turns them into
// queryir rule trees.
//
// Three formats are accepted:
//
//	.cue         top-level "query" field, checked against an embedded schema
//	.json        query-builder JSON
//	.yaml, .yml  the same shape as JSON, in YAML
//
// CUE definitions are validated strictly: unknown operators, unknown keys
// and empty field names are compile errors. JSON and YAML follow the
// renderer's lenient rules instead, so a file that is not shaped like a
// query loads as a nil rule.
package compiler

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/dataspec/internal/queryir"
)

//go:embed query.cue
var querySchema string

// LoadQuery reads a query definition, choosing the format by extension.
func LoadQuery(path string) (queryir.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CompileError{Code: ErrReadFailed, Field: "file", Message: err.Error()}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return CompileSource(path, data)
	case ".json":
		rule, err := queryir.Decode(data)
		if err != nil {
			return nil, &CompileError{Code: ErrDecodeFailed, Field: "json", Message: fmt.Sprintf("%s: %v", path, err)}
		}
		return rule, nil
	case ".yaml", ".yml":
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &CompileError{Code: ErrDecodeFailed, Field: "yaml", Message: fmt.Sprintf("%s: %v", path, err)}
		}
		return queryir.FromAny(raw), nil
	default:
		return nil, &CompileError{
			Code:    ErrUnsupportedFormat,
			Field:   "file",
			Message: fmt.Sprintf("unsupported query file %q (want .cue, .json, .yaml or .yml)", path),
		}
	}
}

// CompileSource compiles CUE source holding a top-level "query" field.
// filename is used only for error positions.
func CompileSource(filename string, src []byte) (queryir.Rule, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err, ErrCUESyntax, "cue")
	}

	query := v.LookupPath(cue.ParsePath("query"))
	if !query.Exists() {
		return nil, &CompileError{
			Code:    ErrMissingQuery,
			Field:   "query",
			Message: "query is required",
			Pos:     v.Pos(),
		}
	}
	return CompileQuery(query)
}

// CompileQuery validates a CUE value against the query schema and converts
// it to a rule tree. Uses the CUE SDK's Go API directly:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`query: {condition: "and", rules: []}`)
//	rule, err := CompileQuery(v.LookupPath(cue.ParsePath("query")))
func CompileQuery(v cue.Value) (queryir.Rule, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err, ErrCUESyntax, "query")
	}

	schema := v.Context().CompileString(querySchema, cue.Filename("query.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("query schema: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Rule")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err, ErrSchemaViolation, "query")
	}

	data, err := unified.MarshalJSON()
	if err != nil {
		return nil, formatCUEError(err, ErrSchemaViolation, "query")
	}
	rule, err := queryir.Decode(data)
	if err != nil {
		return nil, &CompileError{Code: ErrDecodeFailed, Field: "query", Message: err.Error()}
	}
	return rule, nil
}
