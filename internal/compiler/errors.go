package compiler

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Query loading error codes (E200-E209)
const (
	ErrUnsupportedFormat = "E200" // file extension is not .cue, .json, .yaml or .yml
	ErrReadFailed        = "E201" // file could not be read
	ErrCUESyntax         = "E202" // CUE source does not compile
	ErrMissingQuery      = "E203" // no top-level query field
	ErrSchemaViolation   = "E204" // query does not match the query schema
	ErrDecodeFailed      = "E205" // JSON or YAML could not be decoded
)

// CompileError is a failure to turn a query file into a rule tree.
type CompileError struct {
	Code    string
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: [%s] %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error, code, field string) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &CompileError{Code: code, Field: field, Message: err.Error()}
	}

	// Report the first error, with its position when known
	first := errs[0]
	ce := &CompileError{
		Code:    code,
		Field:   field,
		Message: first.Error(),
	}
	if positions := errors.Positions(first); len(positions) > 0 {
		ce.Pos = positions[0]
	}
	return ce
}
