package cli

import (
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue/token"

	"github.com/roach88/dataspec/internal/compiler"
	"github.com/roach88/dataspec/internal/queryir"
)

// LoadError represents an error that occurred while loading a query file.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadQueryFile loads a query definition for a command. A missing file is
// reported as ErrCodeNotFound; compiler failures keep their E2xx code and
// CUE position.
func LoadQueryFile(path string) (queryir.Rule, *LoadError) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("query file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing query file: %v", err)}
	}
	if info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a file: %s", path)}
	}

	rule, err := compiler.LoadQuery(path)
	if err != nil {
		var compileErr *compiler.CompileError
		if errors.As(err, &compileErr) {
			return nil, &LoadError{
				Code:    compileErr.Code,
				Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message),
				Pos:     compileErr.Pos,
			}
		}
		return nil, &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
	}
	return rule, nil
}

// outputLoadError reports a load failure. Load failures are command-level
// errors (exit code 2).
func outputLoadError(formatter *OutputFormatter, loadErr *LoadError) error {
	var details any
	if loadErr.Pos.IsValid() {
		details = map[string]any{
			"file":   loadErr.Pos.Filename(),
			"line":   loadErr.Pos.Line(),
			"column": loadErr.Pos.Column(),
		}
	}
	_ = formatter.Error(loadErr.Code, loadErr.Message, details)
	return WrapExitError(ExitCommandError, "loading query", loadErr)
}
