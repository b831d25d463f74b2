package compiler

import (
	"fmt"

	"github.com/roach88/dataspec/internal/queryir"
)

// Validation error codes (E210-E219)
const (
	ErrEmptyQuery        = "E210" // nothing recognisable as a query
	ErrNilRule           = "E211" // nil entry in a rules list
	ErrEmptyField        = "E212" // expression without a field name
	ErrUnknownOperator   = "E213" // operator not offered by the query builder
	ErrUnknownConnective = "E214" // connective other than and/or
)

// ValidationError is one well-formedness problem in a rule tree.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

var issueCodes = map[queryir.IssueKind]string{
	queryir.IssueEmptyQuery:        ErrEmptyQuery,
	queryir.IssueNilRule:           ErrNilRule,
	queryir.IssueEmptyField:        ErrEmptyField,
	queryir.IssueUnknownOperator:   ErrUnknownOperator,
	queryir.IssueUnknownConnective: ErrUnknownConnective,
}

// Validate reports every problem in rule (does not fail-fast). Problems
// are warnings: the rule still renders.
func Validate(rule queryir.Rule) []ValidationError {
	var errs []ValidationError
	for _, issue := range queryir.Inspect(rule) {
		errs = append(errs, ValidationError{
			Field:   issue.Path,
			Message: issue.Message(),
			Code:    issueCodes[issue.Kind],
		})
	}
	return errs
}
