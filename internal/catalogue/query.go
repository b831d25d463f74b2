package catalogue

import "github.com/roach88/dataspec/internal/queryir"

// SpecificationQuery is a query saved against a data specification.
// Condition is the query-builder tree; it is opaque to the metadata API.
type SpecificationQuery struct {
	ID                  string             `json:"id,omitempty"`
	DataSpecificationID string             `json:"dataSpecificationId"`
	Type                QueryType          `json:"type"`
	Condition           *queryir.Condition `json:"condition"`
}

// CanCreate reports whether the query has no rules yet.
func (q SpecificationQuery) CanCreate() bool {
	return q.Condition.CanCreate()
}

// CanEdit reports whether the query has at least one rule.
func (q SpecificationQuery) CanEdit() bool {
	return q.Condition.CanEdit()
}
