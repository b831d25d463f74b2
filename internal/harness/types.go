package harness

import "github.com/roach88/dataspec/internal/selection"

// TraceEvent records one applied toggle and the selection it produced.
type TraceEvent struct {
	Step     int               `json:"step"`
	Toggle   string            `json:"toggle"`
	ID       string            `json:"id"`
	Value    bool              `json:"value"`
	Selected []string          `json:"selected"`
	Summary  selection.Summary `json:"summary"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every step applied and every assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per flow step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains step and assertion failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// State is the final selection state.
	State selection.State `json:"state"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		State:  selection.State{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step to the trace.
func (r *Result) AddTrace(event TraceEvent) {
	r.Trace = append(r.Trace, event)
}
