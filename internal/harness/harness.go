package harness

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/dataspec/internal/catalogue"
	"github.com/roach88/dataspec/internal/selection"
)

// Harness executes one scenario against an indexed schema tree.
type Harness struct {
	tree   *selection.Tree
	logger *zap.Logger
}

// Run loads the scenario's schema file and executes the scenario.
// An error is returned only when the schema cannot be loaded; step and
// assertion failures are reported on the Result.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, zap.NewNop())
}

// RunWithLogger is Run with step logging at debug level.
func RunWithLogger(scenario *Scenario, logger *zap.Logger) (*Result, error) {
	schema, err := catalogue.LoadSchemaFile(scenario.Schema)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	return Execute(scenario, schema, logger), nil
}

// Execute runs the scenario against an already loaded schema.
//
// Execution flow:
// 1. Read the selection flags stored on the schema
// 2. Select the initial elements and recompute the containers
// 3. Apply each flow step, recording a trace event
// 4. Evaluate assertions against the final state
func Execute(scenario *Scenario, schema catalogue.DataSchema, logger *zap.Logger) *Result {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Harness{
		tree:   selection.NewTree(schema),
		logger: logger.With(zap.String("scenario", scenario.Name)),
	}

	result := NewResult()
	state := h.initialState(schema, scenario.Initial, result)

	for i, step := range scenario.Flow {
		state = h.apply(i, step, state, result)
	}
	result.State = state

	for _, errMsg := range EvaluateAssertions(h.tree, state, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result
}

func (h *Harness) initialState(schema catalogue.DataSchema, initial []string, result *Result) selection.State {
	state := selection.StateOf(schema)
	if len(initial) == 0 {
		return state
	}

	for i, id := range initial {
		if h.tree.KindOf(id) != selection.KindElement {
			result.AddError(fmt.Sprintf("initial[%d]: %q is not an element of the schema", i, id))
			continue
		}
		state = h.tree.SetElementSelected(state, id, true)
	}
	return h.tree.Recompute(state)
}

// apply runs one flow step. A step whose id does not name an entity of the
// expected kind is recorded as an error and leaves the state unchanged.
func (h *Harness) apply(index int, step Step, state selection.State, result *Result) selection.State {
	value := step.Value != nil && *step.Value
	id := step.ID

	switch step.Toggle {
	case ToggleElement:
		if h.tree.KindOf(id) != selection.KindElement {
			result.AddError(fmt.Sprintf("flow[%d]: %q is not an element of the schema", index, id))
			return state
		}
		state = h.tree.ToggleElement(state, id, value)
	case ToggleClass:
		if h.tree.KindOf(id) != selection.KindClass {
			result.AddError(fmt.Sprintf("flow[%d]: %q is not a class of the schema", index, id))
			return state
		}
		state = h.tree.ToggleClass(state, id, value)
	case ToggleSchema:
		if id == "" {
			id = h.tree.SchemaID()
		}
		if id != h.tree.SchemaID() {
			result.AddError(fmt.Sprintf("flow[%d]: %q is not the schema id %q", index, id, h.tree.SchemaID()))
			return state
		}
		state = h.tree.ToggleSchema(state, value)
	default:
		result.AddError(fmt.Sprintf("flow[%d]: unknown toggle %q", index, step.Toggle))
		return state
	}

	selected := h.tree.SelectedElements(state)
	if selected == nil {
		selected = []string{}
	}
	summary := h.tree.Summarize(state)

	result.AddTrace(TraceEvent{
		Step:     index,
		Toggle:   step.Toggle,
		ID:       id,
		Value:    value,
		Selected: selected,
		Summary:  summary,
	})

	h.logger.Debug("flow step applied",
		zap.Int("step", index),
		zap.String("toggle", step.Toggle),
		zap.String("id", id),
		zap.Bool("value", value),
		zap.Int("selected_elements", summary.SelectedElements),
	)

	return state
}
