package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/dataspec/internal/queryir"
)

// TraceSnapshot captures the trace of a scenario execution.
// It is serialized as canonical JSON for byte-stable comparison.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Trace        []TraceEvent `json:"trace"`
}

// toCanonicalMap converts a TraceSnapshot to plain maps and slices, the
// only shapes queryir.CanonicalJSON accepts.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	traceList := make([]any, len(s.Trace))
	for i, event := range s.Trace {
		selected := make([]any, len(event.Selected))
		for j, id := range event.Selected {
			selected[j] = id
		}
		traceList[i] = map[string]any{
			"step":     event.Step,
			"toggle":   event.Toggle,
			"id":       event.ID,
			"value":    event.Value,
			"selected": selected,
			"summary": map[string]any{
				"schema_selected":   event.Summary.SchemaSelected,
				"classes":           event.Summary.Classes,
				"selected_classes":  event.Summary.SelectedClasses,
				"elements":          event.Summary.Elements,
				"selected_elements": event.Summary.SelectedElements,
			},
		}
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"trace":         traceList,
	}
}

// Snapshot returns the canonical JSON trace of a result.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		Trace:        result.Trace,
	}
	return queryir.CanonicalJSON(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares the given result's trace against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	traceJSON, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
