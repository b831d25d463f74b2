package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario defines a selection scenario.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Schema is the path to the schema tree JSON file.
	// Relative paths are resolved against the scenario file location.
	Schema string `yaml:"schema"`

	// Initial lists element ids selected before the flow runs.
	Initial []string `yaml:"initial,omitempty"`

	// Flow contains the toggles to apply, in order.
	Flow []Step `yaml:"flow"`

	// Assertions validate the final selection state.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one toggle of the flow.
type Step struct {
	// Toggle is the level being toggled: element, class or schema.
	Toggle string `yaml:"toggle"`

	// ID is the entity id. Optional for schema toggles.
	ID string `yaml:"id,omitempty"`

	// Value is the requested selection. Required.
	Value *bool `yaml:"value"`
}

// Toggle levels.
const (
	ToggleElement = "element"
	ToggleClass   = "class"
	ToggleSchema  = "schema"
)

// Assertion validates the final selection state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "selected": every id in IDs is selected
	// - "not_selected": no id in IDs is selected
	// - "all_selected": every entity in the tree is selected
	// - "none_selected": no entity in the tree is selected
	// - "selected_elements": the selected elements are exactly IDs, in tree order
	Type string `yaml:"type"`

	// IDs are the entity ids the assertion is about.
	IDs []string `yaml:"ids,omitempty"`
}

// Assertion type constants.
const (
	AssertSelected         = "selected"
	AssertNotSelected      = "not_selected"
	AssertAllSelected      = "all_selected"
	AssertNoneSelected     = "none_selected"
	AssertSelectedElements = "selected_elements"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Schema != "" && !filepath.IsAbs(scenario.Schema) {
		scenario.Schema = filepath.Join(filepath.Dir(path), scenario.Schema)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// FindScenarios lists the .yaml and .yml files under dir, sorted by path.
// A non-empty filter is matched against the file name without extension.
func FindScenarios(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Schema == "" {
		return fmt.Errorf("schema is required")
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if _, err := os.Stat(s.Schema); os.IsNotExist(err) {
		return fmt.Errorf("schema file not found: %s", s.Schema)
	}

	for i, id := range s.Initial {
		if id == "" {
			return fmt.Errorf("initial[%d]: empty id", i)
		}
	}

	for i, step := range s.Flow {
		if err := validateStep(i, step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, step Step) error {
	switch step.Toggle {
	case ToggleElement, ToggleClass:
		if step.ID == "" {
			return fmt.Errorf("flow[%d]: id is required for %s toggles", index, step.Toggle)
		}
	case ToggleSchema:
	case "":
		return fmt.Errorf("flow[%d]: toggle is required", index)
	default:
		return fmt.Errorf("flow[%d]: unknown toggle %q", index, step.Toggle)
	}

	if step.Value == nil {
		return fmt.Errorf("flow[%d]: value is required", index)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertSelected, AssertNotSelected:
		if len(a.IDs) == 0 {
			return fmt.Errorf("assertions[%d]: ids list is required for %s", index, a.Type)
		}
	case AssertAllSelected, AssertNoneSelected:
		if len(a.IDs) > 0 {
			return fmt.Errorf("assertions[%d]: %s takes no ids", index, a.Type)
		}
	case AssertSelectedElements:
		// An empty list asserts that no element is selected.
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
