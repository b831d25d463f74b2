// Package harness runs selection scenarios against the hierarchical
// selection coordinator.
//
// A scenario names a schema tree, a flow of toggles and assertions over the
// final selection state. Scenarios are executed without any I/O beyond
// reading the schema file, so a trace is identical across runs and can be
// compared against a golden file.
//
// # Scenario Format
//
//	name: select_whole_class
//	description: "Selecting a class selects every element in it"
//	schema: schemas/people.json
//	initial: [e1]
//	flow:
//	  - toggle: class
//	    id: c1
//	    value: true
//	  - toggle: element
//	    id: e2
//	    value: false
//	assertions:
//	  - type: selected
//	    ids: [e1, c2]
//	  - type: not_selected
//	    ids: [e2, c1]
//	  - type: selected_elements
//	    ids: [e1, e3]
//
// The schema path is resolved relative to the scenario file. initial lists
// element ids selected before the flow; container flags are recomputed from
// them.
//
// # Toggles
//
//   - element: select or deselect one element, then bubble to class and schema
//   - class: cascade through the class, then bubble to the schema
//   - schema: cascade through the whole tree (id may be omitted)
//
// # Assertion Types
//
//   - selected: every listed id is selected
//   - not_selected: no listed id is selected
//   - all_selected: every entity in the tree is selected
//   - none_selected: no entity in the tree is selected
//   - selected_elements: the selected elements, in tree order, are exactly ids
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/select_class.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
