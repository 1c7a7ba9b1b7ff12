// Package harness runs browse scenarios against the library and compares
// the resulting sink traces with golden files.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: genre_headings
//	description: "Root heading expands into one container per genre"
//	tree: |
//	  children:
//	    - property: genre
//	      use_heading: true
//	items:
//	  - title: m1
//	    props: { genre: [Action] }
//	steps:
//	  - path: []
//	    expect:
//	      containers: [genre]
//	  - path: [genre]
//	  - path: [genre, Western]
//	    expect:
//	      error: path_not_found
//	assertions:
//	  - type: container_items
//	    step: 1
//	    label: Action
//	    items: [m1]
//
// The tree is either inline (tree) or a file (tree_file) relative to the
// scenario. Item titles double as sort keys unless key is given.
//
// # Assertion Types
//
//   - container_items: the container with label on a step holds exactly items
//   - label_order: labels appear in this order among a step's containers
//   - event_count: a step emitted exactly count events of kind
//
// # Deterministic Testing
//
// Every scenario runs against a fresh library with a static source and
// logging discarded. Builders are pure, so identical scenarios produce
// identical traces, which is what makes golden comparison meaningful.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/genre.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
