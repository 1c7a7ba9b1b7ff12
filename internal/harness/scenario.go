package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a browse scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Tree is an inline category tree in YAML.
	Tree string `yaml:"tree,omitempty"`

	// TreeFile is a tree file path. Relative paths are resolved against
	// the scenario file's directory by LoadScenario.
	TreeFile string `yaml:"tree_file,omitempty"`

	// Icon overrides the container icon.
	Icon string `yaml:"icon,omitempty"`

	// Items is the flat collection handed to the library.
	Items []ItemSpec `yaml:"items"`

	// Steps are browse paths expanded in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the recorded trace.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ItemSpec describes one fixture item.
type ItemSpec struct {
	Title string              `yaml:"title"`
	Key   string              `yaml:"key,omitempty"`
	Props map[string][]string `yaml:"props,omitempty"`
}

// Step expands one path.
type Step struct {
	// Path is the sequence of container labels from the root.
	Path []string `yaml:"path"`

	// Expect is optional; nil means the step must simply not fail.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect lists what a step must produce. Only the fields set are checked.
type Expect struct {
	// Containers are the exact container labels in emission order.
	Containers []string `yaml:"containers,omitempty"`

	// Leaves are the exact leaf titles in emission order.
	Leaves []string `yaml:"leaves,omitempty"`

	// Error is the expected failure. Only ErrorPathNotFound is reachable
	// from a scenario.
	Error string `yaml:"error,omitempty"`
}

// ErrorPathNotFound is the Expect.Error of a path naming no container.
const ErrorPathNotFound = "path_not_found"

// Assertion validates a step's trace.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Step indexes Scenario.Steps.
	Step int `yaml:"step"`

	// Label names a container (container_items).
	Label string `yaml:"label,omitempty"`

	// Items are item titles (container_items).
	Items []string `yaml:"items,omitempty"`

	// Labels are container labels (label_order).
	Labels []string `yaml:"labels,omitempty"`

	// Kind is a trace event kind (event_count).
	Kind string `yaml:"kind,omitempty"`

	// Count is the expected number of events (event_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertContainerItems = "container_items"
	AssertLabelOrder     = "label_order"
	AssertEventCount     = "event_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.TreeFile != "" && !filepath.IsAbs(scenario.TreeFile) {
		scenario.TreeFile = filepath.Join(filepath.Dir(path), scenario.TreeFile)
	}
	if scenario.TreeFile != "" {
		if _, err := os.Stat(scenario.TreeFile); os.IsNotExist(err) {
			return nil, fmt.Errorf("invalid scenario: tree file not found: %s", scenario.TreeFile)
		}
	}
	return scenario, nil
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Tree != "" && s.TreeFile != "" {
		return fmt.Errorf("tree and tree_file are mutually exclusive")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, it := range s.Items {
		if it.Title == "" {
			return fmt.Errorf("items[%d]: title is required", i)
		}
	}

	for i, step := range s.Steps {
		if step.Expect == nil {
			continue
		}
		switch step.Expect.Error {
		case "", ErrorPathNotFound:
		default:
			return fmt.Errorf("steps[%d].expect: unknown error %q", i, step.Expect.Error)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a, len(s.Steps)); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, steps int) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}
	if a.Step < 0 || a.Step >= steps {
		return fmt.Errorf("assertions[%d]: step %d out of range", index, a.Step)
	}

	switch a.Type {
	case AssertContainerItems:
		if a.Label == "" {
			return fmt.Errorf("assertions[%d]: label is required for container_items", index)
		}
	case AssertLabelOrder:
		if len(a.Labels) == 0 {
			return fmt.Errorf("assertions[%d]: labels list is required for label_order", index)
		}
	case AssertEventCount:
		switch a.Kind {
		case EventClear, EventLeaf, EventContainer:
		default:
			return fmt.Errorf("assertions[%d]: unknown event kind %q for event_count", index, a.Kind)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for event_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
