package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/mediatree/internal/category"
	"github.com/roach88/mediatree/internal/config"
	"github.com/roach88/mediatree/internal/engine"
	"github.com/roach88/mediatree/internal/item"
	"github.com/roach88/mediatree/internal/library"
	"github.com/roach88/mediatree/internal/testutil"
)

// Run executes a scenario and returns the result.
//
// A scenario whose tree or items cannot be set up is an error; a failed
// expectation or assertion is reported in the Result.
func Run(scenario *Scenario) (*Result, error) {
	tree, err := scenarioTree(scenario)
	if err != nil {
		return nil, err
	}
	items := scenarioItems(scenario)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	opts := []engine.Option{engine.WithLogger(logger)}
	if scenario.Icon != "" {
		opts = append(opts, engine.WithIcon(scenario.Icon))
	}
	lib, err := library.New(library.Static(items...), tree,
		library.WithAccessor(testutil.Accessor(scenarioProperties(scenario, tree)...)),
		library.WithBuilder(engine.New(opts...)),
		library.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	if err := lib.Refresh(context.Background()); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		if err := runStep(lib, i, step, result); err != nil {
			return nil, fmt.Errorf("scenario %s: step %d: %w", scenario.Name, i, err)
		}
	}
	for _, a := range scenario.Assertions {
		if err := evaluateAssertion(result, a); err != nil {
			result.AddError(err.Error())
		}
	}
	return result, nil
}

func runStep(lib *library.Manager, i int, step Step, result *Result) error {
	result.paths = append(result.paths, step.Path)

	sink := testutil.NewRecordingSink()
	err := lib.Expand(step.Path, sink)
	switch {
	case errors.Is(err, library.ErrPathNotFound):
		result.Trace = append(result.Trace, TraceEvent{Step: i, Kind: EventError, Error: ErrorPathNotFound})
	case err != nil:
		return err
	default:
		for _, e := range sink.Events {
			ev := TraceEvent{Step: i, Kind: e.Kind, Icon: e.Icon, Label: e.Label}
			if e.Kind == EventContainer {
				ev.Items = e.Titles
			}
			result.Trace = append(result.Trace, ev)
		}
	}

	if step.Expect != nil {
		checkExpect(result, i, step.Expect)
	}
	return nil
}

func checkExpect(result *Result, i int, want *Expect) {
	events := result.StepEvents(i)

	var gotErr string
	var containers, leaves []string
	for _, e := range events {
		switch e.Kind {
		case EventError:
			gotErr = e.Error
		case EventContainer:
			containers = append(containers, e.Label)
		case EventLeaf:
			leaves = append(leaves, e.Label)
		}
	}

	if gotErr != want.Error {
		result.AddError(fmt.Sprintf("step %d: error = %q, want %q", i, gotErr, want.Error))
		return
	}
	if want.Containers != nil && !slices.Equal(containers, want.Containers) {
		result.AddError(fmt.Sprintf("step %d: containers = %v, want %v", i, containers, want.Containers))
	}
	if want.Leaves != nil && !slices.Equal(leaves, want.Leaves) {
		result.AddError(fmt.Sprintf("step %d: leaves = %v, want %v", i, leaves, want.Leaves))
	}
}

func scenarioTree(s *Scenario) (*category.Node, error) {
	switch {
	case s.Tree != "":
		tree, err := config.ParseTree([]byte(s.Tree), config.FormatYAML)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: tree: %w", s.Name, err)
		}
		return tree, nil
	case s.TreeFile != "":
		tree, err := config.LoadTree(s.TreeFile)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		return tree, nil
	default:
		return category.DefaultTree(), nil
	}
}

func scenarioItems(s *Scenario) []item.Item {
	items := make([]item.Item, len(s.Items))
	for i, spec := range s.Items {
		items[i] = testutil.Record{Name: spec.Title, Key: spec.Key, Props: spec.Props}
	}
	return items
}

// scenarioProperties lists every property named by the items or the tree,
// so that a missing value resolves to item.Unknown without a warning.
func scenarioProperties(s *Scenario, tree *category.Node) []string {
	var props []string
	for _, spec := range s.Items {
		for p := range spec.Props {
			props = append(props, p)
		}
	}
	tree.Walk(func(n *category.Node, _ int) bool {
		if n.Property() != "" {
			props = append(props, n.Property())
		}
		return true
	})
	slices.Sort(props)
	return slices.Compact(props)
}
