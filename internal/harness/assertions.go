package harness

import (
	"fmt"
	"slices"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes the step's trace to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Step     int          // Step the assertion applies to
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Events of the step
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s (step %d)\n", e.Type, e.Step)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nStep trace:\n")
	for i, event := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s %s\n", i+1, event.Kind, event.Label)
	}

	return buf.String()
}

func evaluateAssertion(result *Result, a Assertion) error {
	trace := result.StepEvents(a.Step)
	switch a.Type {
	case AssertContainerItems:
		return assertContainerItems(trace, a)
	case AssertLabelOrder:
		return assertLabelOrder(trace, a)
	case AssertEventCount:
		return assertEventCount(trace, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertContainerItems checks that the first container with the label
// holds exactly the listed items, in order.
func assertContainerItems(trace []TraceEvent, a Assertion) error {
	for _, e := range trace {
		if e.Kind != EventContainer || e.Label != a.Label {
			continue
		}
		if slices.Equal(e.Items, a.Items) {
			return nil
		}
		return &AssertionError{
			Type:     AssertContainerItems,
			Step:     a.Step,
			Expected: fmt.Sprintf("container %s with items %v", a.Label, a.Items),
			Actual:   fmt.Sprintf("items %v", e.Items),
			Trace:    trace,
		}
	}
	return &AssertionError{
		Type:     AssertContainerItems,
		Step:     a.Step,
		Expected: fmt.Sprintf("container %s", a.Label),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertLabelOrder checks that the labels appear among the step's
// containers in the given order. Other containers may come in between.
func assertLabelOrder(trace []TraceEvent, a Assertion) error {
	next := 0
	for _, e := range trace {
		if next < len(a.Labels) && e.Kind == EventContainer && e.Label == a.Labels[next] {
			next++
		}
	}
	if next == len(a.Labels) {
		return nil
	}
	return &AssertionError{
		Type:     AssertLabelOrder,
		Step:     a.Step,
		Expected: fmt.Sprintf("containers in order: %v", a.Labels),
		Actual:   fmt.Sprintf("%s missing or out of order", a.Labels[next]),
		Trace:    trace,
	}
}

// assertEventCount checks the number of events of a kind.
func assertEventCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, e := range trace {
		if e.Kind == a.Kind {
			count++
		}
	}
	if count == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertEventCount,
		Step:     a.Step,
		Expected: fmt.Sprintf("%d %s events", a.Count, a.Kind),
		Actual:   fmt.Sprintf("%d %s events", count, a.Kind),
		Trace:    trace,
	}
}
