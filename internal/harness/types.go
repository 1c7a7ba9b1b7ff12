package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/mediatree/internal/testutil"
)

// Trace event kinds. The first three mirror the sink calls.
const (
	EventClear     = testutil.EventClear
	EventLeaf      = testutil.EventLeaf
	EventContainer = testutil.EventContainer
	EventError     = "error"
)

// TraceEvent is one sink call, or the failure of a step.
type TraceEvent struct {
	Step  int      `json:"step"`
	Kind  string   `json:"kind"`
	Icon  string   `json:"icon,omitempty"`
	Label string   `json:"label,omitempty"`
	Items []string `json:"items,omitempty"`
	Error string   `json:"error,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace contains every event of every step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation and assertion failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	paths [][]string
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// StepEvents returns the events of step i.
func (r *Result) StepEvents(i int) []TraceEvent {
	var out []TraceEvent
	for _, e := range r.Trace {
		if e.Step == i {
			out = append(out, e)
		}
	}
	return out
}

// Format renders the trace as text, one line per event with a header per
// step. This is the golden file format.
func (r *Result) Format(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario %s\n", name)
	for i, path := range r.paths {
		fmt.Fprintf(&b, "step %d /%s\n", i, strings.Join(path, "/"))
		for _, e := range r.StepEvents(i) {
			switch e.Kind {
			case EventClear:
				b.WriteString("  clear\n")
			case EventLeaf:
				fmt.Fprintf(&b, "  leaf %s\n", e.Label)
			case EventContainer:
				fmt.Fprintf(&b, "  container %s %s [%s]\n", e.Icon, e.Label, strings.Join(e.Items, ", "))
			case EventError:
				fmt.Fprintf(&b, "  error %s\n", e.Error)
			}
		}
	}
	return b.String()
}
