package testutil

import (
	"fmt"
	"strings"
	"sync"

	"github.com/roach88/mediatree/internal/category"
	"github.com/roach88/mediatree/internal/item"
)

// Sink event kinds recorded by RecordingSink.
const (
	EventClear     = "clear"
	EventLeaf      = "leaf"
	EventContainer = "container"
)

// Event is one recorded sink call.
type Event struct {
	Kind   string
	Icon   string
	Label  string
	Titles []string
	Node   *category.Node
	Items  []item.Item
}

// RecordingSink records every call made to it, in order.
//
// FailOn makes the sink return Err from the first call of that kind.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type RecordingSink struct {
	mu     sync.Mutex
	Events []Event
	FailOn string
	Err    error
}

// NewRecordingSink returns an empty sink.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

// ClearChildren records a clear event.
func (s *RecordingSink) ClearChildren() error {
	return s.record(Event{Kind: EventClear})
}

// AddLeafItem records a leaf event.
func (s *RecordingSink) AddLeafItem(it item.Item) error {
	return s.record(Event{
		Kind:   EventLeaf,
		Label:  it.Title(),
		Titles: []string{it.Title()},
		Items:  []item.Item{it},
	})
}

// AddContainer records a container event.
func (s *RecordingSink) AddContainer(icon string, node *category.Node, items []item.Item) error {
	titles := make([]string, len(items))
	for i, it := range items {
		titles[i] = it.Title()
	}
	return s.record(Event{
		Kind:   EventContainer,
		Icon:   icon,
		Label:  node.DisplayName(),
		Titles: titles,
		Node:   node,
		Items:  items,
	})
}

func (s *RecordingSink) record(e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailOn == e.Kind && s.Err != nil {
		return s.Err
	}
	s.Events = append(s.Events, e)
	return nil
}

// Reset discards recorded events.
func (s *RecordingSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = nil
}

// Containers returns the recorded container events.
func (s *RecordingSink) Containers() []Event {
	return s.filter(EventContainer)
}

// Leaves returns the recorded leaf events.
func (s *RecordingSink) Leaves() []Event {
	return s.filter(EventLeaf)
}

// Labels returns container labels in emission order.
func (s *RecordingSink) Labels() []string {
	var out []string
	for _, e := range s.Containers() {
		out = append(out, e.Label)
	}
	return out
}

// Container returns the first container with label, if any.
func (s *RecordingSink) Container(label string) (Event, bool) {
	for _, e := range s.Containers() {
		if e.Label == label {
			return e, true
		}
	}
	return Event{}, false
}

func (s *RecordingSink) filter(kind string) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Event
	for _, e := range s.Events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// String renders the event stream one event per line.
func (s *RecordingSink) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var b strings.Builder
	for _, e := range s.Events {
		switch e.Kind {
		case EventClear:
			b.WriteString("clear\n")
		case EventLeaf:
			fmt.Fprintf(&b, "leaf %s\n", e.Label)
		case EventContainer:
			fmt.Fprintf(&b, "container %s [%s]\n", e.Label, strings.Join(e.Titles, ", "))
		}
	}
	return b.String()
}
