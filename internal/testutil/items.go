package testutil

import (
	"github.com/roach88/mediatree/internal/item"
)

// Record is a minimal item whose properties live in a map.
type Record struct {
	Name  string
	Key   string
	Props map[string][]string
}

// Title implements item.Item.
func (r Record) Title() string { return r.Name }

// SortKey implements item.Item. It falls back to the name when Key is
// empty.
func (r Record) SortKey() string {
	if r.Key == "" {
		return r.Name
	}
	return r.Key
}

// NewRecord creates a record keyed by its name.
func NewRecord(name string, props map[string][]string) Record {
	return Record{Name: name, Props: props}
}

// Items converts records to a slice of item.Item.
func Items(records ...Record) []item.Item {
	out := make([]item.Item, len(records))
	for i, r := range records {
		out[i] = r
	}
	return out
}

// Accessor returns a table that resolves each named property from
// Record.Props.
func Accessor(properties ...string) *item.Table {
	t := item.NewTable()
	for _, p := range properties {
		name := p
		t.Register(name, item.Strings(func(r Record) []string {
			return r.Props[name]
		}))
	}
	return t
}

// GenreScenario returns the five-record genre fixture:
// m1 Action, m2 Action+Comedy, m3 Drama, m4 Drama, m5 no genre.
func GenreScenario() []item.Item {
	return Items(
		NewRecord("m1", map[string][]string{"genre": {"Action"}}),
		NewRecord("m2", map[string][]string{"genre": {"Action", "Comedy"}}),
		NewRecord("m3", map[string][]string{"genre": {"Drama"}}),
		NewRecord("m4", map[string][]string{"genre": {"Drama"}}),
		NewRecord("m5", map[string][]string{"genre": {}}),
	)
}
