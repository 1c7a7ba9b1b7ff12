package item

import (
	"cmp"
	"slices"
)

// Item is a record that can be organized into categories.
type Item interface {
	// Title is the human-readable name, the primary sort key.
	Title() string

	// SortKey breaks ties between equal titles. It must be stable for the
	// lifetime of the item and unique within a collection; its value has
	// no other meaning.
	SortKey() string
}

// Compare orders items by title, then by sort key, using plain byte-wise
// string comparison.
func Compare(a, b Item) int {
	if c := cmp.Compare(a.Title(), b.Title()); c != 0 {
		return c
	}
	return cmp.Compare(a.SortKey(), b.SortKey())
}

type setKey struct {
	title string
	key   string
}

func keyOf(it Item) setKey {
	return setKey{title: it.Title(), key: it.SortKey()}
}

// Set is a deduplicated collection of items. Two items are the same member
// when Compare reports them equal.
//
// The zero value is an empty set ready to use. A Set is not safe for
// concurrent mutation.
type Set struct {
	members map[setKey]Item
}

// NewSet returns a set holding items.
func NewSet(items ...Item) *Set {
	s := &Set{}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Add inserts it and reports whether it was not already present.
func (s *Set) Add(it Item) bool {
	if s.members == nil {
		s.members = make(map[setKey]Item)
	}
	k := keyOf(it)
	if _, ok := s.members[k]; ok {
		return false
	}
	s.members[k] = it
	return true
}

// AddAll inserts every member of other.
func (s *Set) AddAll(other *Set) {
	if other == nil {
		return
	}
	for _, it := range other.members {
		s.Add(it)
	}
}

// Contains reports whether it is a member.
func (s *Set) Contains(it Item) bool {
	_, ok := s.members[keyOf(it)]
	return ok
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.members)
}

// Items returns the members in Compare order. The result is never nil.
func (s *Set) Items() []Item {
	out := make([]Item, 0, len(s.members))
	for _, it := range s.members {
		out = append(out, it)
	}
	slices.SortFunc(out, Compare)
	return out
}

// Sorted returns items deduplicated and in Compare order. The input is not
// modified.
func Sorted(items []Item) []Item {
	return NewSet(items...).Items()
}
