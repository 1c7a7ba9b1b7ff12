package engine

import (
	"log/slog"
	"slices"

	"github.com/roach88/mediatree/internal/item"
)

// Group is the set of items sharing one resolved property value.
type Group struct {
	Key   string
	Items *item.Set
}

// GroupBy groups items by the values of property.
//
// An item with several values lands in the group of each value. Missing or
// blank values, and values that could not be resolved, go to the
// item.Unknown group. Groups are returned in ascending key order.
func GroupBy(items []item.Item, property string, acc item.Accessor, logger *slog.Logger) []Group {
	byKey := make(map[string]*item.Set)
	for _, it := range items {
		for _, v := range item.Resolve(acc, it, property, logger) {
			set, ok := byKey[v]
			if !ok {
				set = item.NewSet()
				byKey[v] = set
			}
			set.Add(it)
		}
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	groups := make([]Group, len(keys))
	for i, k := range keys {
		groups[i] = Group{Key: k, Items: byKey[k]}
	}
	return groups
}
