package engine

import (
	"github.com/roach88/mediatree/internal/category"
	"github.com/roach88/mediatree/internal/item"
)

// Sink receives the materialized children of one node. It is implemented
// by the presentation layer.
//
// Errors returned by a Sink are passed back to the BuildLevel caller
// unchanged.
type Sink interface {
	// ClearChildren discards whatever was materialized for the node before.
	ClearChildren() error

	// AddLeafItem adds one ungrouped item.
	AddLeafItem(it item.Item) error

	// AddContainer adds a browsable group. node carries the label and the
	// configuration needed to expand the container later; items are in
	// item.Compare order.
	AddContainer(icon string, node *category.Node, items []item.Item) error
}
