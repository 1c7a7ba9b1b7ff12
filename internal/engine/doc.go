// Package engine materializes one level of a category tree.
//
// Builder.BuildLevel takes a category node, the items in scope and an
// accessor, and writes the node's immediate children to a Sink. It never
// recurses: a container it emits carries a node instance, and expanding
// that container is a separate BuildLevel call made later by the host.
//
// # Level classification
//
// BuildLevel classifies the node once and takes exactly one branch:
//
//  1. Heading: the node is a pass-through. One container, derived from the
//     node with the heading flag cleared, wraps every item in scope.
//  2. Leaf: the node has no children and either carries a label or has
//     neither label nor property. Every item is emitted individually.
//  3. Grouped: the node has a property and no label. Items are grouped by
//     the property and, when the node's bucket size is positive, grouped
//     keys are collapsed into heading buckets. One container per group.
//  4. Children: otherwise each child template is emitted in declaration
//     order, as a heading container or as grouped containers over the full
//     item set.
//
// # Determinism
//
// Group keys are ordered by plain byte-wise comparison and items by
// item.Compare, so identical inputs always yield an identical sink call
// stream.
//
// # Concurrency
//
// A Builder holds no mutable state. BuildLevel never mutates the node or
// the items and may be called concurrently for independent inputs.
package engine
