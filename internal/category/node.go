package category

import (
	"fmt"
	"slices"
)

// rootName is the display name of a node with neither label nor property.
const rootName = "Root"

// Node is one grouping rule in a category tree.
//
// The zero value is an unconfigured root: no property, no heading, no
// bucketing and no children.
type Node struct {
	property   string
	label      string
	useHeading bool
	bucketSize int
	children   []*Node
	parent     *Node
}

// Identity is the shallow identity of a Node. It is comparable and may be
// used as a map key.
type Identity struct {
	Property   string
	Label      string
	UseHeading bool
}

// NewRoot creates an empty root template.
func NewRoot() *Node {
	return &Node{}
}

// NewHeading creates a pass-through template. When materialized it emits a
// single container holding every item in scope; the container groups by
// property on the next level.
func NewHeading(property string) *Node {
	return &Node{property: property, useHeading: true}
}

// NewGrouping creates a template that groups items by property. A
// bucketSize greater than zero collapses every bucketSize distinct values
// into one heading bucket.
func NewGrouping(property string, bucketSize int) *Node {
	return &Node{property: property, bucketSize: bucketSize}
}

// Property returns the item property this level groups by, or "" if the
// level does not group.
func (n *Node) Property() string { return n.property }

// Label returns the materialized label. Templates have no label.
func (n *Node) Label() string { return n.label }

// UseHeading reports whether the node is a pass-through container.
func (n *Node) UseHeading() bool { return n.useHeading }

// BucketSize returns the number of distinct values per heading bucket.
// Values <= 0 disable bucketing.
func (n *Node) BucketSize() int { return n.bucketSize }

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// IsInstance reports whether the node carries a materialized label.
func (n *Node) IsInstance() bool { return n.label != "" }

// SetProperty changes the grouping property of a template.
func (n *Node) SetProperty(property string) { n.property = property }

// SetUseHeading changes the pass-through flag of a template.
func (n *Node) SetUseHeading(useHeading bool) { n.useHeading = useHeading }

// SetBucketSize changes the bucket size of a template.
func (n *Node) SetBucketSize(size int) { n.bucketSize = size }

// Children returns the child templates in declaration order.
// The returned slice is a copy.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the child at index i. It panics if i is out of range.
func (n *Node) Child(i int) *Node { return n.children[i] }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// IndexOf returns the index of the first child equal to child, or -1.
func (n *Node) IndexOf(child *Node) int {
	return slices.IndexFunc(n.children, child.Equal)
}

// AddChild appends child and makes n its parent.
func (n *Node) AddChild(child *Node) {
	next := make([]*Node, 0, len(n.children)+1)
	next = append(next, n.children...)
	n.children = append(next, child)
	child.parent = n
}

// RemoveChild removes the first child equal to child. It reports whether a
// child was removed.
func (n *Node) RemoveChild(child *Node) bool {
	i := n.IndexOf(child)
	if i < 0 {
		return false
	}
	removed := n.children[i]
	n.children = slices.Delete(slices.Clone(n.children), i, i+1)
	if removed.parent == n {
		removed.parent = nil
	}
	return true
}

// SetChildren replaces all children and makes n their parent.
func (n *Node) SetChildren(children []*Node) {
	n.children = slices.Clone(children)
	for _, c := range n.children {
		c.parent = n
	}
}

// WithLabel returns an instance of n carrying label. The instance shares
// n's parent and children.
func (n *Node) WithLabel(label string) *Node {
	inst := *n
	inst.label = label
	return &inst
}

// WithUseHeading returns an instance of n with the heading flag set to
// useHeading. The instance shares n's parent and children.
func (n *Node) WithUseHeading(useHeading bool) *Node {
	inst := *n
	inst.useHeading = useHeading
	return &inst
}

// Identity returns the shallow identity of n.
func (n *Node) Identity() Identity {
	return Identity{Property: n.property, Label: n.label, UseHeading: n.useHeading}
}

// Equal reports whether n and other have the same identity. Children,
// parent and bucket size are ignored.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.Identity() == other.Identity()
}

// DisplayName is the name shown for the node: its label, else its
// property, else "Root".
func (n *Node) DisplayName() string {
	if n.label != "" {
		return n.label
	}
	if n.property != "" {
		return n.property
	}
	return rootName
}

// String describes the rule the node configures.
func (n *Node) String() string {
	name := n.property
	if name == "" {
		name = rootName
	}
	switch {
	case n.bucketSize > 0:
		return fmt.Sprintf("%s (%d entry group)", name, n.bucketSize)
	case n.useHeading:
		return name + " (Use Category Header)"
	default:
		return name
	}
}

// Walk visits n and its descendants depth first in declaration order.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.children {
		c.walk(fn, depth+1)
	}
}
