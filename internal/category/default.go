package category

// DefaultProperty is the grouping property of the default tree.
const DefaultProperty = "genre"

// DefaultTree returns the tree used when no configuration exists: a root
// with a single genre heading.
func DefaultTree() *Node {
	root := NewRoot()
	root.AddChild(NewHeading(DefaultProperty))
	return root
}
