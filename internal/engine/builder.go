package engine

import (
	"errors"
	"log/slog"

	"github.com/roach88/mediatree/internal/category"
	"github.com/roach88/mediatree/internal/item"
)

// DefaultIcon is the icon reference passed with every container unless
// WithIcon overrides it.
const DefaultIcon = "folder"

// ErrNoAccessor is returned when a level needs grouping but no accessor was
// supplied.
var ErrNoAccessor = errors.New("grouping requires an accessor")

// Kind is the classification of a node for one BuildLevel call.
type Kind int

const (
	// KindHeading emits one pass-through container.
	KindHeading Kind = iota
	// KindLeaf emits every item individually.
	KindLeaf
	// KindGrouped groups items by the node's property.
	KindGrouped
	// KindChildren emits each child template.
	KindChildren
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindLeaf:
		return "leaf"
	case KindGrouped:
		return "grouped"
	case KindChildren:
		return "children"
	default:
		return "unknown"
	}
}

// Classify decides which branch BuildLevel takes for node.
func Classify(node *category.Node) Kind {
	switch {
	case node.UseHeading():
		return KindHeading
	case node.IsLeaf() && (node.Label() != "" || node.Property() == ""):
		return KindLeaf
	case node.Property() != "" && node.Label() == "":
		return KindGrouped
	default:
		return KindChildren
	}
}

// Builder materializes category levels.
type Builder struct {
	icon   string
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithIcon sets the icon reference passed to Sink.AddContainer.
func WithIcon(icon string) Option {
	return func(b *Builder) {
		b.icon = icon
	}
}

// WithLogger sets the logger used for diagnostics and for accessor
// failures.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// New creates a Builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		icon:   DefaultIcon,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildLevel writes the immediate children of node to sink.
//
// The node and its child templates are validated before the sink is
// touched; a configuration error leaves the sink as it was. An empty item
// set is not an error. Errors from the sink are returned as is.
func (b *Builder) BuildLevel(node *category.Node, items []item.Item, acc item.Accessor, sink Sink) error {
	if err := category.CheckLevel(node); err != nil {
		return err
	}
	kind := Classify(node)
	if acc == nil && needsAccessor(node, kind) {
		return ErrNoAccessor
	}

	scope := item.Sorted(items)
	b.logger.Debug("building level",
		"node", node.DisplayName(),
		"kind", kind.String(),
		"items", len(scope),
	)

	if err := sink.ClearChildren(); err != nil {
		return err
	}

	switch kind {
	case KindHeading:
		return sink.AddContainer(b.icon, node.WithUseHeading(false), scope)
	case KindLeaf:
		for _, it := range scope {
			if err := sink.AddLeafItem(it); err != nil {
				return err
			}
		}
		return nil
	case KindGrouped:
		return b.addCategories(node, scope, acc, sink)
	default:
		for _, child := range node.Children() {
			var err error
			if child.UseHeading() {
				err = sink.AddContainer(b.icon, child.WithUseHeading(false), scope)
			} else {
				err = b.addCategories(child, scope, acc, sink)
			}
			if err != nil {
				return err
			}
		}
		return nil
	}
}

// addCategories emits one container per group, or per bucket when the
// template paginates.
func (b *Builder) addCategories(tmpl *category.Node, scope []item.Item, acc item.Accessor, sink Sink) error {
	groups := GroupBy(scope, tmpl.Property(), acc, b.logger)
	for _, bucket := range Paginate(groups, tmpl.BucketSize()) {
		if err := sink.AddContainer(b.icon, tmpl.WithLabel(bucket.Label), bucket.Items.Items()); err != nil {
			return err
		}
	}
	return nil
}

func needsAccessor(node *category.Node, kind Kind) bool {
	switch kind {
	case KindGrouped:
		return true
	case KindChildren:
		for _, c := range node.Children() {
			if !c.UseHeading() {
				return true
			}
		}
	}
	return false
}
