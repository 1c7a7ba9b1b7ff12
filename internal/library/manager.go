package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/roach88/mediatree/internal/category"
	"github.com/roach88/mediatree/internal/engine"
	"github.com/roach88/mediatree/internal/item"
	"github.com/roach88/mediatree/internal/media"
)

var (
	// ErrNotReady is returned by Expand before the first successful Refresh.
	ErrNotReady = errors.New("library not loaded")

	// ErrRefreshInProgress is returned by Refresh while another refresh runs.
	ErrRefreshInProgress = errors.New("refresh already in progress")

	// ErrPathNotFound is returned by Expand for a label that does not name
	// a container on its level.
	ErrPathNotFound = errors.New("browse path not found")
)

// Manager holds the category tree and the current item collection.
//
// Thread-safety: All methods are safe for concurrent use.
type Manager struct {
	source  Source
	acc     item.Accessor
	builder *engine.Builder
	logger  *slog.Logger

	refreshing atomic.Bool

	mu    sync.RWMutex
	tree  *category.Node
	items []item.Item
	ready bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithAccessor sets the property accessor. Defaults to media.NewAccessor().
func WithAccessor(acc item.Accessor) Option {
	return func(m *Manager) {
		m.acc = acc
	}
}

// WithBuilder sets the level builder.
func WithBuilder(b *engine.Builder) Option {
	return func(m *Manager) {
		m.builder = b
	}
}

// New creates a Manager over source browsing with tree. The tree is
// validated; an invalid tree is an error wrapping
// category.ErrInvalidCategoryConfig.
func New(source Source, tree *category.Node, opts ...Option) (*Manager, error) {
	m := &Manager{
		source: source,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.acc == nil {
		m.acc = media.NewAccessor()
	}
	if m.builder == nil {
		m.builder = engine.New(engine.WithLogger(m.logger))
	}
	if err := m.SetTree(tree); err != nil {
		return nil, err
	}
	return m, nil
}

// Refresh reloads the collection from the source. On error the previous
// collection stays in place.
func (m *Manager) Refresh(ctx context.Context) error {
	if !m.refreshing.CompareAndSwap(false, true) {
		return ErrRefreshInProgress
	}
	defer m.refreshing.Store(false)

	loaded, err := m.source.Load(ctx)
	if err != nil {
		m.logger.Warn("refresh failed", "error", err)
		return fmt.Errorf("refresh: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	items := item.NewSet(loaded...).Items()

	m.mu.Lock()
	m.items = items
	m.ready = true
	m.mu.Unlock()

	m.logger.Info("library refreshed", "items", len(items))
	return nil
}

// Ready reports whether a collection is loaded.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

// Clear drops the collection. Expand returns ErrNotReady until the next
// Refresh.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	m.ready = false
}

// Items returns the loaded collection in item.Compare order.
func (m *Manager) Items() []item.Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]item.Item, len(m.items))
	copy(out, m.items)
	return out
}

// Root returns the root of the category tree.
func (m *Manager) Root() *category.Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tree
}

// SetTree validates and installs a new category tree.
func (m *Manager) SetTree(tree *category.Node) error {
	if tree == nil {
		return fmt.Errorf("%w: nil tree", category.ErrInvalidCategoryConfig)
	}
	if err := category.Check(tree); err != nil {
		return err
	}
	m.mu.Lock()
	m.tree = tree
	m.mu.Unlock()
	return nil
}

// Expand materializes the level reached by following path from the root
// and writes it to sink. An empty path materializes the root level.
func (m *Manager) Expand(path []string, sink engine.Sink) error {
	m.mu.RLock()
	node, scope, ready := m.tree, m.items, m.ready
	m.mu.RUnlock()
	if !ready {
		return ErrNotReady
	}

	for depth, label := range path {
		var c collector
		if err := m.builder.BuildLevel(node, scope, m.acc, &c); err != nil {
			return err
		}
		next, ok := c.find(label)
		if !ok {
			return fmt.Errorf("%w: %q at depth %d", ErrPathNotFound, label, depth)
		}
		node, scope = next.node, next.items
	}
	return m.builder.BuildLevel(node, scope, m.acc, sink)
}

type container struct {
	node  *category.Node
	items []item.Item
}

// collector is the Sink used while walking a path. Leaves are dropped.
type collector struct {
	containers []container
}

func (c *collector) ClearChildren() error {
	c.containers = c.containers[:0]
	return nil
}

func (c *collector) AddLeafItem(item.Item) error { return nil }

func (c *collector) AddContainer(_ string, node *category.Node, items []item.Item) error {
	c.containers = append(c.containers, container{node: node, items: items})
	return nil
}

// find returns the first container displayed as label.
func (c *collector) find(label string) (container, bool) {
	for _, ct := range c.containers {
		if ct.node.DisplayName() == label {
			return ct, true
		}
	}
	return container{}, false
}
