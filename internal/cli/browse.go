package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/mediatree/internal/category"
	"github.com/roach88/mediatree/internal/config"
	"github.com/roach88/mediatree/internal/engine"
	"github.com/roach88/mediatree/internal/item"
	"github.com/roach88/mediatree/internal/library"
	"github.com/roach88/mediatree/internal/media"
	"github.com/roach88/mediatree/internal/store"
)

// BrowseOptions holds flags for the browse command.
type BrowseOptions struct {
	*RootOptions
	DB   string // database path; overrides settings
	Tree string // tree file; overrides settings
}

// BrowseEntry is one child of the browsed level.
type BrowseEntry struct {
	Kind  string `json:"kind"` // "container" | "leaf"
	Icon  string `json:"icon,omitempty"`
	Label string `json:"label"`
	Count int    `json:"count,omitempty"`
	ID    string `json:"id,omitempty"`
}

// BrowseResult is the output of browse.
type BrowseResult struct {
	Path    []string      `json:"path"`
	Entries []BrowseEntry `json:"entries"`
}

func (r BrowseResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "/%s\n", strings.Join(r.Path, "/"))
	for _, e := range r.Entries {
		if e.Kind == "container" {
			fmt.Fprintf(&b, "  [+] %s (%d)\n", e.Label, e.Count)
		} else {
			fmt.Fprintf(&b, "      %s\n", e.Label)
		}
	}
	return b.String()
}

// NewBrowseCommand creates the browse command.
func NewBrowseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BrowseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "browse [label...]",
		Short: "Browse the catalog through the category tree",
		Long: `Materialize one level of the category tree over the catalog.

With no labels the root level is shown. Each label selects a container
of the previous level, so "browse genre Action" lists what sits inside
the Action container under the genre heading.

Exit codes:
  0 - Level shown
  2 - Command error (settings, database, invalid tree, unknown label)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "catalog database path")
	cmd.Flags().StringVar(&opts.Tree, "tree", "", "category tree file")

	return cmd
}

func runBrowse(opts *BrowseOptions, path []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	settings, err := loadSettings(opts.RootOptions, formatter)
	if err != nil {
		return err
	}
	if opts.DB != "" {
		settings.Database = opts.DB
	}
	if opts.Tree != "" {
		settings.Tree = opts.Tree
	}

	tree, found, err := loadTreeOrDefault(settings.Tree, config.WithKnownProperties(media.Properties()...))
	if err != nil {
		if errors.Is(err, category.ErrInvalidCategoryConfig) {
			return formatter.CommandError(ErrCodeInvalidTree, "tree is invalid", err)
		}
		return formatter.CommandError(ErrCodeLoadFailed, "cannot read tree file", err)
	}
	if !found {
		formatter.VerboseLog("Tree file %s not found, using default tree", settings.Tree)
	}

	st, err := store.Open(settings.Database)
	if err != nil {
		return formatter.CommandError(ErrCodeDatabase, "cannot open catalog", err)
	}
	defer st.Close()

	logger := newLogger(opts.RootOptions, settings, cmd.ErrOrStderr())
	lib, err := library.New(library.FromRecords(st), tree,
		library.WithLogger(logger),
		library.WithBuilder(engine.New(
			engine.WithIcon(settings.Icon),
			engine.WithLogger(logger),
		)),
	)
	if err != nil {
		return formatter.CommandError(ErrCodeInvalidTree, "tree is invalid", err)
	}
	if err := lib.Refresh(cmd.Context()); err != nil {
		return formatter.CommandError(ErrCodeDatabase, "cannot load catalog", err)
	}

	sink := &listing{entries: []BrowseEntry{}}
	if err := lib.Expand(path, sink); err != nil {
		if errors.Is(err, library.ErrPathNotFound) {
			return formatter.CommandError(ErrCodeBrowsePath, "no such container", err)
		}
		return formatter.CommandError(ErrCodeGeneric, "cannot expand level", err)
	}

	if path == nil {
		path = []string{}
	}
	return formatter.Success(BrowseResult{Path: path, Entries: sink.entries})
}

// listing is the Sink behind browse output.
type listing struct {
	entries []BrowseEntry
}

func (l *listing) ClearChildren() error {
	l.entries = []BrowseEntry{}
	return nil
}

func (l *listing) AddLeafItem(it item.Item) error {
	l.entries = append(l.entries, BrowseEntry{Kind: "leaf", Label: it.Title(), ID: it.SortKey()})
	return nil
}

func (l *listing) AddContainer(icon string, node *category.Node, items []item.Item) error {
	l.entries = append(l.entries, BrowseEntry{
		Kind:  "container",
		Icon:  icon,
		Label: node.DisplayName(),
		Count: len(items),
	})
	return nil
}
