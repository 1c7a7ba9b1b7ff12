package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/mediatree/internal/category"
	"github.com/roach88/mediatree/internal/config"
)

// TreeLine is one node of a rendered tree.
type TreeLine struct {
	Depth      int    `json:"depth"`
	Rule       string `json:"rule"`
	Property   string `json:"property,omitempty"`
	UseHeading bool   `json:"use_heading,omitempty"`
	BucketSize int    `json:"bucket_size,omitempty"`
}

// TreeView is the output of tree show.
type TreeView struct {
	File        string     `json:"file"`
	Default     bool       `json:"default,omitempty"`
	Fingerprint string     `json:"fingerprint"`
	Nodes       []TreeLine `json:"nodes"`
}

func (v TreeView) String() string {
	var b strings.Builder
	source := v.File
	if v.Default {
		source += " (not found, default tree)"
	}
	fmt.Fprintf(&b, "%s\n", source)
	for _, n := range v.Nodes {
		fmt.Fprintf(&b, "%s%s\n", strings.Repeat("  ", n.Depth), n.Rule)
	}
	fmt.Fprintf(&b, "fingerprint %s\n", v.Fingerprint)
	return b.String()
}

// TreeInitResult is the output of tree init.
type TreeInitResult struct {
	File        string `json:"file"`
	Fingerprint string `json:"fingerprint"`
}

func (r TreeInitResult) String() string {
	return fmt.Sprintf("✓ Wrote default tree to %s\n", r.File)
}

// NewTreeCommand creates the tree command group.
func NewTreeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Inspect and create category tree files",
	}
	cmd.AddCommand(newTreeShowCommand(rootOpts))
	cmd.AddCommand(newTreeInitCommand(rootOpts))
	return cmd
}

func newTreeShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show [tree-file]",
		Short: "Print the category tree",
		Long: `Print the category tree one rule per line, indented by depth.

Without an argument the tree file from the settings is shown. A missing
file shows the default tree (a single genre heading).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts, cmd)
			path, err := treePath(opts, formatter, args)
			if err != nil {
				return err
			}
			tree, found, err := loadTreeOrDefault(path)
			if err != nil {
				if errors.Is(err, category.ErrInvalidCategoryConfig) {
					return formatter.Failure(ErrCodeInvalidTree, "tree is invalid",
						ValidationResult{Errors: collectConfigErrors(err)})
				}
				return formatter.CommandError(ErrCodeLoadFailed, "cannot read tree file", err)
			}
			return formatter.Success(newTreeView(path, !found, tree))
		},
	}
}

func newTreeInitCommand(opts *RootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init <tree-file>",
		Short: "Write the default category tree",
		Long: `Write the default category tree to a file. The format follows the
file extension (.yaml, .yml or .cue).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts, cmd)
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return formatter.CommandError(ErrCodeWriteFailed,
					fmt.Sprintf("%s already exists (use --force to overwrite)", path), nil)
			}
			tree := category.DefaultTree()
			if err := config.SaveTree(path, tree); err != nil {
				return formatter.CommandError(ErrCodeWriteFailed, "cannot write tree file", err)
			}
			return formatter.Success(TreeInitResult{File: path, Fingerprint: category.Fingerprint(tree)})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// treePath returns the tree file argument, or the settings tree file.
func treePath(opts *RootOptions, f *OutputFormatter, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	settings, err := loadSettings(opts, f)
	if err != nil {
		return "", err
	}
	return settings.Tree, nil
}

func newTreeView(path string, isDefault bool, tree *category.Node) TreeView {
	view := TreeView{
		File:        path,
		Default:     isDefault,
		Fingerprint: category.Fingerprint(tree),
	}
	tree.Walk(func(n *category.Node, depth int) bool {
		view.Nodes = append(view.Nodes, TreeLine{
			Depth:      depth,
			Rule:       n.String(),
			Property:   n.Property(),
			UseHeading: n.UseHeading(),
			BucketSize: n.BucketSize(),
		})
		return true
	})
	return view
}
