package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/mediatree/internal/category"
	"github.com/roach88/mediatree/internal/config"
	"github.com/roach88/mediatree/internal/media"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	AnyProperty bool // skip the known-property check
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid       bool                    `json:"valid"`
	Fingerprint string                  `json:"fingerprint,omitempty"`
	Errors      []*category.ConfigError `json:"errors,omitempty"`
}

// String renders the result as text.
func (r ValidationResult) String() string {
	var b strings.Builder
	if r.Valid {
		fmt.Fprintf(&b, "✓ Tree valid (%s)\n", r.Fingerprint)
		return b.String()
	}
	fmt.Fprintln(&b, "✗ Validation failed")
	fmt.Fprintln(&b)
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "  %s\n", e.Error())
	}
	return b.String()
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <tree-file>",
		Short: "Validate a category tree file",
		Long: `Validate a category tree file (YAML or CUE).

Checks the file against the tree schema and reports every structural
problem, not just the first. Properties are checked against the media
record properties unless --any-property is given.

Exit codes:
  0 - Tree is valid
  1 - Tree is invalid
  2 - Command error (file not found, unsupported format)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.AnyProperty, "any-property", false, "accept any property name")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if _, err := config.FormatOf(path); err != nil {
		return formatter.CommandError(ErrCodeLoadFailed, err.Error(), nil)
	}
	if _, err := os.Stat(path); err != nil {
		return formatter.CommandError(ErrCodeNotFound, fmt.Sprintf("tree file not found: %s", path), err)
	}

	var treeOpts []config.TreeOption
	if !opts.AnyProperty {
		treeOpts = append(treeOpts, config.WithKnownProperties(media.Properties()...))
	}

	formatter.VerboseLog("Validating %s", path)
	tree, err := config.LoadTree(path, treeOpts...)
	if err != nil {
		if !errors.Is(err, category.ErrInvalidCategoryConfig) {
			return formatter.CommandError(ErrCodeLoadFailed, "cannot read tree file", err)
		}
		result := ValidationResult{Errors: collectConfigErrors(err)}
		return formatter.Failure(ErrCodeInvalidTree,
			fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)), result)
	}

	return formatter.Success(ValidationResult{Valid: true, Fingerprint: category.Fingerprint(tree)})
}

// collectConfigErrors flattens joined errors into their ConfigErrors.
func collectConfigErrors(err error) []*category.ConfigError {
	var out []*category.ConfigError
	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		if ce, ok := err.(*category.ConfigError); ok {
			out = append(out, ce)
			return
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				walk(e)
			}
			return
		}
		walk(errors.Unwrap(err))
	}
	walk(err)
	return out
}
