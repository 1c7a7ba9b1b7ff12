package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/mediatree/internal/category"
	"github.com/roach88/mediatree/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // settings file; empty means ./mediatree.yaml if present
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the mediatree CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "mediatree",
		Short: "mediatree - browse a media library by category",
		Long: `Browse a media library through a configurable category tree.

Each browse level is materialized on demand from the flat record catalog:
records are grouped by a property, optionally collapsed into ranged
buckets, and emitted as containers or leaves.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "settings file (default ./mediatree.yaml)")

	// Add subcommands
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTreeCommand(opts))
	cmd.AddCommand(NewPropertiesCommand(opts))
	cmd.AddCommand(NewScanCommand(opts))
	cmd.AddCommand(NewBrowseCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// newLogger returns a text logger on w at the settings level, or Debug
// with --verbose.
func newLogger(opts *RootOptions, settings *config.Settings, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if settings != nil {
		if lvl, err := settings.Level(); err == nil {
			level = lvl
		}
	}
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadTreeOrDefault loads the tree file at path, or returns the default
// tree when the file does not exist.
func loadTreeOrDefault(path string, opts ...config.TreeOption) (*category.Node, bool, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return category.DefaultTree(), false, nil
	}
	tree, err := config.LoadTree(path, opts...)
	if err != nil {
		return nil, true, err
	}
	return tree, true, nil
}

// loadSettings reads the settings file named by --config, reporting a
// failure through f.
func loadSettings(opts *RootOptions, f *OutputFormatter) (*config.Settings, error) {
	settings, err := config.LoadSettings(opts.Config)
	if err != nil {
		return nil, f.CommandError(ErrCodeSettings, "cannot load settings", err)
	}
	return settings, nil
}
