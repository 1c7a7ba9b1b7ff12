package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/mediatree/internal/media"
	"github.com/roach88/mediatree/internal/store"
)

// ScanOptions holds flags for the scan command.
type ScanOptions struct {
	*RootOptions
	DB string // database path; overrides settings
}

// RootScan reports one scanned media root.
type RootScan struct {
	Root    string `json:"root"`
	ScanID  string `json:"scan_id"`
	Records int    `json:"records"`
}

// ScanResult is the output of scan.
type ScanResult struct {
	Roots []RootScan `json:"roots"`
	Total int        `json:"total"`
}

func (r ScanResult) String() string {
	var b strings.Builder
	for _, s := range r.Roots {
		fmt.Fprintf(&b, "✓ %s: %d record(s)\n", s.Root, s.Records)
	}
	fmt.Fprintf(&b, "%d record(s) in catalog\n", r.Total)
	return b.String()
}

// NewScanCommand creates the scan command.
func NewScanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scan [folder...]",
		Short: "Scan media folders into the catalog",
		Long: `Scan media folders for disc descriptors and store their records.

Each folder replaces whatever the catalog held for it before. Without
arguments the folders from the settings are scanned.

Exit codes:
  0 - All folders scanned
  2 - Command error (settings, database, unreadable folder)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "catalog database path")

	return cmd
}

func runScan(opts *ScanOptions, folders []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	settings, err := loadSettings(opts.RootOptions, formatter)
	if err != nil {
		return err
	}
	if len(folders) == 0 {
		folders = settings.Folders
	}
	if len(folders) == 0 {
		return formatter.CommandError(ErrCodeScanFailed, "no folders to scan", nil)
	}

	dbPath := settings.Database
	if opts.DB != "" {
		dbPath = opts.DB
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return formatter.CommandError(ErrCodeDatabase, "cannot open catalog", err)
	}
	defer st.Close()

	logger := newLogger(opts.RootOptions, settings, cmd.ErrOrStderr())
	scanner := &media.Scanner{
		MetadataDir: settings.MetadataDir,
		CoverDir:    settings.CoverDir,
		Logger:      logger,
	}

	ctx := cmd.Context()
	var result ScanResult
	for _, folder := range folders {
		root, err := filepath.Abs(folder)
		if err != nil {
			return formatter.CommandError(ErrCodeScanFailed, fmt.Sprintf("bad folder %s", folder), err)
		}
		records, err := scanner.Scan(ctx, root)
		if err != nil {
			return formatter.CommandError(ErrCodeScanFailed, fmt.Sprintf("cannot scan %s", root), err)
		}
		scanID, err := st.ReplaceRoot(ctx, root, records)
		if err != nil {
			return formatter.CommandError(ErrCodeDatabase, "cannot store records", err)
		}
		formatter.VerboseLog("Scanned %s (%s)", root, scanID)
		result.Roots = append(result.Roots, RootScan{Root: root, ScanID: scanID, Records: len(records)})
	}

	result.Total, err = st.Count(ctx)
	if err != nil {
		return formatter.CommandError(ErrCodeDatabase, "cannot count records", err)
	}
	return formatter.Success(result)
}
