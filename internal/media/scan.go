package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	discSuffix = ".dvdid.xml"
	videoDir   = "VIDEO_TS"
)

// Scanner finds discs under media roots and loads their metadata.
type Scanner struct {
	// MetadataDir is the metadata cache directory.
	MetadataDir string

	// CoverDir is the cover image cache directory.
	CoverDir string

	// NewID generates ids for discs whose descriptor has none.
	// Defaults to UUIDv7.
	NewID func() string

	Logger *slog.Logger
}

// Scan walks root and returns one Record per disc descriptor found.
// VIDEO_TS directories are not descended into. A descriptor that cannot
// be loaded is logged and skipped.
func (s *Scanner) Scan(ctx context.Context, root string) ([]Record, error) {
	logger := s.logger()
	var records []Record
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if strings.EqualFold(d.Name(), videoDir) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), discSuffix) {
			return nil
		}

		rec, err := s.Load(path, root)
		if err != nil {
			logger.Warn("skipping disc", "path", path, "error", err)
			return nil
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	logger.Info("scan complete", "root", root, "records", len(records))
	return records, nil
}

// Load builds the Record for one disc descriptor under root. A missing or
// undecodable metadata document is not an error; the record then has only
// its disc name and id.
func (s *Scanner) Load(discPath, root string) (Record, error) {
	f, err := os.Open(discPath)
	if err != nil {
		return Record{}, err
	}
	defer f.Close()

	name, id, err := DecodeDisc(f)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		DiscName: name,
		Root:     root,
		DiscPath: discPath,
	}
	if id == "" {
		rec.ID = s.newID()
		return rec, nil
	}
	rec.ID = id

	if s.MetadataDir == "" {
		return rec, nil
	}
	mf, err := os.Open(MetadataFile(s.MetadataDir, id))
	if os.IsNotExist(err) {
		return rec, nil
	}
	if err != nil {
		return Record{}, err
	}
	defer mf.Close()

	meta, err := DecodeMetadata(mf)
	switch {
	case errors.Is(err, ErrBadReleaseDate):
		s.logger().Warn("ignoring release date", "path", discPath, "error", err)
	case err != nil:
		s.logger().Warn("ignoring metadata", "path", discPath, "error", err)
		return rec, nil
	}
	rec.MetaTitle = meta.Title
	rec.Genres = meta.Genres
	rec.LeadPerformers = meta.LeadPerformers
	rec.Directors = meta.Directors
	rec.Studio = meta.Studio
	rec.MPAARating = meta.MPAARating
	rec.Rating = meta.Rating
	rec.ReleaseDate = meta.ReleaseDate
	rec.Cover = ResolveCover(s.CoverDir, meta)
	return rec, nil
}

func (s *Scanner) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.Must(uuid.NewV7()).String()
}

func (s *Scanner) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
