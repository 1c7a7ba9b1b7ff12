package media

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrNoFolder is returned by FirstFolder for a record that sits directly
// under its media root.
var ErrNoFolder = errors.New("record has no folder below its media root")

// Record is one disc in the media library.
type Record struct {
	ID             string    `json:"id"`
	DiscName       string    `json:"disc_name"`
	MetaTitle      string    `json:"meta_title,omitempty"`
	Genres         []string  `json:"genres,omitempty"`
	LeadPerformers []string  `json:"lead_performers,omitempty"`
	Directors      []string  `json:"directors,omitempty"`
	Studio         string    `json:"studio,omitempty"`
	MPAARating     string    `json:"mpaa_rating,omitempty"`
	Rating         string    `json:"rating,omitempty"`
	ReleaseDate    time.Time `json:"release_date,omitzero"`
	Root           string    `json:"root"`
	DiscPath       string    `json:"disc_path"`
	Cover          string    `json:"cover,omitempty"`
}

// Title returns the metadata title, or the disc name when there is none.
func (r Record) Title() string {
	if r.MetaTitle != "" {
		return r.MetaTitle
	}
	return r.DiscName
}

// SortKey returns the record id.
func (r Record) SortKey() string { return r.ID }

// ReleaseYear returns the four digit release year, or "" if unknown.
func (r Record) ReleaseYear() string {
	if r.ReleaseDate.IsZero() {
		return ""
	}
	return strconv.Itoa(r.ReleaseDate.Year())
}

// VideoDir returns the VIDEO_TS directory next to the disc descriptor.
func (r Record) VideoDir() string {
	return filepath.Join(filepath.Dir(r.DiscPath), "VIDEO_TS")
}

// FlatFolders returns the folder holding the disc's own folder, relative
// to the media root, with forward slashes. It is "" for a disc folder
// directly under the root.
func (r Record) FlatFolders() string {
	if r.Root == "" || r.DiscPath == "" {
		return ""
	}
	container := filepath.Dir(filepath.Dir(r.DiscPath))
	rel, err := filepath.Rel(r.Root, container)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.ToSlash(rel)
}

// FirstFolder returns the top-level folder below the media root that
// contains the disc.
func (r Record) FirstFolder() (string, error) {
	flat := r.FlatFolders()
	if flat == "" {
		return "", ErrNoFolder
	}
	first, _, _ := strings.Cut(flat, "/")
	return first, nil
}
