package media

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
)

// ErrBadReleaseDate is returned by DecodeMetadata, together with the
// decoded document, when the release date cannot be parsed.
var ErrBadReleaseDate = errors.New("bad release date")

// disc is the *.dvdid.xml descriptor.
type disc struct {
	XMLName xml.Name `xml:"DISC"`
	Name    string   `xml:"NAME"`
	ID      string   `xml:"ID"`
}

// metadataDoc is the cached METADATA document for one disc.
type metadataDoc struct {
	XMLName xml.Name `xml:"METADATA"`
	DVD     dvdInfo  `xml:"MDR-DVD"`
	DVDID   string   `xml:"dvdId"`
}

type dvdInfo struct {
	Title         string `xml:"dvdTitle"`
	LeadPerformer string `xml:"leadPerformer"`
	Director      string `xml:"director"`
	MPAARating    string `xml:"MPAARating"`
	Genre         string `xml:"genre"`
	Studio        string `xml:"studio"`
	ReleaseDate   string `xml:"releaseDate"`
	Rating        string `xml:"rating"`
	LargeCover    string `xml:"largeCoverParams"`
	SmallCover    string `xml:"smallCoverParams"`
}

// Metadata is the decoded content of a metadata document.
type Metadata struct {
	Title          string
	Genres         []string
	LeadPerformers []string
	Directors      []string
	Studio         string
	MPAARating     string
	Rating         string
	ReleaseDate    time.Time
	LargeCover     string
	SmallCover     string
}

// DecodeDisc reads a disc descriptor and returns its name and id.
func DecodeDisc(r io.Reader) (name, id string, err error) {
	var d disc
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	if err := dec.Decode(&d); err != nil {
		return "", "", fmt.Errorf("decode disc: %w", err)
	}
	return strings.TrimSpace(d.Name), strings.TrimSpace(d.ID), nil
}

// DecodeMetadata reads an ISO-8859-1 encoded metadata document.
//
// A release date that cannot be parsed leaves ReleaseDate zero: the
// metadata is still returned, with an error wrapping ErrBadReleaseDate.
func DecodeMetadata(r io.Reader) (*Metadata, error) {
	var doc metadataDoc
	dec := xml.NewDecoder(charmap.ISO8859_1.NewDecoder().Reader(r))
	// The bytes are already UTF-8 once they leave the charmap decoder,
	// whatever the prolog claims.
	dec.CharsetReader = func(_ string, in io.Reader) (io.Reader, error) { return in, nil }
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}

	released, dateErr := parseReleaseDate(doc.DVD.ReleaseDate)
	if dateErr != nil {
		dateErr = fmt.Errorf("decode metadata: %w: %w", ErrBadReleaseDate, dateErr)
	}

	return &Metadata{
		Title:          strings.TrimSpace(doc.DVD.Title),
		Genres:         splitList(doc.DVD.Genre, ","),
		LeadPerformers: splitList(doc.DVD.LeadPerformer, ";"),
		Directors:      splitList(doc.DVD.Director, ";"),
		Studio:         strings.TrimSpace(doc.DVD.Studio),
		MPAARating:     strings.TrimSpace(doc.DVD.MPAARating),
		Rating:         strings.TrimSpace(doc.DVD.Rating),
		ReleaseDate:    released,
		LargeCover:     strings.TrimSpace(doc.DVD.LargeCover),
		SmallCover:     strings.TrimSpace(doc.DVD.SmallCover),
	}, dateErr
}

// MetadataFile returns the cache path of the metadata document for id.
func MetadataFile(cacheDir, id string) string {
	return filepath.Join(cacheDir, strings.ReplaceAll(id, "|", "-")+".xml")
}

// ResolveCover returns the first cover file that exists in coverDir,
// trying the large cover before the small one. It returns "" when neither
// exists.
func ResolveCover(coverDir string, m *Metadata) string {
	if m == nil || coverDir == "" {
		return ""
	}
	for _, params := range []string{m.LargeCover, m.SmallCover} {
		if params == "" {
			continue
		}
		path := filepath.Join(coverDir, strings.ReplaceAll(params, "/", "-"))
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// splitList splits a separated list, dropping surrounding blanks. An empty
// input yields nil; blank elements are kept as "".
func splitList(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// parseReleaseDate parses "YYYY MM DD" with any whitespace between the
// fields. An empty string is the zero time.
func parseReleaseDate(s string) (time.Time, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return time.Time{}, nil
	}
	if len(fields) != 3 {
		return time.Time{}, fmt.Errorf("release date %q: want YYYY MM DD", s)
	}
	var parts [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return time.Time{}, fmt.Errorf("release date %q: %w", s, err)
		}
		parts[i] = n
	}
	return time.Date(parts[0], time.Month(parts[1]), parts[2], 0, 0, 0, 0, time.UTC), nil
}

func charsetReader(label string, in io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder().Reader(in), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(in), nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
}
