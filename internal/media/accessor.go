package media

import (
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/mediatree/internal/item"
)

// Property names understood by NewAccessor.
const (
	PropTitle         = "title"
	PropGenre         = "genre"
	PropLeadPerformer = "leadPerformer"
	PropDirector      = "director"
	PropStudio        = "studio"
	PropMPAARating    = "mpaaRating"
	PropRating        = "rating"
	PropReleaseYear   = "releaseYear"
	PropFlatFolders   = "flatFolders"
	PropFirstFolder   = "firstFolder"
)

// NewAccessor returns the property table for Record.
func NewAccessor() *item.Table {
	return item.NewTable().
		Register(PropTitle, single(Record.Title)).
		Register(PropGenre, multi(func(r Record) []string { return r.Genres })).
		Register(PropLeadPerformer, multi(func(r Record) []string { return r.LeadPerformers })).
		Register(PropDirector, multi(func(r Record) []string { return r.Directors })).
		Register(PropStudio, single(func(r Record) string { return r.Studio })).
		Register(PropMPAARating, single(func(r Record) string { return r.MPAARating })).
		Register(PropRating, single(func(r Record) string { return r.Rating })).
		Register(PropReleaseYear, single(Record.ReleaseYear)).
		Register(PropFlatFolders, single(Record.FlatFolders)).
		Register(PropFirstFolder, item.Func(func(r Record) (string, error) {
			s, err := r.FirstFolder()
			return norm.NFC.String(s), err
		}))
}

// Properties lists the property names of NewAccessor in sorted order.
func Properties() []string {
	return NewAccessor().Properties()
}

func single(get func(Record) string) item.Extractor {
	return item.String(func(r Record) string {
		return norm.NFC.String(get(r))
	})
}

func multi(get func(Record) []string) item.Extractor {
	return item.Strings(func(r Record) []string {
		values := get(r)
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = norm.NFC.String(v)
		}
		return out
	})
}
