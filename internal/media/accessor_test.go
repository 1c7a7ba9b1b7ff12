package media

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mediatree/internal/item"
)

func sampleRecord() Record {
	root := filepath.Join("movies")
	return Record{
		ID:             "id-1",
		DiscName:       "HEAT",
		MetaTitle:      "Heat",
		Genres:         []string{"Crime", "Drama"},
		LeadPerformers: []string{"Al Pacino", "Robert De Niro"},
		Directors:      []string{"Michael Mann"},
		Studio:         "Warner",
		MPAARating:     "R",
		Rating:         "4",
		ReleaseDate:    time.Date(1995, 12, 15, 0, 0, 0, 0, time.UTC),
		Root:           root,
		DiscPath:       filepath.Join(root, "Crime", "Heat", "Heat.dvdid.xml"),
	}
}

func TestAccessorProperties(t *testing.T) {
	assert.Equal(t, []string{
		PropDirector, PropFirstFolder, PropFlatFolders, PropGenre, PropLeadPerformer,
		PropMPAARating, PropRating, PropReleaseYear, PropStudio, PropTitle,
	}, Properties())
}

func TestAccessorResolvesEveryProperty(t *testing.T) {
	acc := NewAccessor()
	rec := sampleRecord()

	want := map[string][]string{
		PropTitle:         {"Heat"},
		PropGenre:         {"Crime", "Drama"},
		PropLeadPerformer: {"Al Pacino", "Robert De Niro"},
		PropDirector:      {"Michael Mann"},
		PropStudio:        {"Warner"},
		PropMPAARating:    {"R"},
		PropRating:        {"4"},
		PropReleaseYear:   {"1995"},
		PropFlatFolders:   {"Crime"},
		PropFirstFolder:   {"Crime"},
	}
	for prop, values := range want {
		got, err := acc.Resolve(rec, prop)
		require.NoError(t, err, prop)
		assert.Equal(t, values, got, prop)
	}
}

func TestAccessorNormalizesToNFC(t *testing.T) {
	decomposed := "Ame\u0301lie"
	rec := Record{ID: "1", MetaTitle: decomposed, Genres: []string{decomposed}}

	title, err := NewAccessor().Resolve(rec, PropTitle)
	require.NoError(t, err)
	assert.Equal(t, []string{"Am\u00e9lie"}, title)

	genres, err := NewAccessor().Resolve(rec, PropGenre)
	require.NoError(t, err)
	assert.Equal(t, []string{"Am\u00e9lie"}, genres)
}

func TestAccessorFirstFolderFailureDegradesToUnknown(t *testing.T) {
	rec := Record{ID: "1", Root: "movies", DiscPath: filepath.Join("movies", "Heat", "Heat.dvdid.xml")}

	_, err := NewAccessor().Resolve(rec, PropFirstFolder)
	assert.ErrorIs(t, err, ErrNoFolder)

	got := item.Resolve(NewAccessor(), rec, PropFirstFolder, quietLogger())
	assert.Equal(t, []string{item.Unknown}, got)
}

func TestAccessorMissingValues(t *testing.T) {
	rec := Record{ID: "1", DiscName: "X"}
	for _, prop := range []string{PropGenre, PropStudio, PropReleaseYear} {
		assert.Equal(t, []string{item.Unknown}, item.Resolve(NewAccessor(), rec, prop, quietLogger()), prop)
	}
}
