package media

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const heatMetadata = `<?xml version="1.0" encoding="ISO-8859-1"?>
<METADATA>
  <MDR-DVD>
    <dvdTitle>Heat</dvdTitle>
    <leadPerformer>Al Pacino;Robert De Niro; Val Kilmer</leadPerformer>
    <director>Michael Mann</director>
    <MPAARating>R</MPAARating>
    <genre>Crime, Drama</genre>
    <studio>Warner</studio>
    <releaseDate>1995  12 15</releaseDate>
    <rating>4</rating>
    <largeCoverParams>covers/heat_large.jpg</largeCoverParams>
    <smallCoverParams>covers/heat_small.jpg</smallCoverParams>
  </MDR-DVD>
  <dvdId>1234|5678</dvdId>
</METADATA>
`

func TestDecodeDisc(t *testing.T) {
	name, id, err := DecodeDisc(strings.NewReader(`<DISC><NAME> HEAT </NAME><ID>1234|5678</ID></DISC>`))
	require.NoError(t, err)
	assert.Equal(t, "HEAT", name)
	assert.Equal(t, "1234|5678", id)
}

func TestDecodeDiscLatin1Prolog(t *testing.T) {
	doc := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><DISC><NAME>Am\xe9lie</NAME><ID>1</ID></DISC>")
	name, _, err := DecodeDisc(bytes.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "Amélie", name)
}

func TestDecodeDiscMalformed(t *testing.T) {
	_, _, err := DecodeDisc(strings.NewReader(`<DISC><NAME>`))
	assert.Error(t, err)
}

func TestDecodeMetadata(t *testing.T) {
	m, err := DecodeMetadata(strings.NewReader(heatMetadata))
	require.NoError(t, err)

	assert.Equal(t, "Heat", m.Title)
	assert.Equal(t, []string{"Crime", "Drama"}, m.Genres)
	assert.Equal(t, []string{"Al Pacino", "Robert De Niro", "Val Kilmer"}, m.LeadPerformers)
	assert.Equal(t, []string{"Michael Mann"}, m.Directors)
	assert.Equal(t, "R", m.MPAARating)
	assert.Equal(t, "Warner", m.Studio)
	assert.Equal(t, "4", m.Rating)
	assert.Equal(t, time.Date(1995, 12, 15, 0, 0, 0, 0, time.UTC), m.ReleaseDate)
	assert.Equal(t, "covers/heat_large.jpg", m.LargeCover)
}

func TestDecodeMetadataIsLatin1(t *testing.T) {
	doc := []byte("<METADATA><MDR-DVD><dvdTitle>Am\xe9lie</dvdTitle><genre>Com\xe9die</genre></MDR-DVD></METADATA>")
	m, err := DecodeMetadata(bytes.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "Amélie", m.Title)
	assert.Equal(t, []string{"Comédie"}, m.Genres)
	assert.True(t, m.ReleaseDate.IsZero())
	assert.Nil(t, m.Directors)
}

func TestDecodeMetadataBadDate(t *testing.T) {
	m, err := DecodeMetadata(strings.NewReader(`<METADATA><MDR-DVD><dvdTitle>Heat</dvdTitle><releaseDate>1995-12-15</releaseDate></MDR-DVD></METADATA>`))
	require.ErrorIs(t, err, ErrBadReleaseDate)
	assert.Contains(t, err.Error(), "release date")
	require.NotNil(t, m)
	assert.Equal(t, "Heat", m.Title)
	assert.True(t, m.ReleaseDate.IsZero())
}

func TestSplitListKeepsBlankElements(t *testing.T) {
	assert.Equal(t, []string{"Action", ""}, splitList("Action, ", ","))
	assert.Nil(t, splitList("  ", ","))
}

func TestMetadataFile(t *testing.T) {
	assert.Equal(t, filepath.Join("cache", "1234-5678.xml"), MetadataFile("cache", "1234|5678"))
}

func TestResolveCover(t *testing.T) {
	dir := t.TempDir()
	m := &Metadata{LargeCover: "covers/large.jpg", SmallCover: "covers/small.jpg"}

	assert.Equal(t, "", ResolveCover(dir, m))

	small := filepath.Join(dir, "covers-small.jpg")
	require.NoError(t, os.WriteFile(small, []byte("x"), 0644))
	assert.Equal(t, small, ResolveCover(dir, m))

	large := filepath.Join(dir, "covers-large.jpg")
	require.NoError(t, os.WriteFile(large, []byte("x"), 0644))
	assert.Equal(t, large, ResolveCover(dir, m))

	assert.Equal(t, "", ResolveCover("", m))
	assert.Equal(t, "", ResolveCover(dir, nil))
}
