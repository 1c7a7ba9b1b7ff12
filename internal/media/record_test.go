package media

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordTitleFallsBackToDiscName(t *testing.T) {
	assert.Equal(t, "HEAT_DISC1", Record{DiscName: "HEAT_DISC1"}.Title())
	assert.Equal(t, "Heat", Record{DiscName: "HEAT_DISC1", MetaTitle: "Heat"}.Title())
}

func TestRecordSortKey(t *testing.T) {
	assert.Equal(t, "abc|123", Record{ID: "abc|123"}.SortKey())
}

func TestRecordReleaseYear(t *testing.T) {
	assert.Equal(t, "", Record{}.ReleaseYear())
	r := Record{ReleaseDate: time.Date(1995, 12, 15, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "1995", r.ReleaseYear())
}

func TestRecordFolders(t *testing.T) {
	root := filepath.Join("media", "movies")

	tests := []struct {
		name     string
		discPath string
		flat     string
		first    string
	}{
		{"nested", filepath.Join(root, "Crime", "Mann", "Heat", "Heat.dvdid.xml"), "Crime/Mann", "Crime"},
		{"one level", filepath.Join(root, "Crime", "Heat", "Heat.dvdid.xml"), "Crime", "Crime"},
		{"directly under root", filepath.Join(root, "Heat", "Heat.dvdid.xml"), "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{Root: root, DiscPath: tt.discPath}
			assert.Equal(t, tt.flat, r.FlatFolders())

			first, err := r.FirstFolder()
			if tt.first == "" {
				assert.ErrorIs(t, err, ErrNoFolder)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.first, first)
		})
	}
}

func TestRecordFoldersOutsideRoot(t *testing.T) {
	r := Record{Root: filepath.Join("a", "b"), DiscPath: filepath.Join("c", "d", "e", "x.dvdid.xml")}
	assert.Equal(t, "", r.FlatFolders())
	assert.Equal(t, "", Record{}.FlatFolders())
}

func TestRecordVideoDir(t *testing.T) {
	r := Record{DiscPath: filepath.Join("m", "Heat", "Heat.dvdid.xml")}
	assert.Equal(t, filepath.Join("m", "Heat", "VIDEO_TS"), r.VideoDir())
}
