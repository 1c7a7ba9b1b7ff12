package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/mediatree/internal/media"
)

// createTestStore creates a new store in a temp directory with
// deterministic scan ids and clock.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	n := 0
	s, err := Open(filepath.Join(t.TempDir(), "test.db"),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("scan-%d", n)
		}),
		WithClock(func() time.Time {
			return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecord creates a record under root with minimal fields.
func createTestRecord(id, title, root string, genres ...string) media.Record {
	return media.Record{
		ID:        id,
		DiscName:  id,
		MetaTitle: title,
		Genres:    genres,
		Root:      root,
		DiscPath:  filepath.Join(root, title, title+".dvdid.xml"),
	}
}
