package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mediatree/internal/category"
)

func TestRecordingSinkRecordsInOrder(t *testing.T) {
	s := NewRecordingSink()
	require.NoError(t, s.ClearChildren())
	require.NoError(t, s.AddLeafItem(NewRecord("Heat", nil)))
	node := category.NewGrouping("genre", 0).WithLabel("Drama")
	require.NoError(t, s.AddContainer("folder", node, Items(NewRecord("Heat", nil), NewRecord("Ran", nil))))

	require.Len(t, s.Events, 3)
	assert.Equal(t, EventClear, s.Events[0].Kind)
	assert.Equal(t, "Heat", s.Leaves()[0].Label)
	assert.Equal(t, []string{"Drama"}, s.Labels())

	c, ok := s.Container("Drama")
	require.True(t, ok)
	assert.Same(t, node, c.Node)
	assert.Equal(t, "folder", c.Icon)

	_, ok = s.Container("Comedy")
	assert.False(t, ok)

	assert.Equal(t, "clear\nleaf Heat\ncontainer Drama [Heat, Ran]\n", s.String())

	s.Reset()
	assert.Empty(t, s.Events)
}

func TestRecordingSinkFailOn(t *testing.T) {
	boom := errors.New("boom")
	s := &RecordingSink{FailOn: EventLeaf, Err: boom}

	require.NoError(t, s.ClearChildren())
	assert.ErrorIs(t, s.AddLeafItem(NewRecord("Heat", nil)), boom)
	assert.Len(t, s.Events, 1)
}

func TestAccessorReadsProps(t *testing.T) {
	acc := Accessor("genre")
	v, err := acc.Resolve(NewRecord("m2", map[string][]string{"genre": {"Action", "Comedy"}}), "genre")
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Comedy"}, v)

	v, err = acc.Resolve(NewRecord("m5", nil), "genre")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestRecordSortKeyFallback(t *testing.T) {
	assert.Equal(t, "Heat", NewRecord("Heat", nil).SortKey())
	assert.Equal(t, "k1", Record{Name: "Heat", Key: "k1"}.SortKey())
}
