package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type film struct {
	title  string
	key    string
	studio string
	genres []string
}

func (f film) Title() string   { return f.title }
func (f film) SortKey() string { return f.key }

func titles(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title()
	}
	return out
}

func TestCompare(t *testing.T) {
	a := film{title: "Alien", key: "2"}
	b := film{title: "Alien", key: "1"}
	c := film{title: "Brazil", key: "0"}

	assert.Negative(t, Compare(b, a))
	assert.Positive(t, Compare(a, b))
	assert.Negative(t, Compare(a, c))
	assert.Zero(t, Compare(a, film{title: "Alien", key: "2"}))
}

func TestCompareIsCodePointOrder(t *testing.T) {
	upper := film{title: "Zulu", key: "1"}
	lower := film{title: "alpha", key: "1"}
	assert.Negative(t, Compare(upper, lower), "uppercase sorts before lowercase")
}

func TestSetDeduplicatesAndSorts(t *testing.T) {
	s := NewSet(
		film{title: "Heat", key: "h"},
		film{title: "Alien", key: "a"},
		film{title: "Heat", key: "h"},
		film{title: "Alien", key: "b"},
	)

	assert.Equal(t, 3, s.Len())
	items := s.Items()
	assert.Equal(t, []string{"Alien", "Alien", "Heat"}, titles(items))
	assert.Equal(t, "a", items[0].SortKey())
	assert.Equal(t, "b", items[1].SortKey())
}

func TestSetAddReportsInsertion(t *testing.T) {
	var s Set
	assert.True(t, s.Add(film{title: "Heat", key: "1"}))
	assert.False(t, s.Add(film{title: "Heat", key: "1"}))
	assert.True(t, s.Contains(film{title: "Heat", key: "1"}))
	assert.False(t, s.Contains(film{title: "Heat", key: "2"}))
}

func TestSetAddAllIsUnion(t *testing.T) {
	a := NewSet(film{title: "A", key: "1"}, film{title: "B", key: "2"})
	b := NewSet(film{title: "B", key: "2"}, film{title: "C", key: "3"})
	a.AddAll(b)
	a.AddAll(nil)

	assert.Equal(t, []string{"A", "B", "C"}, titles(a.Items()))
}

func TestEmptySetItemsNotNil(t *testing.T) {
	var s Set
	items := s.Items()
	require.NotNil(t, items)
	assert.Empty(t, items)
}

func TestSortedLeavesInputUntouched(t *testing.T) {
	in := []Item{film{title: "B", key: "1"}, film{title: "A", key: "1"}}
	out := Sorted(in)
	assert.Equal(t, []string{"A", "B"}, titles(out))
	assert.Equal(t, "B", in[0].Title())
}
