package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mediatree/internal/item"
	"github.com/roach88/mediatree/internal/testutil"
)

// letterGroups builds one group per key, each holding a record named after
// the key.
func letterGroups(keys ...string) []Group {
	groups := make([]Group, len(keys))
	for i, k := range keys {
		groups[i] = Group{Key: k, Items: item.NewSet(testutil.NewRecord("t"+k, nil))}
	}
	return groups
}

func bucketLabels(buckets []Bucket) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.Label
	}
	return out
}

func TestPaginateBoundary(t *testing.T) {
	buckets := Paginate(letterGroups("A", "B", "C", "D", "E", "F", "G"), 3)

	assert.Equal(t, []string{"(A) to (C)", "(D) to (F)", "G"}, bucketLabels(buckets))
	assert.Equal(t, []string{"tA", "tB", "tC"}, setTitles(buckets[0].Items))
	assert.Equal(t, []string{"tD", "tE", "tF"}, setTitles(buckets[1].Items))
	assert.Equal(t, []string{"tG"}, setTitles(buckets[2].Items))
}

func TestPaginateLabels(t *testing.T) {
	tests := []struct {
		keys []string
		size int
		want []string
	}{
		{[]string{"A", "B", "C", "D", "E", "F"}, 3, []string{"(A) to (C)", "(D) to (F)"}},
		{[]string{"A", "B", "C", "D", "E"}, 3, []string{"(A) to (C)", "(D) to (E)"}},
		{[]string{"A", "B"}, 5, []string{"(A) to (B)"}},
		{[]string{"A"}, 5, []string{"A"}},
		{[]string{"A", "B", "C"}, 1, []string{"(A) to (A)", "(B) to (B)", "(C) to (C)"}},
		{[]string{"A", "B", "C"}, 2, []string{"(A) to (B)", "C"}},
		{nil, 3, nil},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d keys size %d", len(tt.keys), tt.size), func(t *testing.T) {
			assert.Equal(t, tt.want, nilIfEmpty(bucketLabels(Paginate(letterGroups(tt.keys...), tt.size))))
		})
	}
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

func TestPaginateEveryLabelIsClosed(t *testing.T) {
	keys := make([]string, 26)
	for i := range keys {
		keys[i] = string(rune('A' + i))
	}
	for size := 1; size <= 27; size++ {
		for _, b := range Paginate(letterGroups(keys...), size) {
			if len(b.Label) > 1 {
				assert.Equal(t, byte(')'), b.Label[len(b.Label)-1], "size %d label %q", size, b.Label)
			}
		}
	}
}

func TestPaginateUnionsItemsAcrossKeys(t *testing.T) {
	shared := testutil.NewRecord("shared", nil)
	groups := []Group{
		{Key: "A", Items: item.NewSet(shared, testutil.NewRecord("a", nil))},
		{Key: "B", Items: item.NewSet(shared)},
		{Key: "C", Items: item.NewSet(testutil.NewRecord("c", nil))},
	}
	buckets := Paginate(groups, 2)

	require.Len(t, buckets, 2)
	assert.Equal(t, []string{"a", "shared"}, setTitles(buckets[0].Items))
	assert.Equal(t, []string{"c"}, setTitles(buckets[1].Items))
}

func TestPaginateDisabled(t *testing.T) {
	for _, size := range []int{0, -1} {
		buckets := Paginate(letterGroups("A", "B", "C"), size)
		assert.Equal(t, []string{"A", "B", "C"}, bucketLabels(buckets))
	}
}

func TestRangeLabel(t *testing.T) {
	assert.Equal(t, "(Alien) to (Heat)", RangeLabel("Alien", "Heat"))
}
