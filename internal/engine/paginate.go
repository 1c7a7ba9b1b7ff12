package engine

import "github.com/roach88/mediatree/internal/item"

// Bucket is a labeled run of consecutive groups.
type Bucket struct {
	Label string
	Items *item.Set
}

// RangeLabel formats the label of a bucket spanning first to last.
func RangeLabel(first, last string) string {
	return "(" + first + ") to (" + last + ")"
}

// Paginate collapses sorted groups into buckets of at most size keys.
//
// Every full bucket is labeled RangeLabel(first, last), including a bucket
// of a single key when size is 1. A trailing partial bucket is labeled
// with its key alone when it holds one key, and as a range otherwise. A
// bucket's items are the union of its groups' items.
//
// With size <= 0 pagination is disabled and each group becomes its own
// bucket labeled with its key.
func Paginate(groups []Group, size int) []Bucket {
	if size <= 0 {
		out := make([]Bucket, len(groups))
		for i, g := range groups {
			out[i] = Bucket{Label: g.Key, Items: g.Items}
		}
		return out
	}

	var (
		out   []Bucket
		open  *item.Set
		first string
		count int
	)
	for i, g := range groups {
		if open == nil {
			open = item.NewSet()
			first = g.Key
			count = 0
		}
		open.AddAll(g.Items)
		count++

		if (i+1)%size == 0 {
			out = append(out, Bucket{Label: RangeLabel(first, g.Key), Items: open})
			open = nil
		}
	}

	if open != nil {
		last := groups[len(groups)-1].Key
		label := RangeLabel(first, last)
		if count == 1 {
			label = last
		}
		out = append(out, Bucket{Label: label, Items: open})
	}
	return out
}
