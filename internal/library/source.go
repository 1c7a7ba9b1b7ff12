package library

import (
	"context"

	"github.com/roach88/mediatree/internal/item"
	"github.com/roach88/mediatree/internal/media"
)

// Source yields the flat item collection.
type Source interface {
	Load(ctx context.Context) ([]item.Item, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]item.Item, error)

// Load implements Source.
func (f SourceFunc) Load(ctx context.Context) ([]item.Item, error) { return f(ctx) }

// RecordLister is implemented by the record catalog.
type RecordLister interface {
	Records(ctx context.Context) ([]media.Record, error)
}

// FromRecords returns a Source backed by a record catalog.
func FromRecords(l RecordLister) Source {
	return SourceFunc(func(ctx context.Context) ([]item.Item, error) {
		recs, err := l.Records(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]item.Item, len(recs))
		for i, r := range recs {
			items[i] = r
		}
		return items, nil
	})
}

// Static returns a Source that always yields items.
func Static(items ...item.Item) Source {
	return SourceFunc(func(context.Context) ([]item.Item, error) {
		return items, nil
	})
}
