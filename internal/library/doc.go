// Package library holds the in-memory item collection that browsing works
// from and expands browse paths on demand.
//
// A Manager owns three things: the category tree, the flat item
// collection loaded from a Source, and the Builder that materializes one
// level at a time. Refresh replaces the collection atomically: either the
// new collection is installed in full or the previous one stays. At most
// one refresh runs at a time; a concurrent caller gets
// ErrRefreshInProgress instead of waiting.
//
// Expand follows a path of container labels from the root. Each step is a
// single BuildLevel call whose output is searched for the next label, so
// the cost of a path is proportional to its length and nothing below the
// final level is computed.
package library
