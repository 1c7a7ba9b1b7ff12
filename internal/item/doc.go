// Package item defines what the category builder needs to know about the
// things it organizes.
//
// The builder never sees a concrete item schema. It orders items through
// the Item interface (title, then a stable key) and reads grouping values
// through an Accessor, usually a Table mapping property names to extractor
// functions supplied by the host.
//
// Missing values are never dropped: Resolve substitutes the Unknown
// sentinel for an empty result, for each blank element of a multi-valued
// result, and for any resolution failure (which is logged).
package item
