// Package category provides the category tree configuration model.
//
// A category tree is a small, user-editable tree of grouping rules. Each
// Node describes how one browse level is built: which item property to
// group by, whether long runs of distinct values collapse into heading
// buckets, and whether the level is a single pass-through container.
//
// # Templates and instances
//
// Nodes loaded from configuration are templates. During materialization a
// template is copied into an instance that carries a label (WithLabel) or a
// cleared heading flag (WithUseHeading). Instances share the template's
// children sequence and are never persisted.
//
// # Identity
//
// Equality is shallow: two nodes are equal when their Identity
// (property, label, heading flag) matches. Children and parent are not part
// of identity, so Identity is safe to use as a map key for instances whose
// subtrees differ.
//
// # Ownership
//
// Parents own their children. The parent link is a navigation aid only.
// Editing a template's children replaces the children slice, so instances
// derived before the edit keep the sequence they were created with.
//
// This package imports nothing internal; all other internal packages may
// import it.
package category
