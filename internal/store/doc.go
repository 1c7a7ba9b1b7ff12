// Package store provides the SQLite catalog of media records.
//
// The catalog holds the flat record collection that browsing works from.
// It is written by scans and read in full whenever the library refreshes.
//
// # Tables
//
//   - records: one row per disc, keyed by record id. The full Record is
//     kept as JSON in the data column; title and root are copied out for
//     ordering and per-root deletion.
//   - scans: one row per scan batch, identified by a UUIDv7.
//
// # Ordering
//
// Records are always returned ORDER BY title, id COLLATE BINARY so that
// repeated reads of an unchanged catalog are identical.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
