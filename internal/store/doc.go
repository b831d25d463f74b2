// Package store provides SQLite-backed local storage for the selection list
// and for queries saved against data specifications.
//
// # Selection list
//
// A flat list of data elements keyed by element id. Items are appended,
// removed or cleared; adding an element that is already listed is a no-op.
// The list keeps insertion order.
//
// # Specification queries
//
// Each data specification carries at most one cohort query and one data
// query. A saved query stores:
//   - the condition as canonical JSON
//   - its content hash (queryir.Hash)
//   - the rendered MEQL text
//
// Saving a query whose hash matches the stored one leaves the row alone and
// reports changed=false.
//
// # Deterministic reads
//
// Every list query orders by seq ASC, id ASC COLLATE BINARY. seq is a
// logical insertion counter, never a timestamp.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
