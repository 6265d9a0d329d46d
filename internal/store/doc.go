// Package store provides SQLite-backed persistence for the state that must
// survive a reload: catalog view preferences and trust snapshots.
//
// The core packages never call the store. A caller captures a Snapshot from
// the catalog or progression and hands it here, and restores it the same way.
//
// # Tables
//
//   - catalog_prefs: one JSON catalog.Snapshot per profile key
//   - trust_records: score and components per address
//   - trust_history: history samples per address, seq 0 = most recent
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Saving a trust snapshot replaces the stored history for that address in a
// single transaction; there is no merge.
package store
