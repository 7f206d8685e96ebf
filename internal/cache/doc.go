// Package cache keeps one point-in-time snapshot of remote API data per
// resource key on disk and decides when that snapshot is too old to reuse.
//
// Key features:
//   - One JSON file per resource key, named by a pure function of the key
//   - Envelope of exactly two fields: fetchedAt (RFC3339Nano) and the raw data
//   - Temp-file plus rename writes; missing directories are created first
//   - Explicit read outcome: Absent, Malformed or Found
//   - Cooldown-based refetch policy with no eviction beyond overwrite
//
// The package assumes a single process. Concurrent writers from several
// processes are not coordinated.
package cache
