// Package kvstore provides the small key-value store that persists style
// profiles, opt-in flags, and continuity dismissals.
//
// Three backends satisfy the Store contract:
//
//	sqlite  durable single-file database (default)
//	file    human-readable JSON object guarded by a lock file
//	memory  process-local map, used by tests and throwaway sessions
//
// Every Get/Set/Remove is atomic for a single key. Callers own any
// read-modify-write sequence across keys; last writer wins.
package kvstore
