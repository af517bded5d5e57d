// Package cmap provides a concurrent-safe sharded map keyed by string.
//
// This package implements a sharded concurrent map used for
// name-keyed lookup tables (metric families, published exposers):
//
//   - Sharding: Configurable shard count for parallelism
//   - Fine-grained Locking: Per-shard RWMutex for minimal contention
//   - Atomic helpers: GetOrSet, SetIfAbsent, DeleteIf
//   - Iteration: Safe iteration while holding read locks
//
// Usage:
//
//	m := cmap.New[*Family]()
//	fam, existed := m.GetOrSet("requests_total", newFamily())
//
// Thread Safety:
//
// All operations are thread-safe. Read operations (Get, Has) use RLock,
// write operations (Set, Delete) use Lock.
package cmap
