/*
Package cache implements Sodium's concurrent in-memory key/value store.

The store is a sharded hash table. Each shard owns an RWMutex and a plain
map, so concurrent reads never block each other and writes to different keys
only contend when they land on the same shard:

	┌──────────────────────── CACHE ────────────────────────┐
	│                                                        │
	│   key ── FNV-1a ──► shard index                        │
	│                                                        │
	│   ┌─────────┐  ┌─────────┐       ┌─────────┐          │
	│   │ shard 0 │  │ shard 1 │  ...  │ shard N │          │
	│   │ RWMutex │  │ RWMutex │       │ RWMutex │          │
	│   │ map     │  │ map     │       │ map     │          │
	│   └─────────┘  └─────────┘       └─────────┘          │
	│                                                        │
	│   counters: operations / hits / misses (atomic)        │
	└────────────────────────────────────────────────────────┘

Entries pair a value with an atomically updated last-access timestamp. The
value is immutable for the entry's lifetime; Set installs a new entry rather
than mutating in place, so a Get concurrent with a Set of the same key
observes either the old or the new entry, never a torn read.

Keys() takes no global lock. The returned snapshot is per-shard consistent
and may interleave with concurrent mutations, which is the contract the
protocol layer exposes.
*/
package cache
