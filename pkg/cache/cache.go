package cache

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// ErrKeyNotFound is returned by Get when a key doesn't exist in the cache.
//
// A miss is not a protocol-level error; callers map it to the NULL response.
// Check with errors.Is to distinguish misses from other failures.
var ErrKeyNotFound = errors.New("key not found")

// entry holds a value and its last-access timestamp. The value is immutable
// for the entry's lifetime; Set replaces the whole entry.
type entry struct {
	value      string
	accessedAt atomic.Int64 // unix seconds, relaxed
}

// shard is one partition of the key space with its own lock.
type shard struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// Cache is a sharded in-memory key/value store. Reads on different keys do
// not serialize behind each other and writes to different shards proceed in
// parallel. The per-operation counters are advisory relaxed atomics.
type Cache struct {
	shards []*shard
	mask   uint32

	operations atomic.Uint64
	hits       atomic.Uint64
	misses     atomic.Uint64
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Keys       int
	Operations uint64
	Hits       uint64
	Misses     uint64
}

// New creates an empty cache. The shard count is fixed at construction:
// the smallest power of two at or above 4x the CPU count, clamped to [8, 256].
func New() *Cache {
	count := nextPowerOfTwo(4 * runtime.NumCPU())
	if count < 8 {
		count = 8
	}
	if count > 256 {
		count = 256
	}

	shards := make([]*shard, count)
	for i := range shards {
		shards[i] = &shard{entries: make(map[string]*entry)}
	}
	return &Cache{shards: shards, mask: uint32(count - 1)}
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// shardFor selects the shard owning key using FNV-1a.
func (c *Cache) shardFor(key string) *shard {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	hash := uint32(offset32)
	for i := 0; i < len(key); i++ {
		hash ^= uint32(key[i])
		hash *= prime32
	}
	return c.shards[hash&c.mask]
}

// Set inserts or replaces the entry for key. The new entry carries a fresh
// access time. Set never fails.
func (c *Cache) Set(key, value string) {
	c.operations.Add(1)

	e := &entry{value: value}
	e.accessedAt.Store(time.Now().Unix())

	s := c.shardFor(key)
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
}

// Get returns the value for key, updating its access time on the hit path.
// A missing key yields ErrKeyNotFound.
func (c *Cache) Get(key string) (string, error) {
	c.operations.Add(1)

	s := c.shardFor(key)
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		c.misses.Add(1)
		return "", ErrKeyNotFound
	}

	e.accessedAt.Store(time.Now().Unix())
	c.hits.Add(1)
	return e.value, nil
}

// Delete removes key if present and reports whether it existed. Deleting an
// absent key is not an error.
func (c *Cache) Delete(key string) bool {
	c.operations.Add(1)

	s := c.shardFor(key)
	s.mu.Lock()
	_, existed := s.entries[key]
	if existed {
		delete(s.entries, key)
	}
	s.mu.Unlock()
	return existed
}

// Keys returns a snapshot of the current key set. Each shard is read under
// its own lock; no global lock is taken, so the snapshot may reflect
// concurrent mutations at any point during iteration. Order is unspecified.
func (c *Cache) Keys() []string {
	c.operations.Add(1)

	keys := make([]string, 0)
	for _, s := range c.shards {
		s.mu.RLock()
		for key := range s.entries {
			keys = append(keys, key)
		}
		s.mu.RUnlock()
	}
	return keys
}

// Len returns the current number of keys.
func (c *Cache) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}

// Stats returns a snapshot of the advisory counters. Counters are relaxed
// atomics and need not be consistent with the map at any instant.
func (c *Cache) Stats() Stats {
	return Stats{
		Keys:       c.Len(),
		Operations: c.operations.Load(),
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
	}
}
