// Package cache provides a thread-safe, sharded LRU cache for text
// measurement results.
//
// Shaping is by far the most expensive step of every geometry query, and
// interactive widgets re-ask the same questions (extent of the current
// content, caret position at the current offset) every frame. Caching at
// the query level means a steady-state frame does no shaping at all.
package cache

import (
	"hash/fnv"
	"math"
	"sync"
	"sync/atomic"
)

// Default configuration constants.
const (
	// DefaultShardCount is the number of shards for reduced lock contention.
	// Must be a power of 2 for fast modulo via bitwise AND.
	DefaultShardCount = 16

	// DefaultCapacity is the default maximum entries per shard.
	DefaultCapacity = 256

	// shardMask is used for fast shard selection (DefaultShardCount - 1).
	shardMask = DefaultShardCount - 1
)

// Kind distinguishes the geometry query that produced a cached result.
type Kind uint8

const (
	// KindMeasure is a width/height measurement of wrapped text.
	KindMeasure Kind = iota

	// KindCaretX is a byte-offset-to-x caret query.
	KindCaretX

	// KindHitTest is an x-to-byte-offset hit test.
	KindHitTest
)

// Key identifies one measurement result. Every parameter that affects
// the result must be included: the same text measured at a different
// size, wrap width, scale, or query argument is a different entry.
type Key struct {
	// TextHash is the FNV-1a hash of the measured text.
	TextHash uint64

	// StackHash is the FNV-1a hash of the font stack string.
	StackHash uint64

	// SizeBits is the IEEE 754 bit pattern of the font size.
	// Bit patterns give exact matching without floating-point issues.
	SizeBits uint64

	// WidthBits is the bit pattern of the wrap width (0 for unwrapped
	// queries).
	WidthBits uint64

	// ScaleBits is the bit pattern of the device scale factor.
	ScaleBits uint64

	// Kind is the query kind.
	Kind Kind

	// Arg is the query argument: the byte offset for KindCaretX, the bit
	// pattern of x for KindHitTest, zero for KindMeasure.
	Arg uint64
}

// Result is a cached geometry answer. Only the fields relevant to the
// key's Kind are meaningful.
type Result struct {
	// Width and Height are the measured extent (KindMeasure).
	Width  float64
	Height float64

	// X is the caret position (KindCaretX).
	X float64

	// Offset is the resolved byte offset (KindHitTest).
	Offset int
}

// NewKey creates a Key from query parameters.
// This is the canonical way to create cache keys.
func NewKey(text, fontStack string, fontSize, maxWidth, scale float64, kind Kind, arg uint64) Key {
	return Key{
		TextHash:  hashString(text),
		StackHash: hashString(fontStack),
		SizeBits:  math.Float64bits(fontSize),
		WidthBits: math.Float64bits(maxWidth),
		ScaleBits: math.Float64bits(scale),
		Kind:      kind,
		Arg:       arg,
	}
}

// hashString computes the FNV-1a hash of a string.
// FNV-1a is fast and has good distribution for text keys.
func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// keyHash computes a hash of the Key for shard selection.
func (k *Key) keyHash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 8*5+1+8)
	putUint64(buf[0:], k.TextHash)
	putUint64(buf[8:], k.StackHash)
	putUint64(buf[16:], k.SizeBits)
	putUint64(buf[24:], k.WidthBits)
	putUint64(buf[32:], k.ScaleBits)
	buf[40] = byte(k.Kind)
	putUint64(buf[41:], k.Arg)
	_, _ = h.Write(buf)
	return h.Sum64()
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

// MeasureCache is a thread-safe, sharded LRU cache for measurement
// results.
//
// Features:
//   - 16 shards for reduced lock contention
//   - LRU eviction with configurable capacity per shard
//   - Atomic statistics for monitoring
//   - Zero allocations on cache hit
type MeasureCache struct {
	shards   [DefaultShardCount]*cacheShard
	capacity int // Per-shard capacity

	// Statistics (atomic for zero-allocation reads)
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// cacheShard is a single shard of the cache.
// Each shard has its own mutex for reduced contention.
type cacheShard struct {
	mu      sync.RWMutex
	entries map[Key]*cacheEntry
	lru     *lruList[Key]
}

// cacheEntry holds a cached Result with its LRU node.
type cacheEntry struct {
	value *Result
	node  *lruNode[Key]
}

// NewMeasureCache creates a measurement cache with the specified capacity
// per shard. Total capacity is approximately capacity * DefaultShardCount.
//
// If capacity <= 0, DefaultCapacity (256) is used.
func NewMeasureCache(capacity int) *MeasureCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	c := &MeasureCache{
		capacity: capacity,
	}

	for i := range c.shards {
		c.shards[i] = &cacheShard{
			entries: make(map[Key]*cacheEntry),
			lru:     newLRUList[Key](),
		}
	}

	return c
}

// DefaultMeasureCache creates a measurement cache with default
// configuration. Total capacity: 16 shards * 256 entries = 4096 entries.
func DefaultMeasureCache() *MeasureCache {
	return NewMeasureCache(DefaultCapacity)
}

// getShard returns the shard for a given key.
// Uses bitwise AND for fast modulo (requires power-of-2 shard count).
func (c *MeasureCache) getShard(key *Key) *cacheShard {
	hash := key.keyHash()
	return c.shards[hash&shardMask]
}

// Get retrieves a cached Result by key.
// Returns (value, true) if found, (nil, false) otherwise.
//
// On cache hit, the entry is moved to the front of the LRU list.
func (c *MeasureCache) Get(key Key) (*Result, bool) {
	shard := c.getShard(&key)

	// Fast path: read lock to check existence
	shard.mu.RLock()
	_, exists := shard.entries[key]
	shard.mu.RUnlock()

	if !exists {
		c.misses.Add(1)
		return nil, false
	}

	// Slow path: write lock for LRU update
	shard.mu.Lock()
	// Re-check after acquiring write lock (entry may have been evicted)
	entry, ok := shard.entries[key]
	if !ok {
		shard.mu.Unlock()
		c.misses.Add(1)
		return nil, false
	}
	shard.lru.MoveToFront(entry.node)
	value := entry.value
	shard.mu.Unlock()

	c.hits.Add(1)
	return value, true
}

// Set stores a Result in the cache.
// If the shard exceeds capacity after insertion, oldest entries are
// evicted.
//
// The value is stored as-is (not copied). Callers should not modify it
// after caching.
func (c *MeasureCache) Set(key Key, value *Result) {
	if value == nil {
		return
	}

	shard := c.getShard(&key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	if existing, ok := shard.entries[key]; ok {
		existing.value = value
		shard.lru.MoveToFront(existing.node)
		return
	}

	for shard.lru.Len() >= c.capacity {
		if oldest, ok := shard.lru.RemoveOldest(); ok {
			delete(shard.entries, oldest)
			c.evictions.Add(1)
		} else {
			break
		}
	}

	node := shard.lru.PushFront(key)
	shard.entries[key] = &cacheEntry{
		value: value,
		node:  node,
	}
}

// GetOrCreate returns a cached Result or creates it with the provided
// function. This is the preferred access method as it prevents duplicate
// computation.
//
// The create function is called with the shard lock held to prevent a
// thundering herd; keep it fast. A nil result from create is not cached,
// which keeps provider failures out of the cache.
func (c *MeasureCache) GetOrCreate(key Key, create func() *Result) *Result {
	shard := c.getShard(&key)

	// Fast path: read lock to check existence
	shard.mu.RLock()
	_, exists := shard.entries[key]
	shard.mu.RUnlock()

	if exists {
		// Update LRU (requires write lock)
		shard.mu.Lock()
		if entry, ok := shard.entries[key]; ok {
			shard.lru.MoveToFront(entry.node)
			value := entry.value
			shard.mu.Unlock()
			c.hits.Add(1)
			return value
		}
		shard.mu.Unlock()
	}

	// Slow path: create new entry
	shard.mu.Lock()
	defer shard.mu.Unlock()

	// Re-check after acquiring write lock
	if entry, ok := shard.entries[key]; ok {
		shard.lru.MoveToFront(entry.node)
		c.hits.Add(1)
		return entry.value
	}

	c.misses.Add(1)

	value := create()
	if value == nil {
		return nil
	}

	for shard.lru.Len() >= c.capacity {
		if oldest, ok := shard.lru.RemoveOldest(); ok {
			delete(shard.entries, oldest)
			c.evictions.Add(1)
		} else {
			break
		}
	}

	node := shard.lru.PushFront(key)
	shard.entries[key] = &cacheEntry{
		value: value,
		node:  node,
	}

	return value
}

// Delete removes an entry from the cache.
// Returns true if the entry was found and removed.
func (c *MeasureCache) Delete(key Key) bool {
	shard := c.getShard(&key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	entry, ok := shard.entries[key]
	if !ok {
		return false
	}

	shard.lru.Remove(entry.node)
	delete(shard.entries, key)
	return true
}

// Clear removes all entries from the cache.
func (c *MeasureCache) Clear() {
	for _, shard := range c.shards {
		shard.mu.Lock()
		shard.entries = make(map[Key]*cacheEntry)
		shard.lru.Clear()
		shard.mu.Unlock()
	}
}

// Len returns the total number of entries across all shards.
func (c *MeasureCache) Len() int {
	total := 0
	for _, shard := range c.shards {
		shard.mu.RLock()
		total += len(shard.entries)
		shard.mu.RUnlock()
	}
	return total
}

// Capacity returns the per-shard capacity.
func (c *MeasureCache) Capacity() int {
	return c.capacity
}

// TotalCapacity returns the total capacity across all shards.
func (c *MeasureCache) TotalCapacity() int {
	return c.capacity * DefaultShardCount
}

// Stats contains cache statistics for monitoring.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the per-shard capacity.
	Capacity int
	// TotalCapacity is the total capacity across all shards.
	TotalCapacity int
	// Hits is the number of cache hits.
	Hits uint64
	// Misses is the number of cache misses.
	Misses uint64
	// HitRate is the cache hit rate (0.0 to 1.0).
	HitRate float64
	// Evictions is the number of entries evicted.
	Evictions uint64
}

// Stats returns current cache statistics.
// This operation is mostly lock-free (atomic counters).
func (c *MeasureCache) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	evictions := c.evictions.Load()

	var hitRate float64
	total := hits + misses
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Len:           c.Len(),
		Capacity:      c.capacity,
		TotalCapacity: c.capacity * DefaultShardCount,
		Hits:          hits,
		Misses:        misses,
		HitRate:       hitRate,
		Evictions:     evictions,
	}
}

// ResetStats resets all statistics counters to zero.
func (c *MeasureCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}
