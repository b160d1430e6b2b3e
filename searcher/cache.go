package searcher

import "github.com/Hortensjaa/AI-course/game"

// CacheKey identifies a searched node. The perspective is part of the key
// because stored values are relative to it.
type CacheKey struct {
	Hash        uint64
	Current     game.Player
	Perspective game.Player
}

type cacheEntry struct {
	depth int
	value int
}

// TranspositionCache memoizes subtree values for one game. An entry answers
// any request at its own depth or shallower. Values computed under a narrowed
// window are stored as they are, so the cache is a heuristic and not an exact
// transposition table.
type TranspositionCache struct {
	entries map[CacheKey]cacheEntry
}

func NewTranspositionCache() *TranspositionCache {
	return &TranspositionCache{entries: make(map[CacheKey]cacheEntry)}
}

func (c *TranspositionCache) Get(key CacheKey, depth int) (int, bool) {
	e, ok := c.entries[key]
	if !ok || e.depth < depth {
		return 0, false
	}
	return e.value, true
}

// Put overwrites any previous entry for key.
func (c *TranspositionCache) Put(key CacheKey, depth, value int) {
	c.entries[key] = cacheEntry{depth: depth, value: value}
}

func (c *TranspositionCache) Len() int {
	return len(c.entries)
}

func (c *TranspositionCache) Clear() {
	clear(c.entries)
}
