package eval

import (
	"sync/atomic"

	"github.com/dylhunn/dragontoothmg"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

// Rough per-entry cost: 8-byte key, 4-byte score, plus list and map
// overhead inside the LRU.
const entrySize = 64

// Cache memoizes static evaluations keyed by the position's 64-bit
// structural hash. A hash collision returning a wrong score is an accepted,
// bounded-probability risk of the hashing scheme; it is not defended against.
//
// The cache assumes a single accessor per decision. The underlying LRU is
// synchronized, so sharing one Cache across goroutines does not tear entries,
// but concurrent searches sharing a cache are not part of the design.
type Cache struct {
	evaluator Evaluator
	entries   *lru.Cache[uint64, Score]
	capacity  int
	lookups   atomic.Uint64
	hits      atomic.Uint64
}

// DefaultCapacity sizes the cache from physical memory, within fixed bounds.
func DefaultCapacity() int {
	c := int(memory.TotalMemory() / 256 / entrySize)
	if c < 1<<10 {
		c = 1 << 10
	}
	if c > 1<<22 {
		c = 1 << 22
	}
	return c
}

// NewCache creates an empty cache in front of ev. A capacity of zero or less
// selects DefaultCapacity.
func NewCache(ev Evaluator, capacity int) (*Cache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity()
	}
	entries, err := lru.New[uint64, Score](capacity)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("capacity", capacity).Msg("created evaluation cache")
	return &Cache{evaluator: ev, entries: entries, capacity: capacity}, nil
}

// GetOrCompute returns the cached score for b's position, computing and
// storing it on a miss. When the cache is full the least recently used entry
// is evicted.
func (c *Cache) GetOrCompute(b *dragontoothmg.Board) Score {
	key := b.Hash()
	c.lookups.Add(1)
	if score, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return score
	}
	score := c.evaluator.Evaluate(b)
	c.entries.Add(key, score)
	return score
}

// Invalidate clears every entry. It must be called after an irreversible
// move is committed at the root: such moves change the repetition and
// fifty-move context, and entries from the previous era of the game must not
// leak forward.
func (c *Cache) Invalidate() {
	c.entries.Purge()
	log.Debug().Msg("evaluation cache invalidated")
}

func (c *Cache) Len() int {
	return c.entries.Len()
}

func (c *Cache) Capacity() int {
	return c.capacity
}

// Stats returns the total lookups and hits since creation. Invalidation does
// not reset the counters.
func (c *Cache) Stats() (lookups, hits uint64) {
	return c.lookups.Load(), c.hits.Load()
}
