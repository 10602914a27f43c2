package eval

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/matryer/is"
)

// countingEvaluator counts Evaluate invocations so the tests can observe
// whether the cache actually short-circuited the work.
type countingEvaluator struct {
	inner MaterialEvaluator
	calls int
}

func (c *countingEvaluator) Evaluate(b *dragontoothmg.Board) Score {
	c.calls++
	return c.inner.Evaluate(b)
}

func TestCacheTransparency(t *testing.T) {
	is := is.New(t)
	counter := &countingEvaluator{}
	cache, err := NewCache(counter, 16)
	is.NoErr(err)

	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	first := cache.GetOrCompute(&board)
	second := cache.GetOrCompute(&board)
	is.Equal(first, second)
	is.Equal(counter.calls, 1) // second call must not re-evaluate

	lookups, hits := cache.Stats()
	is.Equal(lookups, uint64(2))
	is.Equal(hits, uint64(1))
}

func TestInvalidationForcesRecompute(t *testing.T) {
	is := is.New(t)
	counter := &countingEvaluator{}
	cache, err := NewCache(counter, 16)
	is.NoErr(err)

	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	before := cache.GetOrCompute(&board)
	cache.Invalidate()
	is.Equal(cache.Len(), 0)
	after := cache.GetOrCompute(&board)
	is.Equal(before, after)
	is.Equal(counter.calls, 2)
}

func TestLeastRecentlyUsedEviction(t *testing.T) {
	is := is.New(t)
	counter := &countingEvaluator{}
	cache, err := NewCache(counter, 2)
	is.NoErr(err)

	b1 := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	b2 := dragontoothmg.ParseFen(extraQueenWhiteFEN)
	b3 := dragontoothmg.ParseFen(bishopCheckFEN)

	cache.GetOrCompute(&b1)
	cache.GetOrCompute(&b2)
	cache.GetOrCompute(&b3) // evicts b1
	is.Equal(cache.Len(), 2)
	is.Equal(counter.calls, 3)

	cache.GetOrCompute(&b1)
	is.Equal(counter.calls, 4) // b1 was evicted, so it recomputes
}

func TestDefaultCapacityBounds(t *testing.T) {
	is := is.New(t)
	capacity := DefaultCapacity()
	is.True(capacity >= 1<<10)
	is.True(capacity <= 1<<22)

	cache, err := NewCache(&countingEvaluator{}, 0)
	is.NoErr(err)
	is.Equal(cache.Capacity(), capacity)
}
