// Package search implements a fixed-depth negamax search with alpha-beta
// pruning over the legal-move tree, and the root move-selection policy that
// drives it.
package search

import (
	"errors"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/bertha-engine/bertha/eval"
)

// hugeScore bounds the alpha-beta window. It sits strictly outside the mate
// sentinel so that forced mates still compare normally.
const hugeScore eval.Score = 1e7

var ErrNoLegalMoves = errors.New("no legal moves in position")

// Searcher walks the move tree to a fixed depth, bottoming out at the
// evaluation cache. It is single-threaded and synchronous: one call occupies
// the caller until it returns, with no internal timeout or cancellation.
type Searcher struct {
	cache *eval.Cache
	depth int
	rng   *frand.RNG
}

func NewSearcher(cache *eval.Cache, depth int) *Searcher {
	return &Searcher{cache: cache, depth: depth, rng: frand.New()}
}

func (s *Searcher) Depth() int {
	return s.depth
}

// Search returns the negamax value of b, oriented to the side to move.
// It is fail-hard: the result is clamped to [alpha, beta]. With a full-width
// window the pruned value equals the exhaustive negamax value.
//
// The board is mutated transiently; apply/unapply pairs are strictly nested,
// so b is unchanged when Search returns.
func (s *Searcher) Search(b *dragontoothmg.Board, depth int, alpha, beta eval.Score) eval.Score {
	if depth == 0 {
		return s.cache.GetOrCompute(b)
	}
	moves := b.GenerateLegalMoves()
	if len(moves) == 0 {
		// Mate and stalemate resolve through the evaluator, never by
		// recursing into an empty move set.
		return s.cache.GetOrCompute(b)
	}
	for _, m := range moves {
		unapply := b.Apply(m)
		score := -s.Search(b, depth-1, -beta, -alpha)
		unapply()
		if score >= beta {
			return beta // beta cut-off
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// BestMove searches every candidate root move one ply shallower with a
// full-width window, collects all moves attaining the maximum score, and
// picks uniformly at random among them. The random tie-break is a deliberate
// anti-determinism property, not an implementation accident.
//
// If the chosen move is irreversible, the evaluation cache is invalidated
// before returning.
func (s *Searcher) BestMove(b *dragontoothmg.Board, restriction []dragontoothmg.Move) (dragontoothmg.Move, eval.Score, error) {
	moves := Restrict(b.GenerateLegalMoves(), restriction)
	if len(moves) == 0 {
		var none dragontoothmg.Move
		return none, 0, ErrNoLegalMoves
	}

	bestScore := -hugeScore
	var best []dragontoothmg.Move
	for _, m := range moves {
		unapply := b.Apply(m)
		score := -s.Search(b, s.depth-1, -hugeScore, hugeScore)
		unapply()
		if score > bestScore {
			bestScore = score
			best = append(best[:0], m)
		} else if score == bestScore {
			best = append(best, m)
		}
	}

	chosen := best[s.rng.Intn(len(best))]
	lookups, hits := s.cache.Stats()
	log.Debug().Str("move", chosen.String()).
		Float32("score", float32(bestScore)).
		Int("ties", len(best)).
		Uint64("cacheLookups", lookups).
		Uint64("cacheHits", hits).
		Msg("selected root move")
	if IsIrreversible(b, chosen) {
		s.cache.Invalidate()
	}
	return chosen, bestScore, nil
}

// Restrict intersects the legal moves with a root-move restriction. A nil or
// empty restriction means every legal move is eligible.
func Restrict(legal, restriction []dragontoothmg.Move) []dragontoothmg.Move {
	if len(restriction) == 0 {
		return legal
	}
	allowed := make(map[dragontoothmg.Move]bool, len(restriction))
	for _, m := range restriction {
		allowed[m] = true
	}
	out := legal[:0:0]
	for _, m := range legal {
		if allowed[m] {
			out = append(out, m)
		}
	}
	return out
}

// IsIrreversible reports whether m is a pawn move or a capture. b must be
// the position before the move is applied.
func IsIrreversible(b *dragontoothmg.Board, m dragontoothmg.Move) bool {
	from := uint64(1) << m.From()
	if (b.White.Pawns|b.Black.Pawns)&from != 0 {
		return true
	}
	to := uint64(1) << m.To()
	return (b.White.All|b.Black.All)&to != 0
}
