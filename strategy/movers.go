package strategy

import (
	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/bertha-engine/bertha/search"
)

// Random plays a uniformly random eligible move.
type Random struct {
	rng *frand.RNG
}

func (r *Random) Name() string { return RandomStrategy }

func (r *Random) ChooseMove(b *dragontoothmg.Board, _ TimeBudget, restriction []dragontoothmg.Move) (Result, error) {
	moves := search.Restrict(b.GenerateLegalMoves(), restriction)
	if len(moves) == 0 {
		return Result{}, search.ErrNoLegalMoves
	}
	return Result{Move: moves[r.rng.Intn(len(moves))]}, nil
}

// FirstByNotation plays the eligible move whose UCI text is lexicographically
// first. It is fully deterministic and costs one move generation.
type FirstByNotation struct{}

func (FirstByNotation) Name() string { return NotationStrategy }

func (f FirstByNotation) ChooseMove(b *dragontoothmg.Board, _ TimeBudget, restriction []dragontoothmg.Move) (Result, error) {
	moves := search.Restrict(b.GenerateLegalMoves(), restriction)
	if len(moves) == 0 {
		return Result{}, search.ErrNoLegalMoves
	}
	return Result{Move: firstByNotation(moves)}, nil
}

func firstByNotation(moves []dragontoothmg.Move) dragontoothmg.Move {
	return lo.MinBy(moves, func(a, b dragontoothmg.Move) bool {
		return a.String() < b.String()
	})
}

// Searching always runs the full alpha-beta search, ignoring the clock.
type Searching struct {
	searcher *search.Searcher
}

func (s *Searching) Name() string { return SearchStrategy }

func (s *Searching) ChooseMove(b *dragontoothmg.Board, _ TimeBudget, restriction []dragontoothmg.Move) (Result, error) {
	move, score, err := s.searcher.BestMove(b, restriction)
	if err != nil {
		return Result{}, err
	}
	return Result{Move: move, Score: score, HasScore: true}, nil
}

// TimeAdaptive runs the full search when there is plenty of time and takes
// the deterministic first-by-notation choice when low on time.
type TimeAdaptive struct {
	searcher *search.Searcher
	fallback FirstByNotation
}

func (t *TimeAdaptive) Name() string { return AdaptiveStrategy }

func (t *TimeAdaptive) ChooseMove(b *dragontoothmg.Board, budget TimeBudget, restriction []dragontoothmg.Move) (Result, error) {
	clock, inc := budget.Remaining(b.Wtomove)
	if !PlentyOfTime(clock, inc) {
		log.Debug().Dur("clock", clock).Dur("inc", inc).Msg("low on time, using notation fallback")
		return t.fallback.ChooseMove(b, budget, restriction)
	}
	move, score, err := t.searcher.BestMove(b, restriction)
	if err != nil {
		return Result{}, err
	}
	return Result{Move: move, Score: score, HasScore: true}, nil
}
