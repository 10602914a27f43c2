// Package eval scores chess positions for the side to move, and memoizes
// those scores keyed by the position's structural hash.
package eval

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

// Score is always oriented to the side to move: positive means the player
// about to move is better off.
type Score float32

const (
	// CheckmateScore is the reserved sentinel for "side to move is
	// checkmated". It compares below any attainable material score.
	CheckmateScore Score = -999999
	// DrawScore is returned for stalemate. Stalemate is a draw, never a
	// loss; it must not collapse into the mate sentinel.
	DrawScore Score = 0
	// CheckPenalty is subtracted when the side to move is in check but
	// not mated.
	CheckPenalty Score = 100
)

// Material weights, in pawn units.
const (
	pawnWeight   Score = 1
	knightWeight Score = 3
	bishopWeight Score = 3.5
	rookWeight   Score = 5
	queenWeight  Score = 9
	kingWeight   Score = 0
)

// An Evaluator statically scores a single position. Implementations must be
// pure functions of the board content.
type Evaluator interface {
	Evaluate(b *dragontoothmg.Board) Score
}

// MaterialEvaluator scores material balance plus a king-safety penalty when
// in check, overridden by the mate sentinel when the side to move has been
// checkmated.
type MaterialEvaluator struct{}

func (MaterialEvaluator) Evaluate(b *dragontoothmg.Board) Score {
	inCheck := b.OurKingInCheck()
	if len(b.GenerateLegalMoves()) == 0 {
		if inCheck {
			return CheckmateScore
		}
		return DrawScore
	}
	score := sideMaterial(&b.White) - sideMaterial(&b.Black)
	if !b.Wtomove {
		score = -score
	}
	if inCheck {
		score -= CheckPenalty
	}
	return score
}

func sideMaterial(bb *dragontoothmg.Bitboards) Score {
	var total Score
	total += pawnWeight * Score(bits.OnesCount64(bb.Pawns))
	total += knightWeight * Score(bits.OnesCount64(bb.Knights))
	total += bishopWeight * Score(bits.OnesCount64(bb.Bishops))
	total += rookWeight * Score(bits.OnesCount64(bb.Rooks))
	total += queenWeight * Score(bits.OnesCount64(bb.Queens))
	total += kingWeight * Score(bits.OnesCount64(bb.Kings))
	return total
}
