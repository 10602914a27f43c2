package search

import (
	"os"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/bertha-engine/bertha/eval"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

func newTestSearcher(t *testing.T, depth int) *Searcher {
	t.Helper()
	cache, err := eval.NewCache(eval.MaterialEvaluator{}, 1<<14)
	if err != nil {
		t.Fatal(err)
	}
	return NewSearcher(cache, depth)
}

// plainNegamax is an exhaustive full-width negamax with no pruning, used as
// the oracle for the alpha-beta equivalence test.
func plainNegamax(b *dragontoothmg.Board, depth int) eval.Score {
	moves := b.GenerateLegalMoves()
	if depth == 0 || len(moves) == 0 {
		return eval.MaterialEvaluator{}.Evaluate(b)
	}
	best := eval.Score(-1e7)
	for _, m := range moves {
		unapply := b.Apply(m)
		score := -plainNegamax(b, depth-1)
		unapply()
		if score > best {
			best = score
		}
	}
	return best
}

func TestPruningPreservesRootValue(t *testing.T) {
	is := is.New(t)
	// A tactical middlegame position with hanging material, searched two
	// plies deep. Pruning must not change the root value.
	fen := "r1bqkbnr/pppp1ppp/2n5/4p3/3PP3/5N2/PPP2PPP/RNBQKB1R b KQkq - 0 3"
	searcher := newTestSearcher(t, 2)

	board := dragontoothmg.ParseFen(fen)
	_, prunedScore, err := searcher.BestMove(&board, nil)
	is.NoErr(err)

	oracle := dragontoothmg.ParseFen(fen)
	want := eval.Score(-1e7)
	for _, m := range oracle.GenerateLegalMoves() {
		unapply := oracle.Apply(m)
		if score := -plainNegamax(&oracle, 1); score > want {
			want = score
		}
		unapply()
	}
	is.Equal(prunedScore, want)
}

func TestBestMoveFromStartIsLegal(t *testing.T) {
	is := is.New(t)
	searcher := newTestSearcher(t, 1)
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)

	move, score, err := searcher.BestMove(&board, nil)
	is.NoErr(err)
	// No capture or check is reachable in one ply from the start, so every
	// move scores zero.
	is.Equal(score, eval.Score(0))

	fresh := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	legal := map[dragontoothmg.Move]bool{}
	for _, m := range fresh.GenerateLegalMoves() {
		legal[m] = true
	}
	is.True(legal[move])
}

func TestBestMoveFindsMateInOne(t *testing.T) {
	is := is.New(t)
	// Back-rank mate: Ra8#.
	board := dragontoothmg.ParseFen("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	searcher := newTestSearcher(t, 2)

	move, score, err := searcher.BestMove(&board, nil)
	is.NoErr(err)
	is.Equal(move.String(), "a1a8")
	is.Equal(score, -eval.CheckmateScore)
}

func TestBoardUnchangedAfterSearch(t *testing.T) {
	is := is.New(t)
	fen := "r1bqkbnr/pppp1ppp/2n5/4p3/3PP3/5N2/PPP2PPP/RNBQKB1R b KQkq - 0 3"
	board := dragontoothmg.ParseFen(fen)
	searcher := newTestSearcher(t, 3)

	_, _, err := searcher.BestMove(&board, nil)
	is.NoErr(err)
	is.Equal(board.ToFen(), fen)
}

func TestBestMoveErrorsOnTerminalPosition(t *testing.T) {
	is := is.New(t)
	// Fool's mate: white has no legal moves.
	board := dragontoothmg.ParseFen("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	searcher := newTestSearcher(t, 2)

	_, _, err := searcher.BestMove(&board, nil)
	is.Equal(err, ErrNoLegalMoves)
}

func TestTieBreakIsUniform(t *testing.T) {
	if testing.Short() {
		t.Skip("distributional test")
	}
	is := is.New(t)
	searcher := newTestSearcher(t, 1)

	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	legalCount := len(board.GenerateLegalMoves())
	is.Equal(legalCount, 20)

	// At depth 1 every opening move ties at zero, so the tie-break picks
	// uniformly among all 20 moves. With 3000 trials each move expects 150
	// selections; the bounds below are over six standard deviations out.
	const trials = 3000
	counts := map[dragontoothmg.Move]int{}
	for i := 0; i < trials; i++ {
		move, _, err := searcher.BestMove(&board, nil)
		is.NoErr(err)
		counts[move]++
	}
	is.Equal(len(counts), legalCount)
	for move, n := range counts {
		if n < 50 || n > 400 {
			t.Fatalf("move %s chosen %d times out of %d; tie-break is not uniform", move.String(), n, trials)
		}
	}
}

func TestRestrictConfinesChoice(t *testing.T) {
	is := is.New(t)
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	e2e4, err := dragontoothmg.ParseMove("e2e4")
	is.NoErr(err)

	searcher := newTestSearcher(t, 2)
	move, _, err := searcher.BestMove(&board, []dragontoothmg.Move{e2e4})
	is.NoErr(err)
	is.Equal(move, e2e4)
}

func TestIsIrreversible(t *testing.T) {
	is := is.New(t)
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)

	pawnPush, err := dragontoothmg.ParseMove("e2e4")
	is.NoErr(err)
	knightHop, err := dragontoothmg.ParseMove("g1f3")
	is.NoErr(err)
	is.True(IsIrreversible(&board, pawnPush))
	is.True(!IsIrreversible(&board, knightHop))

	// A piece capture on d5 is irreversible even though no pawn moves.
	capturePos := dragontoothmg.ParseFen("rnbqkbnr/ppp1pppp/8/3p4/8/2N5/PPPPPPPP/R1BQKBNR w KQkq - 0 2")
	capture, err := dragontoothmg.ParseMove("c3d5")
	is.NoErr(err)
	is.True(IsIrreversible(&capturePos, capture))
}

func TestChosenIrreversibleMoveInvalidatesCache(t *testing.T) {
	is := is.New(t)
	cache, err := eval.NewCache(eval.MaterialEvaluator{}, 1<<14)
	is.NoErr(err)
	searcher := NewSearcher(cache, 1)

	// Restrict to a single pawn move so the choice is forced.
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	e2e4, err := dragontoothmg.ParseMove("e2e4")
	is.NoErr(err)

	_, _, err = searcher.BestMove(&board, []dragontoothmg.Move{e2e4})
	is.NoErr(err)
	is.Equal(cache.Len(), 0)

	// A forced knight move leaves the cache populated.
	g1f3, err := dragontoothmg.ParseMove("g1f3")
	is.NoErr(err)
	_, _, err = searcher.BestMove(&board, []dragontoothmg.Move{g1f3})
	is.NoErr(err)
	is.True(cache.Len() > 0)
}
