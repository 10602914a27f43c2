// Package bot is the outward decision entry point: given a position and a
// time budget, return one legal move. The caller is responsible for detecting
// game-over states before asking for a move.
package bot

import (
	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog/log"

	"github.com/bertha-engine/bertha/config"
	"github.com/bertha-engine/bertha/eval"
	"github.com/bertha-engine/bertha/search"
	"github.com/bertha-engine/bertha/strategy"
)

type PlayRequest struct {
	Budget strategy.TimeBudget
	// Ponder is accepted for interface compatibility and ignored; there
	// is no pondering.
	Ponder      bool
	DrawOffered bool
	// RootMoves, when non-empty, confines the choice to these moves.
	RootMoves []dragontoothmg.Move
}

type PlayResult struct {
	Move     dragontoothmg.Move
	Score    eval.Score
	HasScore bool
	// DrawOffered is echoed back from the request.
	DrawOffered bool
}

// Bot owns one evaluation cache and one configured mover. The cache lives
// for the process (or the Bot), persisting across decisions; it is cleared
// from inside the search when an irreversible move is chosen. At most one
// decision may be in flight per Bot.
type Bot struct {
	cfg   config.Config
	cache *eval.Cache
	mover strategy.Mover
}

func New(cfg config.Config) (*Bot, error) {
	cache, err := eval.NewCache(eval.MaterialEvaluator{}, cfg.CacheCapacity)
	if err != nil {
		return nil, err
	}
	mover, err := strategy.New(cfg, cache)
	if err != nil {
		return nil, err
	}
	return &Bot{cfg: cfg, cache: cache, mover: mover}, nil
}

// Decide chooses one legal move for the side to move on b. It fails with
// search.ErrNoLegalMoves on a terminal position rather than guessing; it
// never retries, since a failed decision cannot change legality.
func (bt *Bot) Decide(b *dragontoothmg.Board, req PlayRequest) (PlayResult, error) {
	legal := b.GenerateLegalMoves()
	if len(legal) == 0 {
		return PlayResult{}, search.ErrNoLegalMoves
	}
	res, err := bt.mover.ChooseMove(b, req.Budget, req.RootMoves)
	if err != nil {
		return PlayResult{}, err
	}
	log.Info().Str("strategy", bt.mover.Name()).
		Str("move", res.Move.String()).
		Bool("scored", res.HasScore).
		Msg("decided")
	return PlayResult{
		Move:        res.Move,
		Score:       res.Score,
		HasScore:    res.HasScore,
		DrawOffered: req.DrawOffered,
	}, nil
}

func (bt *Bot) Cache() *eval.Cache {
	return bt.cache
}

func (bt *Bot) Strategy() string {
	return bt.mover.Name()
}
