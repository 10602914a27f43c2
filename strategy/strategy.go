// Package strategy holds the closed set of move-selection strategies and the
// time budget that picks between them. Strategies are selected by name from
// configuration, not by type hierarchy.
package strategy

import (
	"errors"
	"fmt"

	"github.com/dylhunn/dragontoothmg"
	"lukechampine.com/frand"

	"github.com/bertha-engine/bertha/config"
	"github.com/bertha-engine/bertha/eval"
	"github.com/bertha-engine/bertha/search"
)

const (
	// RandomStrategy plays a uniformly random eligible move.
	RandomStrategy = "random"
	// NotationStrategy plays the eligible move whose canonical (UCI) text
	// sorts first.
	NotationStrategy = "notation"
	// AdaptiveStrategy searches when the clock allows and falls back to
	// NotationStrategy when low on time.
	AdaptiveStrategy = "adaptive"
	// SearchStrategy always runs the full alpha-beta search.
	SearchStrategy = "search"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// Result is one chosen move. Score is only meaningful when HasScore is set;
// the cheap strategies do not score their choice.
type Result struct {
	Move     dragontoothmg.Move
	Score    eval.Score
	HasScore bool
}

// A Mover chooses one move for the side to move. The restriction set, when
// non-empty, confines every choice (random, searched, or deterministic) to
// the moves it names.
type Mover interface {
	ChooseMove(b *dragontoothmg.Board, budget TimeBudget, restriction []dragontoothmg.Move) (Result, error)
	Name() string
}

// New builds the mover named by cfg.Strategy. The searching movers share the
// given evaluation cache.
func New(cfg config.Config, cache *eval.Cache) (Mover, error) {
	switch cfg.Strategy {
	case RandomStrategy:
		return &Random{rng: frand.New()}, nil
	case NotationStrategy:
		return &FirstByNotation{}, nil
	case SearchStrategy:
		return &Searching{searcher: search.NewSearcher(cache, cfg.SearchDepth)}, nil
	case AdaptiveStrategy:
		return &TimeAdaptive{searcher: search.NewSearcher(cache, cfg.SearchDepth)}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, cfg.Strategy)
}
