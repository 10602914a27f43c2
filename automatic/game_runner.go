// Package automatic plays bertha strategies against each other, mostly so
// that strategy changes can be compared over many games.
package automatic

import (
	"context"
	"sync/atomic"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/bertha-engine/bertha/bot"
	"github.com/bertha-engine/bertha/config"
	"github.com/bertha-engine/bertha/strategy"
)

type GameResult int

const (
	Draw GameResult = iota
	WhiteWins
	BlackWins
)

// maxPliesPerGame cuts off games that would otherwise shuffle forever; the
// runner does not track the fifty-move rule or repetitions.
const maxPliesPerGame = 300

// GameRunner pits two strategy configurations against each other. Every game
// builds fresh bots, so each side owns its own evaluation cache and no state
// leaks between games.
type GameRunner struct {
	white  config.Config
	black  config.Config
	budget strategy.TimeBudget
}

func NewGameRunner(white, black config.Config, budget strategy.TimeBudget) *GameRunner {
	return &GameRunner{white: white, black: black, budget: budget}
}

// PlayGame plays a single game from the starting position and returns the
// result and the number of plies played.
func (r *GameRunner) PlayGame() (GameResult, int, error) {
	whiteBot, err := bot.New(r.white)
	if err != nil {
		return Draw, 0, err
	}
	blackBot, err := bot.New(r.black)
	if err != nil {
		return Draw, 0, err
	}

	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	for ply := 0; ply < maxPliesPerGame; ply++ {
		if len(board.GenerateLegalMoves()) == 0 {
			if !board.OurKingInCheck() {
				return Draw, ply, nil
			}
			if board.Wtomove {
				return BlackWins, ply, nil
			}
			return WhiteWins, ply, nil
		}
		mover := whiteBot
		if !board.Wtomove {
			mover = blackBot
		}
		res, err := mover.Decide(&board, bot.PlayRequest{Budget: r.budget})
		if err != nil {
			return Draw, ply, err
		}
		board.Apply(res.Move)
	}
	log.Debug().Int("plies", maxPliesPerGame).Msg("game cut off, scoring as draw")
	return Draw, maxPliesPerGame, nil
}

type Tally struct {
	WhiteWins int
	BlackWins int
	Draws     int
}

// CompareStrategies plays n games, at most parallel at a time. Games are
// independent: each one has its own bots and caches.
func (r *GameRunner) CompareStrategies(ctx context.Context, n, parallel int) (Tally, error) {
	if parallel < 1 {
		parallel = 1
	}
	var white, black, draws atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, plies, err := r.PlayGame()
			if err != nil {
				return err
			}
			switch result {
			case WhiteWins:
				white.Add(1)
			case BlackWins:
				black.Add(1)
			default:
				draws.Add(1)
			}
			log.Debug().Int("plies", plies).Int("result", int(result)).Msg("game finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Tally{}, err
	}
	return Tally{
		WhiteWins: int(white.Load()),
		BlackWins: int(black.Load()),
		Draws:     int(draws.Load()),
	}, nil
}
