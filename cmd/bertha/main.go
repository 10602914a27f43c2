package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bertha-engine/bertha/automatic"
	"github.com/bertha-engine/bertha/bot"
	"github.com/bertha-engine/bertha/config"
	"github.com/bertha-engine/bertha/strategy"
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "position <fen>|start - set the current position\n")
	io.WriteString(w, "clock <wtime> <winc> <btime> <binc> - set clocks, in seconds\n")
	io.WriteString(w, "movetime <seconds> - set a fixed time for the move (overrides clocks)\n")
	io.WriteString(w, "strategy <random|notation|adaptive|search> - switch strategy\n")
	io.WriteString(w, "go [move ...] - choose a move, optionally restricted to the listed uci moves\n")
	io.WriteString(w, "selfplay [n] - play n self-play games (default 1)\n")
	io.WriteString(w, "fen - print the current position\n")
	io.WriteString(w, "exit - quit\n")
}

type shell struct {
	cfg    config.Config
	bot    *bot.Bot
	board  dragontoothmg.Board
	budget strategy.TimeBudget
}

func (s *shell) setPosition(arg string) error {
	if arg == "start" || arg == "" {
		s.board = dragontoothmg.ParseFen(dragontoothmg.Startpos)
		return nil
	}
	s.board = dragontoothmg.ParseFen(arg)
	return nil
}

func (s *shell) setClock(fields []string) error {
	if len(fields) != 4 {
		return fmt.Errorf("clock needs 4 values, got %d", len(fields))
	}
	vals := make([]time.Duration, 4)
	for i, f := range fields {
		secs, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return err
		}
		vals[i] = time.Duration(secs * float64(time.Second))
	}
	s.budget = strategy.TimeBudget{
		WhiteClock: vals[0], WhiteInc: vals[1],
		BlackClock: vals[2], BlackInc: vals[3],
	}
	return nil
}

func (s *shell) setStrategy(name string) error {
	cfg := s.cfg
	cfg.Strategy = name
	b, err := bot.New(cfg)
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.bot = b
	return nil
}

func (s *shell) chooseMove(moveTexts []string) error {
	var restriction []dragontoothmg.Move
	for _, text := range moveTexts {
		m, err := dragontoothmg.ParseMove(text)
		if err != nil {
			return fmt.Errorf("bad move %q: %w", text, err)
		}
		restriction = append(restriction, m)
	}
	res, err := s.bot.Decide(&s.board, bot.PlayRequest{
		Budget:    s.budget,
		RootMoves: restriction,
	})
	if err != nil {
		return err
	}
	if res.HasScore {
		fmt.Printf("%s (score %.1f)\n", res.Move.String(), res.Score)
	} else {
		fmt.Println(res.Move.String())
	}
	return nil
}

func (s *shell) selfplay(arg string) error {
	n := 1
	if arg != "" {
		parsed, err := strconv.Atoi(arg)
		if err != nil {
			return err
		}
		n = parsed
	}
	runner := automatic.NewGameRunner(s.cfg, s.cfg, s.budget)
	tally, err := runner.CompareStrategies(context.Background(), n, 2)
	if err != nil {
		return err
	}
	fmt.Printf("white %d  black %d  draws %d\n", tally.WhiteWins, tally.BlackWins, tally.Draws)
	return nil
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Config{}
	if err := cfg.Load(); err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}
	cfg.AdjustLogLevel()

	b, err := bot.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create bot")
	}
	sh := &shell{
		cfg:   cfg,
		bot:   b,
		board: dragontoothmg.ParseFen(dragontoothmg.Startpos),
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:              "bertha> ",
		HistoryFile:         "/tmp/bertha-readline.tmp",
		EOFPrompt:           "exit",
		InterruptPrompt:     "^C",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("could not create readline")
	}
	defer l.Close()

readlineLoop:
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		var cmdErr error
		switch fields[0] {
		case "position":
			cmdErr = sh.setPosition(strings.Join(fields[1:], " "))
		case "clock":
			cmdErr = sh.setClock(fields[1:])
		case "movetime":
			var secs float64
			if len(fields) != 2 {
				cmdErr = fmt.Errorf("movetime needs one value")
			} else if secs, cmdErr = strconv.ParseFloat(fields[1], 64); cmdErr == nil {
				sh.budget = strategy.TimeBudget{Total: time.Duration(secs * float64(time.Second))}
			}
		case "strategy":
			if len(fields) != 2 {
				cmdErr = fmt.Errorf("strategy needs a name")
			} else {
				cmdErr = sh.setStrategy(fields[1])
			}
		case "go":
			cmdErr = sh.chooseMove(fields[1:])
		case "selfplay":
			arg := ""
			if len(fields) > 1 {
				arg = fields[1]
			}
			cmdErr = sh.selfplay(arg)
		case "fen":
			fmt.Println(sh.board.ToFen())
		case "help":
			usage(os.Stdout)
		case "exit", "quit":
			break readlineLoop
		default:
			usage(os.Stdout)
		}
		if cmdErr != nil {
			fmt.Println("error:", cmdErr)
		}
	}
	log.Debug().Msg("exiting readline loop")
}
