package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/iamasit07/connect4-agent/internal/domain"
	"github.com/iamasit07/connect4-agent/internal/service/bot"
	"github.com/iamasit07/connect4-agent/internal/service/game"
)

var (
	matchPlayer1 string
	matchPlayer2 string
	matchDepth1  int
	matchDepth2  int
	matchGames   int
	matchSeed    int64
	matchShow    bool
	matchTimeout time.Duration
)

func initMatchFlags() {
	f := matchCmd.Flags()
	f.StringVar(&matchPlayer1, "p1", bot.StrategyAlphaBeta, "strategy of the first agent")
	f.StringVar(&matchPlayer2, "p2", bot.StrategyRandom, "strategy of the second agent")
	f.IntVar(&matchDepth1, "p1-depth", 0, "search depth of the first agent (default SEARCH_DEPTH)")
	f.IntVar(&matchDepth2, "p2-depth", 0, "search depth of the second agent (default SEARCH_DEPTH)")
	f.IntVar(&matchGames, "games", 1, "games to play; colours swap after each game")
	f.Int64Var(&matchSeed, "seed", 0, "seed for random agents (default: time based)")
	f.BoolVar(&matchShow, "show", false, "print the board after every move")
	f.DurationVar(&matchTimeout, "move-timeout", 0, "forfeit an agent that takes longer than this per move")
}

func matchAgent(strategy string, depth int, seed int64) (bot.Agent, func(), error) {
	search, err := cfg.Search()
	if err != nil {
		return nil, nil, err
	}
	if depth > 0 {
		search.Depth = depth
		if err := search.Validate(); err != nil {
			return nil, nil, err
		}
	}
	return newAgent(strategy, search, seed)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	if matchGames < 1 {
		return fmt.Errorf("--games must be at least 1")
	}
	seed := matchSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	a, releaseA, err := matchAgent(matchPlayer1, matchDepth1, seed)
	if err != nil {
		return fmt.Errorf("p1: %w", err)
	}
	defer releaseA()
	b, releaseB, err := matchAgent(matchPlayer2, matchDepth2, seed+1)
	if err != nil {
		return fmt.Errorf("p2: %w", err)
	}
	defer releaseB()

	out := cmd.OutOrStdout()
	series := game.Series{
		Rows:        cfg.BoardRows,
		Columns:     cfg.BoardColumns,
		Games:       matchGames,
		MoveTimeout: matchTimeout,
		OnGame:      func(gs *game.GameSession) { printGame(out, gs) },
	}
	if matchShow {
		series.OnMove = func(ev game.MoveEvent) {
			fmt.Fprintf(out, "player %d (%c) -> column %d\n%s\n", ev.Player, ev.Player.Symbol(), ev.Column, ev.Board)
		}
	}

	tally, err := series.Run(cmd.Context(), a, b)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: %d wins (elo %d), %s: %d wins (elo %d), %d draws, %d forfeits in %d games\n",
		a.Name(), tally.Wins[0], tally.Ratings[0], b.Name(), tally.Wins[1], tally.Ratings[1],
		tally.Draws, tally.Forfeits, tally.Games)
	return nil
}

func printGame(w io.Writer, gs *game.GameSession) {
	fmt.Fprintf(w, "game %s: %s (X) vs %s (O)\n%s\n", gs.GameID, gs.Agents[0].Name(), gs.Agents[1].Name(), gs.Game.Board)
	switch gs.Game.Winner {
	case domain.Empty:
		fmt.Fprintf(w, "draw after %d moves\n\n", gs.Game.MoveCount)
	default:
		fmt.Fprintf(w, "player %d (%s) wins by %s after %d moves\n\n",
			gs.Game.Winner, gs.Agents[gs.Game.Winner-1].Name(), gs.Reason, gs.Game.MoveCount)
	}
}
