package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamasit07/connect4-agent/internal/domain"
	"github.com/iamasit07/connect4-agent/internal/service/bot"
	"github.com/iamasit07/connect4-agent/pkg/uid"
)

var ErrNoAgent = errors.New("both players need an agent")

const (
	ReasonConnectFour = "connect_four"
	ReasonDraw        = "draw"
	ReasonForfeit     = "forfeit"
)

// MoveEvent is reported after every move that was applied.
type MoveEvent struct {
	GameID   string
	Player   domain.PlayerID
	Column   int
	Row      int
	Board    *domain.Board
	NextTurn domain.PlayerID
}

// GameSession referees one game between two agents. Player 1 moves first.
type GameSession struct {
	GameID     string
	Game       *domain.Game
	Agents     [2]bot.Agent
	Reason     string
	CreatedAt  time.Time
	FinishedAt time.Time

	// OnMove is optional.
	OnMove func(MoveEvent)
	// MoveTimeout bounds each ChooseMove call; zero means no bound.
	MoveTimeout time.Duration
}

func NewGameSession(rows, cols int, player1, player2 bot.Agent) (*GameSession, error) {
	if player1 == nil || player2 == nil {
		return nil, ErrNoAgent
	}
	g, err := domain.NewGame(rows, cols)
	if err != nil {
		return nil, err
	}
	return &GameSession{
		GameID:    uid.NewRequestID(),
		Game:      g,
		Agents:    [2]bot.Agent{player1, player2},
		CreatedAt: time.Now(),
	}, nil
}

func (gs *GameSession) agentFor(p domain.PlayerID) bot.Agent {
	return gs.Agents[p-1]
}

// Run plays until the game ends. An agent that fails or picks an illegal
// column forfeits and its opponent is recorded as the winner.
func (gs *GameSession) Run(ctx context.Context) error {
	for !gs.Game.IsFinished() {
		if err := ctx.Err(); err != nil {
			return err
		}

		player := gs.Game.CurrentPlayer
		column, err := gs.chooseMove(ctx, player)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			gs.forfeit(player, err)
			return nil
		}

		row, err := gs.Game.MakeMove(column)
		if err != nil {
			gs.forfeit(player, fmt.Errorf("column %d: %w", column, err))
			return nil
		}

		if gs.OnMove != nil {
			gs.OnMove(MoveEvent{
				GameID:   gs.GameID,
				Player:   player,
				Column:   column,
				Row:      row,
				Board:    gs.Game.Board,
				NextTurn: gs.Game.CurrentPlayer,
			})
		}
	}

	gs.Reason = ReasonConnectFour
	if gs.Game.Status == domain.StatusDraw {
		gs.Reason = ReasonDraw
	}
	gs.finish()
	return nil
}

func (gs *GameSession) chooseMove(ctx context.Context, player domain.PlayerID) (int, error) {
	if gs.MoveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, gs.MoveTimeout)
		defer cancel()
	}
	return gs.agentFor(player).ChooseMove(ctx, gs.Game.Board.Clone(), player)
}

func (gs *GameSession) forfeit(player domain.PlayerID, err error) {
	log.Warn().Str("component", "game").Str("game_id", gs.GameID).
		Int("player", int(player)).Str("agent", gs.agentFor(player).Name()).
		Err(err).Msg("agent forfeits")

	gs.Game.Status = domain.StatusWon
	gs.Game.Winner = domain.Opponent(player)
	gs.Reason = ReasonForfeit
	gs.finish()
}

func (gs *GameSession) finish() {
	gs.FinishedAt = time.Now()
	log.Info().Str("component", "game").Str("game_id", gs.GameID).
		Str("player1", gs.Agents[0].Name()).Str("player2", gs.Agents[1].Name()).
		Int("winner", int(gs.Game.Winner)).Str("reason", gs.Reason).
		Int("moves", gs.Game.MoveCount).
		Dur("duration", gs.FinishedAt.Sub(gs.CreatedAt)).
		Msg("game over")
}

// Tally counts series results per agent slot, not per colour. Ratings
// start at domain.InitialRating and move with every game.
type Tally struct {
	Games    int
	Wins     [2]int
	Draws    int
	Forfeits int
	Ratings  [2]int
}

// Series plays a run of games, swapping colours after each so both
// agents open equally often.
type Series struct {
	Rows        int
	Columns     int
	Games       int
	MoveTimeout time.Duration
	OnMove      func(MoveEvent)
	OnGame      func(*GameSession)
}

// Run plays the series. a is slot 0 in the tally.
func (s Series) Run(ctx context.Context, a, b bot.Agent) (Tally, error) {
	tally := Tally{Ratings: [2]int{domain.InitialRating, domain.InitialRating}}
	for i := 0; i < s.Games; i++ {
		first, second := a, b
		swapped := i%2 == 1
		if swapped {
			first, second = b, a
		}

		gs, err := NewGameSession(s.Rows, s.Columns, first, second)
		if err != nil {
			return tally, err
		}
		gs.OnMove = s.OnMove
		gs.MoveTimeout = s.MoveTimeout
		if err := gs.Run(ctx); err != nil {
			return tally, err
		}

		tally.Games++
		score := domain.ScoreDraw
		switch gs.Game.Winner {
		case domain.Empty:
			tally.Draws++
		default:
			slot := int(gs.Game.Winner) - 1
			if swapped {
				slot = 1 - slot
			}
			tally.Wins[slot]++
			score = domain.ScoreLoss
			if slot == 0 {
				score = domain.ScoreWin
			}
		}
		tally.Ratings[0], tally.Ratings[1] = domain.UpdateElo(tally.Ratings[0], tally.Ratings[1], score)
		if gs.Reason == ReasonForfeit {
			tally.Forfeits++
		}
		if s.OnGame != nil {
			s.OnGame(gs)
		}
	}
	return tally, nil
}
