package bot

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/iamasit07/connect4-agent/internal/domain"
)

// Agent produces a legal column for the side to move.
type Agent interface {
	ChooseMove(ctx context.Context, board *domain.Board, player domain.PlayerID) (int, error)
	Name() string
}

const (
	StrategyAlphaBeta = "alphabeta"
	StrategyMinimax   = "minimax"
	StrategyRandom    = "random"
	StrategyHuman     = "human"
)

const (
	ErrNoLegalMove      domain.Error = "no legal move"
	ErrInvalidPlayer    domain.Error = "player must be 1 or 2"
	ErrInvalidDepth     domain.Error = "invalid search depth"
	ErrInvalidWeights   domain.Error = "invalid evaluation weights"
	ErrUnknownStrategy  domain.Error = "unknown agent strategy"
	ErrInputTimeout     domain.Error = "timed out waiting for a move"
	ErrInputClosed      domain.Error = "move input closed"
	ErrMissingHumanPipe domain.Error = "human agent needs an input and an output"
)

type Options struct {
	Search       SearchConfig
	Rand         *rand.Rand
	HumanInput   io.Reader
	HumanOutput  io.Writer
	HumanTimeout time.Duration
}

// NewAgent builds the agent for a strategy name.
func NewAgent(strategy string, opts Options) (Agent, error) {
	switch strategy {
	case StrategyAlphaBeta, "":
		cfg := opts.Search
		cfg.Pruning = true
		return NewEngine(cfg)
	case StrategyMinimax:
		cfg := opts.Search
		cfg.Pruning = false
		return NewEngine(cfg)
	case StrategyRandom:
		return NewRandomAgent(opts.Rand), nil
	case StrategyHuman:
		if opts.HumanInput == nil || opts.HumanOutput == nil {
			return nil, ErrMissingHumanPipe
		}
		return NewHumanAgent(opts.HumanInput, opts.HumanOutput, opts.HumanTimeout), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// checkPosition rejects requests that have no move to make.
func checkPosition(board *domain.Board, player domain.PlayerID) ([]int, error) {
	if !player.Valid() {
		return nil, ErrInvalidPlayer
	}
	if domain.Winner(board) != domain.Empty {
		return nil, domain.ErrGameOver
	}
	moves := board.LegalColumns()
	if len(moves) == 0 {
		return nil, ErrNoLegalMove
	}
	return moves, nil
}
