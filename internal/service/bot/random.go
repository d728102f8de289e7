package bot

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/iamasit07/connect4-agent/internal/domain"
)

// RandomAgent plays a uniformly random legal column without searching.
type RandomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent uses rng when given, otherwise a time-seeded source.
func NewRandomAgent(rng *rand.Rand) *RandomAgent {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomAgent{rng: rng}
}

func (r *RandomAgent) Name() string { return StrategyRandom }

func (r *RandomAgent) ChooseMove(ctx context.Context, board *domain.Board, player domain.PlayerID) (int, error) {
	if err := ctx.Err(); err != nil {
		return domain.NoMove, err
	}
	validColumns, err := checkPosition(board, player)
	if err != nil {
		return domain.NoMove, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return validColumns[r.rng.Intn(len(validColumns))], nil
}
