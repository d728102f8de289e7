package bot

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamasit07/connect4-agent/internal/domain"
)

const (
	DefaultDepth = 6
	MaxDepth     = 12

	WinScore  = 1000000
	LossScore = -WinScore
	DrawScore = 0
)

// SearchConfig is handed to every engine explicitly, so searches with
// different settings never share state.
type SearchConfig struct {
	Depth   int
	Weights Weights
	Pruning bool
}

func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Depth:   DefaultDepth,
		Weights: DefaultWeights,
		Pruning: true,
	}
}

func (c SearchConfig) Validate() error {
	if c.Depth < 1 || c.Depth > MaxDepth {
		return fmt.Errorf("%w: %d not in [1,%d]", ErrInvalidDepth, c.Depth, MaxDepth)
	}
	return c.Weights.Validate()
}

type SearchStats struct {
	Nodes   int64
	Leaves  int64
	Cutoffs int64
}

// Result is what a full search reports back besides the column.
type Result struct {
	Column  int
	Score   int
	Depth   int
	Stats   SearchStats
	Elapsed time.Duration
}

// Engine picks moves with a depth-limited minimax search, with or without
// alpha-beta pruning. It holds no per-search state and is safe to share.
type Engine struct {
	cfg SearchConfig
}

func NewEngine(cfg SearchConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

func (e *Engine) Name() string {
	if e.cfg.Pruning {
		return StrategyAlphaBeta
	}
	return StrategyMinimax
}

func (e *Engine) Config() SearchConfig {
	return e.cfg
}

func (e *Engine) ChooseMove(ctx context.Context, board *domain.Board, player domain.PlayerID) (int, error) {
	res, err := e.Search(ctx, board, player)
	if err != nil {
		return domain.NoMove, err
	}
	return res.Column, nil
}

// Search runs the full decision for player. A finished or full board comes
// back as NoMove with ErrGameOver or ErrNoLegalMove.
func (e *Engine) Search(ctx context.Context, board *domain.Board, player domain.PlayerID) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{Column: domain.NoMove}, err
	}
	moves, err := checkPosition(board, player)
	if err != nil {
		return Result{Column: domain.NoMove}, err
	}

	start := time.Now()

	// If a move wins immediately, take it
	for _, col := range moves {
		if domain.HasFourInARow(board.Drop(col, player), player) {
			res := Result{Column: col, Score: WinScore, Depth: 1, Stats: SearchStats{Nodes: 1}, Elapsed: time.Since(start)}
			e.observe(res)
			return res, nil
		}
	}

	s := &searcher{root: player, weights: e.cfg.Weights, depth: e.cfg.Depth}
	var col, score int
	if e.cfg.Pruning {
		col, score = s.alphaBeta(board, e.cfg.Depth, math.MinInt, math.MaxInt, true)
	} else {
		col, score = s.minimax(board, e.cfg.Depth, true)
	}

	res := Result{
		Column:  col,
		Score:   score,
		Depth:   e.cfg.Depth,
		Stats:   s.stats,
		Elapsed: time.Since(start),
	}
	e.observe(res)

	log.Debug().
		Str("component", "search").
		Str("algorithm", e.Name()).
		Int("player", int(player)).
		Int("depth", res.Depth).
		Int("column", res.Column).
		Int("score", res.Score).
		Int64("nodes", res.Stats.Nodes).
		Int64("cutoffs", res.Stats.Cutoffs).
		Dur("elapsed", res.Elapsed).
		Msg("search finished")

	return res, nil
}

func (e *Engine) observe(res Result) {
	searchNodes.WithLabelValues(e.Name()).Add(float64(res.Stats.Nodes))
	searchCutoffs.Add(float64(res.Stats.Cutoffs))
	searchDuration.WithLabelValues(e.Name()).Observe(res.Elapsed.Seconds())
}

// searcher carries what one search needs. The root player is the one every
// score is computed for; it is fixed per search rather than global.
type searcher struct {
	root    domain.PlayerID
	weights Weights
	depth   int
	stats   SearchStats
}

// terminal scores a node that ends the game. Wins found closer to the root
// score higher, so the engine prefers quick wins and slow losses.
func (s *searcher) terminal(board *domain.Board, moves []int, depth int) (int, bool) {
	ply := s.depth - depth
	if domain.HasFourInARow(board, s.root) {
		return WinScore - ply, true
	}
	if domain.HasFourInARow(board, domain.Opponent(s.root)) {
		return LossScore + ply, true
	}
	if len(moves) == 0 {
		return DrawScore, true
	}
	return 0, false
}

func (s *searcher) sideToMove(maximizing bool) domain.PlayerID {
	if maximizing {
		return s.root
	}
	return domain.Opponent(s.root)
}

// alphaBeta returns the best column and its score. Ties keep the first
// column in ascending order.
func (s *searcher) alphaBeta(board *domain.Board, depth, alpha, beta int, maximizing bool) (int, int) {
	s.stats.Nodes++

	if depth == 0 {
		s.stats.Leaves++
		return domain.NoMove, Evaluate(board, s.root, s.weights)
	}
	moves := board.LegalColumns()
	if score, ok := s.terminal(board, moves, depth); ok {
		s.stats.Leaves++
		return domain.NoMove, score
	}

	player := s.sideToMove(maximizing)
	column := domain.NoMove

	if maximizing {
		maxScore := math.MinInt
		for _, col := range moves {
			_, score := s.alphaBeta(board.Drop(col, player), depth-1, alpha, beta, false)
			if score > maxScore {
				maxScore = score
				column = col
			}
			alpha = max(alpha, score)
			if alpha >= beta {
				s.stats.Cutoffs++
				break
			}
		}
		return column, maxScore
	}

	minScore := math.MaxInt
	for _, col := range moves {
		_, score := s.alphaBeta(board.Drop(col, player), depth-1, alpha, beta, true)
		if score < minScore {
			minScore = score
			column = col
		}
		beta = min(beta, score)
		if alpha >= beta {
			s.stats.Cutoffs++
			break
		}
	}
	return column, minScore
}
