package bot

import (
	"math"

	"github.com/iamasit07/connect4-agent/internal/domain"
)

// minimax is the unpruned search. It visits every node alphaBeta could
// visit and must always agree with it on the chosen column.
func (s *searcher) minimax(board *domain.Board, depth int, maximizing bool) (int, int) {
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
	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}

	for _, col := range moves {
		_, score := s.minimax(board.Drop(col, player), depth-1, !maximizing)
		if (maximizing && score > best) || (!maximizing && score < best) {
			best = score
			column = col
		}
	}
	return column, best
}
