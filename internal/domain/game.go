package domain

// Game referees a full game between two agents. The search engine never
// uses it; it works on bare boards.
type Game struct {
	Board         *Board
	CurrentPlayer PlayerID
	Status        GameStatus
	Winner        PlayerID
	MoveCount     int
	Moves         []int
}

func NewGame(rows, cols int) (*Game, error) {
	board, err := NewBoard(rows, cols)
	if err != nil {
		return nil, err
	}
	return &Game{
		Board:         board,
		CurrentPlayer: Player1,
		Status:        StatusActive,
		Winner:        Empty,
	}, nil
}

func (g *Game) MakeMove(column int) (int, error) {
	if g.Status != StatusActive {
		return -1, ErrGameOver
	}

	if open, err := g.Board.IsColumnOpen(column); err != nil || !open {
		return -1, ErrInvalidMove
	}

	row, err := g.Board.Play(column, g.CurrentPlayer)
	if err != nil {
		return -1, err
	}

	g.MoveCount++
	g.Moves = append(g.Moves, column)

	if CheckWinAt(g.Board, row, column, g.CurrentPlayer) {
		g.Status = StatusWon
		g.Winner = g.CurrentPlayer
		return row, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = Opponent(g.CurrentPlayer)
	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}
