package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// the two sides always sum to this, so the opponent is a pure function of the player
const swapPlayer = 3

// Opponent returns the other side. It is only meaningful for Player1 and Player2.
func Opponent(p PlayerID) PlayerID {
	return swapPlayer - p
}

func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

func (p PlayerID) Symbol() byte {
	switch p {
	case Player1:
		return 'X'
	case Player2:
		return 'O'
	default:
		return '.'
	}
}

const (
	DefaultRows    = 6
	DefaultColumns = 7
	MaxDimension   = 16
	ToWin          = 4

	// NoMove is returned in place of a column when the position has no legal move
	NoMove = -1
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove       Error = "invalid move"
	ErrColumnFull        Error = "column is full"
	ErrInvalidColumn     Error = "column out of range"
	ErrInvalidDimensions Error = "invalid board dimensions"
	ErrInvalidCell       Error = "invalid cell value"
	ErrFloatingPiece     Error = "piece above an empty cell"
	ErrGridShape         Error = "grid does not match the declared dimensions"
	ErrGameOver          Error = "game is already over"
)
