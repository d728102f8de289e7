package domain

import (
	"fmt"
	"strings"
)

// Board is a rows x columns grid stored row-major. Row 0 is the top row,
// so pieces fall towards higher row indices.
type Board struct {
	rows  int
	cols  int
	cells []PlayerID
}

func NewBoard(rows, cols int) (*Board, error) {
	if rows <= 0 || cols <= 0 || rows > MaxDimension || cols > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	return &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]PlayerID, rows*cols),
	}, nil
}

// NewDefaultBoard returns an empty 6x7 board.
func NewDefaultBoard() *Board {
	b, _ := NewBoard(DefaultRows, DefaultColumns)
	return b
}

func (b *Board) Rows() int    { return b.rows }
func (b *Board) Columns() int { return b.cols }

func (b *Board) At(row, col int) PlayerID {
	return b.cells[row*b.cols+col]
}

// Set writes a cell directly. It does not enforce gravity; use Validate
// after building a board cell by cell.
func (b *Board) Set(row, col int, p PlayerID) {
	b.cells[row*b.cols+col] = p
}

func (b *Board) inColumnRange(col int) bool {
	return col >= 0 && col < b.cols
}

// IsColumnOpen reports whether another piece fits in col.
func (b *Board) IsColumnOpen(col int) (bool, error) {
	if !b.inColumnRange(col) {
		return false, fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidColumn, col, b.cols)
	}
	return b.cells[col] == Empty, nil
}

// LegalColumns returns the open columns in ascending order. An empty
// result means the board is full.
func (b *Board) LegalColumns() []int {
	moves := make([]int, 0, b.cols)
	// here row 0 is the top row, so only the first cols cells matter
	for col := 0; col < b.cols; col++ {
		if b.cells[col] == Empty {
			moves = append(moves, col)
		}
	}
	return moves
}

func (b *Board) IsFull() bool {
	for col := 0; col < b.cols; col++ {
		if b.cells[col] == Empty {
			return false
		}
	}
	return true
}

// landingRow is the highest-index empty row of col, or -1 when the column is full.
func (b *Board) landingRow(col int) int {
	for row := b.rows - 1; row >= 0; row-- {
		if b.cells[row*b.cols+col] == Empty {
			return row
		}
	}
	return -1
}

// Drop returns a copy of the board with player's piece dropped into col.
// The receiver is never modified. Callers must only pass columns taken
// from LegalColumns; anything else is a bug and panics.
func (b *Board) Drop(col int, player PlayerID) *Board {
	if !b.inColumnRange(col) {
		panic(fmt.Sprintf("domain: drop into column %d outside [0,%d)", col, b.cols))
	}
	row := b.landingRow(col)
	if row < 0 {
		panic(fmt.Sprintf("domain: drop into full column %d", col))
	}
	next := b.Clone()
	next.cells[row*b.cols+col] = player
	return next
}

// Play drops a piece in place and returns the row it landed on. Unlike
// Drop it reports bad columns as errors, since it serves moves that come
// from outside the engine.
func (b *Board) Play(col int, player PlayerID) (int, error) {
	if !b.inColumnRange(col) {
		return -1, ErrInvalidColumn
	}
	row := b.landingRow(col)
	if row < 0 {
		return -1, ErrColumnFull
	}
	b.cells[row*b.cols+col] = player
	return row, nil
}

// this creates a deep copy of the board
func (b *Board) Clone() *Board {
	cells := make([]PlayerID, len(b.cells))
	copy(cells, b.cells)
	return &Board{rows: b.rows, cols: b.cols, cells: cells}
}

func (b *Board) Count(p PlayerID) int {
	n := 0
	for _, c := range b.cells {
		if c == p {
			n++
		}
	}
	return n
}

// Validate checks that every cell holds a known value and that pieces in
// each column sit on top of each other with no gaps below them.
func (b *Board) Validate() error {
	for col := 0; col < b.cols; col++ {
		seenPiece := false
		for row := 0; row < b.rows; row++ {
			cell := b.At(row, col)
			if cell != Empty && !cell.Valid() {
				return fmt.Errorf("%w: %d at row %d column %d", ErrInvalidCell, cell, row, col)
			}
			if cell != Empty {
				seenPiece = true
			} else if seenPiece {
				return fmt.Errorf("%w: column %d row %d", ErrFloatingPiece, col, row)
			}
		}
	}
	return nil
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			sb.WriteByte(b.At(row, col).Symbol())
		}
		sb.WriteByte('\n')
	}
	for col := 0; col < b.cols; col++ {
		fmt.Fprintf(&sb, "%d", col%10)
	}
	return sb.String()
}

// ParseBoard builds a board from rows of text, top row first, where '.'
// is empty, 'X' or '1' is Player1 and 'O' or '2' is Player2.
func ParseBoard(lines ...string) (*Board, error) {
	if len(lines) == 0 {
		return nil, ErrInvalidDimensions
	}
	b, err := NewBoard(len(lines), len(lines[0]))
	if err != nil {
		return nil, err
	}
	for row, line := range lines {
		if len(line) != b.cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrGridShape, row, len(line), b.cols)
		}
		for col := 0; col < len(line); col++ {
			switch line[col] {
			case '.', '0':
				b.Set(row, col, Empty)
			case 'X', 'x', '1':
				b.Set(row, col, Player1)
			case 'O', 'o', '2':
				b.Set(row, col, Player2)
			default:
				return nil, fmt.Errorf("%w: %q at row %d column %d", ErrInvalidCell, line[col], row, col)
			}
		}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}
