package domain

import "fmt"

// FromColumnMajor converts the wire representation, where grid[c][r] is
// column c and row r counted from the top, into a Board. A zero width or
// height is taken from the grid itself.
func FromColumnMajor(grid [][]int, width, height int) (*Board, error) {
	if width == 0 {
		width = len(grid)
	}
	if height == 0 && len(grid) > 0 {
		height = len(grid[0])
	}
	if len(grid) != width {
		return nil, fmt.Errorf("%w: %d columns, width is %d", ErrGridShape, len(grid), width)
	}

	b, err := NewBoard(height, width)
	if err != nil {
		return nil, err
	}
	for col, column := range grid {
		if len(column) != height {
			return nil, fmt.Errorf("%w: column %d has %d rows, height is %d", ErrGridShape, col, len(column), height)
		}
		for row, v := range column {
			p := PlayerID(v)
			if p != Empty && !p.Valid() {
				return nil, fmt.Errorf("%w: %d at column %d row %d", ErrInvalidCell, v, col, row)
			}
			b.Set(row, col, p)
		}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// ColumnMajor is the inverse of FromColumnMajor.
func (b *Board) ColumnMajor() [][]int {
	grid := make([][]int, b.cols)
	for col := range grid {
		grid[col] = make([]int, b.rows)
		for row := 0; row < b.rows; row++ {
			grid[col][row] = int(b.At(row, col))
		}
	}
	return grid
}
