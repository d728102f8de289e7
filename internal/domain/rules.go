package domain

// HasFourInARow scans the whole board for ToWin consecutive pieces of
// player in any of the four orientations.
func HasFourInARow(b *Board, player PlayerID) bool {
	const offset = ToWin - 1

	// horizontal
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols-offset; col++ {
			if b.At(row, col) == player &&
				b.At(row, col+1) == player &&
				b.At(row, col+2) == player &&
				b.At(row, col+3) == player {
				return true
			}
		}
	}

	// vertical
	for col := 0; col < b.cols; col++ {
		for row := 0; row < b.rows-offset; row++ {
			if b.At(row, col) == player &&
				b.At(row+1, col) == player &&
				b.At(row+2, col) == player &&
				b.At(row+3, col) == player {
				return true
			}
		}
	}

	// diagonal \
	for col := 0; col < b.cols-offset; col++ {
		for row := 0; row < b.rows-offset; row++ {
			if b.At(row, col) == player &&
				b.At(row+1, col+1) == player &&
				b.At(row+2, col+2) == player &&
				b.At(row+3, col+3) == player {
				return true
			}
		}
	}

	// diagonal /
	for col := 0; col < b.cols-offset; col++ {
		for row := offset; row < b.rows; row++ {
			if b.At(row, col) == player &&
				b.At(row-1, col+1) == player &&
				b.At(row-2, col+2) == player &&
				b.At(row-3, col+3) == player {
				return true
			}
		}
	}

	return false
}

// CheckWinAt only looks at the lines passing through (row, column), which
// is enough right after a piece has been placed there.
func CheckWinAt(b *Board, row, column int, player PlayerID) bool {
	directions := [][2]int{
		{0, 1},  // horizontal
		{1, 0},  // vertical
		{1, 1},  // diagonal \
		{-1, 1}, // diagonal /
	}
	for _, dir := range directions {
		total := 1 +
			countInDirection(b, row, column, dir[0], dir[1], player) +
			countInDirection(b, row, column, -dir[0], -dir[1], player)
		if total >= ToWin {
			return true
		}
	}
	return false
}

// this counts the number of disks in a specific direction
func countInDirection(b *Board, row, column, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for r >= 0 && r < b.rows && c >= 0 && c < b.cols && b.At(r, c) == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}

// Winner returns the side holding four in a row, or Empty.
func Winner(b *Board) PlayerID {
	if HasFourInARow(b, Player1) {
		return Player1
	}
	if HasFourInARow(b, Player2) {
		return Player2
	}
	return Empty
}

// IsDraw is true when the board is full and nobody has won.
func IsDraw(b *Board) bool {
	return b.IsFull() && Winner(b) == Empty
}

func Outcome(b *Board) GameStatus {
	if Winner(b) != Empty {
		return StatusWon
	}
	if b.IsFull() {
		return StatusDraw
	}
	return StatusActive
}
