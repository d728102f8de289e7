package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameVerticalWin(t *testing.T) {
	g, err := NewGame(DefaultRows, DefaultColumns)
	require.NoError(t, err)

	for _, col := range []int{0, 1, 0, 1, 0, 1} {
		_, err := g.MakeMove(col)
		require.NoError(t, err)
	}
	assert.Equal(t, Player1, g.CurrentPlayer)

	row, err := g.MakeMove(0)
	require.NoError(t, err)
	assert.Equal(t, 2, row)
	assert.True(t, g.IsFinished())
	assert.Equal(t, StatusWon, g.Status)
	assert.Equal(t, Player1, g.Winner)
	assert.Equal(t, 7, g.MoveCount)
	assert.Equal(t, []int{0, 1, 0, 1, 0, 1, 0}, g.Moves)

	_, err = g.MakeMove(2)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestGameRejectsIllegalColumns(t *testing.T) {
	g, err := NewGame(2, 2)
	require.NoError(t, err)

	_, err = g.MakeMove(5)
	assert.ErrorIs(t, err, ErrInvalidMove)

	_, err = g.MakeMove(0)
	require.NoError(t, err)
	_, err = g.MakeMove(0)
	require.NoError(t, err)

	_, err = g.MakeMove(0)
	assert.ErrorIs(t, err, ErrInvalidMove)
	assert.Equal(t, Player1, g.CurrentPlayer)
}

func TestGameEndsInDrawWhenBoardFills(t *testing.T) {
	g, err := NewGame(2, 2)
	require.NoError(t, err)

	for _, col := range []int{0, 1, 1, 0} {
		_, err := g.MakeMove(col)
		require.NoError(t, err)
	}
	assert.Equal(t, StatusDraw, g.Status)
	assert.Equal(t, Empty, g.Winner)
}
