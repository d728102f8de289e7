package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateElo(t *testing.T) {
	a, b := UpdateElo(InitialRating, InitialRating, ScoreWin)
	assert.Equal(t, 1216, a)
	assert.Equal(t, 1184, b)

	a, b = UpdateElo(InitialRating, InitialRating, ScoreDraw)
	assert.Equal(t, InitialRating, a)
	assert.Equal(t, InitialRating, b)

	// an upset moves ratings more than an expected win
	upsetA, _ := UpdateElo(1000, 1400, ScoreWin)
	expectedA, _ := UpdateElo(1400, 1000, ScoreWin)
	assert.Greater(t, upsetA-1000, expectedA-1400)

	a, _ = UpdateElo(5, 5, ScoreLoss)
	assert.Zero(t, a)
}

func TestExpectedScore(t *testing.T) {
	assert.InDelta(t, 0.5, ExpectedScore(1500, 1500), 1e-9)
	assert.InDelta(t, 1.0, ExpectedScore(1400, 1000)+ExpectedScore(1000, 1400), 1e-9)
}
