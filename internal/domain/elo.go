package domain

import "math"

const (
	KFactor       = 32.0
	InitialRating = 1200
)

// Game results from A's side, for UpdateElo.
const (
	ScoreLoss = 0.0
	ScoreDraw = 0.5
	ScoreWin  = 1.0
)

// ExpectedScore is A's expected result against B.
func ExpectedScore(ratingA, ratingB int) float64 {
	return 1.0 / (1.0 + math.Pow(10.0, float64(ratingB-ratingA)/400.0))
}

// UpdateElo returns both new ratings after one game. Ratings never go
// below zero.
func UpdateElo(ratingA, ratingB int, scoreA float64) (int, int) {
	delta := KFactor * (scoreA - ExpectedScore(ratingA, ratingB))
	newA := max(int(math.Round(float64(ratingA)+delta)), 0)
	newB := max(int(math.Round(float64(ratingB)-delta)), 0)
	return newA, newB
}
