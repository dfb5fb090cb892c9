package rating

import (
	"math"

	"github.com/mauv0809/driveway-hoops/internal/model"
)

const (
	// Baseline is the rating of a player not yet seen in a scope.
	Baseline = 1000.0
	// BaseK is the K-factor before margin and score scaling.
	BaseK = 20.0

	maxMarginMultiplier = 2.0
	maxScoreMultiplier  = 1.5
)

// Expected returns the logistic Elo expectation that a team rated a beats a
// team rated b.
func Expected(a, b float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (b-a)/400))
}

// TeamAverage is the mean rating of a two-player side.
func TeamAverage(p1, p2 float64) float64 {
	return (p1 + p2) / 2.0
}

// KFactor scales BaseK by the margin of victory and the winner's score.
func KFactor(scoreA, scoreB int) float64 {
	margin := math.Abs(float64(scoreA - scoreB))
	winnerScore := float64(max(scoreA, scoreB))
	marginMult := math.Min(maxMarginMultiplier, 1+margin/10)
	scoreMult := math.Min(maxScoreMultiplier, 1+winnerScore/100)
	return BaseK * marginMult * scoreMult
}

// Change returns the team-shared delta for side A. Side B moves by the
// negation.
func Change(ratingA, ratingB float64, winner model.Side, scoreA, scoreB int) float64 {
	actual := 0.0
	if winner == model.SideA {
		actual = 1.0
	}
	return KFactor(scoreA, scoreB) * (actual - Expected(ratingA, ratingB))
}
