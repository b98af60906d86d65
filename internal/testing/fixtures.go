// Package testing provides testing utilities and helpers for the allocator.
package testing

import (
	"github.com/aristath/allocator/internal/modules/riskprofile"
	"github.com/aristath/allocator/internal/modules/universe"
)

// NewAssetFixtures returns three uncorrelated assets: equity, bonds and money market.
func NewAssetFixtures() []universe.Asset {
	return []universe.Asset{
		{ID: "EQ", Name: "Equity", AvgReturn: 0.001},
		{ID: "BD", Name: "Bonds", AvgReturn: 0.0005},
		{ID: "MM", Name: "Money Market", AvgReturn: 0.0002},
	}
}

// DiagonalCovariance matches NewAssetFixtures. At A=5 the optimum is [0.4, 0.6, 0].
func DiagonalCovariance() [][]float64 {
	return [][]float64{
		{0.0004, 0, 0},
		{0, 0.0001, 0},
		{0, 0, 0.00005},
	}
}

// ZeroCovariance is positive semi-definite but singular, forcing the optimizer to fall back.
func ZeroCovariance() [][]float64 {
	return [][]float64{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	}
}

// NewUniverseFixture builds the three-asset universe with the given covariance rows.
// It panics on invalid input since fixtures are static.
func NewUniverseFixture(covariance [][]float64) *universe.Universe {
	u, err := universe.New(NewAssetFixtures(), covariance)
	if err != nil {
		panic(err)
	}
	return u
}

// NewAnswerFixtures returns questionnaire answers keyed by a short description.
// Against the embedded scoring table "empty" scores 0, "young" 5 and "goals" -4.
func NewAnswerFixtures() map[string]riskprofile.Answers {
	return map[string]riskprofile.Answers{
		"empty": {},
		"young": {
			"q1_1": riskprofile.Single("Under 25"),
		},
		"goals": {
			"q2_5": riskprofile.Multi("Home purchase", "Business investment"),
		},
	}
}
