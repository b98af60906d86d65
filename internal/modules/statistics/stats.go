// Package statistics derives summary risk and return figures for a weighted portfolio.
package statistics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultTradingDays is the number of trading days in a year.
const DefaultTradingDays = 252

// ErrDimensionMismatch is returned when weights, returns and covariance disagree in size.
var ErrDimensionMismatch = errors.New("dimension mismatch between weights, returns and covariance")

// Stats are daily portfolio figures.
type Stats struct {
	Return    float64 `json:"return"`
	Variance  float64 `json:"variance"`
	StdDev    float64 `json:"stdDev"`
	Utility   float64 `json:"utility"`
	BestCase  float64 `json:"bestCase"`
	WorstCase float64 `json:"worstCase"`
	Median    float64 `json:"median"`
}

// AnnualStats are Stats projected over a trading year.
type AnnualStats struct {
	Return      float64 `json:"return"`
	Volatility  float64 `json:"volatility"`
	BestCase    float64 `json:"bestCase"`
	WorstCase   float64 `json:"worstCase"`
	Median      float64 `json:"median"`
	TradingDays int     `json:"tradingDays"`
}

// Compute returns the daily statistics of the portfolio w.
//
//   - return   = w'μ
//   - variance = w'Σw
//   - utility  = return - (A/2)·variance
//   - best/worst case = return ± 2σ
func Compute(weights, mu []float64, sigma mat.Symmetric, aversion float64) (Stats, error) {
	n := len(weights)
	if n == 0 || len(mu) != n {
		return Stats{}, fmt.Errorf("%w: %d weights, %d returns", ErrDimensionMismatch, n, len(mu))
	}
	if sigma == nil || sigma.SymmetricDim() != n {
		return Stats{}, fmt.Errorf("%w: covariance does not match %d weights", ErrDimensionMismatch, n)
	}

	ret := floats.Dot(weights, mu)

	w := mat.NewVecDense(n, weights)
	variance := mat.Inner(w, sigma, w)

	// Rounding can push a PSD quadratic form slightly below zero
	stdDev := math.Sqrt(math.Max(variance, 0))

	return Stats{
		Return:    ret,
		Variance:  variance,
		StdDev:    stdDev,
		Utility:   ret - aversion/2*variance,
		BestCase:  ret + 2*stdDev,
		WorstCase: ret - 2*stdDev,
		Median:    ret,
	}, nil
}

// Annualize projects daily statistics over tradingDays. The return compounds; the
// volatility and the daily bounds scale with √T. Non-positive tradingDays uses
// DefaultTradingDays.
func Annualize(s Stats, tradingDays int) AnnualStats {
	if tradingDays <= 0 {
		tradingDays = DefaultTradingDays
	}
	t := float64(tradingDays)
	sqrtT := math.Sqrt(t)

	return AnnualStats{
		Return:      math.Pow(1+s.Return, t) - 1,
		Volatility:  s.StdDev * sqrtT,
		BestCase:    s.BestCase * sqrtT,
		WorstCase:   s.WorstCase * sqrtT,
		Median:      s.Median * sqrtT,
		TradingDays: tradingDays,
	}
}
