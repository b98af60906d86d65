package statistics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// AssetFigures are the annualized simple return and volatility of a single asset.
type AssetFigures struct {
	DailyReturn      float64 `json:"dailyReturn"`
	DailyVolatility  float64 `json:"dailyVolatility"`
	AnnualReturn     float64 `json:"annualReturn"`
	AnnualVolatility float64 `json:"annualVolatility"`
}

// AssetSummary returns per-asset figures: μᵢ·T and √(Σᵢᵢ·T).
func AssetSummary(mu []float64, sigma mat.Symmetric, tradingDays int) ([]AssetFigures, error) {
	n := len(mu)
	if sigma == nil || sigma.SymmetricDim() != n {
		return nil, fmt.Errorf("%w: covariance does not match %d returns", ErrDimensionMismatch, n)
	}
	if tradingDays <= 0 {
		tradingDays = DefaultTradingDays
	}
	t := float64(tradingDays)

	out := make([]AssetFigures, n)
	for i, r := range mu {
		v := math.Max(sigma.At(i, i), 0)
		out[i] = AssetFigures{
			DailyReturn:      r,
			DailyVolatility:  math.Sqrt(v),
			AnnualReturn:     r * t,
			AnnualVolatility: math.Sqrt(v * t),
		}
	}
	return out, nil
}

// AnnualizePoint returns the simple annual return R·T and volatility √(variance·T) used
// when plotting frontier points.
func AnnualizePoint(dailyReturn, variance float64, tradingDays int) (float64, float64) {
	if tradingDays <= 0 {
		tradingDays = DefaultTradingDays
	}
	t := float64(tradingDays)
	return dailyReturn * t, math.Sqrt(math.Max(variance, 0) * t)
}
