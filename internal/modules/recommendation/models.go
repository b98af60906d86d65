// Package recommendation turns questionnaire answers into an allocation by chaining the
// risk scorer, the portfolio optimizer and the statistics calculator.
package recommendation

import (
	"github.com/aristath/allocator/internal/modules/optimization"
	"github.com/aristath/allocator/internal/modules/riskprofile"
	"github.com/aristath/allocator/internal/modules/statistics"
	"github.com/aristath/allocator/internal/modules/universe"
)

// Options control a single recommendation.
type Options struct {
	Annualize bool
}

// OptimizerInfo describes how the weights were produced.
type OptimizerInfo struct {
	Solver     optimization.Solver         `json:"solver"`
	Status     optimization.Status         `json:"status"`
	Reason     optimization.FallbackReason `json:"reason,omitempty"`
	Iterations int                         `json:"iterations"`
}

// Recommendation is the full answer to a questionnaire submission.
type Recommendation struct {
	ID          string                  `json:"id"`
	Aversion    riskprofile.Aversion    `json:"aversion"`
	RawScore    int                     `json:"rawScore"`
	Profile     riskprofile.Profile     `json:"profile"`
	Assets      []string                `json:"assets"`
	Weights     []float64               `json:"weights"`
	RawWeights  []float64               `json:"rawWeights"`
	Stats       statistics.Stats        `json:"stats"`
	AnnualStats *statistics.AnnualStats `json:"annualStats,omitempty"`
	Optimizer   OptimizerInfo           `json:"optimizer"`
}

// UniverseAsset is one asset with its daily and annualized figures.
type UniverseAsset struct {
	universe.Asset
	statistics.AssetFigures
}

// UniverseSummary lists every asset in universe order.
type UniverseSummary struct {
	TradingDays int             `json:"tradingDays"`
	Assets      []UniverseAsset `json:"assets"`
}

// FrontierPoint is a frontier portfolio with its annualized coordinates.
type FrontierPoint struct {
	optimization.FrontierPoint
	AnnualReturn     float64 `json:"annualReturn"`
	AnnualVolatility float64 `json:"annualVolatility"`
}

// Frontier is the long-only efficient frontier of the universe.
type Frontier struct {
	TradingDays int             `json:"tradingDays"`
	Assets      []string        `json:"assets"`
	Points      []FrontierPoint `json:"points"`
}

// SensitivityPoint is the allocation and statistics for one aversion value.
type SensitivityPoint struct {
	Aversion float64                     `json:"aversion"`
	Weights  []float64                   `json:"weights"`
	Status   optimization.Status         `json:"status"`
	Reason   optimization.FallbackReason `json:"reason,omitempty"`
	Stats    statistics.Stats            `json:"stats"`
}

// Sensitivity shows how the allocation moves with risk aversion.
type Sensitivity struct {
	Assets []string           `json:"assets"`
	Points []SensitivityPoint `json:"points"`
}
