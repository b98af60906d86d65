package recommendation

import (
	"context"

	"github.com/aristath/allocator/internal/modules/optimization"
	"github.com/aristath/allocator/internal/modules/riskprofile"
	"gonum.org/v1/gonum/mat"
)

// Assessor maps questionnaire answers to a risk aversion bucket.
type Assessor interface {
	Assess(answers riskprofile.Answers) riskprofile.Assessment
}

// PortfolioOptimizer is the subset of the optimizer the service relies on.
type PortfolioOptimizer interface {
	Optimize(mu []float64, sigma mat.Symmetric, aversion float64) (optimization.Result, error)
	Frontier(mu []float64, sigma mat.Symmetric, points int) ([]optimization.FrontierPoint, error)
	Sweep(ctx context.Context, mu []float64, sigma mat.Symmetric, aversions []float64) ([]optimization.SweepPoint, error)
}
