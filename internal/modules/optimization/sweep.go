package optimization

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// SweepPoint is the optimal allocation for one risk-aversion value.
type SweepPoint struct {
	Aversion float64 `json:"aversion"`
	Result
}

// DefaultSweepAversions are the aversion values swept when none are supplied.
func DefaultSweepAversions() []float64 {
	out := make([]float64, 15)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

// Sweep optimizes once per aversion value, in parallel, and returns the points in the
// order the aversions were given.
func (mvo *MVOptimizer) Sweep(ctx context.Context, mu []float64, sigma mat.Symmetric, aversions []float64) ([]SweepPoint, error) {
	if err := checkInputs(mu, sigma); err != nil {
		return nil, err
	}

	points := make([]SweepPoint, len(aversions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, a := range aversions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := mvo.Optimize(mu, sigma, a)
			if err != nil {
				return err
			}
			points[i] = SweepPoint{Aversion: a, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}
