package optimization

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// FrontierPoint is one long-only minimum-variance portfolio for a target return.
type FrontierPoint struct {
	TargetReturn float64   `json:"targetReturn"`
	Return       float64   `json:"return"`
	Variance     float64   `json:"variance"`
	StdDev       float64   `json:"stdDev"`
	Weights      []float64 `json:"weights"`
}

// DefaultFrontierPoints is the number of target returns swept when none is given.
const DefaultFrontierPoints = 11

// Frontier traces the long-only efficient frontier by sweeping target returns evenly
// from min(μ) to max(μ) and solving
//
//	minimize ½w'Σw subject to μ'w = R, Σw = 1, w ≥ 0
//
// for each R. Targets whose subproblem fails are skipped.
func (mvo *MVOptimizer) Frontier(mu []float64, sigma mat.Symmetric, points int) ([]FrontierPoint, error) {
	if err := checkInputs(mu, sigma); err != nil {
		return nil, err
	}
	if points < 2 {
		points = DefaultFrontierPoints
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sigma); !ok {
		return nil, fmt.Errorf("frontier: %w", errNotPositiveDefinite)
	}

	n := len(mu)
	lo, hi := floats.Min(mu), floats.Max(mu)
	spread := hi - lo
	returnTol := 1e-12 * math.Max(math.Abs(hi), math.Abs(lo))

	if spread <= returnTol {
		w, err := mvo.minVarianceOn(sigma, allIndices(n))
		if err != nil {
			return nil, fmt.Errorf("frontier: %w", err)
		}
		return []FrontierPoint{newFrontierPoint(lo, w, mu, sigma)}, nil
	}

	targets := floats.Span(make([]float64, points), lo, hi)
	iMin, iMax := floats.MinIdx(mu), floats.MaxIdx(mu)

	// The return row is scaled to unit magnitude to keep the KKT system balanced.
	scale := math.Max(math.Abs(hi), math.Abs(lo))
	E := mat.NewDense(2, n, nil)
	for i := 0; i < n; i++ {
		E.Set(0, i, 1)
		E.Set(1, i, mu[i]/scale)
	}
	zero := make([]float64, n)

	frontier := make([]FrontierPoint, 0, points)
	for idx, target := range targets {
		var (
			w   []float64
			err error
		)
		switch idx {
		case 0:
			w, err = mvo.minVarianceOn(sigma, indicesNear(mu, lo, returnTol))
		case len(targets) - 1:
			w, err = mvo.minVarianceOn(sigma, indicesNear(mu, hi, returnTol))
		default:
			// Feasible start: mix the lowest and highest return assets to hit the target
			start := make([]float64, n)
			start[iMin] = (hi - target) / spread
			start[iMax] = 1 - start[iMin]
			w, _, err = solveActiveSet(qpProblem{G: sigma, c: zero, E: E, b: []float64{1, target / scale}}, start, mvo.cfg.MaxIterations)
		}
		if err != nil {
			mvo.log.Warn().Err(err).Float64("target_return", target).Msg("Skipping frontier point")
			continue
		}

		w, reason := cleanWeights(w)
		if reason != ReasonNone {
			mvo.log.Warn().Str("reason", string(reason)).Float64("target_return", target).Msg("Skipping frontier point")
			continue
		}
		frontier = append(frontier, newFrontierPoint(target, w, mu, sigma))
	}

	return frontier, nil
}

// minVarianceOn solves the budget-only minimum-variance problem restricted to subset
// and expands the result to the full universe.
func (mvo *MVOptimizer) minVarianceOn(sigma mat.Symmetric, subset []int) ([]float64, error) {
	m := len(subset)
	sub := mat.NewSymDense(m, nil)
	for a, i := range subset {
		for b := a; b < m; b++ {
			sub.SetSym(a, b, sigma.At(i, subset[b]))
		}
	}

	E, b := budgetConstraint(m)
	x, _, err := solveActiveSet(qpProblem{G: sub, c: make([]float64, m), E: E, b: b}, equalWeights(m), mvo.cfg.MaxIterations)
	if err != nil {
		return nil, err
	}

	w := make([]float64, sigma.SymmetricDim())
	for a, i := range subset {
		w[i] = x[a]
	}
	return w, nil
}

func newFrontierPoint(target float64, w, mu []float64, sigma mat.Symmetric) FrontierPoint {
	wv := mat.NewVecDense(len(w), w)
	variance := math.Max(mat.Inner(wv, sigma, wv), 0)
	return FrontierPoint{
		TargetReturn: target,
		Return:       floats.Dot(w, mu),
		Variance:     variance,
		StdDev:       math.Sqrt(variance),
		Weights:      w,
	}
}

func indicesNear(values []float64, target, tol float64) []int {
	idx := make([]int, 0, 1)
	for i, v := range values {
		if math.Abs(v-target) <= tol {
			idx = append(idx, i)
		}
	}
	return idx
}

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
