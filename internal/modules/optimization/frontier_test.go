package optimization

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFrontier_DiagonalUniverse(t *testing.T) {
	mu := []float64{0.001, 0.0005, 0.0002}
	sigma := diagCov(0.0004, 0.0001, 0.00005)

	frontier, err := newTestOptimizer(SolverActiveSet).Frontier(mu, sigma, 7)
	require.NoError(t, err)
	require.Len(t, frontier, 7)

	assert.InDelta(t, 0.0002, frontier[0].TargetReturn, 1e-15)
	assert.InDelta(t, 0.001, frontier[len(frontier)-1].TargetReturn, 1e-15)

	// Endpoints hold only the extreme-return asset
	assert.Equal(t, []float64{0, 0, 1}, frontier[0].Weights)
	assert.Equal(t, []float64{1, 0, 0}, frontier[len(frontier)-1].Weights)

	for i, p := range frontier {
		assertSimplex(t, p.Weights, 3)
		assert.InDelta(t, p.TargetReturn, p.Return, 1e-12, "point %d should hit its target", i)
		assert.InDelta(t, math.Sqrt(p.Variance), p.StdDev, 1e-15)
		if i > 0 {
			assert.Greater(t, p.TargetReturn, frontier[i-1].TargetReturn)
		}
	}

	// Past the global minimum variance point, variance rises with return
	last := frontier[len(frontier)-1]
	assert.Greater(t, last.Variance, frontier[len(frontier)-2].Variance)
}

func TestFrontier_CorrelatedUniverse(t *testing.T) {
	mu := []float64{0.12, 0.08, 0.10, 0.05}
	sigma := mat.NewSymDense(4, []float64{
		0.040, 0.010, 0.005, 0.002,
		0.010, 0.030, 0.008, 0.001,
		0.005, 0.008, 0.025, 0.003,
		0.002, 0.001, 0.003, 0.010,
	})

	frontier, err := newTestOptimizer(SolverActiveSet).Frontier(mu, sigma, 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(frontier), DefaultFrontierPoints)
	require.NotEmpty(t, frontier)

	for _, p := range frontier {
		assertSimplex(t, p.Weights, 4)
		assert.InDelta(t, p.TargetReturn, p.Return, 1e-10)
		assert.GreaterOrEqual(t, p.Variance, 0.0)
	}
}

func TestFrontier_EqualReturns(t *testing.T) {
	mu := []float64{0.0005, 0.0005}
	sigma := diagCov(0.0001, 0.0003)

	frontier, err := newTestOptimizer(SolverActiveSet).Frontier(mu, sigma, 5)
	require.NoError(t, err)
	require.Len(t, frontier, 1)

	// Inverse-variance weights
	assert.InDelta(t, 0.75, frontier[0].Weights[0], 1e-10)
	assert.InDelta(t, 0.25, frontier[0].Weights[1], 1e-10)
}

func TestFrontier_Errors(t *testing.T) {
	opt := newTestOptimizer(SolverActiveSet)

	_, err := opt.Frontier(nil, nil, 5)
	assert.ErrorIs(t, err, ErrEmptyUniverse)

	_, err = opt.Frontier([]float64{0.001, 0.002}, mat.NewSymDense(2, nil), 5)
	assert.ErrorIs(t, err, errNotPositiveDefinite)
}
