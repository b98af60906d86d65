package universe

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Estimate holds μ and Σ estimated from daily return series.
type Estimate struct {
	Mu         []float64
	Covariance [][]float64
}

func (e *Estimate) meanAt(i int) float64 {
	if e == nil || i >= len(e.Mu) {
		return 0
	}
	return e.Mu[i]
}

// EstimateFromReturns computes sample means and the sample covariance (N-1 denominator)
// of the return series for ids. With shrink, the covariance is pulled towards a
// constant-correlation target.
func EstimateFromReturns(returns map[string][]float64, ids []string, shrink bool) (*Estimate, error) {
	cov, err := sampleCovariance(returns, ids)
	if err != nil {
		return nil, err
	}
	if shrink {
		cov = shrinkCovariance(cov)
	}

	mu := make([]float64, len(ids))
	for i, id := range ids {
		mu[i] = stat.Mean(returns[id], nil)
	}

	return &Estimate{Mu: mu, Covariance: cov}, nil
}

func sampleCovariance(returns map[string][]float64, ids []string) ([][]float64, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("no asset ids provided")
	}

	var length int
	for _, id := range ids {
		series, ok := returns[id]
		if !ok {
			return nil, fmt.Errorf("missing returns for asset %s", id)
		}
		if length == 0 {
			length = len(series)
		}
		if len(series) != length {
			return nil, fmt.Errorf("inconsistent return lengths: expected %d, got %d for asset %s", length, len(series), id)
		}
		for k, v := range series {
			if !isFinite(v) {
				return nil, fmt.Errorf("non-finite return at observation %d for asset %s", k, id)
			}
		}
	}

	if length < 2 {
		return nil, fmt.Errorf("insufficient data: need at least 2 observations, got %d", length)
	}

	n := len(ids)
	cov := make([][]float64, n)
	for i := range cov {
		cov[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			c := stat.Covariance(returns[ids[i]], returns[ids[j]], nil)
			cov[i][j] = c
			cov[j][i] = c
		}
	}

	return cov, nil
}

// shrinkCovariance blends the sample covariance with a target holding the average
// variance on the diagonal and the average covariance elsewhere:
// Σ_shrunk = (1-δ)·Σ_sample + δ·Σ_target, with δ capped at 0.5.
func shrinkCovariance(sample [][]float64) [][]float64 {
	n := len(sample)
	if n < 2 {
		return sample
	}

	var avgVar, avgCov float64
	for i := 0; i < n; i++ {
		avgVar += sample[i][i]
		for j := 0; j < n; j++ {
			if i != j {
				avgCov += sample[i][j]
			}
		}
	}
	avgVar /= float64(n)
	avgCov /= float64(n * (n - 1))

	target := func(i, j int) float64 {
		if i == j {
			return avgVar
		}
		if avgVar > 0 {
			return avgCov
		}
		return 0
	}

	shrinkage := 0.2
	if n > 2 && avgVar > 0 {
		var sumSqDiff, sum, sumSq float64
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				diff := sample[i][j] - target(i, j)
				sumSqDiff += diff * diff
				sum += sample[i][j]
				sumSq += sample[i][j] * sample[i][j]
			}
		}
		count := float64(n * n)
		meanSqDiff := sumSqDiff / count
		mean := sum / count
		variance := sumSq/count - mean*mean

		if variance > 0 && meanSqDiff > 0 {
			shrinkage = math.Min(0.5, math.Max(0, variance/(variance+meanSqDiff)))
		}
	}

	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			out[i][j] = (1-shrinkage)*sample[i][j] + shrinkage*target(i, j)
		}
	}
	return out
}
