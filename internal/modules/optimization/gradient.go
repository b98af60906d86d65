package optimization

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// acceptedStatuses are the gonum termination statuses treated as convergence.
var acceptedStatuses = map[optimize.Status]bool{
	optimize.Success:             true,
	optimize.GradientThreshold:   true,
	optimize.FunctionConvergence: true,
}

// supportTolerance is the softmax weight below which an asset starts the polish at zero.
const supportTolerance = 1e-8

// solveSoftmax minimizes ½w'Qw + c'w over the simplex by substituting w = softmax(z)
// and running BFGS on the unconstrained logits z. Every iterate is feasible, so no
// penalty terms are needed. The objective is scaled to unit size first, and the BFGS
// point is polished with an active-set solve started on its support, since softmax
// never reaches the bounds exactly.
func solveSoftmax(q mat.Symmetric, c []float64, maxIter int) ([]float64, int, error) {
	n := len(c)
	if n == 1 {
		return []float64{1}, 0, nil
	}

	q, c = normalizeObjective(q, c)

	qw := mat.NewVecDense(n, nil)
	cVec := mat.NewVecDense(n, c)
	weights := func(z []float64) *mat.VecDense {
		return mat.NewVecDense(n, softmax(z))
	}

	problem := optimize.Problem{
		Func: func(z []float64) float64 {
			w := weights(z)
			qw.MulVec(q, w)
			return 0.5*mat.Dot(w, qw) + mat.Dot(cVec, w)
		},
		Grad: func(grad, z []float64) {
			w := weights(z)
			qw.MulVec(q, w)

			// ∂f/∂w = Qw + c, then the softmax Jacobian diag(w) - ww'
			dw := make([]float64, n)
			avg := 0.0
			for i := 0; i < n; i++ {
				dw[i] = qw.AtVec(i) + c[i]
				avg += w.AtVec(i) * dw[i]
			}
			for i := 0; i < n; i++ {
				grad[i] = w.AtVec(i) * (dw[i] - avg)
			}
		},
	}

	initial := make([]float64, n)
	settings := &optimize.Settings{
		MajorIterations:   maxIter,
		GradientThreshold: 1e-9,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-14,
			Relative:   1e-12,
			Iterations: 20,
		},
	}

	result, err := optimize.Minimize(problem, initial, settings, &optimize.BFGS{})
	if result == nil {
		return nil, 0, fmt.Errorf("optimization failed: %w", err)
	}

	iters := result.Stats.MajorIterations
	if result.Status == optimize.IterationLimit {
		return nil, iters, errIterationLimit
	}
	// A stalled line search still leaves the best point found, which is enough to
	// seed the polish.
	switch {
	case err != nil && (floats.HasNaN(result.X) || hasInf(result.X)):
		return nil, iters, fmt.Errorf("optimization failed: %w", err)
	case err == nil && !acceptedStatuses[result.Status]:
		return nil, iters, fmt.Errorf("optimization did not converge: status=%v", result.Status)
	}

	start := supportStart(softmax(result.X))
	E, b := budgetConstraint(n)
	w, polishIters, err := solveActiveSet(qpProblem{G: q, c: c, E: E, b: b}, start, maxIter)
	iters += polishIters
	if err != nil {
		return nil, iters, err
	}
	return w, iters, nil
}

// normalizeObjective divides Q and c by the larger of |c|∞ and max|Qᵢⱼ|. The minimizer
// is unchanged and the gonum convergence thresholds become scale free.
func normalizeObjective(q mat.Symmetric, c []float64) (*mat.SymDense, []float64) {
	n := len(c)
	scale := floats.Norm(c, math.Inf(1))
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			scale = math.Max(scale, math.Abs(q.At(i, j)))
		}
	}
	if scale == 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		scale = 1
	}

	qs := mat.NewSymDense(n, nil)
	qs.ScaleSym(1/scale, q)
	cs := make([]float64, n)
	floats.ScaleTo(cs, 1/scale, c)
	return qs, cs
}

func hasInf(values []float64) bool {
	for _, v := range values {
		if math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

// supportStart zeroes weights below supportTolerance and renormalizes onto the simplex.
func supportStart(w []float64) []float64 {
	start := make([]float64, len(w))
	for i, v := range w {
		if v >= supportTolerance {
			start[i] = v
		}
	}
	sum := floats.Sum(start)
	if sum <= 0 {
		return equalWeights(len(w))
	}
	floats.Scale(1/sum, start)
	return start
}

// softmax maps logits onto the probability simplex.
func softmax(z []float64) []float64 {
	maxZ := math.Inf(-1)
	for _, v := range z {
		if v > maxZ {
			maxZ = v
		}
	}

	w := make([]float64, len(z))
	sum := 0.0
	for i, v := range z {
		w[i] = math.Exp(v - maxZ)
		sum += w[i]
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}
