package optimization

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

// MVOptimizer performs long-only mean-variance portfolio optimization.
// It holds no state between calls and is safe for concurrent use.
type MVOptimizer struct {
	cfg Config
	log zerolog.Logger
}

// NewMVOptimizer creates a new mean-variance optimizer. Unknown solvers and
// non-positive iteration caps are replaced by the defaults.
func NewMVOptimizer(cfg Config, log zerolog.Logger) *MVOptimizer {
	def := DefaultConfig()
	if !cfg.Solver.Valid() {
		cfg.Solver = def.Solver
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = def.MaxIterations
	}

	return &MVOptimizer{
		cfg: cfg,
		log: log.With().Str("component", "mv_optimizer").Logger(),
	}
}

// Config returns the effective optimizer configuration.
func (mvo *MVOptimizer) Config() Config {
	return mvo.cfg
}

// Optimize solves the mean-variance optimization problem.
//
// Mathematical formulation:
//   - maximize μ'w - (A/2)·w'Σw
//   - equivalently minimize ½w'(AΣ)w - μ'w
//
// Constraints:
//   - Σw = 1 (weights sum to 1)
//   - w_i ≥ 0 (long-only)
//
// Solver failures never surface as errors: the result falls back to equal weights and
// carries StatusFallback with a reason. An error is returned only for inputs that
// violate the preconditions (empty universe, mismatched dimensions, invalid A).
func (mvo *MVOptimizer) Optimize(mu []float64, sigma mat.Symmetric, aversion float64) (Result, error) {
	n := len(mu)
	if err := checkInputs(mu, sigma); err != nil {
		return Result{}, err
	}
	if math.IsNaN(aversion) || math.IsInf(aversion, 0) || aversion <= 0 {
		return Result{}, fmt.Errorf("%w: got %v", ErrInvalidAversion, aversion)
	}

	// Quadratic term A·Σ
	q := mat.NewSymDense(n, nil)
	q.ScaleSym(aversion, sigma)

	var chol mat.Cholesky
	if ok := chol.Factorize(q); !ok {
		return mvo.fallback(n, ReasonNotPositiveDefinite, 0, aversion, nil), nil
	}

	linear := make([]float64, n)
	for i, r := range mu {
		linear[i] = -r
	}

	var (
		raw   []float64
		iters int
		err   error
	)
	switch mvo.cfg.Solver {
	case SolverGradient:
		raw, iters, err = solveSoftmax(q, linear, mvo.cfg.MaxIterations)
	default:
		E, b := budgetConstraint(n)
		raw, iters, err = solveActiveSet(qpProblem{G: q, c: linear, E: E, b: b}, equalWeights(n), mvo.cfg.MaxIterations)
	}

	if err != nil {
		return mvo.fallback(n, reasonFor(err), iters, aversion, err), nil
	}
	if len(raw) != n {
		return mvo.fallback(n, ReasonDimension, iters, aversion, fmt.Errorf("solver returned %d weights, expected %d", len(raw), n)), nil
	}

	weights, reason := cleanWeights(raw)
	if reason != ReasonNone {
		return mvo.fallback(n, reason, iters, aversion, nil), nil
	}

	mvo.log.Debug().
		Str("solver", string(mvo.cfg.Solver)).
		Float64("aversion", aversion).
		Int("iterations", iters).
		Msg("Optimization converged")

	return Result{
		Weights:    weights,
		Status:     StatusOptimal,
		Iterations: iters,
		Solver:     mvo.cfg.Solver,
	}, nil
}

func (mvo *MVOptimizer) fallback(n int, reason FallbackReason, iters int, aversion float64, cause error) Result {
	event := mvo.log.Warn().
		Str("solver", string(mvo.cfg.Solver)).
		Str("reason", string(reason)).
		Float64("aversion", aversion).
		Int("assets", n).
		Int("iterations", iters)
	if cause != nil {
		event = event.Err(cause)
	}
	event.Msg("Optimizer fell back to equal weights")

	return Result{
		Weights:    equalWeights(n),
		Status:     StatusFallback,
		Reason:     reason,
		Iterations: iters,
		Solver:     mvo.cfg.Solver,
	}
}

// cleanWeights clamps negative and non-finite components to zero and renormalizes
// so the weights sum to exactly one.
func cleanWeights(raw []float64) ([]float64, FallbackReason) {
	weights := make([]float64, len(raw))
	sum := 0.0
	nonFinite := false
	for i, w := range raw {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			nonFinite = true
			continue
		}
		if w > 0 {
			weights[i] = w
			sum += w
		}
	}

	if sum <= 0 || math.IsInf(sum, 0) {
		if nonFinite {
			return nil, ReasonNonFinite
		}
		return nil, ReasonZeroSum
	}

	for i := range weights {
		weights[i] /= sum
	}
	return weights, ReasonNone
}

func reasonFor(err error) FallbackReason {
	switch {
	case errors.Is(err, errNotPositiveDefinite):
		return ReasonNotPositiveDefinite
	case errors.Is(err, errIterationLimit):
		return ReasonIterationLimit
	default:
		return ReasonNotConverged
	}
}

func checkInputs(mu []float64, sigma mat.Symmetric) error {
	n := len(mu)
	if n == 0 {
		return ErrEmptyUniverse
	}
	if sigma == nil {
		return fmt.Errorf("%w: covariance matrix is nil", ErrDimensionMismatch)
	}
	if dim := sigma.SymmetricDim(); dim != n {
		return fmt.Errorf("%w: covariance matrix size %d doesn't match %d assets", ErrDimensionMismatch, dim, n)
	}
	return nil
}
