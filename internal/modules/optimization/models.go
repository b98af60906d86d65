// Package optimization solves the long-only mean-variance allocation problem.
package optimization

import "errors"

// Precondition errors. These indicate a broken asset universe rather than a bad request.
var (
	ErrEmptyUniverse     = errors.New("no assets provided")
	ErrDimensionMismatch = errors.New("dimension mismatch between returns and covariance")
	ErrInvalidAversion   = errors.New("risk aversion must be finite and positive")
)

// Solver selects the numerical method used for the quadratic program.
type Solver string

const (
	// SolverActiveSet is a primal active-set QP over the weight bounds.
	SolverActiveSet Solver = "active_set"
	// SolverGradient minimizes over softmax logits with BFGS.
	SolverGradient Solver = "gradient"
)

// Valid reports whether s names a known solver.
func (s Solver) Valid() bool {
	return s == SolverActiveSet || s == SolverGradient
}

// Status tells whether the weights came from the solver or from the fallback.
type Status string

const (
	StatusOptimal  Status = "optimal"
	StatusFallback Status = "fallback"
)

// FallbackReason records why equal weights were substituted.
type FallbackReason string

const (
	ReasonNone                FallbackReason = ""
	ReasonNotPositiveDefinite FallbackReason = "not_positive_definite"
	ReasonIterationLimit      FallbackReason = "iteration_limit"
	ReasonNotConverged        FallbackReason = "not_converged"
	ReasonNonFinite           FallbackReason = "non_finite"
	ReasonDimension           FallbackReason = "dimension"
	ReasonZeroSum             FallbackReason = "zero_sum"
)

// Result is the outcome of one optimization.
type Result struct {
	Weights    []float64      `json:"weights"`
	Status     Status         `json:"status"`
	Reason     FallbackReason `json:"reason,omitempty"`
	Iterations int            `json:"iterations"`
	Solver     Solver         `json:"solver"`
}

// Fallback reports whether equal weights were substituted for the solver output.
func (r Result) Fallback() bool {
	return r.Status == StatusFallback
}

// Config controls the optimizer.
type Config struct {
	Solver        Solver
	MaxIterations int
}

// DefaultConfig returns the active-set solver with a 500 iteration cap.
func DefaultConfig() Config {
	return Config{
		Solver:        SolverActiveSet,
		MaxIterations: 500,
	}
}
