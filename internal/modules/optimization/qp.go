package optimization

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	errNotPositiveDefinite = errors.New("quadratic term is not positive definite")
	errIterationLimit      = errors.New("iteration limit exceeded")
	errInfeasibleStart     = errors.New("starting point violates constraints")
)

const (
	// stepTolerance is the infinity norm below which a step counts as zero.
	stepTolerance = 1e-10
	// multiplierTolerance is relative to the gradient size.
	multiplierTolerance = 1e-9
	// feasibilityTolerance bounds equality residuals of the starting point.
	feasibilityTolerance = 1e-9
	// schurRidge is the relative diagonal shift applied to E_F G_FF⁻¹ E_Fᵀ.
	schurRidge = 1e-13
)

// qpProblem is minimize ½xᵀGx + cᵀx subject to Ex = b and x ≥ 0.
// G must be positive definite.
type qpProblem struct {
	G mat.Symmetric
	c []float64
	E *mat.Dense
	b []float64
}

// solveActiveSet runs a primal active-set method from the feasible point x0.
// Components of x0 that are exactly zero start in the working set of active bounds.
// Ties are broken by lowest index so the iterate sequence is deterministic.
func solveActiveSet(p qpProblem, x0 []float64, maxIter int) ([]float64, int, error) {
	n := p.G.SymmetricDim()
	k, _ := p.E.Dims()

	x := make([]float64, n)
	copy(x, x0)

	if err := checkFeasible(p, x); err != nil {
		return nil, 0, err
	}

	active := make([]bool, n)
	for i, v := range x {
		if v == 0 {
			active[i] = true
		}
	}

	gVec := mat.NewVecDense(n, nil)
	xVec := mat.NewVecDense(n, x)

	// onFace is set after an unblocked step: x then minimizes the current face and
	// only the multipliers remain to be checked.
	onFace := false

	for iter := 1; iter <= maxIter; iter++ {
		// Gradient of the objective at x
		gVec.MulVec(p.G, xVec)
		g := gVec.RawVector().Data
		floats.Add(g, p.c)

		free := freeIndices(active)
		if len(free) == 0 {
			return nil, iter, fmt.Errorf("working set left no free variables")
		}

		step, nu, err := equalityStep(p, free, g, k)
		if err != nil {
			return nil, iter, err
		}

		if onFace || floats.Norm(step, math.Inf(1)) <= stepTolerance {
			// Stationary on the current face: check bound multipliers λᵢ = gᵢ - (Eᵀν)ᵢ
			tol := multiplierTolerance * math.Max(floats.Norm(g, math.Inf(1)), 1e-12)
			release := -1
			minLambda := -tol
			for i := 0; i < n; i++ {
				if !active[i] {
					continue
				}
				lambda := g[i]
				for r := 0; r < k; r++ {
					lambda -= p.E.At(r, i) * nu[r]
				}
				if lambda < minLambda {
					minLambda = lambda
					release = i
				}
			}
			if release < 0 {
				return x, iter, nil
			}
			active[release] = false
			onFace = false
			continue
		}

		// Longest feasible step along the direction, bounded by 1
		alpha := 1.0
		blocking := -1
		for idx, i := range free {
			if step[idx] >= 0 {
				continue
			}
			ratio := -x[i] / step[idx]
			if ratio < alpha {
				alpha = ratio
				blocking = i
			}
		}

		for idx, i := range free {
			x[i] += alpha * step[idx]
		}
		if blocking >= 0 {
			x[blocking] = 0
			active[blocking] = true
		}
		onFace = blocking < 0
	}

	return nil, maxIter, errIterationLimit
}

// equalityStep solves the equality-constrained subproblem on the free variables:
// minimize ½pᵀG_FF p + g_Fᵀp subject to E_F p = 0. It returns the step restricted to
// the free variables and the equality multipliers ν.
func equalityStep(p qpProblem, free []int, g []float64, k int) ([]float64, []float64, error) {
	m := len(free)

	gff := mat.NewSymDense(m, nil)
	for a, i := range free {
		for b := a; b < m; b++ {
			gff.SetSym(a, b, p.G.At(i, free[b]))
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(gff); !ok {
		return nil, nil, errNotPositiveDefinite
	}

	gF := mat.NewVecDense(m, nil)
	eFT := mat.NewDense(m, k, nil)
	for a, i := range free {
		gF.SetVec(a, g[i])
		for r := 0; r < k; r++ {
			eFT.Set(a, r, p.E.At(r, i))
		}
	}

	// y = G_FF⁻¹ g_F, Z = G_FF⁻¹ E_Fᵀ
	y := mat.NewVecDense(m, nil)
	if err := chol.SolveVecTo(y, gF); err != nil {
		return nil, nil, fmt.Errorf("solve for gradient term: %w", err)
	}
	z := mat.NewDense(m, k, nil)
	if err := chol.SolveTo(z, eFT); err != nil {
		return nil, nil, fmt.Errorf("solve for constraint term: %w", err)
	}

	// (E_F Z) ν = E_F y. E_F Z is positive semi-definite; a relative ridge on its
	// diagonal keeps redundant equality rows (a single free variable, equal returns)
	// solvable.
	var eZ mat.Dense
	eZ.Mul(eFT.T(), z)
	schur := mat.NewSymDense(k, nil)
	for r := 0; r < k; r++ {
		for s := r; s < k; s++ {
			v := 0.5 * (eZ.At(r, s) + eZ.At(s, r))
			if r == s {
				v += schurRidge * math.Max(v, math.SmallestNonzeroFloat64)
			}
			schur.SetSym(r, s, v)
		}
	}

	var rhs mat.VecDense
	rhs.MulVec(eFT.T(), y)

	var schurChol mat.Cholesky
	if ok := schurChol.Factorize(schur); !ok {
		return nil, nil, errNotPositiveDefinite
	}
	nu := mat.NewVecDense(k, nil)
	if err := schurChol.SolveVecTo(nu, &rhs); err != nil {
		return nil, nil, fmt.Errorf("solve for multipliers: %w", err)
	}

	// p_F = Zν - y
	step := mat.NewVecDense(m, nil)
	step.MulVec(z, nu)
	step.SubVec(step, y)

	return step.RawVector().Data, nu.RawVector().Data, nil
}

func checkFeasible(p qpProblem, x []float64) error {
	k, n := p.E.Dims()
	if n != len(x) || len(p.c) != len(x) || len(p.b) != k {
		return fmt.Errorf("%w: dimension mismatch", errInfeasibleStart)
	}
	for _, v := range x {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: negative component", errInfeasibleStart)
		}
	}
	for r := 0; r < k; r++ {
		residual := -p.b[r]
		for i, v := range x {
			residual += p.E.At(r, i) * v
		}
		if math.Abs(residual) > feasibilityTolerance*math.Max(1, math.Abs(p.b[r])) {
			return fmt.Errorf("%w: equality %d residual %g", errInfeasibleStart, r, residual)
		}
	}
	return nil
}

func freeIndices(active []bool) []int {
	free := make([]int, 0, len(active))
	for i, a := range active {
		if !a {
			free = append(free, i)
		}
	}
	return free
}

// budgetConstraint returns the 1×n row of ones with right-hand side 1.
func budgetConstraint(n int) (*mat.Dense, []float64) {
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	return mat.NewDense(1, n, ones), []float64{1}
}

func equalWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1.0 / float64(n)
	}
	return w
}
