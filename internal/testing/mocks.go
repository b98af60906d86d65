package testing

import (
	"context"
	"sync"

	"github.com/aristath/allocator/internal/modules/optimization"
	"github.com/aristath/allocator/internal/modules/riskprofile"
	"gonum.org/v1/gonum/mat"
)

// MockAssessor always returns the same assessment and counts calls.
type MockAssessor struct {
	mu         sync.Mutex
	assessment riskprofile.Assessment
	calls      int
}

// NewMockAssessor creates an assessor resolving every answer set to aversion.
func NewMockAssessor(aversion riskprofile.Aversion, rawScore int) *MockAssessor {
	return &MockAssessor{
		assessment: riskprofile.Assessment{
			RawScore: rawScore,
			Aversion: aversion,
			Profile:  riskprofile.ProfileFor(aversion),
		},
	}
}

// Assess returns the configured assessment
func (m *MockAssessor) Assess(riskprofile.Answers) riskprofile.Assessment {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.assessment
}

// Calls returns how many times Assess ran
func (m *MockAssessor) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockOptimizer returns a configured error from every method, or delegates to Inner.
type MockOptimizer struct {
	mu    sync.RWMutex
	Inner *optimization.MVOptimizer
	err   error
}

// NewMockOptimizer creates a mock delegating to inner. inner may be nil when an
// error is set.
func NewMockOptimizer(inner *optimization.MVOptimizer) *MockOptimizer {
	return &MockOptimizer{Inner: inner}
}

// SetError sets the error to return
func (m *MockOptimizer) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockOptimizer) getErr() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

// Optimize returns the error if set, otherwise delegates
func (m *MockOptimizer) Optimize(mu []float64, sigma mat.Symmetric, aversion float64) (optimization.Result, error) {
	if err := m.getErr(); err != nil {
		return optimization.Result{}, err
	}
	return m.Inner.Optimize(mu, sigma, aversion)
}

// Frontier returns the error if set, otherwise delegates
func (m *MockOptimizer) Frontier(mu []float64, sigma mat.Symmetric, points int) ([]optimization.FrontierPoint, error) {
	if err := m.getErr(); err != nil {
		return nil, err
	}
	return m.Inner.Frontier(mu, sigma, points)
}

// Sweep returns the error if set, otherwise delegates
func (m *MockOptimizer) Sweep(ctx context.Context, mu []float64, sigma mat.Symmetric, aversions []float64) ([]optimization.SweepPoint, error) {
	if err := m.getErr(); err != nil {
		return nil, err
	}
	return m.Inner.Sweep(ctx, mu, sigma, aversions)
}
