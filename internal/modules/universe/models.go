// Package universe holds the fixed set of assets the allocator chooses from and their
// return covariance.
package universe

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidUniverse is returned when a universe definition fails validation.
var ErrInvalidUniverse = errors.New("invalid asset universe")

// Asset is one allocatable instrument.
type Asset struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AvgReturn float64 `json:"avgReturn"`
}

// Universe is an immutable, ordered set of assets with expected daily returns and a
// symmetric covariance matrix. It is safe for concurrent reads.
type Universe struct {
	assets []Asset
	mu     []float64
	sigma  *mat.SymDense
}

// Len returns the number of assets.
func (u *Universe) Len() int {
	return len(u.assets)
}

// Assets returns a copy of the assets in universe order.
func (u *Universe) Assets() []Asset {
	out := make([]Asset, len(u.assets))
	copy(out, u.assets)
	return out
}

// IDs returns the asset ids in universe order.
func (u *Universe) IDs() []string {
	ids := make([]string, len(u.assets))
	for i, a := range u.assets {
		ids[i] = a.ID
	}
	return ids
}

// Mu returns a copy of the expected daily returns vector.
func (u *Universe) Mu() []float64 {
	out := make([]float64, len(u.mu))
	copy(out, u.mu)
	return out
}

// Covariance returns Σ as a read-only matrix.
func (u *Universe) Covariance() mat.Symmetric {
	return readOnly{u.sigma}
}

// readOnly hides the concrete SymDense so callers cannot mutate the shared matrix.
type readOnly struct {
	s *mat.SymDense
}

func (r readOnly) Dims() (int, int) { return r.s.Dims() }
func (r readOnly) At(i, j int) float64 { return r.s.At(i, j) }
func (r readOnly) T() mat.Matrix { return r }
func (r readOnly) SymmetricDim() int { return r.s.SymmetricDim() }
