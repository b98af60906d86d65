package universe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestLoad_EmbeddedDefault(t *testing.T) {
	u, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 10, u.Len())
	assert.Equal(t, "F01", u.IDs()[0])
	assert.Equal(t, "Money Market", u.Assets()[9].Name)

	sigma := u.Covariance()
	require.Equal(t, u.Len(), sigma.SymmetricDim())

	// The shipped matrix must be positive definite so the optimizer never falls back
	var chol mat.Cholesky
	assert.True(t, chol.Factorize(sigma))

	for i := 0; i < u.Len(); i++ {
		assert.Greater(t, sigma.At(i, i), 0.0)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "universe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
assets:
  - id: A
    name: Alpha
    avg_return: 0.001
  - id: B
    name: Beta
    avg_return: 0.0005
covariance:
  - [0.0004, 0.00001]
  - [0.00001, 0.0001]
`), 0o644))

	u, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, u.IDs())
	assert.Equal(t, []float64{0.001, 0.0005}, u.Mu())
	assert.Equal(t, 0.00001, u.Covariance().At(1, 0))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no assets", `assets: []`},
		{"no covariance or returns", `
assets:
  - {id: A, avg_return: 0.001}
`},
		{"row count mismatch", `
assets:
  - {id: A, avg_return: 0.001}
  - {id: B, avg_return: 0.002}
covariance:
  - [0.01, 0]
`},
		{"column count mismatch", `
assets:
  - {id: A, avg_return: 0.001}
  - {id: B, avg_return: 0.002}
covariance:
  - [0.01, 0]
  - [0.01]
`},
		{"asymmetric", `
assets:
  - {id: A, avg_return: 0.001}
  - {id: B, avg_return: 0.002}
covariance:
  - [0.01, 0.002]
  - [0.001, 0.01]
`},
		{"negative variance", `
assets:
  - {id: A, avg_return: 0.001}
  - {id: B, avg_return: 0.002}
covariance:
  - [-0.01, 0]
  - [0, 0.01]
`},
		{"duplicate id", `
assets:
  - {id: A, avg_return: 0.001}
  - {id: A, avg_return: 0.002}
covariance:
  - [0.01, 0]
  - [0, 0.01]
`},
		{"missing id", `
assets:
  - {name: Nameless, avg_return: 0.001}
covariance:
  - [0.01]
`},
		{"non-finite covariance", `
assets:
  - {id: A, avg_return: 0.001}
covariance:
  - [.nan]
`},
		{"malformed yaml", `assets: [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidUniverse)
		})
	}
}

func TestParse_EstimatesFromReturns(t *testing.T) {
	u, err := Parse([]byte(`
assets:
  - {id: A, name: Alpha}
  - {id: B, name: Beta, avg_return: 0.5}
returns:
  A: [0.01, 0.03, 0.02]
  B: [0.00, 0.03, 0.03]
`))
	require.NoError(t, err)

	mu := u.Mu()
	assert.InDelta(t, 0.02, mu[0], 1e-15)
	// An explicit avg_return wins over the series mean
	assert.Equal(t, 0.5, mu[1])

	sigma := u.Covariance()
	assert.InDelta(t, 0.0001, sigma.At(0, 0), 1e-15)
	assert.InDelta(t, 0.0003, sigma.At(1, 1), 1e-15)
	assert.InDelta(t, 0.00015, sigma.At(0, 1), 1e-15)
}

func TestUniverse_AccessorsReturnCopies(t *testing.T) {
	u, err := New([]Asset{{ID: "A", AvgReturn: 0.001}}, [][]float64{{0.01}})
	require.NoError(t, err)

	mu := u.Mu()
	mu[0] = 42
	assert.Equal(t, 0.001, u.Mu()[0])

	assets := u.Assets()
	assets[0].ID = "Z"
	assert.Equal(t, []string{"A"}, u.IDs())

	_, isDense := u.Covariance().(*mat.SymDense)
	assert.False(t, isDense, "covariance should not expose the mutable matrix")
}
