package universe

import (
	"fmt"
	"math"
	"os"

	"github.com/aristath/allocator/pkg/embedded"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// symmetryTolerance is the relative tolerance for |Σij - Σji|.
const symmetryTolerance = 1e-12

type assetRecord struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	AvgReturn *float64 `yaml:"avg_return"`
}

type fileFormat struct {
	Assets     []assetRecord        `yaml:"assets"`
	Covariance [][]float64          `yaml:"covariance"`
	Returns    map[string][]float64 `yaml:"returns"`
	Shrinkage  bool                 `yaml:"shrinkage"`
}

// Load reads a universe definition from path, or the embedded default when path is empty.
func Load(path string) (*Universe, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = embedded.ReadFile(embedded.UniverseFile)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read universe file: %w", err)
	}

	u, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load universe %q: %w", path, err)
	}
	return u, nil
}

// Parse decodes and validates a YAML universe definition.
//
// When covariance is omitted it is estimated from the per-asset daily return series
// under returns, optionally with shrinkage. An asset without avg_return takes the mean of
// its series.
func Parse(data []byte) (*Universe, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUniverse, err)
	}
	if len(f.Assets) == 0 {
		return nil, fmt.Errorf("%w: no assets", ErrInvalidUniverse)
	}

	ids := make([]string, len(f.Assets))
	for i, a := range f.Assets {
		ids[i] = a.ID
	}

	var est *Estimate
	if len(f.Covariance) == 0 || hasMissingReturns(f.Assets) {
		if len(f.Returns) == 0 {
			return nil, fmt.Errorf("%w: covariance or returns series required", ErrInvalidUniverse)
		}
		var err error
		est, err = EstimateFromReturns(f.Returns, ids, f.Shrinkage)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidUniverse, err)
		}
	}

	assets := make([]Asset, len(f.Assets))
	mu := make([]float64, len(f.Assets))
	for i, a := range f.Assets {
		r := est.meanAt(i)
		if a.AvgReturn != nil {
			r = *a.AvgReturn
		}
		assets[i] = Asset{ID: a.ID, Name: a.Name, AvgReturn: r}
		mu[i] = r
	}

	cov := f.Covariance
	if len(cov) == 0 {
		cov = est.Covariance
	}

	return New(assets, cov)
}

// New validates assets and a covariance matrix given as rows and builds a Universe.
// Each asset's AvgReturn becomes its entry in μ.
func New(assets []Asset, covariance [][]float64) (*Universe, error) {
	n := len(assets)
	if n == 0 {
		return nil, fmt.Errorf("%w: no assets", ErrInvalidUniverse)
	}

	seen := make(map[string]bool, n)
	mu := make([]float64, n)
	for i, a := range assets {
		if a.ID == "" {
			return nil, fmt.Errorf("%w: asset %d has no id", ErrInvalidUniverse, i)
		}
		if seen[a.ID] {
			return nil, fmt.Errorf("%w: duplicate asset id %q", ErrInvalidUniverse, a.ID)
		}
		seen[a.ID] = true
		if !isFinite(a.AvgReturn) {
			return nil, fmt.Errorf("%w: asset %q has non-finite return", ErrInvalidUniverse, a.ID)
		}
		mu[i] = a.AvgReturn
	}

	if len(covariance) != n {
		return nil, fmt.Errorf("%w: covariance has %d rows, expected %d", ErrInvalidUniverse, len(covariance), n)
	}
	for i, row := range covariance {
		if len(row) != n {
			return nil, fmt.Errorf("%w: covariance row %d has %d columns, expected %d", ErrInvalidUniverse, i, len(row), n)
		}
		for j, v := range row {
			if !isFinite(v) {
				return nil, fmt.Errorf("%w: covariance[%d][%d] is not finite", ErrInvalidUniverse, i, j)
			}
		}
	}

	sigma := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		if covariance[i][i] < 0 {
			return nil, fmt.Errorf("%w: negative variance for asset %q", ErrInvalidUniverse, assets[i].ID)
		}
		for j := i; j < n; j++ {
			a, b := covariance[i][j], covariance[j][i]
			scale := math.Max(math.Max(math.Abs(a), math.Abs(b)), math.SmallestNonzeroFloat64)
			if math.Abs(a-b) > symmetryTolerance*scale {
				return nil, fmt.Errorf("%w: covariance is not symmetric at (%d,%d)", ErrInvalidUniverse, i, j)
			}
			sigma.SetSym(i, j, a)
		}
	}

	out := make([]Asset, n)
	copy(out, assets)
	return &Universe{assets: out, mu: mu, sigma: sigma}, nil
}

func hasMissingReturns(assets []assetRecord) bool {
	for _, a := range assets {
		if a.AvgReturn == nil {
			return true
		}
	}
	return false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
