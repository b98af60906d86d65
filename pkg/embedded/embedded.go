// Package embedded provides the default configuration data compiled into the binary.
package embedded

import (
	"embed"
)

// Files contains the default data files:
//   - data/universe.yaml - asset universe (expected daily returns, daily covariance)
//   - data/scoring.yaml - questionnaire scoring table and risk-aversion buckets
//
// Both can be replaced at runtime through UNIVERSE_PATH and SCORING_TABLE_PATH.
//
//go:embed data
var Files embed.FS

const (
	// UniverseFile is the path of the default universe inside Files.
	UniverseFile = "data/universe.yaml"
	// ScoringFile is the path of the default scoring table inside Files.
	ScoringFile = "data/scoring.yaml"
)

// ReadFile returns the content of an embedded data file.
func ReadFile(name string) ([]byte, error) {
	return Files.ReadFile(name)
}
