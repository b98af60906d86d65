package riskprofile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aristath/allocator/pkg/embedded"
)

// ErrInvalidTable is returned when a scoring table fails validation.
var ErrInvalidTable = errors.New("invalid scoring table")

// Bucket maps every raw score up to and including MaxScore to Aversion.
type Bucket struct {
	MaxScore int      `yaml:"max_score"`
	Aversion Aversion `yaml:"aversion"`
}

// Table is the scoring configuration: points per option and the score buckets.
type Table struct {
	Questions        map[string]map[string]int `yaml:"questions"`
	Buckets          []Bucket                  `yaml:"buckets"`
	OverflowAversion Aversion                  `yaml:"overflow_aversion"`
}

// ParseTable decodes and validates a YAML scoring table.
func ParseTable(data []byte) (*Table, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse scoring table YAML: %w", err)
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}

	return &table, nil
}

// LoadTable reads the scoring table at path, or the embedded default when path is empty.
func LoadTable(path string) (*Table, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = embedded.ReadFile(embedded.ScoringFile)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scoring table: %w", err)
	}

	return ParseTable(data)
}

// Validate checks bucket ordering and that every bucket resolves to an allowed aversion.
func (t *Table) Validate() error {
	if len(t.Buckets) == 0 {
		return fmt.Errorf("%w: no buckets defined", ErrInvalidTable)
	}

	for i, b := range t.Buckets {
		if !b.Aversion.Valid() {
			return fmt.Errorf("%w: bucket %d has aversion %d outside the allowed set", ErrInvalidTable, i, int(b.Aversion))
		}
		if i > 0 && b.MaxScore <= t.Buckets[i-1].MaxScore {
			return fmt.Errorf("%w: bucket %d upper bound %d not above %d", ErrInvalidTable, i, b.MaxScore, t.Buckets[i-1].MaxScore)
		}
	}

	if !t.OverflowAversion.Valid() {
		return fmt.Errorf("%w: overflow aversion %d outside the allowed set", ErrInvalidTable, int(t.OverflowAversion))
	}

	return nil
}

// clone returns a deep copy so a Scorer never shares maps with its caller.
func (t *Table) clone() *Table {
	questions := make(map[string]map[string]int, len(t.Questions))
	for id, options := range t.Questions {
		points := make(map[string]int, len(options))
		for label, p := range options {
			points[label] = p
		}
		questions[id] = points
	}

	buckets := make([]Bucket, len(t.Buckets))
	copy(buckets, t.Buckets)

	return &Table{
		Questions:        questions,
		Buckets:          buckets,
		OverflowAversion: t.OverflowAversion,
	}
}
