package riskprofile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTable_Embedded(t *testing.T) {
	table, err := LoadTable("")
	require.NoError(t, err)

	assert.Len(t, table.Questions, 21)
	assert.Equal(t, -2, table.Questions["q2_5"]["Child’s education"])
	assert.Len(t, table.Buckets, 4)
	assert.Equal(t, VeryConservative, table.OverflowAversion)
}

func TestLoadTable_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	content := `
questions:
  q1:
    "Yes": 10
buckets:
  - max_score: 5
    aversion: 1
  - max_score: 15
    aversion: 5
overflow_aversion: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, 10, table.Questions["q1"]["Yes"])
	assert.Equal(t, []Bucket{{MaxScore: 5, Aversion: VeryAggressive}, {MaxScore: 15, Aversion: Balanced}}, table.Buckets)
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestTable_Validate(t *testing.T) {
	tests := []struct {
		name  string
		table Table
	}{
		{
			name:  "no buckets",
			table: Table{OverflowAversion: VeryConservative},
		},
		{
			name: "aversion outside allowed set",
			table: Table{
				Buckets:          []Bucket{{MaxScore: 10, Aversion: 4}},
				OverflowAversion: VeryConservative,
			},
		},
		{
			name: "bounds not increasing",
			table: Table{
				Buckets:          []Bucket{{MaxScore: 10, Aversion: Conservative}, {MaxScore: 10, Aversion: Balanced}},
				OverflowAversion: VeryConservative,
			},
		},
		{
			name: "overflow outside allowed set",
			table: Table{
				Buckets: []Bucket{{MaxScore: 10, Aversion: Conservative}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.table.Validate(), ErrInvalidTable)
		})
	}
}

func TestParseTable_BadYAML(t *testing.T) {
	_, err := ParseTable([]byte("questions: [unterminated"))
	assert.Error(t, err)
}
